package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/meltforce/arise/internal/models"
)

// Record keys. These are the only keys the local store ever writes.
const (
	dailyWorkoutKey        = "daily_workout"
	userProgressKey        = "user_progress"
	levelUpNotificationKey = "level_up_notification"
)

// LocalStore keeps the progression records as JSON values in a small SQLite
// key-value table. This is the single-device backend.
type LocalStore struct {
	db *sql.DB
}

// Compile-time check: *LocalStore satisfies Store.
var _ Store = (*LocalStore)(nil)

// OpenLocal opens (or creates) the SQLite records database at dir/arise.db.
func OpenLocal(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "arise.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening records db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS records (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating records table: %w", err)
	}

	return &LocalStore{db: db}, nil
}

func (s *LocalStore) get(ctx context.Context, key string, v any) error {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM records WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(value), v); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) put(ctx context.Context, key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(value))
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// DailyWorkout returns the stored workout, regardless of its date.
func (s *LocalStore) DailyWorkout(ctx context.Context) (*models.DailyWorkout, error) {
	var w models.DailyWorkout
	if err := s.get(ctx, dailyWorkoutKey, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// SaveDailyWorkout overwrites the stored workout.
func (s *LocalStore) SaveDailyWorkout(ctx context.Context, w *models.DailyWorkout) error {
	return s.put(ctx, dailyWorkoutKey, w)
}

// UserProgress returns the stored progress record.
func (s *LocalStore) UserProgress(ctx context.Context) (*models.UserProgress, error) {
	var p models.UserProgress
	if err := s.get(ctx, userProgressKey, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveUserProgress overwrites the stored progress record.
func (s *LocalStore) SaveUserProgress(ctx context.Context, p *models.UserProgress) error {
	return s.put(ctx, userProgressKey, p)
}

// LevelUpNotification returns the stored notification flag.
func (s *LocalStore) LevelUpNotification(ctx context.Context) (*models.LevelUpNotification, error) {
	var n models.LevelUpNotification
	if err := s.get(ctx, levelUpNotificationKey, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// SaveLevelUpNotification overwrites the stored notification flag.
func (s *LocalStore) SaveLevelUpNotification(ctx context.Context, n *models.LevelUpNotification) error {
	return s.put(ctx, levelUpNotificationKey, n)
}

// Close closes the records database.
func (s *LocalStore) Close() error {
	return s.db.Close()
}
