package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meltforce/arise/internal/models"
)

// PostgresStore is the remote sync backend. Records are mirrored into rows
// upserted by user ID; the JSON shapes of exercises, monthly workouts, and
// attributes are stored as-is in JSONB columns so both backends share one
// serialization format.
type PostgresStore struct {
	pool   *pgxpool.Pool
	userID int
}

// Compile-time check: *PostgresStore satisfies Store.
var _ Store = (*PostgresStore)(nil)

// OpenPostgres connects to the database and resolves (or creates) the user
// for the given login. All subsequent reads and writes are scoped to it.
func OpenPostgres(ctx context.Context, dsn, login string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	s.userID, err = s.getOrCreateUser(ctx, login)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("resolving user %q: %w", login, err)
	}
	return s, nil
}

// getOrCreateUser finds or creates a user by login. Updates last_seen on
// each call.
func (s *PostgresStore) getOrCreateUser(ctx context.Context, login string) (int, error) {
	var id int
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (login)
		VALUES ($1)
		ON CONFLICT (login) DO UPDATE SET last_seen = NOW()
		RETURNING id
	`, login).Scan(&id)
	return id, err
}

// DailyWorkout returns the most recent workout row for the user. Staleness
// against today's date is the caller's concern.
func (s *PostgresStore) DailyWorkout(ctx context.Context) (*models.DailyWorkout, error) {
	var w models.DailyWorkout
	var exercises []byte
	err := s.pool.QueryRow(ctx, `
		SELECT date, completed, exercises
		FROM daily_workouts
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT 1
	`, s.userID).Scan(&w.Date, &w.Completed, &exercises)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading daily workout: %w", err)
	}
	if err := json.Unmarshal(exercises, &w.Exercises); err != nil {
		return nil, fmt.Errorf("decoding exercises: %w", err)
	}
	return &w, nil
}

// SaveDailyWorkout upserts the workout row for (user, date).
func (s *PostgresStore) SaveDailyWorkout(ctx context.Context, w *models.DailyWorkout) error {
	exercises, err := json.Marshal(w.Exercises)
	if err != nil {
		return fmt.Errorf("encoding exercises: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO daily_workouts (user_id, date, completed, exercises, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, date) DO UPDATE
			SET completed = EXCLUDED.completed,
			    exercises = EXCLUDED.exercises,
			    updated_at = NOW()
	`, s.userID, w.Date, w.Completed, exercises)
	if err != nil {
		return fmt.Errorf("writing daily workout: %w", err)
	}
	return nil
}

// UserProgress returns the user's progress row.
func (s *PostgresStore) UserProgress(ctx context.Context) (*models.UserProgress, error) {
	var p models.UserProgress
	var monthly, attributes []byte
	err := s.pool.QueryRow(ctx, `
		SELECT streak_days, total_workouts_completed, last_completed_date,
		       level, experience, experience_to_next_level,
		       monthly_workouts, attributes
		FROM user_progress
		WHERE user_id = $1
	`, s.userID).Scan(
		&p.StreakDays, &p.TotalWorkoutsCompleted, &p.LastCompletedDate,
		&p.Level, &p.Experience, &p.ExperienceToNextLevel,
		&monthly, &attributes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading user progress: %w", err)
	}
	if err := json.Unmarshal(monthly, &p.MonthlyWorkouts); err != nil {
		return nil, fmt.Errorf("decoding monthly workouts: %w", err)
	}
	if err := json.Unmarshal(attributes, &p.Attributes); err != nil {
		return nil, fmt.Errorf("decoding attributes: %w", err)
	}
	return &p, nil
}

// SaveUserProgress upserts the user's progress row.
func (s *PostgresStore) SaveUserProgress(ctx context.Context, p *models.UserProgress) error {
	monthly, err := json.Marshal(p.MonthlyWorkouts)
	if err != nil {
		return fmt.Errorf("encoding monthly workouts: %w", err)
	}
	attributes, err := json.Marshal(p.Attributes)
	if err != nil {
		return fmt.Errorf("encoding attributes: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO user_progress (user_id, streak_days, total_workouts_completed,
			last_completed_date, level, experience, experience_to_next_level,
			monthly_workouts, attributes, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (user_id) DO UPDATE
			SET streak_days = EXCLUDED.streak_days,
			    total_workouts_completed = EXCLUDED.total_workouts_completed,
			    last_completed_date = EXCLUDED.last_completed_date,
			    level = EXCLUDED.level,
			    experience = EXCLUDED.experience,
			    experience_to_next_level = EXCLUDED.experience_to_next_level,
			    monthly_workouts = EXCLUDED.monthly_workouts,
			    attributes = EXCLUDED.attributes,
			    updated_at = NOW()
	`, s.userID, p.StreakDays, p.TotalWorkoutsCompleted, p.LastCompletedDate,
		p.Level, p.Experience, p.ExperienceToNextLevel, monthly, attributes)
	if err != nil {
		return fmt.Errorf("writing user progress: %w", err)
	}
	return nil
}

// LevelUpNotification returns the user's notification row.
func (s *PostgresStore) LevelUpNotification(ctx context.Context) (*models.LevelUpNotification, error) {
	var n models.LevelUpNotification
	err := s.pool.QueryRow(ctx, `
		SELECT shown, level FROM level_up_notifications WHERE user_id = $1
	`, s.userID).Scan(&n.Shown, &n.Level)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading level up notification: %w", err)
	}
	return &n, nil
}

// SaveLevelUpNotification upserts the user's notification row.
func (s *PostgresStore) SaveLevelUpNotification(ctx context.Context, n *models.LevelUpNotification) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO level_up_notifications (user_id, shown, level, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id) DO UPDATE
			SET shown = EXCLUDED.shown, level = EXCLUDED.level, updated_at = NOW()
	`, s.userID, n.Shown, n.Level)
	if err != nil {
		return fmt.Errorf("writing level up notification: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
