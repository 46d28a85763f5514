package storage

import (
	"context"
	"errors"

	"github.com/meltforce/arise/internal/models"
)

// ErrNotFound is returned by Store reads when no record exists yet.
var ErrNotFound = errors.New("record not found")

// Store persists the three progression records. Two implementations exist:
// LocalStore (SQLite key-value, single device) and PostgresStore (remote
// sync, rows keyed by user). Callers that want the absent/stale fallback
// policy should go through Records instead of using a Store directly.
type Store interface {
	DailyWorkout(ctx context.Context) (*models.DailyWorkout, error)
	SaveDailyWorkout(ctx context.Context, w *models.DailyWorkout) error
	UserProgress(ctx context.Context) (*models.UserProgress, error)
	SaveUserProgress(ctx context.Context, p *models.UserProgress) error
	LevelUpNotification(ctx context.Context) (*models.LevelUpNotification, error)
	SaveLevelUpNotification(ctx context.Context, n *models.LevelUpNotification) error
	Close() error
}
