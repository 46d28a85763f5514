package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/meltforce/arise/internal/models"
)

// Records wraps a Store with the degradation policy the progression logic
// relies on: reads that fail, find nothing, or (for the workout) find a
// stale date fall back to a freshly initialized record, which is persisted
// so the next read is consistent. Write failures are logged and swallowed.
// Callers never see a storage error; at worst they see fresh defaults.
type Records struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

// NewRecords creates a Records adapter over the given store.
func NewRecords(store Store, log *slog.Logger) *Records {
	return &Records{store: store, log: log, now: time.Now}
}

// WithClock overrides the wall clock. Test hook.
func (r *Records) WithClock(now func() time.Time) *Records {
	r.now = now
	return r
}

// Today returns the current calendar date string.
func (r *Records) Today() string {
	return models.DateString(r.now())
}

// CurrentMonth returns the current month key.
func (r *Records) CurrentMonth() string {
	return models.MonthString(r.now())
}

// DailyWorkout returns today's workout. A missing, unreadable, or
// stale-dated record is replaced by a fresh workout for today; callers
// never see a workout dated anything but today.
func (r *Records) DailyWorkout(ctx context.Context) *models.DailyWorkout {
	today := r.Today()

	w, err := r.store.DailyWorkout(ctx)
	if err == nil && w.Date == today {
		return w
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		r.log.Error("reading daily workout, starting fresh", "error", err)
	}

	fresh := models.NewDailyWorkout(today)
	r.SaveDailyWorkout(ctx, fresh)
	return fresh
}

// SaveDailyWorkout persists the workout. Failures are logged and swallowed.
func (r *Records) SaveDailyWorkout(ctx context.Context, w *models.DailyWorkout) {
	if err := r.store.SaveDailyWorkout(ctx, w); err != nil {
		r.log.Error("saving daily workout", "error", err)
	}
}

// UserProgress returns the progress record, falling back to the initial
// record when absent or unreadable.
func (r *Records) UserProgress(ctx context.Context) *models.UserProgress {
	p, err := r.store.UserProgress(ctx)
	if err == nil {
		p.FillDefaults()
		return p
	}
	if !errors.Is(err, ErrNotFound) {
		r.log.Error("reading user progress, starting fresh", "error", err)
	}

	fresh := models.NewUserProgress()
	r.SaveUserProgress(ctx, fresh)
	return fresh
}

// SaveUserProgress persists the progress record. Failures are logged and
// swallowed.
func (r *Records) SaveUserProgress(ctx context.Context, p *models.UserProgress) {
	if err := r.store.SaveUserProgress(ctx, p); err != nil {
		r.log.Error("saving user progress", "error", err)
	}
}

// LevelUpNotification returns the pending notification, or nil when none
// exists or the read fails.
func (r *Records) LevelUpNotification(ctx context.Context) *models.LevelUpNotification {
	n, err := r.store.LevelUpNotification(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.log.Error("reading level up notification", "error", err)
		}
		return nil
	}
	return n
}

// SaveLevelUpNotification persists the notification flag. Failures are
// logged and swallowed.
func (r *Records) SaveLevelUpNotification(ctx context.Context, n *models.LevelUpNotification) {
	if err := r.store.SaveLevelUpNotification(ctx, n); err != nil {
		r.log.Error("saving level up notification", "error", err)
	}
}
