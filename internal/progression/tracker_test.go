package progression

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/meltforce/arise/internal/models"
	"github.com/meltforce/arise/internal/storage"
)

// memStore is an in-memory Store for tracker tests.
type memStore struct {
	workout      *models.DailyWorkout
	progress     *models.UserProgress
	notification *models.LevelUpNotification
}

func (m *memStore) DailyWorkout(ctx context.Context) (*models.DailyWorkout, error) {
	if m.workout == nil {
		return nil, storage.ErrNotFound
	}
	return m.workout, nil
}

func (m *memStore) SaveDailyWorkout(ctx context.Context, w *models.DailyWorkout) error {
	m.workout = w
	return nil
}

func (m *memStore) UserProgress(ctx context.Context) (*models.UserProgress, error) {
	if m.progress == nil {
		return nil, storage.ErrNotFound
	}
	return m.progress, nil
}

func (m *memStore) SaveUserProgress(ctx context.Context, p *models.UserProgress) error {
	m.progress = p
	return nil
}

func (m *memStore) LevelUpNotification(ctx context.Context) (*models.LevelUpNotification, error) {
	if m.notification == nil {
		return nil, storage.ErrNotFound
	}
	return m.notification, nil
}

func (m *memStore) SaveLevelUpNotification(ctx context.Context, n *models.LevelUpNotification) error {
	m.notification = n
	return nil
}

func (m *memStore) Close() error { return nil }

func testTracker(t *testing.T, now time.Time) (*Tracker, *memStore) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := &memStore{}
	records := storage.NewRecords(store, log).WithClock(func() time.Time { return now })
	return NewTracker(records, log), store
}

func fullWorkout(date string) *models.DailyWorkout {
	w := models.NewDailyWorkout(date)
	for i := range w.Exercises {
		w.Exercises[i].Completed = w.Exercises[i].Target
	}
	return w
}

// TestCompleteWorkout verifies the full completion path: the workout flips
// to completed, counters and streak advance, XP and attributes apply, and
// both records are persisted.
func TestCompleteWorkout(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	tracker, store := testTracker(t, now)
	ctx := context.Background()

	w := fullWorkout("2024-03-15")
	p := models.NewUserProgress()

	result := tracker.CompleteWorkout(ctx, w, p)
	if result == nil {
		t.Fatal("expected completion result")
	}
	if !w.Completed {
		t.Error("workout not marked completed")
	}
	if p.StreakDays != 1 {
		t.Errorf("streak = %d, want 1", p.StreakDays)
	}
	if p.TotalWorkoutsCompleted != 1 {
		t.Errorf("total = %d, want 1", p.TotalWorkoutsCompleted)
	}
	if p.LastCompletedDate == nil || *p.LastCompletedDate != "2024-03-15" {
		t.Errorf("lastCompletedDate = %v, want 2024-03-15", p.LastCompletedDate)
	}
	if p.MonthlyWorkouts["2024-03"] != 1 {
		t.Errorf("monthly count = %d, want 1", p.MonthlyWorkouts["2024-03"])
	}
	if result.ExperienceGained != 125 {
		t.Errorf("xp gained = %d, want 125", result.ExperienceGained)
	}
	// 125 XP crosses the initial 100 threshold: level 2, 25 XP remaining.
	if !result.LeveledUp || p.Level != 2 {
		t.Errorf("level = %d (leveledUp=%v), want 2", p.Level, result.LeveledUp)
	}
	if p.Experience != 25 || p.ExperienceToNextLevel != 150 {
		t.Errorf("experience = %d/%d, want 25/150", p.Experience, p.ExperienceToNextLevel)
	}
	if math.Abs(p.Attributes.Strength-1.4) > 1e-9 {
		t.Errorf("strength = %v, want 1.4", p.Attributes.Strength)
	}

	if store.workout == nil || !store.workout.Completed {
		t.Error("workout not persisted")
	}
	if store.progress == nil || store.progress.Level != 2 {
		t.Error("progress not persisted")
	}
	if store.notification == nil || store.notification.Shown || store.notification.Level != 2 {
		t.Errorf("notification = %+v, want unshown level 2", store.notification)
	}
}

// TestCompleteWorkoutIdempotent verifies calling the tracker again with the
// already-credited workout is a no-op.
func TestCompleteWorkoutIdempotent(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	tracker, _ := testTracker(t, now)
	ctx := context.Background()

	w := fullWorkout("2024-03-15")
	p := models.NewUserProgress()

	if tracker.CompleteWorkout(ctx, w, p) == nil {
		t.Fatal("first call should complete")
	}
	total := p.TotalWorkoutsCompleted
	if tracker.CompleteWorkout(ctx, w, p) != nil {
		t.Error("second call should be a no-op")
	}
	if p.TotalWorkoutsCompleted != total {
		t.Errorf("total changed on repeat call: %d", p.TotalWorkoutsCompleted)
	}
}

// TestCompleteWorkoutNotReady verifies nothing is credited while any
// exercise is short of its target.
func TestCompleteWorkoutNotReady(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)
	tracker, store := testTracker(t, now)

	w := fullWorkout("2024-03-15")
	w.Exercises[1].Completed = 99

	if tracker.CompleteWorkout(context.Background(), w, models.NewUserProgress()) != nil {
		t.Error("incomplete workout should not be credited")
	}
	if w.Completed {
		t.Error("workout marked completed")
	}
	if store.progress != nil {
		t.Error("progress persisted for incomplete workout")
	}
}

// TestStreakContinues verifies a completion on the day after the previous
// one increments the streak.
func TestStreakContinues(t *testing.T) {
	now := time.Date(2024, 3, 16, 8, 0, 0, 0, time.UTC)
	tracker, _ := testTracker(t, now)

	yesterday := "2024-03-15"
	p := models.NewUserProgress()
	p.StreakDays = 5
	p.LastCompletedDate = &yesterday

	tracker.CompleteWorkout(context.Background(), fullWorkout("2024-03-16"), p)
	if p.StreakDays != 6 {
		t.Errorf("streak = %d, want 6", p.StreakDays)
	}
}

// TestStreakResets verifies a completion after a gap of two or more days
// resets the streak to 1.
func TestStreakResets(t *testing.T) {
	now := time.Date(2024, 3, 20, 8, 0, 0, 0, time.UTC)
	tracker, _ := testTracker(t, now)

	lastWeek := "2024-03-13"
	p := models.NewUserProgress()
	p.StreakDays = 12
	p.LastCompletedDate = &lastWeek

	tracker.CompleteWorkout(context.Background(), fullWorkout("2024-03-20"), p)
	if p.StreakDays != 1 {
		t.Errorf("streak = %d, want 1", p.StreakDays)
	}
}

// TestMonthlyBucketAccumulates verifies repeated completions in a month
// accumulate in the same bucket.
func TestMonthlyBucketAccumulates(t *testing.T) {
	now := time.Date(2024, 3, 16, 8, 0, 0, 0, time.UTC)
	tracker, _ := testTracker(t, now)

	yesterday := "2024-03-15"
	p := models.NewUserProgress()
	p.LastCompletedDate = &yesterday
	p.MonthlyWorkouts["2024-03"] = 7

	tracker.CompleteWorkout(context.Background(), fullWorkout("2024-03-16"), p)
	if p.MonthlyWorkouts["2024-03"] != 8 {
		t.Errorf("monthly count = %d, want 8", p.MonthlyWorkouts["2024-03"])
	}
}
