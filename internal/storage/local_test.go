package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/meltforce/arise/internal/models"
)

func openTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := OpenLocal(t.TempDir())
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestLocalStoreNotFound verifies all three records report ErrNotFound on an
// empty database.
func TestLocalStoreNotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.DailyWorkout(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("DailyWorkout error = %v, want ErrNotFound", err)
	}
	if _, err := s.UserProgress(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("UserProgress error = %v, want ErrNotFound", err)
	}
	if _, err := s.LevelUpNotification(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("LevelUpNotification error = %v, want ErrNotFound", err)
	}
}

// TestLocalStoreWorkoutRoundTrip verifies a workout survives storage intact.
func TestLocalStoreWorkoutRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	w := models.NewDailyWorkout("2024-03-15")
	w.Exercises[2].Completed = 4.5
	if err := s.SaveDailyWorkout(ctx, w); err != nil {
		t.Fatalf("save error: %v", err)
	}

	got, err := s.DailyWorkout(ctx)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if !reflect.DeepEqual(got, w) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", got, w)
	}
}

// TestLocalStoreProgressOverwrite verifies saves are unconditional
// overwrites and the latest record wins.
func TestLocalStoreProgressOverwrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p := models.NewUserProgress()
	if err := s.SaveUserProgress(ctx, p); err != nil {
		t.Fatalf("save error: %v", err)
	}

	date := "2024-03-15"
	p.Level = 5
	p.StreakDays = 9
	p.LastCompletedDate = &date
	p.MonthlyWorkouts["2024-03"] = 4
	if err := s.SaveUserProgress(ctx, p); err != nil {
		t.Fatalf("save error: %v", err)
	}

	got, err := s.UserProgress(ctx)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if !reflect.DeepEqual(got, p) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", got, p)
	}
}

// TestLocalStoreNotification verifies the notification flag read/write.
func TestLocalStoreNotification(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	n := &models.LevelUpNotification{Level: 3}
	if err := s.SaveLevelUpNotification(ctx, n); err != nil {
		t.Fatalf("save error: %v", err)
	}
	got, err := s.LevelUpNotification(ctx)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if got.Shown || got.Level != 3 {
		t.Errorf("notification = %+v, want unshown level 3", got)
	}
}

// TestLocalStoreReopen verifies records persist across close and reopen.
func TestLocalStoreReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := OpenLocal(dir)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	if err := s.SaveDailyWorkout(ctx, models.NewDailyWorkout("2024-03-15")); err != nil {
		t.Fatalf("save error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close error: %v", err)
	}

	s2, err := OpenLocal(dir)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer s2.Close()

	w, err := s2.DailyWorkout(ctx)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if w.Date != "2024-03-15" {
		t.Errorf("date = %q, want 2024-03-15", w.Date)
	}
}
