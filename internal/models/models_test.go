package models

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

// TestUserProgressRoundTrip verifies that a progress record survives a
// JSON round-trip with every field intact, including the monthly map and
// the nullable last-completed date.
func TestUserProgressRoundTrip(t *testing.T) {
	date := "2024-03-15"
	p := &UserProgress{
		StreakDays:             7,
		TotalWorkoutsCompleted: 42,
		LastCompletedDate:      &date,
		Level:                  3,
		Experience:             80,
		ExperienceToNextLevel:  225,
		MonthlyWorkouts:        map[string]int{"2024-02": 12, "2024-03": 9},
		Attributes: UserAttributes{
			Strength: 4.2, Endurance: 3.8, Agility: 2.1, Willpower: 5.0,
		},
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var got UserProgress
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if !reflect.DeepEqual(&got, p) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", got, *p)
	}
}

// TestUserProgressNullDate verifies that a nil lastCompletedDate serializes
// as JSON null and comes back nil, matching the stored format of a user who
// has never completed a workout.
func TestUserProgressNullDate(t *testing.T) {
	data, err := json.Marshal(NewUserProgress())
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if string(raw["lastCompletedDate"]) != "null" {
		t.Errorf("lastCompletedDate = %s, want null", raw["lastCompletedDate"])
	}

	var got UserProgress
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if got.LastCompletedDate != nil {
		t.Errorf("LastCompletedDate = %v, want nil", *got.LastCompletedDate)
	}
}

// TestDailyWorkoutRoundTrip verifies the workout storage format is lossless.
func TestDailyWorkoutRoundTrip(t *testing.T) {
	w := NewDailyWorkout("2024-03-15")
	w.Exercises[0].Completed = 55
	w.Exercises[2].Completed = 4.5

	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var got DailyWorkout
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if !reflect.DeepEqual(&got, w) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", got, *w)
	}
}

// TestNewDailyWorkout verifies a fresh workout starts incomplete with all
// four default exercises at zero.
func TestNewDailyWorkout(t *testing.T) {
	w := NewDailyWorkout("2024-01-01")
	if w.Completed {
		t.Error("new workout should not be completed")
	}
	if len(w.Exercises) != 4 {
		t.Fatalf("exercise count = %d, want 4", len(w.Exercises))
	}
	for _, e := range w.Exercises {
		if e.Completed != 0 {
			t.Errorf("%s completed = %v, want 0", e.Name, e.Completed)
		}
	}
	if w.AllTargetsMet() {
		t.Error("fresh workout should not have all targets met")
	}
}

// TestExerciseLog verifies logging semantics: Running counts half a
// kilometer per unit, other exercises one rep per unit, and decrements
// floor at zero.
func TestExerciseLog(t *testing.T) {
	tests := []struct {
		name    string
		ex      Exercise
		amounts []float64
		want    float64
	}{
		{
			name:    "reps accumulate",
			ex:      Exercise{Name: ExercisePushUps},
			amounts: []float64{10, 5},
			want:    15,
		},
		{
			name:    "running logs half km per unit",
			ex:      Exercise{Name: ExerciseRunning},
			amounts: []float64{1, 1, 1},
			want:    1.5,
		},
		{
			name:    "decrement floors at zero",
			ex:      Exercise{Name: ExerciseSitUps, Completed: 3},
			amounts: []float64{-10},
			want:    0,
		},
		{
			name:    "running decrement",
			ex:      Exercise{Name: ExerciseRunning, Completed: 2},
			amounts: []float64{-1},
			want:    1.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, a := range tt.amounts {
				tt.ex.Log(a)
			}
			if tt.ex.Completed != tt.want {
				t.Errorf("completed = %v, want %v", tt.ex.Completed, tt.want)
			}
		})
	}
}

// TestIsConsecutiveDay covers the streak continuity comparison.
func TestIsConsecutiveDay(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"2024-01-01", "2024-01-02", true},
		{"2024-01-02", "2024-01-01", true},
		{"2024-01-01", "2024-01-01", false},
		{"2024-01-01", "2024-01-05", false},
		{"2024-01-31", "2024-02-01", true},
		{"2023-12-31", "2024-01-01", true},
		{"not-a-date", "2024-01-01", false},
		{"2024-01-01", "", false},
	}
	for _, tt := range tests {
		if got := IsConsecutiveDay(tt.a, tt.b); got != tt.want {
			t.Errorf("IsConsecutiveDay(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

// TestAnalyticsMonths verifies the month keys are well-formed, newest first,
// and cross year boundaries correctly.
func TestAnalyticsMonths(t *testing.T) {
	ref := time.Date(2024, 2, 29, 15, 0, 0, 0, time.UTC)
	got := AnalyticsMonths(ref, 6)
	want := []string{"2024-02", "2024-01", "2023-12", "2023-11", "2023-10", "2023-09"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AnalyticsMonths = %v, want %v", got, want)
	}
}

// TestDateString pins the storage date formats.
func TestDateString(t *testing.T) {
	ref := time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC)
	if got := DateString(ref); got != "2024-03-05" {
		t.Errorf("DateString = %q, want 2024-03-05", got)
	}
	if got := MonthString(ref); got != "2024-03" {
		t.Errorf("MonthString = %q, want 2024-03", got)
	}
}
