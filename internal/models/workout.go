package models

// Canonical exercise names. The attribute weight table in the progression
// package is keyed by these, so a rename here is a behavior change.
const (
	ExercisePushUps = "Push-ups"
	ExerciseSquats  = "Squats"
	ExerciseRunning = "Running"
	ExerciseSitUps  = "Sit-ups"
)

// Exercise is a single entry in the daily workout. Completed is the only
// mutable field; it never goes below zero.
type Exercise struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Target       float64 `json:"target"`
	Unit         string  `json:"unit"`
	Instructions string  `json:"instructions"`
	Completed    float64 `json:"completed"`
}

// Log applies a user-logged amount to the exercise. Running is logged in
// half-kilometer units; everything else counts one rep per unit. Negative
// amounts undo previous logs, floored at zero.
func (e *Exercise) Log(amount float64) {
	increment := amount
	if e.Name == ExerciseRunning {
		increment = amount * 0.5
	}
	e.Completed += increment
	if e.Completed < 0 {
		e.Completed = 0
	}
}

// Done reports whether the exercise has reached its target.
func (e *Exercise) Done() bool {
	return e.Completed >= e.Target
}

// DailyWorkout is the workout for a single calendar date. Completed flips to
// true exactly once, the first time every exercise reaches its target, and
// only resets by a new workout being created for a new date.
type DailyWorkout struct {
	Date      string     `json:"date"`
	Completed bool       `json:"completed"`
	Exercises []Exercise `json:"exercises"`
}

// AllTargetsMet reports whether every exercise has reached its target.
func (w *DailyWorkout) AllTargetsMet() bool {
	for i := range w.Exercises {
		if !w.Exercises[i].Done() {
			return false
		}
	}
	return true
}

// Exercise returns the exercise with the given ID, or nil.
func (w *DailyWorkout) Exercise(id string) *Exercise {
	for i := range w.Exercises {
		if w.Exercises[i].ID == id {
			return &w.Exercises[i]
		}
	}
	return nil
}

// DefaultExercises returns a fresh copy of the fixed daily exercise set.
func DefaultExercises() []Exercise {
	return []Exercise{
		{
			ID:           "1",
			Name:         ExercisePushUps,
			Target:       100,
			Unit:         "reps",
			Instructions: "Keep your body straight, lower yourself until your chest nearly touches the floor, then push back up.",
		},
		{
			ID:           "2",
			Name:         ExerciseSquats,
			Target:       100,
			Unit:         "reps",
			Instructions: "Stand with feet shoulder-width apart, lower your body as if sitting in a chair, then return to standing.",
		},
		{
			ID:           "3",
			Name:         ExerciseRunning,
			Target:       10,
			Unit:         "km",
			Instructions: "Maintain a steady pace. You can break this into smaller segments if needed.",
		},
		{
			ID:           "4",
			Name:         ExerciseSitUps,
			Target:       100,
			Unit:         "reps",
			Instructions: "Lie on your back with knees bent, hands behind your head. Lift your upper body toward your knees, then lower back down.",
		},
	}
}

// NewDailyWorkout creates a fresh workout for the given date with all
// exercises at zero.
func NewDailyWorkout(date string) *DailyWorkout {
	return &DailyWorkout{
		Date:      date,
		Exercises: DefaultExercises(),
	}
}
