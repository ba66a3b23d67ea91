package workouts

import "time"

// Set is one logged set. Weight and reps stay free-form strings: the app
// sends whatever the user typed ("20", "bodyweight", "amrap") and the
// round trip must preserve it verbatim.
type Set struct {
	Weight string `json:"weight"`
	Reps   string `json:"reps"`
}

// ExerciseLog is the record of one exercise within a completed workout.
// The exercise name is denormalized at save time so history stays readable
// if the catalog entry is later renamed or deleted.
type ExerciseLog struct {
	ExerciseID   int    `json:"exerciseId"`
	ExerciseName string `json:"exerciseName"`
	Sets         []Set  `json:"sets"`
}

type Workout struct {
	ID   int    `json:"workoutId"`
	Name string `json:"name"`
	Date string `json:"date"`
}

// DefaultName labels an unnamed workout with its date, e.g. "Workout 2026-02-18".
func DefaultName(now time.Time) string {
	return "Workout " + now.Format("2006-01-02")
}
