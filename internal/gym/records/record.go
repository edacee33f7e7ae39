package records

import "time"

// PersonalRecord is the heaviest weight a user ever logged for an
// exercise. At most one record exists per (user, exercise) pair.
type PersonalRecord struct {
	ID           int       `json:"id"`
	UserID       int       `json:"userId"`
	ExerciseID   int       `json:"exerciseId"`
	ExerciseName string    `json:"exerciseName,omitempty"`
	Weight       float64   `json:"weight"`
	Reps         int       `json:"reps"`
	AchievedAt   time.Time `json:"achievedAt"`
}
