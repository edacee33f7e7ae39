package sessions

import "time"

type SetType string

const (
	SetTypeWarmup  SetType = "warmup"
	SetTypeWorking SetType = "working"
)

func (st SetType) IsValid() bool {
	return st == SetTypeWarmup || st == SetTypeWorking
}

// WorkoutSession is one visit to the gym. A user has at most one open
// session (EndTime unset) at any moment.
type WorkoutSession struct {
	ID              int        `json:"id"`
	UserID          int        `json:"userId"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	DurationMinutes *int       `json:"durationMinutes,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

// Open reports whether the session is still running.
func (s *WorkoutSession) Open() bool {
	return s.EndTime == nil
}

// SetEntry is one logged set within a session. Strength sets carry reps
// and weight, cardio sets carry calories and time. SetNumber counts
// sets of the same exercise within the session, starting at 1.
type SetEntry struct {
	ID          int       `json:"id"`
	SessionID   int       `json:"sessionId"`
	ExerciseID  int       `json:"exerciseId"`
	SetNumber   int       `json:"setNumber"`
	SetType     SetType   `json:"setType"`
	Reps        int       `json:"reps,omitempty"`
	Weight      float64   `json:"weight,omitempty"`
	Calories    int       `json:"calories,omitempty"`
	TimeMinutes int       `json:"timeMinutes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AddSetParams is the client request for logging a set. SetNumber is
// never taken from the client, the repo assigns it.
type AddSetParams struct {
	ExerciseID  int     `json:"exerciseId"`
	SetType     SetType `json:"setType"`
	Reps        int     `json:"reps"`
	Weight      float64 `json:"weight"`
	Calories    int     `json:"calories"`
	TimeMinutes int     `json:"timeMinutes"`
}
