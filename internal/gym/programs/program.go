package programs

import "time"

// Program is a user-owned workout plan, free text split into a name and
// a description of the planned exercises.
type Program struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
