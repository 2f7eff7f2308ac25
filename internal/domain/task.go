package domain

import "time"

// Task is a single to-do item owned by exactly one user. The id is assigned
// by the store on insert and never changes afterwards.
type Task struct {
	ID          int64
	Username    string
	Description string
	Priority    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
