package domain

import "time"

// User represents a registered account on the platform. Username is the
// primary identity and never changes after registration.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
