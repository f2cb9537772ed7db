package domain

import "time"

// User is the single entity managed by this service. Records are never
// physically removed; a delete flips IsActive to false.
type User struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         string // free-form label; Customer, Premium and Admin in practice
	CreatedAt    time.Time
	LastLogin    *time.Time // reserved for a future auth flow, never set here
	IsActive     bool
}
