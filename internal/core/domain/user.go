package domain

import "time"

// User models an account record. PasswordHash never leaves the store and
// service boundary: it is excluded from JSON and stripped from every value
// the service hands upward.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the subject a valid session token decodes to.
type Identity struct {
	UserID string
	Email  string
}
