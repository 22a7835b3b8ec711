package entity

import (
	"time"
)

// User is the aggregate root for the identity domain.
// Passwords are stored as bcrypt hashes in Password; OAuth-only accounts
// carry an empty hash and a non-local Provider.
type User struct {
	ID        string
	Email     string
	Password  string
	Provider  string // "local" or "google"
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)
