package entity

import (
	"time"
)

// User is an institutional account allowed to manage the agenda.
// Passwords are stored as bcrypt hashes in Password field.
// Accounts are provisioned outside the web app (see cmd/seed).
type User struct {
	ID        string
	Username  string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
