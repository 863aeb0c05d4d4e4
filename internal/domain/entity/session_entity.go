package entity

import "time"

// Session binds a browser to an authenticated user until logout or expiry.
type Session struct {
	ID        string
	UserID    string
	Username  string
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
}
