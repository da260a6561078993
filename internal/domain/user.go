package domain

import "time"

// User represents an authenticated account within the platform.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
