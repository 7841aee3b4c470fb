package models

import "time"

// User is a registered patient. PasswordHash never leaves the server.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
