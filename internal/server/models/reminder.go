package models

import "time"

// Reminder (lembrete) belongs to exactly one user. Status and Type are
// free-form strings; no set of values is enforced.
type Reminder struct {
	ID          int64
	OwnerID     int64
	Title       string
	Description string
	ScheduledAt time.Time
	Status      string
	Type        string
	CreatedAt   time.Time
}
