package client

import (
	"context"
	"encoding/json"
	"time"
)

// ReminderInput is the payload of a create request. ScheduledAt is sent as
// typed by the user; the server parses it.
type ReminderInput struct {
	OwnerID     int64  `json:"usuario_id"`
	Title       string `json:"titulo"`
	Description string `json:"descricao"`
	ScheduledAt string `json:"data_lembrete"`
	Status      string `json:"status"`
	Type        string `json:"tipo"`
}

type Reminder struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"usuario_id"`
	Title       string    `json:"titulo"`
	Description string    `json:"descricao"`
	ScheduledAt time.Time `json:"data_lembrete"`
	Status      string    `json:"status"`
	Type        string    `json:"tipo"`
}

type Client interface {
	Close() error
	// Login returns the "user" member of a successful answer verbatim.
	Login(ctx context.Context, email, password string) (json.RawMessage, error)
	Register(ctx context.Context, name, email, password string) (int64, error)
	CreateReminder(ctx context.Context, in ReminderInput) (int64, error)
	DeleteReminder(ctx context.Context, id int64) error
	ListReminders(ctx context.Context, ownerID int64) ([]Reminder, error)
	Ping(ctx context.Context) error
}
