package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lembretes/internal/client/client"
	"github.com/dmitrijs2005/lembretes/internal/client/session"
)

var ErrNotLoggedIn = errors.New("not logged in")

const MsgNotLoggedIn = "Faça login para continuar"

type ReminderService interface {
	Create(ctx context.Context, in client.ReminderInput) (int64, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]client.Reminder, error)
}

type reminderService struct {
	client  client.Client
	store   *session.Store
	timeout time.Duration
}

func NewReminderService(c client.Client, store *session.Store, timeout time.Duration) ReminderService {
	return &reminderService{client: c, store: store, timeout: timeout}
}

// Create sends in to the server. An unset owner is taken from the session.
func (s *reminderService) Create(ctx context.Context, in client.ReminderInput) (int64, error) {
	if in.OwnerID == 0 {
		id, ok := s.store.UserID()
		if !ok {
			return 0, ErrNotLoggedIn
		}
		in.OwnerID = id
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	id, err := s.client.CreateReminder(ctx, in)
	if err != nil {
		return 0, fmt.Errorf("create reminder: %w", err)
	}
	return id, nil
}

func (s *reminderService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.DeleteReminder(ctx, id); err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	return nil
}

// List returns the reminders of the signed-in user.
func (s *reminderService) List(ctx context.Context) ([]client.Reminder, error) {
	owner, ok := s.store.UserID()
	if !ok {
		return nil, ErrNotLoggedIn
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	items, err := s.client.ListReminders(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return items, nil
}
