package reminders

import (
	"context"

	"github.com/dmitrijs2005/lembretes/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error)
	// Delete removes the reminder with the given id and reports how many rows
	// were affected. Zero rows is not an error.
	Delete(ctx context.Context, id int64) (int64, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Reminder, error)
}
