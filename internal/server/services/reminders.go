package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/lembretes/internal/common"
	"github.com/dmitrijs2005/lembretes/internal/logging"
	"github.com/dmitrijs2005/lembretes/internal/server/models"
	"github.com/dmitrijs2005/lembretes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lembretes/internal/validation"
)

// CreateReminderInput is the create request as received on the wire.
// ScheduledAt is kept as text and parsed with validation.ParseDate.
type CreateReminderInput struct {
	OwnerID     int64  `json:"usuario_id" validate:"required,gt=0"`
	Title       string `json:"titulo" validate:"required,max=255"`
	Description string `json:"descricao" validate:"max=2000"`
	ScheduledAt string `json:"data_lembrete" validate:"required,datetime_any"`
	Status      string `json:"status" validate:"max=50"`
	Type        string `json:"tipo" validate:"max=50"`
}

// ReminderObserver receives one call per finished reminder operation.
// op is "create" or "delete"; outcome is "ok", "noop" or an error kind.
type ReminderObserver interface {
	ReminderOp(op, outcome string)
}

type nopObserver struct{}

func (nopObserver) ReminderOp(string, string) {}

type ReminderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	observer    ReminderObserver
}

func NewReminderService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger, obs ReminderObserver) *ReminderService {
	if obs == nil {
		obs = nopObserver{}
	}
	return &ReminderService{db: db, repomanager: m, log: log, observer: obs}
}

// Create validates in and inserts a reminder, returning the generated id.
// Shape problems come back as validation.Errors before any query runs.
func (s *ReminderService) Create(ctx context.Context, in CreateReminderInput) (int64, error) {
	if errs := validation.Struct(in); errs != nil {
		s.observer.ReminderOp("create", string(common.KindValidation))
		return 0, errs
	}
	at, err := validation.ParseDate(in.ScheduledAt)
	if err != nil {
		// unreachable after Struct, kept for callers that bypass tags
		s.observer.ReminderOp("create", string(common.KindValidation))
		return 0, validation.Errors{"data_lembrete": validation.MsgInvalidDate}
	}

	rem := &models.Reminder{
		OwnerID:     in.OwnerID,
		Title:       in.Title,
		Description: in.Description,
		ScheduledAt: at,
		Status:      in.Status,
		Type:        in.Type,
	}

	repo := s.repomanager.Reminders(s.db)
	created, err := repo.Create(ctx, rem)
	if err != nil {
		kind := common.KindOf(err)
		s.log.Error(ctx, "insert reminder", "error", err, "kind", kind, "usuario_id", in.OwnerID)
		s.observer.ReminderOp("create", string(kind))
		return 0, fmt.Errorf("error creating reminder: %w", err)
	}

	s.log.Info(ctx, "reminder created", "id", created.ID, "usuario_id", created.OwnerID)
	s.observer.ReminderOp("create", "ok")
	return created.ID, nil
}

// Delete removes the reminder with the given id. A missing reminder is not an
// error: the call succeeds with zero rows affected and a warning is logged.
func (s *ReminderService) Delete(ctx context.Context, id int64) (int64, error) {
	if id <= 0 {
		s.observer.ReminderOp("delete", string(common.KindValidation))
		return 0, validation.Errors{"id": validation.MsgPositive}
	}

	repo := s.repomanager.Reminders(s.db)
	n, err := repo.Delete(ctx, id)
	if err != nil {
		kind := common.KindOf(err)
		s.log.Error(ctx, "delete reminder", "error", err, "kind", kind, "id", id)
		s.observer.ReminderOp("delete", string(kind))
		return 0, fmt.Errorf("error deleting reminder: %w", err)
	}

	if n == 0 {
		s.log.Warn(ctx, "delete matched no reminder", "id", id, "rows_affected", n)
		s.observer.ReminderOp("delete", "noop")
		return 0, nil
	}
	s.observer.ReminderOp("delete", "ok")
	return n, nil
}

// ListByOwner returns the owner's reminders ordered by date.
func (s *ReminderService) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Reminder, error) {
	if ownerID <= 0 {
		return nil, validation.Errors{"id": validation.MsgPositive}
	}
	repo := s.repomanager.Reminders(s.db)
	items, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.log.Error(ctx, "list reminders", "error", err, "kind", common.KindOf(err), "usuario_id", ownerID)
		return nil, fmt.Errorf("error listing reminders: %w", err)
	}
	return items, nil
}
