package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/lembretes/internal/common"
	"github.com/dmitrijs2005/lembretes/internal/logging"
	"github.com/dmitrijs2005/lembretes/internal/server/models"
	"github.com/dmitrijs2005/lembretes/internal/server/services"
	"github.com/dmitrijs2005/lembretes/internal/validation"
)

type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

type ReminderService interface {
	Create(ctx context.Context, in services.CreateReminderInput) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Reminder, error)
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// LoginRecorder counts login attempts by result.
type LoginRecorder interface {
	LoginAttempt(result string)
}

type handlers struct {
	users     UserService
	reminders ReminderService
	db        Pinger
	logins    LoginRecorder
	logger    logging.Logger
}

type userJSON struct {
	ID    int64  `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
}

type reminderJSON struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"usuario_id"`
	Title       string    `json:"titulo"`
	Description string    `json:"descricao"`
	ScheduledAt time.Time `json:"data_lembrete"`
	Status      string    `json:"status"`
	Type        string    `json:"tipo"`
	CreatedAt   time.Time `json:"criado_em"`
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"senha"`
	}
	if !decode(w, r, &req) {
		h.logins.LoginAttempt("invalid")
		return
	}

	u, err := h.users.Login(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		h.logins.LoginAttempt("success")
		writeJSON(w, http.StatusOK, map[string]any{
			"message": MsgLoginOK,
			"user":    userJSON{ID: u.ID, Name: u.Name, Email: u.Email},
		})
	case errors.Is(err, common.ErrorUnauthorized):
		h.logins.LoginAttempt("rejected")
		writeJSON(w, http.StatusUnauthorized, ErrorBody{Message: MsgLoginRejected})
	case errors.Is(err, common.ErrorValidation):
		h.logins.LoginAttempt("invalid")
		writeFailure(w, err, MsgLoginFail)
	default:
		h.logins.LoginAttempt("error")
		writeFailure(w, err, MsgLoginFail)
	}
}

func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"nome"`
		Email    string `json:"email"`
		Password string `json:"senha"`
	}
	if !decode(w, r, &req) {
		return
	}

	u, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeJSON(w, http.StatusConflict, ErrorBody{Message: MsgUserDuplicate, Code: common.KindConflict})
			return
		}
		writeFailure(w, err, MsgUserCreateFail)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": MsgUserCreated, "id": u.ID})
}

func (h *handlers) createReminder(w http.ResponseWriter, r *http.Request) {
	var in services.CreateReminderInput
	if !decode(w, r, &in) {
		return
	}

	id, err := h.reminders.Create(r.Context(), in)
	if err != nil {
		writeFailure(w, err, MsgReminderCreateFail)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": MsgReminderCreated, "id": id})
}

func (h *handlers) deleteReminder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.reminders.Delete(r.Context(), id); err != nil {
		writeFailure(w, err, MsgReminderDeleteFail)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": MsgReminderDeleted})
}

func (h *handlers) listReminders(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	items, err := h.reminders.ListByOwner(r.Context(), ownerID)
	if err != nil {
		writeFailure(w, err, MsgReminderListFail)
		return
	}

	out := make([]reminderJSON, 0, len(items))
	for _, it := range items {
		out = append(out, reminderJSON{
			ID:          it.ID,
			OwnerID:     it.OwnerID,
			Title:       it.Title,
			Description: it.Description,
			ScheduledAt: it.ScheduledAt,
			Status:      it.Status,
			Type:        it.Type,
			CreatedAt:   it.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"lembretes": out})
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Warn(r.Context(), "health: database ping failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeValidation(w, validation.Errors{name: validation.MsgPositive})
		return 0, false
	}
	return id, true
}
