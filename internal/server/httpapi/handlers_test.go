package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lembretes/internal/common"
	"github.com/dmitrijs2005/lembretes/internal/server/models"
	"github.com/dmitrijs2005/lembretes/internal/server/services"
	"github.com/dmitrijs2005/lembretes/internal/validation"
)

type fakeUsers struct {
	user *models.User
	err  error

	gotEmail, gotPassword string
}

func (f *fakeUsers) Register(_ context.Context, name, email, password string) (*models.User, error) {
	f.gotEmail, f.gotPassword = email, password
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUsers) Login(_ context.Context, email, password string) (*models.User, error) {
	f.gotEmail, f.gotPassword = email, password
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fakeReminders struct {
	createID  int64
	createErr error
	gotInput  services.CreateReminderInput

	deleteErr error
	deletedID int64

	list    []*models.Reminder
	listErr error
}

func (f *fakeReminders) Create(_ context.Context, in services.CreateReminderInput) (int64, error) {
	f.gotInput = in
	return f.createID, f.createErr
}

func (f *fakeReminders) Delete(_ context.Context, id int64) (int64, error) {
	f.deletedID = id
	return 0, f.deleteErr
}

func (f *fakeReminders) ListByOwner(context.Context, int64) ([]*models.Reminder, error) {
	return f.list, f.listErr
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

type loginCounter struct{ results []string }

func (c *loginCounter) LoginAttempt(r string) { c.results = append(c.results, r) }

type requestCounter struct{ routes []string }

func (c *requestCounter) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	c.routes = append(c.routes, method+" "+route)
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func TestCreateReminder_Success(t *testing.T) {
	rem := &fakeReminders{createID: 42}
	h := NewRouter(Deps{Reminders: rem})

	rec, body := do(t, h, http.MethodPost, "/lembretes",
		`{"usuario_id":1,"titulo":"Consulta","descricao":"","data_lembrete":"2025-03-10T09:00","status":"pendente","tipo":"consulta"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, MsgReminderCreated, body["message"])
	assert.Equal(t, float64(42), body["id"])
	assert.Equal(t, int64(1), rem.gotInput.OwnerID)
	assert.Equal(t, "2025-03-10T09:00", rem.gotInput.ScheduledAt)
}

func TestCreateReminder_GatewayErrorIsGeneric(t *testing.T) {
	cause := errors.New(`pq: relation "lembrete" does not exist`)
	rem := &fakeReminders{createErr: errors.Join(common.ErrorTransport, cause)}
	h := NewRouter(Deps{Reminders: rem})

	rec, body := do(t, h, http.MethodPost, "/lembretes", `{"usuario_id":1,"titulo":"x","data_lembrete":"2025-03-10"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, MsgReminderCreateFail, body["message"])
	assert.Equal(t, "transport", body["code"])
	assert.NotContains(t, rec.Body.String(), "relation")
}

func TestCreateReminder_ValidationIs400(t *testing.T) {
	rem := &fakeReminders{createErr: validation.Errors{"titulo": validation.MsgRequired}}
	h := NewRouter(Deps{Reminders: rem})

	rec, body := do(t, h, http.MethodPost, "/lembretes", `{"usuario_id":1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", body["code"])
	assert.Equal(t, map[string]any{"titulo": validation.MsgRequired}, body["fields"])
}

func TestCreateReminder_MalformedJSON(t *testing.T) {
	h := NewRouter(Deps{Reminders: &fakeReminders{}})

	rec, body := do(t, h, http.MethodPost, "/lembretes", `{"usuario_id":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, MsgMalformedJSON, body["message"])

	rec, body = do(t, h, http.MethodPost, "/lembretes", `{"usuario_id":"um"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["fields"], "usuario_id")
}

func TestDeleteReminder_NonexistentIsSuccess(t *testing.T) {
	rem := &fakeReminders{}
	h := NewRouter(Deps{Reminders: rem})

	rec, body := do(t, h, http.MethodDelete, "/lembretes/9999", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, MsgReminderDeleted, body["message"])
	assert.Equal(t, int64(9999), rem.deletedID)
}

func TestDeleteReminder_BadID(t *testing.T) {
	rem := &fakeReminders{}
	h := NewRouter(Deps{Reminders: rem})

	for _, p := range []string{"/lembretes/abc", "/lembretes/0", "/lembretes/-3"} {
		rec, body := do(t, h, http.MethodDelete, p, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, p)
		assert.Equal(t, "validation", body["code"], p)
	}
	assert.Zero(t, rem.deletedID)
}

func TestDeleteReminder_Failure(t *testing.T) {
	rem := &fakeReminders{deleteErr: errors.New("boom")}
	h := NewRouter(Deps{Reminders: rem})

	rec, body := do(t, h, http.MethodDelete, "/lembretes/1", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, MsgReminderDeleteFail, body["message"])
	assert.Equal(t, "unknown", body["code"])
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestListReminders(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	rem := &fakeReminders{list: []*models.Reminder{{ID: 1, OwnerID: 7, Title: "Consulta", ScheduledAt: at}}}
	h := NewRouter(Deps{Reminders: rem})

	rec, body := do(t, h, http.MethodGet, "/usuarios/7/lembretes", "")
	require.Equal(t, http.StatusOK, rec.Code)

	items := body["lembretes"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, "Consulta", first["titulo"])
	assert.Equal(t, "2025-03-10T09:00:00Z", first["data_lembrete"])
}

func TestListReminders_EmptyIsArray(t *testing.T) {
	h := NewRouter(Deps{Reminders: &fakeReminders{}})
	rec, _ := do(t, h, http.MethodGet, "/usuarios/7/lembretes", "")
	assert.JSONEq(t, `{"lembretes":[]}`, rec.Body.String())
}

func TestLogin_Success(t *testing.T) {
	users := &fakeUsers{user: &models.User{ID: 1, Name: "Ana", Email: "a@b.com", PasswordHash: "secret-hash"}}
	logins := &loginCounter{}
	h := NewRouter(Deps{Users: users, Logins: logins})

	rec, body := do(t, h, http.MethodPost, "/login", `{"email":"a@b.com","senha":"abc12345"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, MsgLoginOK, body["message"])
	assert.Equal(t, map[string]any{"id": float64(1), "nome": "Ana", "email": "a@b.com"}, body["user"])
	assert.NotContains(t, rec.Body.String(), "secret-hash")
	assert.Equal(t, "abc12345", users.gotPassword)
	assert.Equal(t, []string{"success"}, logins.results)
}

func TestLogin_Rejected(t *testing.T) {
	h := NewRouter(Deps{Users: &fakeUsers{err: common.ErrorUnauthorized}})

	rec, body := do(t, h, http.MethodPost, "/login", `{"email":"a@b.com","senha":"abc12345"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, MsgLoginRejected, body["message"])
}

func TestLogin_Invalid(t *testing.T) {
	h := NewRouter(Deps{Users: &fakeUsers{err: validation.Errors{"email": validation.MsgEmailInvalid}}})

	rec, body := do(t, h, http.MethodPost, "/login", `{"email":"ab.com","senha":"abc12345"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"email": validation.MsgEmailInvalid}, body["fields"])
}

func TestRegister(t *testing.T) {
	h := NewRouter(Deps{Users: &fakeUsers{user: &models.User{ID: 5}}})
	rec, body := do(t, h, http.MethodPost, "/usuarios", `{"nome":"Ana","email":"a@b.com","senha":"abc12345"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(5), body["id"])

	h = NewRouter(Deps{Users: &fakeUsers{err: common.ErrorAlreadyExists}})
	rec, body = do(t, h, http.MethodPost, "/usuarios", `{"nome":"Ana","email":"a@b.com","senha":"abc12345"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", body["code"])
}

func TestHealth(t *testing.T) {
	rec, body := do(t, NewRouter(Deps{DB: fakePinger{}}), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])

	rec, _ = do(t, NewRouter(Deps{DB: fakePinger{err: errors.New("down")}}), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMiddleware_RequestIDAndMetrics(t *testing.T) {
	reqs := &requestCounter{}
	h := NewRouter(Deps{Reminders: &fakeReminders{}, Requests: reqs})

	req := httptest.NewRequest(http.MethodDelete, "/lembretes/3", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	assert.Equal(t, []string{"DELETE /lembretes/{id}", "GET /health"}, reqs.routes)
}

func TestMiddleware_RequestIDReplacedWhenMalformed(t *testing.T) {
	h := NewRouter(Deps{DB: fakePinger{}})

	tests := []struct {
		name string
		id   string
		keep bool
	}{
		{"uuid", "6f1c2b7e-0c1d-4a8e-9c55-1b2f3d4e5a6b", true},
		{"max length", strings.Repeat("a", 128), true},
		{"too long", strings.Repeat("a", 129), false},
		{"space", "abc 123", false},
		{"control", "abc\x01", false},
		{"non ascii", "abc\u00e9", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set("X-Request-ID", tt.id)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			got := rec.Header().Get("X-Request-ID")
			if tt.keep {
				assert.Equal(t, tt.id, got)
				return
			}
			assert.NotEqual(t, tt.id, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	h := NewRouter(Deps{Reminders: &fakeReminders{}, AllowedOrigins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(http.MethodOptions, "/lembretes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
