// Package httpapi exposes the JSON HTTP API: login and registration, reminder
// create/delete/list, health and metrics.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrijs2005/lembretes/internal/common"
	"github.com/dmitrijs2005/lembretes/internal/logging"
)

type Deps struct {
	Users          UserService
	Reminders      ReminderService
	DB             Pinger
	Logins         LoginRecorder
	Requests       RequestObserver
	Metrics        http.Handler
	Logger         logging.Logger
	AllowedOrigins []string
}

type nopRecorder struct{}

func (nopRecorder) LoginAttempt(string) {}

// NewRouter wires routes and middleware.
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = logging.Nop{}
	}
	if d.Logins == nil {
		d.Logins = nopRecorder{}
	}

	h := &handlers{
		users:     d.Users,
		reminders: d.Reminders,
		db:        d.DB,
		logins:    d.Logins,
		logger:    d.Logger,
	}

	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(accessLog(d.Logger))
	r.Use(chimiddleware.Recoverer)
	if d.Requests != nil {
		r.Use(instrument(d.Requests))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", common.RequestIDHeaderName},
		ExposedHeaders: []string{common.RequestIDHeaderName},
		MaxAge:         300,
	}))

	r.Get("/health", h.health)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	r.Post("/login", h.login)
	r.Post("/usuarios", h.register)
	r.Get("/usuarios/{id}/lembretes", h.listReminders)

	r.Route("/lembretes", func(r chi.Router) {
		r.Post("/", h.createReminder)
		r.Delete("/{id}", h.deleteReminder)
	})

	return r
}
