// Package server wires the reminders API: configuration, storage, services,
// the HTTP API and the gRPC health endpoint, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/lembretes/internal/cryptox"
	"github.com/dmitrijs2005/lembretes/internal/logging"
	"github.com/dmitrijs2005/lembretes/internal/server/config"
	gs "github.com/dmitrijs2005/lembretes/internal/server/grpc"
	"github.com/dmitrijs2005/lembretes/internal/server/httpapi"
	"github.com/dmitrijs2005/lembretes/internal/server/metrics"
	"github.com/dmitrijs2005/lembretes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lembretes/internal/server/services"
	"github.com/dmitrijs2005/lembretes/internal/server/telemetry"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	flush   func() error
	db      *sql.DB
	manager repomanager.RepositoryManager
	handler *httpapi.Server
}

// openDB is a seam for tests; the pgx driver is registered by repomanager.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

func NewApp(c *config.Config) (*App, error) {

	zl, err := logging.NewZap(c.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	met := metrics.New()

	us := services.NewUserService(db, m, cryptox.NewArgon2(), zl.With("module", "users"))
	rs := services.NewReminderService(db, m, zl.With("module", "reminders"), met)

	router := httpapi.NewRouter(httpapi.Deps{
		Users:          us,
		Reminders:      rs,
		DB:             db,
		Logins:         met,
		Requests:       met,
		Metrics:        met.Handler(),
		Logger:         zl,
		AllowedOrigins: c.AllowedOrigins,
	})

	return &App{
		config:  c,
		logger:  zl,
		flush:   zl.Sync,
		db:      db,
		manager: m,
		handler: httpapi.NewServer(c.HTTPAddr, router, zl, c.ShutdownTimeout),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	if err := app.handler.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server", "error", err)
		cancelFunc()
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (app *App) startHealthServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := gs.NewHealthServer(app.config.HealthAddrGRPC, app.logger, app.db, 0)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, "grpc health server", "error", err)
		cancelFunc()
		return fmt.Errorf("grpc health server: %w", err)
	}
	return nil
}

// Run blocks until a signal arrives, ctx is cancelled or a server fails.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	shutdownTracing := telemetry.Setup(ctx, app.logger, "lembretes", app.config.OTLPEndpoint, app.config.OTLPInsecure)

	defer func() {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.config.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			app.logger.Warn(sctx, "tracing shutdown", "error", err)
		}
		if err := app.db.Close(); err != nil {
			app.logger.Warn(sctx, "db close", "error", err)
		}
		app.logger.Info(sctx, "App stopped")
		_ = app.flush()
	}()

	if app.config.RunMigrations {
		if err := app.manager.RunMigrations(ctx, app.db); err != nil {
			app.logger.Error(ctx, "migrations failed", "error", err)
			return fmt.Errorf("migrations: %w", err)
		}
	}

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	record := func(err error) {
		if err != nil {
			errOnce.Do(func() { firstErr = err })
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		record(app.startHTTPServer(ctx, cancelFunc))
	}()

	if app.config.HealthAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			record(app.startHealthServer(ctx, cancelFunc))
		}()
	}

	wg.Wait()
	return firstErr
}
