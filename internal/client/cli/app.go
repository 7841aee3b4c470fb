package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/lembretes/internal/client/client"
	"github.com/dmitrijs2005/lembretes/internal/client/config"
	"github.com/dmitrijs2005/lembretes/internal/client/services"
	"github.com/dmitrijs2005/lembretes/internal/client/session"
	"github.com/dmitrijs2005/lembretes/internal/common"
	"github.com/dmitrijs2005/lembretes/internal/filex"
	"github.com/dmitrijs2005/lembretes/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// LoginRoute is the page shown while nobody is signed in.
const LoginRoute = "/login"

type App struct {
	config    *config.Config
	auth      services.AuthService
	reminders services.ReminderService
	session   *session.Store
	logger    logging.Logger
	db        *sql.DB
	reader    *bufio.Reader
	out       io.Writer

	mu   sync.RWMutex
	mode Mode
	page string
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	logger := logging.NewTextSlog(os.Stderr, slog.LevelInfo)

	var (
		db *sql.DB
		p  session.Persister
	)
	if c.PersistSession {
		path, err := filex.EnsureParentDir(c.DBFile)
		if err != nil {
			return nil, err
		}
		db, err = client.InitDatabase(ctx, path)
		if err != nil {
			logger.Error(ctx, "error initializing database", "file", c.DBFile, "error", err)
			return nil, err
		}
		p = session.NewMetadataPersister(db)
	}

	store := session.NewStore(p)
	api := client.NewHTTPClient(c.ServerURL, logger)

	a := &App{
		config:  c,
		session: store,
		logger:  logger,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		page:    LoginRoute,
	}
	a.auth = services.NewAuthService(api, store, a, logger, c.RequestTimeout)
	a.reminders = services.NewReminderService(api, store, c.RequestTimeout)
	store.Subscribe(a.onSessionChange)

	return a, nil
}

// Navigate implements services.Navigator.
func (a *App) Navigate(_ context.Context, route string) {
	a.mu.Lock()
	a.page = route
	a.mu.Unlock()
	printlnFn("==", route, "==")
}

// onSessionChange sends the user back to the login page when the session
// is emptied.
func (a *App) onSessionChange(_ session.User, ok bool) {
	if ok {
		return
	}
	a.mu.Lock()
	a.page = LoginRoute
	a.mu.Unlock()
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "switched mode", "mode", string(mode))
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) Page() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.page
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.User()
	return ok
}

func (a *App) getStatus() string {
	s := a.Page()
	if m := a.Mode(); m != "" {
		s += " " + string(m)
	}
	return "(" + s + ")"
}

// Run restores a saved session (if enabled), starts the connectivity
// watcher and blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.close(ctx)

	if ok, err := a.session.Restore(ctx); err != nil {
		a.logger.Warn(ctx, "session not restored", "error", err)
	} else if ok {
		a.Navigate(ctx, common.LandingRoute)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	printlnFn("Lembretes CLI (digite 'help' para ver os comandos)")
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) close(ctx context.Context) {
	if err := a.auth.Close(ctx); err != nil {
		a.logger.Warn(ctx, "client close", "error", err)
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// mode shown in the prompt. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.auth.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
