package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/lembretes/internal/client/client"
	"github.com/dmitrijs2005/lembretes/internal/client/config"
	"github.com/dmitrijs2005/lembretes/internal/client/services"
	"github.com/dmitrijs2005/lembretes/internal/client/session"
	"github.com/dmitrijs2005/lembretes/internal/logging"
)

type fakeAuth struct {
	store *session.Store
	nav   services.Navigator

	loginUser  session.User
	loginErr   error
	loginEmail string
	loginPass  string

	regName string
	regErr  error

	logoutErr error
	pingErr   error
	pings     int
	closed    bool
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	_ = f.store.SetUser(ctx, f.loginUser)
	f.nav.Navigate(ctx, "/HomePaciente")
	return &services.LoginResult{User: f.loginUser, Route: "/HomePaciente"}, nil
}

func (f *fakeAuth) Register(ctx context.Context, name, email, password string) (int64, error) {
	f.regName = name
	return 1, f.regErr
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	if f.logoutErr != nil {
		return f.logoutErr
	}
	return f.store.Clear(ctx)
}

func (f *fakeAuth) Ping(ctx context.Context) error {
	f.pings++
	return f.pingErr
}

func (f *fakeAuth) Close(ctx context.Context) error {
	f.closed = true
	return nil
}

type fakeReminders struct {
	created   client.ReminderInput
	createID  int64
	createErr error
	deleted   int64
	deleteErr error
	items     []client.Reminder
	listErr   error
}

func (f *fakeReminders) Create(ctx context.Context, in client.ReminderInput) (int64, error) {
	f.created = in
	return f.createID, f.createErr
}

func (f *fakeReminders) Delete(ctx context.Context, id int64) error {
	f.deleted = id
	return f.deleteErr
}

func (f *fakeReminders) List(ctx context.Context) ([]client.Reminder, error) {
	return f.items, f.listErr
}

// newTestApp builds an App over fakes; the session store is real.
func newTestApp(t *testing.T, input string) (*App, *fakeAuth, *fakeReminders) {
	t.Helper()
	store := session.NewStore(nil)
	a := &App{
		config:  &config.Config{},
		session: store,
		logger:  logging.Nop{},
		reader:  bufio.NewReader(strings.NewReader(input)),
		out:     io.Discard,
		page:    LoginRoute,
	}
	fa := &fakeAuth{store: store, nav: a}
	fr := &fakeReminders{}
	a.auth, a.reminders = fa, fr
	store.Subscribe(a.onSessionChange)
	return a, fa, fr
}

// stubInputs feeds answers to getSimpleText/getMultiline in order and
// returns password for getPassword.
func stubInputs(t *testing.T, password string, answers ...string) {
	t.Helper()
	origST, origML, origGP := getSimpleText, getMultiline, getPassword
	next := func() string {
		require.NotEmpty(t, answers, "unexpected prompt")
		s := answers[0]
		answers = answers[1:]
		return s
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText, getMultiline, getPassword = origST, origML, origGP
	})
}
