package services

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/lembretes/internal/client/client"
)

// fakeClient implements client.Client and records what it was asked.
type fakeClient struct {
	LoginRet json.RawMessage
	LoginErr error

	RegisterRet int64
	RegisterErr error

	CreateRet int64
	CreateErr error
	DeleteErr error
	ListRet   []client.Reminder
	ListErr   error
	PingErr   error
	CloseErr  error

	LoginCalls    int
	LastEmail     string
	LastPassword  string
	LastName      string
	LastInput     client.ReminderInput
	LastDeletedID int64
	LastOwnerID   int64
	HadDeadline   bool
}

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) Login(ctx context.Context, email, password string) (json.RawMessage, error) {
	f.LoginCalls++
	f.LastEmail, f.LastPassword = email, password
	_, f.HadDeadline = ctx.Deadline()
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, name, email, password string) (int64, error) {
	f.LastName, f.LastEmail, f.LastPassword = name, email, password
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) CreateReminder(ctx context.Context, in client.ReminderInput) (int64, error) {
	f.LastInput = in
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) DeleteReminder(ctx context.Context, id int64) error {
	f.LastDeletedID = id
	return f.DeleteErr
}

func (f *fakeClient) ListReminders(ctx context.Context, ownerID int64) ([]client.Reminder, error) {
	f.LastOwnerID = ownerID
	return f.ListRet, f.ListErr
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

type recordingNavigator struct {
	routes []string
}

func (n *recordingNavigator) Navigate(_ context.Context, route string) {
	n.routes = append(n.routes, route)
}
