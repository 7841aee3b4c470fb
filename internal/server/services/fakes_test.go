package services

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/lembretes/internal/common"
	"github.com/dmitrijs2005/lembretes/internal/dbx"
	"github.com/dmitrijs2005/lembretes/internal/server/models"
	"github.com/dmitrijs2005/lembretes/internal/server/repositories/reminders"
	"github.com/dmitrijs2005/lembretes/internal/server/repositories/users"
)

type fakeUsersRepo struct {
	byEmail   map[string]*models.User
	createErr error
	getErr    error
	nextID    int64
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byEmail: map[string]*models.User{}, nextID: 1}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = f.nextID
	f.nextID++
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeRemindersRepo struct {
	createID  int64
	createErr error
	created   []*models.Reminder

	deleteRows int64
	deleteErr  error
	deleted    []int64

	listOut []*models.Reminder
	listErr error
}

func (f *fakeRemindersRepo) Create(_ context.Context, r *models.Reminder) (*models.Reminder, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	r.ID = f.createID
	f.created = append(f.created, r)
	return r, nil
}

func (f *fakeRemindersRepo) Delete(_ context.Context, id int64) (int64, error) {
	f.deleted = append(f.deleted, id)
	return f.deleteRows, f.deleteErr
}

func (f *fakeRemindersRepo) ListByOwner(context.Context, int64) ([]*models.Reminder, error) {
	return f.listOut, f.listErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRemindersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository             { return m.u }
func (m *fakeRepoManager) Reminders(dbx.DBTX) reminders.Repository     { return m.r }

// plainHasher stores passwords as "plain:<pw>".
type plainHasher struct {
	hashErr   error
	verifyErr error
	verified  []string
}

func (h *plainHasher) Hash(pw string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "plain:" + pw, nil
}

func (h *plainHasher) Verify(pw, encoded string) (bool, error) {
	h.verified = append(h.verified, encoded)
	if h.verifyErr != nil {
		return false, h.verifyErr
	}
	return encoded == "plain:"+pw, nil
}

type recordingObserver struct {
	mu  sync.Mutex
	ops []string
}

func (o *recordingObserver) ReminderOp(op, outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, op+":"+outcome)
}
