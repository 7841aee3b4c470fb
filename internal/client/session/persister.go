package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/lembretes/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/lembretes/internal/common"
	"github.com/dmitrijs2005/lembretes/internal/dbx"
)

const (
	keyUser    = "session_user"
	keySavedAt = "session_saved_at"
)

// MetadataPersister keeps the session in the local metadata table.
type MetadataPersister struct {
	db   *sql.DB
	repo func(dbx.DBTX) metadata.Repository
	now  func() time.Time
}

func NewMetadataPersister(db *sql.DB) *MetadataPersister {
	return &MetadataPersister{
		db:   db,
		repo: func(tx dbx.DBTX) metadata.Repository { return metadata.NewSQLiteRepository(tx) },
		now:  time.Now,
	}
}

func (p *MetadataPersister) Load(ctx context.Context) (User, bool, error) {
	v, err := p.repo(p.db).Get(ctx, keyUser)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return User(v), true, nil
}

func (p *MetadataPersister) Save(ctx context.Context, u User) error {
	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := p.repo(tx)
		if err := r.Set(ctx, keyUser, u); err != nil {
			return err
		}
		return r.Set(ctx, keySavedAt, []byte(p.now().UTC().Format(time.RFC3339)))
	})
}

func (p *MetadataPersister) Clear(ctx context.Context) error {
	return p.repo(p.db).Delete(ctx, keyUser, keySavedAt)
}
