package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/lembretes/internal/dbx"
	"github.com/dmitrijs2005/lembretes/internal/server/repositories/reminders"
	"github.com/dmitrijs2005/lembretes/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Reminders(db dbx.DBTX) reminders.Repository
}
