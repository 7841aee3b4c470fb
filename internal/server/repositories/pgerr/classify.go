// Package pgerr translates PostgreSQL driver errors into the sentinel errors
// of package common, so services can report an error kind without knowing
// which driver produced it.
package pgerr

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/lembretes/internal/common"
)

// SQLSTATE codes and classes we distinguish.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
	classDataException      = "22"
	classConnection         = "08"
	classResources          = "53"
	classOperatorAction     = "57"
)

// Classify wraps err with the matching common sentinel while keeping the
// original error in the chain. Unrecognised errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if s := sentinel(err); s != nil {
		return fmt.Errorf("%w: %w", s, err)
	}
	return err
}

func sentinel(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation:
			return common.ErrorAlreadyExists
		case pgErr.Code == codeForeignKeyViolation:
			return common.ErrorConflict
		case pgErr.Code == codeNotNullViolation,
			pgErr.Code == codeCheckViolation,
			strings.HasPrefix(pgErr.Code, classDataException):
			return common.ErrorValidation
		case strings.HasPrefix(pgErr.Code, classConnection),
			strings.HasPrefix(pgErr.Code, classResources),
			strings.HasPrefix(pgErr.Code, classOperatorAction):
			return common.ErrorTransport
		}
		return nil
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connErr),
		errors.As(err, &netErr),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, context.DeadlineExceeded):
		return common.ErrorTransport
	}
	return nil
}
