// Package services contains server-side business logic. UserService handles
// registration and credential checks; ReminderService owns the reminder
// lifecycle. Both reach storage only through a repomanager.RepositoryManager.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/lembretes/internal/common"
	"github.com/dmitrijs2005/lembretes/internal/logging"
	"github.com/dmitrijs2005/lembretes/internal/server/models"
	"github.com/dmitrijs2005/lembretes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lembretes/internal/validation"
)

// PasswordHasher hashes and verifies passwords. cryptox.Argon2 satisfies it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// UserService provides registration and login.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	log         logging.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, h PasswordHasher, log logging.Logger) *UserService {
	return &UserService{db: db, repomanager: m, hasher: h, log: log}
}

// Register validates the form, hashes the password and stores the user.
// A taken e-mail yields an error matching common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if errs := validation.Registration(name, email, password); errs != nil {
		return nil, errs
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.log.Error(ctx, "hash password", "error", err)
		return nil, common.ErrorInternal
	}

	user := &models.User{Name: strings.TrimSpace(name), Email: email, PasswordHash: hash}
	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if !errors.Is(err, common.ErrorAlreadyExists) {
			s.log.Error(ctx, "create user", "error", err, "kind", common.KindOf(err))
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login checks email and password against the stored hash. Unknown e-mail and
// wrong password both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if errs := validation.Credentials(email, password); errs != nil {
		return nil, errs
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// spend the same work as a real check
			_, _ = s.hasher.Verify(password, s.dummy())
			return nil, common.ErrorUnauthorized
		}
		s.log.Error(ctx, "lookup user", "error", err, "kind", common.KindOf(err))
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.log.Error(ctx, "verify password", "error", err, "user_id", user.ID)
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	return user, nil
}

func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash(string(common.GenerateRandByteArray(16)))
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
