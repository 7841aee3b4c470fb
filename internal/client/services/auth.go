// Package services contains the application services of the lembretes CLI.
// This file defines the authentication service: login with local form
// validation, registration, logout and the liveness probe.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lembretes/internal/client/client"
	"github.com/dmitrijs2005/lembretes/internal/client/session"
	"github.com/dmitrijs2005/lembretes/internal/common"
	"github.com/dmitrijs2005/lembretes/internal/logging"
	"github.com/dmitrijs2005/lembretes/internal/validation"
)

// Navigator moves the UI to a named route.
type Navigator interface {
	Navigate(ctx context.Context, route string)
}

type LoginResult struct {
	User  session.User
	Route string
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: validate the form locally, then make exactly one call to the
//     server. On success the user is stored and the UI navigates to the
//     landing page. Errors are validation.Errors (no call was made),
//     *client.RejectedError or an error wrapping client.ErrUnavailable.
//   - Register: same local validation, then create the account.
//   - Logout: empty the session store.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, name, email, password string) (int64, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client  client.Client
	store   *session.Store
	nav     Navigator
	logger  logging.Logger
	timeout time.Duration
}

// NewAuthService builds an AuthService. timeout bounds each server call;
// zero means the caller's context alone decides.
func NewAuthService(c client.Client, store *session.Store, nav Navigator, l logging.Logger, timeout time.Duration) AuthService {
	return &authService{client: c, store: store, nav: nav, logger: l.With("module", "auth"), timeout: timeout}
}

func (a *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if errs := validation.Credentials(email, password); errs != nil {
		return nil, errs
	}

	ctx, cancel := withTimeout(ctx, a.timeout)
	defer cancel()

	user, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	// an answer without "user" is kept as JSON null
	if len(user) == 0 {
		user = session.User("null")
	}

	if err := a.store.SetUser(ctx, user); err != nil {
		a.logger.Warn(ctx, "session not persisted", "error", err)
	}
	a.nav.Navigate(ctx, common.LandingRoute)

	return &LoginResult{User: user, Route: common.LandingRoute}, nil
}

func (a *authService) Register(ctx context.Context, name, email, password string) (int64, error) {
	if errs := validation.Registration(name, email, password); errs != nil {
		return 0, errs
	}

	ctx, cancel := withTimeout(ctx, a.timeout)
	defer cancel()

	id, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		return 0, fmt.Errorf("register error: %w", err)
	}
	return id, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// MsgUnavailable is shown when the server could not be reached or answered
// something unreadable.
const MsgUnavailable = "Servidor indisponível. Tente novamente mais tarde."

// UserMessage returns the text to show for err. Rejections carry the
// server's own message; transport failures and unknown errors show fallback.
func UserMessage(err error, fallback string) string {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return verrs.Error()
	}
	var rej *client.RejectedError
	if errors.As(err, &rej) && rej.Message != "" {
		return rej.Message
	}
	if errors.Is(err, ErrNotLoggedIn) {
		return MsgNotLoggedIn
	}
	return fallback
}
