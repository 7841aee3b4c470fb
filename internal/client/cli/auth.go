package cli

import (
	"context"
	"errors"
	"sort"

	"github.com/dmitrijs2005/lembretes/internal/client/client"
	"github.com/dmitrijs2005/lembretes/internal/client/services"
	"github.com/dmitrijs2005/lembretes/internal/common"
	"github.com/dmitrijs2005/lembretes/internal/validation"
)

// getSimpleText, getMultiline and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getMultiline = GetMultiline
var getPassword = GetPassword

// Register prompts for name, email and password and creates an account.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Nome", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "E-mail", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.auth.Register(ctx, name, email, string(password)); err != nil {
		report(err, client.MsgRegisterFailed)
		return err
	}

	printlnFn("Usuário cadastrado com sucesso. Faça login para continuar.")
	return nil
}

// Login prompts for credentials and makes a single login attempt.
// On success the service stores the user and navigates to the landing page.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "E-mail", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.auth.Login(ctx, email, string(password)); err != nil {
		report(err, client.MsgLoginFailed)
		return err
	}

	printlnFn("Login realizado com sucesso")
	return nil
}

// Logout empties the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.logger.Warn(ctx, "logout", "error", err)
		return err
	}
	printlnFn("Sessão encerrada")
	return nil
}

// report prints err for the user: a message, then one line per invalid
// field when there are any.
func report(err error, fallback string) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		printFields(verrs)
		return
	}
	printlnFn(services.UserMessage(err, fallback))

	var rej *client.RejectedError
	if errors.As(err, &rej) {
		printFields(rej.Fields)
	}
}

func printFields(fields map[string]string) {
	names := make([]string, 0, len(fields))
	for f := range fields {
		names = append(names, f)
	}
	sort.Strings(names)
	for _, f := range names {
		printlnFn(f+":", fields[f])
	}
}
