package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/lembretes/internal/client/client"
	"github.com/dmitrijs2005/lembretes/internal/common"
)

const dateHint = "Data (AAAA-MM-DD ou AAAA-MM-DDTHH:MM)"

// Home shows the landing page: the user's reminders.
func (a *App) Home(ctx context.Context) error {
	a.Navigate(ctx, common.LandingRoute)
	return a.List(ctx)
}

func (a *App) List(ctx context.Context) error {
	items, err := a.reminders.List(ctx)
	if err != nil {
		report(err, client.MsgListFailed)
		return err
	}

	if len(items) == 0 {
		printlnFn("Nenhum lembrete cadastrado")
		return nil
	}
	for _, r := range items {
		printlnFn(formatReminder(r))
	}
	return nil
}

func formatReminder(r client.Reminder) string {
	s := fmt.Sprintf("#%d  %s  %s", r.ID, r.ScheduledAt.Local().Format("02/01/2006 15:04"), r.Title)
	var tags []string
	if r.Type != "" {
		tags = append(tags, r.Type)
	}
	if r.Status != "" {
		tags = append(tags, r.Status)
	}
	if len(tags) > 0 {
		s += " [" + strings.Join(tags, ", ") + "]"
	}
	return s
}

// Add prompts for the reminder fields and creates it for the signed-in user.
func (a *App) Add(ctx context.Context) error {
	var in client.ReminderInput
	var err error

	if in.Title, err = getSimpleText(a.reader, "Título", a.out); err != nil {
		return err
	}
	if in.Description, err = getMultiline(a.reader, "Descrição", a.out); err != nil {
		return err
	}
	if in.ScheduledAt, err = getSimpleText(a.reader, dateHint, a.out); err != nil {
		return err
	}
	if in.Type, err = getSimpleText(a.reader, "Tipo (opcional)", a.out); err != nil {
		return err
	}
	if in.Status, err = getSimpleText(a.reader, "Status (opcional)", a.out); err != nil {
		return err
	}

	id, err := a.reminders.Create(ctx, in)
	if err != nil {
		report(err, client.MsgCreateFailed)
		return err
	}

	printlnFn(fmt.Sprintf("Lembrete cadastrado com sucesso (#%d)", id))
	return nil
}

// Delete removes the reminder whose id is arg, prompting when arg is empty.
func (a *App) Delete(ctx context.Context, arg string) error {
	if arg == "" {
		var err error
		if arg, err = getSimpleText(a.reader, "ID do lembrete", a.out); err != nil {
			return err
		}
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || id <= 0 {
		printlnFn("ID inválido:", arg)
		return fmt.Errorf("invalid id %q", arg)
	}

	if err := a.reminders.Delete(ctx, id); err != nil {
		report(err, client.MsgDeleteFailed)
		return err
	}

	printlnFn("Lembrete deletado com sucesso")
	return nil
}
