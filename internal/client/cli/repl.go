package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/lembretes/internal/client/services"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Home(ctx context.Context) error
	Add(ctx context.Context) error
	Delete(ctx context.Context, arg string) error
	List(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the lembretes CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit".
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - home           — landing page with the reminder list
//	  - (l)ist         — list reminders
//	  - add            — create a reminder
//	  - delete [id]    — delete a reminder
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Errors returned by command handlers are ignored here; handlers report
// them to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("lembretes %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Comandos: home, (l)ist, add, delete <id>, logout, exit")
			} else {
				printlnFn("Comandos: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout", "home", "l", "list", "add", "delete":
			if !a.isLoggedIn() {
				printlnFn(services.MsgNotLoggedIn)
				continue
			}
			switch cmd {
			case "logout":
				_ = a.Logout(ctx)
			case "home":
				_ = a.Home(ctx)
			case "l", "list":
				_ = a.List(ctx)
			case "add":
				_ = a.Add(ctx)
			case "delete":
				arg := ""
				if len(args) > 0 {
					arg = args[0]
				}
				_ = a.Delete(ctx, arg)
			}

		case "exit", "quit":
			printlnFn("Até logo!")
			return

		default:
			printlnFn("Comando desconhecido:", cmd)
		}
	}
}
