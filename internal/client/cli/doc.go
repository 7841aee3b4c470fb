// Package cli provides the interactive lembretes command-line client.
//
// It wires configuration, the session store, API services and an interactive
// REPL. Typical flow: log in (the form is validated locally before the server
// is contacted), land on the home page, then manage reminders.
//
// Commands:
//   - register / login / logout
//   - home, list: the signed-in user's reminders
//   - add, delete <id>
//
// A background watcher probes the server and switches the prompt between
// online and offline. The REPL is started via App.Run(ctx), which blocks
// until the user exits.
package cli
