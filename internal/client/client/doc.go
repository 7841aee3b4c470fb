// Package client contains client-side building blocks for the lembretes CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the reminders backend: Login, Register, reminder create/delete/list
//     and Ping.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient). Each call is
//     a single attempt; nothing is retried.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// A server that answered with a non-2xx status yields *RejectedError carrying
// the server's message. A server that could not be reached, or answered
// with something that is not the expected JSON, yields an error matching
// ErrUnavailable.
package client
