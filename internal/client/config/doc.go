// Package config loads runtime configuration for the lembretes CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file (see parseFile) selected via -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the reminders API
//	-i int      online status check interval (seconds)
//	-p          keep the logged-in user in the local database between runs
//	-f string   local SQLite database file
//	-r int      per-request timeout (seconds), 0 = none
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:3006",
//	  "online_check_interval": "3s",
//	  "persist_session": true,
//	  "db_file": "lembretes.db",
//	  "request_timeout": "0s"
//	}
package config
