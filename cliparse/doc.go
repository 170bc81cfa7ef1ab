// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p              Server port
	-d              Database URL or SQLite file path
	-t              Database type (sqlite or postgres)
	-session-ttl    Idle lifetime of a session
	-sweep-interval Expiry sweep cadence

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	SESSION_TTL    → -session-ttl
	SWEEP_INTERVAL → -sweep-interval

CLI flags take precedence over environment variables. Everything has a
default except the database URL when postgres is selected.
*/
package cliparse
