// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists sessions across restarts.

One table, one row per session: id, phase, timestamps as unix
milliseconds, and the full session payload as JSON. The registry writes
through on every commit and reloads at boot.

Two backends share the same SQL: modernc.org/sqlite (pure Go, the
default) and Postgres via lib/pq. Both accept $1-style placeholders and
ON CONFLICT upserts, so there is no per-driver dialect switch.

	st, err := store.Open("sqlite", "sessions.db")
	st, err := store.Open("postgres", "postgres://...")
*/
package store
