// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Can't Decide API server.

Can't Decide is an anonymous group decision service: a group gathers in
a session, everyone proposes options, marks which of the others' options
they could live with, and the server picks one at random in a way that
keeps unpopular-but-owned options in the running.

# Starting the Server

The server runs out of the box on an embedded SQLite database:

	go run .

Or against Postgres:

	go run . -t postgres -d "postgres://..."

# Configuration

Optional settings (flags fall back to environment variables):

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - DATABASE_URL (-d): Connection string or SQLite file path (default: sessions.db)
  - SESSION_TTL (-session-ttl): Idle lifetime of a session (default: 168h)
  - SWEEP_INTERVAL (-sweep-interval): Expiry sweep cadence (default: 5m)

A .env file in the working directory is loaded at startup.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - session: Phase state machine, acceptance grouping, random selection, registry
  - handlers: HTTP request handlers (sessions, items, selection, events)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - hub: In-process fan-out of session snapshots for SSE
  - store: Write-through persistence (SQLite or Postgres)
  - auth: Session codes and member tokens
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
