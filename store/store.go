// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Record is one persisted session row. Payload carries the full session
// data model (members, items, acceptances, pick history, restart votes)
// as JSON so nothing is lost across restarts.
type Record struct {
	ID           string
	Phase        string
	CreatedAt    time.Time
	LastActivity time.Time
	Payload      []byte
}

// Store is the persistence surface the session registry writes through.
type Store interface {
	Save(rec Record) error
	Delete(id string) error
	LoadAll() ([]Record, error)
	Close() error
}

// SQL is a Store on any database/sql backend. SQLite (modernc, no cgo)
// is the default; Postgres via lib/pq is selected with -t postgres. All
// statements use $1 placeholders, which both engines accept.
type SQL struct {
	db *sql.DB
}

// Open connects to the configured database and ensures the schema.
// dbType is "sqlite" or "postgres".
func Open(dbType, url string) (*SQL, error) {
	driver, err := driverName(dbType)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	s := &SQL{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQL wraps an existing connection and ensures the schema. Used by
// tests that bring their own in-memory database.
func NewSQL(db *sql.DB) (*SQL, error) {
	s := &SQL{db: db}
	if err := s.createSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func driverName(dbType string) (string, error) {
	switch dbType {
	case "sqlite", "":
		return "sqlite", nil
	case "postgres":
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported database type %q", dbType)
	}
}

// createSchema creates the session table. Safe to call multiple times.
func (s *SQL) createSchema() error {
	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Timestamps are stored as unix milliseconds so the schema stays
// portable between SQLite and Postgres.
const schema = `
CREATE TABLE IF NOT EXISTS session (
    id TEXT PRIMARY KEY,
    phase TEXT NOT NULL,
    created_at BIGINT NOT NULL,
    last_activity BIGINT NOT NULL,
    payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_session_last_activity ON session(last_activity);
`

// Save upserts the session row.
func (s *SQL) Save(rec Record) error {
	_, err := s.db.Exec(`
		INSERT INTO session (id, phase, created_at, last_activity, payload)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			phase = EXCLUDED.phase,
			last_activity = EXCLUDED.last_activity,
			payload = EXCLUDED.payload
	`, rec.ID, rec.Phase, rec.CreatedAt.UnixMilli(), rec.LastActivity.UnixMilli(), string(rec.Payload))
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", rec.ID, err)
	}
	return nil
}

// Delete removes the session row. Missing rows are not an error.
func (s *SQL) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM session WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

// LoadAll returns every persisted session.
func (s *SQL) LoadAll() ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT id, phase, created_at, last_activity, payload FROM session
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		var createdAt, lastActivity int64
		var payload string
		if err := rows.Scan(&rec.ID, &rec.Phase, &createdAt, &lastActivity, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		rec.CreatedAt = time.UnixMilli(createdAt)
		rec.LastActivity = time.UnixMilli(lastActivity)
		rec.Payload = []byte(payload)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Close closes the underlying connection.
func (s *SQL) Close() error {
	return s.db.Close()
}
