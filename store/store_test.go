// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQL {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	s, err := NewSQL(db)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(id string) Record {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return Record{
		ID:           id,
		Phase:        "adding",
		CreatedAt:    now,
		LastActivity: now,
		Payload:      []byte(`{"members":[{"id":"m1","items":null,"ready":false}]}`),
	}
}

func TestSaveAndLoadAll(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(testRecord("AAAAAA")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(testRecord("BBBBBB")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	recs, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("loaded %d records, want 2", len(recs))
	}

	byID := make(map[string]Record)
	for _, rec := range recs {
		byID[rec.ID] = rec
	}
	rec, ok := byID["AAAAAA"]
	if !ok {
		t.Fatal("record AAAAAA missing")
	}
	want := testRecord("AAAAAA")
	if rec.Phase != want.Phase {
		t.Errorf("phase = %q, want %q", rec.Phase, want.Phase)
	}
	if !rec.CreatedAt.Equal(want.CreatedAt) || !rec.LastActivity.Equal(want.LastActivity) {
		t.Errorf("timestamps drifted: %v / %v", rec.CreatedAt, rec.LastActivity)
	}
	if string(rec.Payload) != string(want.Payload) {
		t.Errorf("payload = %s, want %s", rec.Payload, want.Payload)
	}
}

// TestSaveUpserts verifies saving the same id twice updates in place
// instead of duplicating the row.
func TestSaveUpserts(t *testing.T) {
	s := newTestStore(t)

	rec := testRecord("AAAAAA")
	if err := s.Save(rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	rec.Phase = "result"
	rec.LastActivity = rec.LastActivity.Add(time.Hour)
	rec.Payload = []byte(`{"members":null,"pick":{"key":"pizza","text":"Pizza"}}`)
	if err := s.Save(rec); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	recs, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("loaded %d records after upsert, want 1", len(recs))
	}
	if recs[0].Phase != "result" {
		t.Errorf("phase = %q, want %q", recs[0].Phase, "result")
	}
	if !recs[0].LastActivity.Equal(rec.LastActivity) {
		t.Errorf("last activity not updated: %v", recs[0].LastActivity)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(testRecord("AAAAAA")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete("AAAAAA"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	recs, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("loaded %d records after delete, want 0", len(recs))
	}

	// Deleting an absent row is not an error.
	if err := s.Delete("NOPE00"); err != nil {
		t.Errorf("Delete of absent row: %v", err)
	}
}

func TestLoadAllEmpty(t *testing.T) {
	s := newTestStore(t)
	recs, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("fresh store returned %d records", len(recs))
	}
}

func TestDriverName(t *testing.T) {
	tests := []struct {
		dbType string
		want   string
		ok     bool
	}{
		{"sqlite", "sqlite", true},
		{"", "sqlite", true},
		{"postgres", "postgres", true},
		{"mysql", "", false},
	}
	for _, tt := range tests {
		got, err := driverName(tt.dbType)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("driverName(%q) = (%q, %v), want %q", tt.dbType, got, err, tt.want)
		}
		if !tt.ok && err == nil {
			t.Errorf("driverName(%q) accepted unsupported type", tt.dbType)
		}
	}
}
