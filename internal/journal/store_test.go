package journal_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"engage/internal/journal"
)

func openJournal(t *testing.T) *journal.Store {
	t.Helper()
	store, err := journal.Open(context.Background(), filepath.Join(t.TempDir(), "nested", "journal.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndList(t *testing.T) {
	store := openJournal(t)
	ctx := context.Background()

	events := []journal.Event{
		{Kind: journal.KindInstructorCreated, Instructor: "Alice", SessionID: "s1"},
		{Kind: journal.KindStationAdded, Instructor: "default", Program: "Cardio", Station: "Bike"},
		{Kind: journal.KindProfileSaved, Instructor: "Alice", Detail: "Alice.xml"},
	}
	for _, event := range events {
		if err := store.Record(ctx, event); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	all, err := store.List(ctx, journal.Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	if all[0].Kind != journal.KindProfileSaved || all[2].Kind != journal.KindInstructorCreated {
		t.Fatalf("expected newest first, got %v then %v", all[0].Kind, all[2].Kind)
	}
	if all[2].SessionID != "s1" || all[2].Time.IsZero() {
		t.Fatalf("unexpected first event %#v", all[2])
	}

	alice, err := store.List(ctx, journal.Filter{Instructor: "Alice"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(alice) != 2 {
		t.Fatalf("expected 2 events for Alice, got %d", len(alice))
	}

	stations, err := store.List(ctx, journal.Filter{Kinds: []journal.Kind{journal.KindStationAdded, journal.KindStationRemoved}})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(stations) != 1 || stations[0].Station != "Bike" || stations[0].Program != "Cardio" {
		t.Fatalf("unexpected station events %#v", stations)
	}

	limited, err := store.List(ctx, journal.Filter{Limit: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(limited))
	}

	future, err := store.List(ctx, journal.Filter{Since: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(future) != 0 {
		t.Fatalf("expected no future events, got %d", len(future))
	}
}

func TestRecordRequiresKind(t *testing.T) {
	store := openJournal(t)
	if err := store.Record(context.Background(), journal.Event{Instructor: "Alice"}); err == nil {
		t.Fatal("expected error for missing kind")
	}
}

func TestReopenKeepsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	store, err := journal.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.Record(ctx, journal.Event{Kind: journal.KindProfileSaved, Instructor: "default"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := journal.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()
	events, err := reopened.List(ctx, journal.Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected persisted event, got %d", len(events))
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := journal.Open(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestOpenRejectsNewerJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	store, err := journal.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	_ = store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open failed: %v", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA user_version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := journal.Open(ctx, path); !errors.Is(err, journal.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestOpenUpgradesOlderJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	ctx := context.Background()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open failed: %v", err)
	}
	v1 := []string{
		`CREATE TABLE events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			session_id TEXT,
			kind TEXT NOT NULL,
			instructor TEXT,
			program TEXT,
			station TEXT,
			detail TEXT
		)`,
		`INSERT INTO events (created_at, session_id, kind, instructor) VALUES ('2026-01-02T03:04:05Z', 's-old', 'instructor_created', 'Alice')`,
		"PRAGMA user_version = 1",
	}
	for _, stmt := range v1 {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("seed v1 journal: %v", err)
		}
	}
	_ = db.Close()

	store, err := journal.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	events, err := store.List(ctx, journal.Filter{SessionID: "s-old"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(events) != 1 || events[0].Instructor != "Alice" {
		t.Fatalf("expected the old event to survive the upgrade, got %+v", events)
	}

	check, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open failed: %v", err)
	}
	defer check.Close()
	var indexes int
	if err := check.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='index' AND name='idx_events_session'",
	).Scan(&indexes); err != nil {
		t.Fatalf("query index: %v", err)
	}
	if indexes != 1 {
		t.Fatal("expected session index after upgrade")
	}
}

func TestListFiltersBySession(t *testing.T) {
	store := openJournal(t)
	ctx := context.Background()
	for _, session := range []string{"a", "b", "a"} {
		if err := store.Record(ctx, journal.Event{Kind: journal.KindProfileSaved, SessionID: session, Instructor: "Alice"}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}
	events, err := store.List(ctx, journal.Filter{SessionID: "a"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events for session a, got %d", len(events))
	}
}
