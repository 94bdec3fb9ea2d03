package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("journal path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends an event. A zero Time is stamped with the current time.
func (s *Store) Record(ctx context.Context, event Event) error {
	if strings.TrimSpace(string(event.Kind)) == "" {
		return fmt.Errorf("record event: kind is required")
	}
	if event.Time.IsZero() {
		event.Time = time.Now()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO events (created_at, session_id, kind, instructor, program, station, detail)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.Time.UTC().Format(time.RFC3339Nano),
		nullableString(event.SessionID),
		string(event.Kind),
		nullableString(event.Instructor),
		nullableString(event.Program),
		nullableString(event.Station),
		nullableString(event.Detail),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// List returns events matching filter, newest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]Event, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.Instructor != "" {
		clauses = append(clauses, "instructor = ?")
		args = append(args, filter.Instructor)
	}
	if filter.Program != "" {
		clauses = append(clauses, "program = ?")
		args = append(args, filter.Program)
	}
	if filter.SessionID != "" {
		clauses = append(clauses, "session_id = ?")
		args = append(args, filter.SessionID)
	}
	if len(filter.Kinds) > 0 {
		placeholders := make([]string, len(filter.Kinds))
		for i, kind := range filter.Kinds {
			placeholders[i] = "?"
			args = append(args, string(kind))
		}
		clauses = append(clauses, "kind IN ("+strings.Join(placeholders, ", ")+")")
	}
	if !filter.Since.IsZero() {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, filter.Since.UTC().Format(time.RFC3339Nano))
	}

	query := `SELECT id, created_at, session_id, kind, instructor, program, station, detail FROM events`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func scanEvent(rows *sql.Rows) (Event, error) {
	var (
		event      Event
		createdAt  string
		kind       string
		session    sql.NullString
		instructor sql.NullString
		program    sql.NullString
		station    sql.NullString
		detail     sql.NullString
	)
	if err := rows.Scan(&event.ID, &createdAt, &session, &kind, &instructor, &program, &station, &detail); err != nil {
		return Event{}, fmt.Errorf("scan event: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Event{}, fmt.Errorf("parse event time %q: %w", createdAt, err)
	}
	event.Time = ts
	event.Kind = Kind(kind)
	event.SessionID = session.String
	event.Instructor = instructor.String
	event.Program = program.String
	event.Station = station.String
	event.Detail = detail.String
	return event, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
