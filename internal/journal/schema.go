package journal

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var baseSchema string

// migrations[i] moves the journal from version i to i+1. The version lives in
// SQLite's user_version header, so an empty file reads as version 0. Append
// new steps; never edit a released one.
var migrations = []string{
	baseSchema,
	"CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id)",
}

// ErrSchemaMismatch indicates the journal was written by a newer release.
var ErrSchemaMismatch = errors.New("schema version mismatch")

func schemaVersion() int { return len(migrations) }

func (s *Store) userVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read journal version: %w", err)
	}
	return version, nil
}

// migrate brings an older journal forward one step at a time. Events are
// history, so older files are upgraded in place rather than discarded.
func (s *Store) migrate(ctx context.Context) error {
	version, err := s.userVersion(ctx)
	if err != nil {
		return err
	}
	if version > schemaVersion() {
		return fmt.Errorf("%w: journal %s has version %d, this build understands %d",
			ErrSchemaMismatch, s.path, version, schemaVersion())
	}
	for ; version < schemaVersion(); version++ {
		if err := s.applyMigration(ctx, version); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) applyMigration(ctx context.Context, from int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", from+1, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, migrations[from]); err != nil {
		return fmt.Errorf("apply migration %d: %w", from+1, err)
	}
	// PRAGMA does not take bind parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", from+1)); err != nil {
		return fmt.Errorf("record journal version %d: %w", from+1, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", from+1, err)
	}
	return nil
}
