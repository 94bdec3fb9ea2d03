// Package journal records profile reconciliation and persistence activity in
// a local SQLite database.
//
// The profile store emits one event whenever it creates an instructor, seeds a
// program from default, adds or removes stations, writes or fails to write a
// profile, or drops group members whose files vanished from the library. The
// CLI "history" command reads the journal back. The schema is versioned and a
// mismatch is reported as ErrSchemaMismatch rather than migrated in place.
package journal
