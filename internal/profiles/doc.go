// Package profiles is the registry of instructor queue profiles and the engine
// that keeps them consistent with the media catalog.
//
// Open loads every <name>.xml file in the profile directory, then brings the
// "default" profile in line with the catalog: missing programs and stations
// are added and, when pruning is enabled, vanished ones are removed. Default
// is written back unconditionally at the end of that pass.
//
// StationQueues is the per-request reconciliation step. It creates unknown
// instructors from default, refuses programs the catalog does not have, syncs
// default's copy of the program with the catalog, then syncs the instructor's
// copy with default. Named profiles never look at the catalog directly, so a
// catalog change reaches them through default exactly once. The profile is
// written only when that pass changed something.
//
// Writes replace the file atomically and are serialized across processes with
// an advisory lock on <ProfileDir>/.engage.lock. A failed write is reported
// as ErrIO; the in-memory change is kept and the write is retried on the next
// lookup for that instructor.
package profiles
