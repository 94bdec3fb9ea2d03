package profiles_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"engage/internal/catalog"
	"engage/internal/journal"
	"engage/internal/profiles"
	"engage/internal/testsupport"
)

type recorder struct {
	mu     sync.Mutex
	events []journal.Event
}

func (r *recorder) Record(_ context.Context, event journal.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recorder) count(kind journal.Kind, instructor string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, event := range r.events {
		if event.Kind == kind && (instructor == "" || event.Instructor == instructor) {
			n++
		}
	}
	return n
}

type fixture struct {
	t          *testing.T
	libRoot    string
	profileDir string
	prune      bool
	rec        *recorder
}

func newFixture(t *testing.T, files ...string) *fixture {
	t.Helper()
	base := t.TempDir()
	f := &fixture{
		t:          t,
		libRoot:    filepath.Join(base, "library"),
		profileDir: filepath.Join(base, "profiles"),
		prune:      true,
		rec:        &recorder{},
	}
	if len(files) == 0 {
		files = testsupport.DefaultLibrary
	}
	testsupport.WriteLibrary(t, f.libRoot, files...)
	return f
}

func (f *fixture) catalog() *catalog.Catalog {
	f.t.Helper()
	return testsupport.MustLoadCatalog(f.t, f.libRoot)
}

func (f *fixture) open() *profiles.Store {
	f.t.Helper()
	store, err := profiles.Open(context.Background(), f.catalog(), profiles.Options{
		Dir:        f.profileDir,
		PruneStale: f.prune,
		SessionID:  "test-session",
		Recorder:   f.rec,
	})
	if err != nil {
		f.t.Fatalf("Open: %v", err)
	}
	return store
}

func stationNames(t *testing.T, store *profiles.Store, instructor, program string) []string {
	t.Helper()
	stations, err := store.StationQueues(context.Background(), instructor, program)
	if err != nil {
		t.Fatalf("StationQueues(%s, %s): %v", instructor, program, err)
	}
	names := make([]string, 0, len(stations))
	for _, station := range stations {
		names = append(names, station.Name())
	}
	return names
}
