package profiles

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/gofrs/flock"

	"engage/internal/catalog"
	"engage/internal/journal"
	"engage/internal/logging"
	"engage/internal/queue"
	"engage/internal/textutil"
)

// DefaultName is the profile kept congruent with the catalog.
const DefaultName = "default"

// Recorder receives profile activity events.
type Recorder interface {
	Record(ctx context.Context, event journal.Event) error
}

// Options configures Open.
type Options struct {
	Dir string
	// PruneStale removes programs and stations from default once they vanish
	// from the catalog.
	PruneStale bool
	SessionID  string
	Logger     *slog.Logger
	// Recorder is optional; nil disables the journal.
	Recorder Recorder
}

// Store owns every loaded profile and the catalog they reference.
//
// Station queues returned by StationQueues are live: callers may edit them in
// place and call SaveCurrent. The store assumes one interactive user at a time.
type Store struct {
	mu       sync.Mutex
	dir      string
	prune    bool
	session  string
	logger   *slog.Logger
	recorder Recorder
	lock     *flock.Flock

	catalog  *catalog.Catalog
	profiles map[string]*queue.Profile
	order    []string
	dirty    map[string]bool
	current  string
}

// Open loads the profile directory and reconciles the default profile against
// cat. Only a profile directory that cannot be created or read fails Open;
// unreadable profiles are skipped and a failed default write is logged.
func Open(ctx context.Context, cat *catalog.Catalog, opts Options) (*Store, error) {
	if cat == nil {
		return nil, fmt.Errorf("open profiles: catalog is nil")
	}
	if opts.Dir == "" {
		return nil, fmt.Errorf("open profiles: directory is empty")
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create profile directory: %w", ErrIO, err)
	}

	s := &Store{
		dir:      opts.Dir,
		prune:    opts.PruneStale,
		session:  opts.SessionID,
		logger:   logging.NewComponentLogger(opts.Logger, "profiles"),
		recorder: opts.Recorder,
		lock:     flock.New(lockPath(opts.Dir)),
		catalog:  cat,
		profiles: make(map[string]*queue.Profile),
		dirty:    make(map[string]bool),
	}
	if err := s.loadAll(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// save logs and journals write failures; the store stays usable.
	_ = s.ensureDefault(ctx)
	return s, nil
}

// Catalog returns the catalog profiles are currently bound to.
func (s *Store) Catalog() *catalog.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog
}

// Dir returns the profile directory.
func (s *Store) Dir() string { return s.dir }

// Programs lists catalog program names in sorted order.
func (s *Store) Programs() []string {
	return s.Catalog().ProgramNames()
}

// Program returns the named catalog program.
func (s *Store) Program(name string) (*catalog.Program, error) {
	return s.Catalog().Program(name)
}

// Resolve maps a 4-segment media path to its catalog item.
func (s *Store) Resolve(path string) (*catalog.MediaItem, error) {
	return s.Catalog().Resolve(path)
}

// Instructors returns every profile name except default, in load then
// creation order.
func (s *Store) Instructors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.order))
	for _, name := range s.order {
		if name != DefaultName {
			names = append(names, name)
		}
	}
	return names
}

// HasInstructor reports whether a profile named name is loaded.
func (s *Store) HasInstructor(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.profiles[name]
	return ok
}

// Profile returns the loaded profile named name.
func (s *Store) Profile(name string) (*queue.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[name]
	return profile, ok
}

// Current returns the instructor served by the last successful lookup.
func (s *Store) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// StationQueues reconciles instructor's copy of program and returns its
// station queues. Unknown instructors are created from default. An unknown
// program is an error wrapping catalog.ErrUnknownProgram. When the write of a
// changed profile fails the stations are still returned together with an
// error wrapping ErrIO.
func (s *Store) StationQueues(ctx context.Context, instructor, program string) ([]*queue.StationQueue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pq, err := s.stationQueues(ctx, instructor, program)
	if pq == nil {
		return nil, err
	}
	return pq.Stations(), err
}

func (s *Store) stationQueues(ctx context.Context, instructor, program string) (*queue.ProgramQueue, error) {
	if err := validateName(instructor); err != nil {
		return nil, err
	}
	ctx = logging.WithProgram(logging.WithInstructor(ctx, instructor), program)
	logger := logging.WithContext(ctx, s.logger)

	profile, ok := s.profiles[instructor]
	if !ok {
		profile = s.profiles[DefaultName].Clone(instructor)
		s.register(profile)
		s.dirty[instructor] = true
		logger.Info("instructor created from default", logging.Int("programs", len(profile.Programs())))
		s.record(ctx, journal.Event{Kind: journal.KindInstructorCreated, Instructor: instructor})
	}

	if _, err := s.catalog.Program(program); err != nil {
		logger.Error("program does not exist", logging.Error(err))
		return nil, err
	}

	if s.syncDefaultProgram(ctx, program) && instructor != DefaultName {
		_ = s.save(ctx, s.profiles[DefaultName])
	}

	pq := s.reconcileProgram(ctx, profile, program)
	s.current = instructor

	if s.dirty[instructor] {
		if err := s.save(ctx, profile); err != nil {
			return pq, err
		}
	}
	return pq, nil
}

// SaveCurrent writes the instructor served by the last lookup.
func (s *Store) SaveCurrent(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == "" {
		return ErrNoCurrentInstructor
	}
	profile, ok := s.profiles[s.current]
	if !ok {
		return ErrNoCurrentInstructor
	}
	s.dirty[s.current] = true
	return s.save(ctx, profile)
}

// RemoveInstructor forgets the named profile and deletes its file. The
// default profile cannot be removed.
func (s *Store) RemoveInstructor(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == DefaultName {
		return fmt.Errorf("%w: the %s profile cannot be removed", ErrInvalidName, DefaultName)
	}
	if _, ok := s.profiles[name]; !ok {
		return fmt.Errorf("instructor %q: %w", name, queue.ErrNotFound)
	}

	delete(s.profiles, name)
	delete(s.dirty, name)
	for i, existing := range s.order {
		if existing == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.current == name {
		s.current = ""
	}

	ctx = logging.WithInstructor(ctx, name)
	if err := s.deleteFile(name); err != nil {
		logging.WithContext(ctx, s.logger).Error("delete profile failed", logging.Error(err))
		return err
	}
	logging.WithContext(ctx, s.logger).Info("instructor removed")
	s.record(ctx, journal.Event{Kind: journal.KindInstructorRemoved, Instructor: name})
	return nil
}

// RemoveProgramQueue drops program from instructor's profile and saves it. The
// next lookup re-seeds the program from default.
func (s *Store) RemoveProgramQueue(ctx context.Context, instructor, program string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[instructor]
	if !ok {
		return fmt.Errorf("instructor %q: %w", instructor, queue.ErrNotFound)
	}
	if !profile.RemoveProgram(program) {
		return fmt.Errorf("program %q for %q: %w", program, instructor, queue.ErrNotFound)
	}
	ctx = logging.WithProgram(logging.WithInstructor(ctx, instructor), program)
	logging.WithContext(ctx, s.logger).Info("program queue removed")
	s.record(ctx, journal.Event{Kind: journal.KindProgramRemoved, Instructor: instructor, Program: program})
	s.dirty[instructor] = true
	return s.save(ctx, profile)
}

// RemoveStationQueue drops station from instructor's copy of program and saves
// the profile.
func (s *Store) RemoveStationQueue(ctx context.Context, instructor, program, station string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[instructor]
	if !ok {
		return fmt.Errorf("instructor %q: %w", instructor, queue.ErrNotFound)
	}
	pq, ok := profile.Program(program)
	if !ok {
		return fmt.Errorf("program %q for %q: %w", program, instructor, queue.ErrNotFound)
	}
	if !pq.RemoveStation(station) {
		return fmt.Errorf("station %q in %q for %q: %w", station, program, instructor, queue.ErrNotFound)
	}
	ctx = logging.WithProgram(logging.WithInstructor(ctx, instructor), program)
	logging.WithContext(ctx, s.logger).Info("station queue removed", logging.String(logging.FieldStation, station))
	s.record(ctx, journal.Event{Kind: journal.KindStationRemoved, Instructor: instructor, Program: program, Station: station})
	s.dirty[instructor] = true
	return s.save(ctx, profile)
}

// Reload binds the store to a freshly scanned catalog. Group members are
// re-resolved by path and dropped when their file is gone, and default is
// reconciled and written again. With pruning on, programs default dropped are
// removed from named profiles too; station changes reach a named profile on
// its next lookup.
func (s *Store) Reload(ctx context.Context, cat *catalog.Catalog) error {
	if cat == nil {
		return fmt.Errorf("reload profiles: catalog is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = cat
	for _, name := range s.order {
		profile := s.profiles[name]
		dropped := profile.Rebind(cat.Resolve)
		if len(dropped) == 0 {
			continue
		}
		s.dirty[name] = true
		pctx := logging.WithInstructor(ctx, name)
		logging.WithContext(pctx, s.logger).Warn("dropped group members missing from library",
			logging.Int("count", len(dropped)))
		s.record(pctx, journal.Event{
			Kind:       journal.KindMembersDropped,
			Instructor: name,
			Detail:     fmt.Sprintf("%d members: %v", len(dropped), dropped),
		})
	}
	return s.ensureDefault(ctx)
}

func (s *Store) register(profile *queue.Profile) {
	if _, exists := s.profiles[profile.Name()]; !exists {
		s.order = append(s.order, profile.Name())
	}
	s.profiles[profile.Name()] = profile
}

func (s *Store) record(ctx context.Context, event journal.Event) {
	if s.recorder == nil {
		return
	}
	if event.SessionID == "" {
		if id, ok := logging.SessionFromContext(ctx); ok {
			event.SessionID = id
		} else {
			event.SessionID = s.session
		}
	}
	if err := s.recorder.Record(ctx, event); err != nil {
		s.logger.Warn("journal write failed", logging.String("kind", string(event.Kind)), logging.Error(err))
	}
}

func validateName(name string) error {
	if !textutil.IsSafeFileName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
