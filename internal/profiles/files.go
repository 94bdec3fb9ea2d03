package profiles

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"engage/internal/fileutil"
	"engage/internal/journal"
	"engage/internal/logging"
	"engage/internal/queue"
	"engage/internal/textutil"
)

const (
	profileExt    = ".xml"
	corruptSuffix = ".corrupt"
	lockFileName  = ".engage.lock"
)

func lockPath(dir string) string {
	return filepath.Join(dir, lockFileName)
}

func (s *Store) profilePath(name string) string {
	return filepath.Join(s.dir, name+profileExt)
}

// loadAll registers every parseable profile in the directory, in file name order.
func (s *Store) loadAll(ctx context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("%w: read profile directory: %w", ErrIO, err)
	}
	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || textutil.IsHiddenName(fileName) || !strings.HasSuffix(fileName, profileExt) {
			continue
		}
		name := strings.TrimSuffix(fileName, profileExt)
		if validateName(name) != nil {
			s.logger.Warn("skipping profile with unusable name", logging.String("file", fileName))
			continue
		}
		profile, ok := s.loadFile(ctx, name)
		if ok {
			s.register(profile)
		}
	}
	s.logger.Info("profiles loaded", logging.String("dir", s.dir), logging.Int("count", len(s.order)))
	return nil
}

// loadFile parses one profile. A profile that cannot be parsed is copied
// aside to <name>.xml.corrupt and reported as absent.
func (s *Store) loadFile(ctx context.Context, name string) (*queue.Profile, bool) {
	ctx = logging.WithInstructor(ctx, name)
	logger := logging.WithContext(ctx, s.logger)
	path := s.profilePath(name)

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read profile failed", logging.String("file", path), logging.Error(err))
		return nil, false
	}
	profile, report, err := queue.Decode(bytes.NewReader(data), name, s.catalog)
	if err != nil {
		backup := path + corruptSuffix
		logger.Error("profile failed to parse; it will be rebuilt from default",
			logging.String("file", path),
			logging.String("backup", backup),
			logging.Error(err))
		if copyErr := fileutil.CopyFile(path, backup); copyErr != nil {
			logger.Warn("backup of unparseable profile failed", logging.Error(copyErr))
		}
		return nil, false
	}
	for _, dup := range report.Duplicates {
		logger.Warn("duplicate entry ignored", logging.String("entry", dup))
	}
	if len(report.Unresolved) > 0 {
		for _, ref := range report.Unresolved {
			logger.Warn("group member not in library", logging.String(logging.FieldPath, ref))
		}
		s.record(ctx, journal.Event{
			Kind:       journal.KindMembersDropped,
			Instructor: name,
			Detail:     fmt.Sprintf("%d members: %v", len(report.Unresolved), report.Unresolved),
		})
	}
	logger.Debug("profile loaded", logging.Int("programs", len(profile.Programs())))
	return profile, true
}

// save writes profile atomically under the directory lock. Success clears the
// profile's dirty flag; failure leaves it set and returns ErrIO.
func (s *Store) save(ctx context.Context, profile *queue.Profile) error {
	name := profile.Name()
	ctx = logging.WithInstructor(ctx, name)
	logger := logging.WithContext(ctx, s.logger)
	path := s.profilePath(name)

	err := s.writeLocked(path, profile)
	if err != nil {
		logger.Error("profile save failed", logging.String("file", path), logging.Error(err))
		s.record(ctx, journal.Event{Kind: journal.KindSaveFailed, Instructor: name, Detail: err.Error()})
		return fmt.Errorf("%w: save %s: %w", ErrIO, name, err)
	}
	delete(s.dirty, name)
	logger.Info("profile saved", logging.String("file", path))
	s.record(ctx, journal.Event{Kind: journal.KindProfileSaved, Instructor: name, Detail: path})
	return nil
}

func (s *Store) writeLocked(path string, profile *queue.Profile) error {
	var buf bytes.Buffer
	if err := queue.Encode(&buf, profile); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire profile lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()
	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}

func (s *Store) deleteFile(name string) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("%w: acquire profile lock: %w", ErrIO, err)
	}
	defer func() { _ = s.lock.Unlock() }()
	if err := os.Remove(s.profilePath(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: delete %s: %w", ErrIO, name, err)
	}
	return nil
}
