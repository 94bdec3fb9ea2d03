package profiles

import (
	"context"

	"engage/internal/journal"
	"engage/internal/logging"
	"engage/internal/queue"
)

// ensureDefault creates default if needed, reconciles every catalog program
// into it, and writes it regardless of whether anything changed.
func (s *Store) ensureDefault(ctx context.Context) error {
	ctx = logging.WithInstructor(ctx, DefaultName)
	if _, ok := s.profiles[DefaultName]; !ok {
		s.register(queue.NewProfile(DefaultName))
		logging.WithContext(ctx, s.logger).Info("default profile created")
	}
	for _, program := range s.catalog.ProgramNames() {
		s.syncDefaultProgram(ctx, program)
	}
	if s.prune {
		def := s.profiles[DefaultName]
		for _, program := range def.ProgramNames() {
			if s.catalog.HasProgram(program) {
				continue
			}
			def.RemoveProgram(program)
			pctx := logging.WithProgram(ctx, program)
			logging.WithContext(pctx, s.logger).Info("removed program missing from library")
			s.record(pctx, journal.Event{Kind: journal.KindProgramRemoved, Instructor: DefaultName, Program: program})
		}
	}
	s.dirty[DefaultName] = true
	err := s.save(ctx, s.profiles[DefaultName])
	if s.prune {
		s.pruneNamedPrograms(ctx)
	}
	return err
}

// pruneNamedPrograms drops programs default no longer carries from every named
// profile and saves the profiles it changed. Lookups of such programs fail
// before reconciliation, so this is the only place they are removed.
func (s *Store) pruneNamedPrograms(ctx context.Context) {
	def := s.profiles[DefaultName]
	for _, name := range s.order {
		if name == DefaultName {
			continue
		}
		profile := s.profiles[name]
		ictx := logging.WithInstructor(ctx, name)
		for _, program := range profile.ProgramNames() {
			if _, ok := def.Program(program); ok {
				continue
			}
			profile.RemoveProgram(program)
			s.dirty[name] = true
			pctx := logging.WithProgram(ictx, program)
			logging.WithContext(pctx, s.logger).Info("removed program missing from default")
			s.record(pctx, journal.Event{Kind: journal.KindProgramRemoved, Instructor: name, Program: program})
		}
		if s.dirty[name] {
			_ = s.save(ictx, profile)
		}
	}
}

// syncDefaultProgram brings default's copy of program in line with the
// catalog, iterating stations in catalog order. It reports whether default
// changed. The program must exist in the catalog.
func (s *Store) syncDefaultProgram(ctx context.Context, program string) bool {
	cp, err := s.catalog.Program(program)
	if err != nil {
		return false
	}
	ctx = logging.WithProgram(logging.WithInstructor(ctx, DefaultName), program)
	logger := logging.WithContext(ctx, s.logger)
	def := s.profiles[DefaultName]
	changed := false

	pq, ok := def.Program(program)
	if !ok {
		pq = queue.NewProgramQueue(program)
		if err := def.AddProgram(pq); err != nil {
			logger.Warn("program cannot be added to default", logging.Error(err))
			return false
		}
		changed = true
		logger.Info("added program to default")
		s.record(ctx, journal.Event{Kind: journal.KindProgramAdded, Instructor: DefaultName, Program: program})
	}

	for _, station := range cp.StationNames() {
		if _, ok := pq.Station(station); ok {
			continue
		}
		if err := pq.AddStation(queue.NewStationQueue(station)); err != nil {
			logger.Warn("station cannot be added to default", logging.String(logging.FieldStation, station), logging.Error(err))
			continue
		}
		changed = true
		logger.Info("added station to default", logging.String(logging.FieldStation, station))
		s.record(ctx, journal.Event{Kind: journal.KindStationAdded, Instructor: DefaultName, Program: program, Station: station})
	}

	if s.prune {
		for _, station := range pq.StationNames() {
			if _, err := cp.Station(station); err == nil {
				continue
			}
			pq.RemoveStation(station)
			changed = true
			logger.Info("removed station missing from library", logging.String(logging.FieldStation, station))
			s.record(ctx, journal.Event{Kind: journal.KindStationRemoved, Instructor: DefaultName, Program: program, Station: station})
		}
	}

	if changed {
		s.dirty[DefaultName] = true
	}
	return changed
}

// reconcileProgram syncs profile's copy of program with default's copy and
// returns it. Changes mark the profile dirty. Default itself is returned as is.
func (s *Store) reconcileProgram(ctx context.Context, profile *queue.Profile, program string) *queue.ProgramQueue {
	def := s.profiles[DefaultName]
	defPQ, ok := def.Program(program)
	if !ok {
		defPQ = queue.NewProgramQueue(program)
	}
	if profile == def {
		return defPQ
	}

	name := profile.Name()
	logger := logging.WithContext(ctx, s.logger)

	pq, ok := profile.Program(program)
	if !ok {
		pq = defPQ.Clone()
		if err := profile.AddProgram(pq); err != nil {
			logger.Warn("program cannot be seeded from default", logging.Error(err))
			return pq
		}
		s.dirty[name] = true
		logger.Info("program seeded from default", logging.Int("stations", len(pq.Stations())))
		s.record(ctx, journal.Event{Kind: journal.KindProgramSeeded, Instructor: name, Program: program})
		return pq
	}

	for _, station := range defPQ.Stations() {
		if _, ok := pq.Station(station.Name()); ok {
			continue
		}
		if err := pq.AddStation(station.Clone()); err != nil {
			logger.Warn("station cannot be added from default", logging.String(logging.FieldStation, station.Name()), logging.Error(err))
			continue
		}
		s.dirty[name] = true
		logger.Info("added station from default", logging.String(logging.FieldStation, station.Name()))
		s.record(ctx, journal.Event{Kind: journal.KindStationAdded, Instructor: name, Program: program, Station: station.Name()})
	}
	for _, station := range pq.StationNames() {
		if _, ok := defPQ.Station(station); ok {
			continue
		}
		pq.RemoveStation(station)
		s.dirty[name] = true
		logger.Info("removed station no longer in default", logging.String(logging.FieldStation, station))
		s.record(ctx, journal.Event{Kind: journal.KindStationRemoved, Instructor: name, Program: program, Station: station})
	}
	return pq
}
