package profiles

import (
	"context"
	"fmt"

	"engage/internal/queue"
)

// EditStation reconciles instructor's copy of program, applies fn to the named
// station, and saves the profile. The profile is not saved when fn fails.
func (s *Store) EditStation(ctx context.Context, instructor, program, station string, fn func(*queue.StationQueue) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pq, err := s.stationQueues(ctx, instructor, program)
	if pq == nil {
		return err
	}
	sq, ok := pq.Station(station)
	if !ok {
		return fmt.Errorf("station %q in %q: %w", station, program, queue.ErrNotFound)
	}
	if err := fn(sq); err != nil {
		return err
	}
	s.dirty[instructor] = true
	return s.save(ctx, s.profiles[instructor])
}

// AddGroup adds an empty group to a station.
func (s *Store) AddGroup(ctx context.Context, instructor, program, station, group string) error {
	return s.EditStation(ctx, instructor, program, station, func(sq *queue.StationQueue) error {
		_, err := sq.AddGroup(group)
		return err
	})
}

// RenameGroup renames a group within a station.
func (s *Store) RenameGroup(ctx context.Context, instructor, program, station, oldName, newName string) error {
	return s.EditStation(ctx, instructor, program, station, func(sq *queue.StationQueue) error {
		return sq.RenameGroup(oldName, newName)
	})
}

// RemoveGroup deletes a group from a station.
func (s *Store) RemoveGroup(ctx context.Context, instructor, program, station, group string) error {
	return s.EditStation(ctx, instructor, program, station, func(sq *queue.StationQueue) error {
		return sq.RemoveGroup(group)
	})
}

// MoveGroup moves a group to index in the station's tab order.
func (s *Store) MoveGroup(ctx context.Context, instructor, program, station, group string, index int) error {
	return s.EditStation(ctx, instructor, program, station, func(sq *queue.StationQueue) error {
		return sq.MoveGroup(group, index)
	})
}

// AddItem appends the media item at path to a group.
func (s *Store) AddItem(ctx context.Context, instructor, program, station, group, path string) error {
	item, err := s.Resolve(path)
	if err != nil {
		return err
	}
	return s.EditStation(ctx, instructor, program, station, func(sq *queue.StationQueue) error {
		g, ok := sq.Group(group)
		if !ok {
			return fmt.Errorf("group %q in station %q: %w", group, station, queue.ErrNotFound)
		}
		g.Append(item)
		return nil
	})
}

// RemoveItem deletes the member at index from a group.
func (s *Store) RemoveItem(ctx context.Context, instructor, program, station, group string, index int) error {
	return s.EditStation(ctx, instructor, program, station, func(sq *queue.StationQueue) error {
		g, ok := sq.Group(group)
		if !ok {
			return fmt.Errorf("group %q in station %q: %w", group, station, queue.ErrNotFound)
		}
		_, err := g.RemoveAt(index)
		return err
	})
}

// MoveItem moves the member at index in fromGroup to the end of toGroup.
// Moving within one group sends the member to the end of that group.
func (s *Store) MoveItem(ctx context.Context, instructor, program, station, fromGroup string, index int, toGroup string) error {
	return s.EditStation(ctx, instructor, program, station, func(sq *queue.StationQueue) error {
		from, ok := sq.Group(fromGroup)
		if !ok {
			return fmt.Errorf("group %q in station %q: %w", fromGroup, station, queue.ErrNotFound)
		}
		to, ok := sq.Group(toGroup)
		if !ok {
			return fmt.Errorf("group %q in station %q: %w", toGroup, station, queue.ErrNotFound)
		}
		item, err := from.RemoveAt(index)
		if err != nil {
			return err
		}
		to.Append(item)
		return nil
	})
}
