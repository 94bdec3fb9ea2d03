package queue

import (
	"fmt"
	"strings"

	"engage/internal/catalog"
)

// Profile is one instructor's queue tree.
type Profile struct {
	name     string
	programs []*ProgramQueue
}

// ProgramQueue mirrors a catalog program.
type ProgramQueue struct {
	name     string
	stations []*StationQueue
}

// StationQueue mirrors a catalog station and partitions its content into groups.
type StationQueue struct {
	name   string
	groups []*GroupQueue
}

// GroupQueue is a named, ordered bin of media item references.
type GroupQueue struct {
	name    string
	members []*catalog.MediaItem
}

// NewProfile returns an empty profile.
func NewProfile(name string) *Profile {
	return &Profile{name: name}
}

// NewProgramQueue returns a program queue with no stations.
func NewProgramQueue(name string) *ProgramQueue {
	return &ProgramQueue{name: name}
}

// NewStationQueue returns a station queue with no groups.
func NewStationQueue(name string) *StationQueue {
	return &StationQueue{name: name}
}

// NewGroupQueue returns a group holding the given members in order.
func NewGroupQueue(name string, members ...*catalog.MediaItem) *GroupQueue {
	return &GroupQueue{name: name, members: append([]*catalog.MediaItem(nil), members...)}
}

func (p *Profile) Name() string { return p.name }

// Programs returns the program queues in stored order.
func (p *Profile) Programs() []*ProgramQueue {
	return append([]*ProgramQueue(nil), p.programs...)
}

// ProgramNames returns program names in stored order.
func (p *Profile) ProgramNames() []string {
	names := make([]string, 0, len(p.programs))
	for _, program := range p.programs {
		names = append(names, program.name)
	}
	return names
}

// Program returns the named program queue.
func (p *Profile) Program(name string) (*ProgramQueue, bool) {
	for _, program := range p.programs {
		if program.name == name {
			return program, true
		}
	}
	return nil, false
}

// AddProgram appends program, rejecting a name already present.
func (p *Profile) AddProgram(program *ProgramQueue) error {
	if err := checkName(program.name); err != nil {
		return err
	}
	if _, ok := p.Program(program.name); ok {
		return fmt.Errorf("program %q: %w", program.name, ErrDuplicateName)
	}
	p.programs = append(p.programs, program)
	return nil
}

// RemoveProgram deletes the named program queue and reports whether it existed.
func (p *Profile) RemoveProgram(name string) bool {
	for i, program := range p.programs {
		if program.name == name {
			p.programs = append(p.programs[:i], p.programs[i+1:]...)
			return true
		}
	}
	return false
}

// Clone deep-copies the profile under a new name. Group members are shared
// references to the same catalog items.
func (p *Profile) Clone(name string) *Profile {
	clone := &Profile{name: name, programs: make([]*ProgramQueue, 0, len(p.programs))}
	for _, program := range p.programs {
		clone.programs = append(clone.programs, program.Clone())
	}
	return clone
}

// Rebind re-resolves every group member by its path, replacing stale item
// references and dropping members whose path no longer resolves. It returns
// the dropped paths.
func (p *Profile) Rebind(resolve func(path string) (*catalog.MediaItem, error)) []string {
	var dropped []string
	for _, program := range p.programs {
		for _, station := range program.stations {
			for _, group := range station.groups {
				kept := group.members[:0]
				for _, member := range group.members {
					item, err := resolve(member.Path())
					if err != nil {
						dropped = append(dropped, member.Path())
						continue
					}
					kept = append(kept, item)
				}
				clear(group.members[len(kept):])
				group.members = kept
			}
		}
	}
	return dropped
}

func (q *ProgramQueue) Name() string { return q.name }

// Stations returns the station queues in stored order.
func (q *ProgramQueue) Stations() []*StationQueue {
	return append([]*StationQueue(nil), q.stations...)
}

// StationNames returns station names in stored order.
func (q *ProgramQueue) StationNames() []string {
	names := make([]string, 0, len(q.stations))
	for _, station := range q.stations {
		names = append(names, station.name)
	}
	return names
}

// Station returns the named station queue.
func (q *ProgramQueue) Station(name string) (*StationQueue, bool) {
	for _, station := range q.stations {
		if station.name == name {
			return station, true
		}
	}
	return nil, false
}

// AddStation appends station, rejecting a name already present.
func (q *ProgramQueue) AddStation(station *StationQueue) error {
	if err := checkName(station.name); err != nil {
		return err
	}
	if _, ok := q.Station(station.name); ok {
		return fmt.Errorf("station %q: %w", station.name, ErrDuplicateName)
	}
	q.stations = append(q.stations, station)
	return nil
}

// RemoveStation deletes the named station queue and reports whether it existed.
func (q *ProgramQueue) RemoveStation(name string) bool {
	for i, station := range q.stations {
		if station.name == name {
			q.stations = append(q.stations[:i], q.stations[i+1:]...)
			return true
		}
	}
	return false
}

// Clone deep-copies the program queue and its stations.
func (q *ProgramQueue) Clone() *ProgramQueue {
	clone := &ProgramQueue{name: q.name, stations: make([]*StationQueue, 0, len(q.stations))}
	for _, station := range q.stations {
		clone.stations = append(clone.stations, station.Clone())
	}
	return clone
}

func (s *StationQueue) Name() string { return s.name }

// Groups returns the groups in tab order.
func (s *StationQueue) Groups() []*GroupQueue {
	return append([]*GroupQueue(nil), s.groups...)
}

// GroupNames returns group names in tab order.
func (s *StationQueue) GroupNames() []string {
	names := make([]string, 0, len(s.groups))
	for _, group := range s.groups {
		names = append(names, group.name)
	}
	return names
}

// Group returns the named group.
func (s *StationQueue) Group(name string) (*GroupQueue, bool) {
	_, group := s.indexOf(name)
	return group, group != nil
}

func (s *StationQueue) indexOf(name string) (int, *GroupQueue) {
	for i, group := range s.groups {
		if group.name == name {
			return i, group
		}
	}
	return -1, nil
}

// AddGroup appends a new empty group.
func (s *StationQueue) AddGroup(name string) (*GroupQueue, error) {
	group := NewGroupQueue(strings.TrimSpace(name))
	if err := s.appendGroup(group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *StationQueue) appendGroup(group *GroupQueue) error {
	if err := checkName(group.name); err != nil {
		return err
	}
	if _, existing := s.indexOf(group.name); existing != nil {
		return fmt.Errorf("group %q in station %q: %w", group.name, s.name, ErrDuplicateName)
	}
	s.groups = append(s.groups, group)
	return nil
}

// RenameGroup changes a group's name, keeping its position and members.
func (s *StationQueue) RenameGroup(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if err := checkName(newName); err != nil {
		return err
	}
	_, group := s.indexOf(oldName)
	if group == nil {
		return fmt.Errorf("group %q in station %q: %w", oldName, s.name, ErrNotFound)
	}
	if oldName == newName {
		return nil
	}
	if _, existing := s.indexOf(newName); existing != nil {
		return fmt.Errorf("group %q in station %q: %w", newName, s.name, ErrDuplicateName)
	}
	group.name = newName
	return nil
}

// RemoveGroup deletes the named group.
func (s *StationQueue) RemoveGroup(name string) error {
	i, group := s.indexOf(name)
	if group == nil {
		return fmt.Errorf("group %q in station %q: %w", name, s.name, ErrNotFound)
	}
	s.groups = append(s.groups[:i], s.groups[i+1:]...)
	return nil
}

// MoveGroup repositions the named group to index within the tab order.
func (s *StationQueue) MoveGroup(name string, index int) error {
	from, group := s.indexOf(name)
	if group == nil {
		return fmt.Errorf("group %q in station %q: %w", name, s.name, ErrNotFound)
	}
	if index < 0 || index >= len(s.groups) {
		return fmt.Errorf("move group %q to %d: %w", name, index, ErrIndexOutOfRange)
	}
	s.groups = moveElement(s.groups, from, index)
	return nil
}

// Clone deep-copies the station queue and its groups.
func (s *StationQueue) Clone() *StationQueue {
	clone := &StationQueue{name: s.name, groups: make([]*GroupQueue, 0, len(s.groups))}
	for _, group := range s.groups {
		clone.groups = append(clone.groups, group.Clone())
	}
	return clone
}

func (g *GroupQueue) Name() string { return g.name }

// Members returns the member references in order.
func (g *GroupQueue) Members() []*catalog.MediaItem {
	return append([]*catalog.MediaItem(nil), g.members...)
}

// Paths returns the 4-segment path of every member in order.
func (g *GroupQueue) Paths() []string {
	paths := make([]string, 0, len(g.members))
	for _, member := range g.members {
		paths = append(paths, member.Path())
	}
	return paths
}

func (g *GroupQueue) Len() int { return len(g.members) }

// Append adds item at the end of the group.
func (g *GroupQueue) Append(item *catalog.MediaItem) {
	g.members = append(g.members, item)
}

// Insert places item at index, shifting later members back. index may equal Len.
func (g *GroupQueue) Insert(index int, item *catalog.MediaItem) error {
	if index < 0 || index > len(g.members) {
		return fmt.Errorf("insert into group %q at %d: %w", g.name, index, ErrIndexOutOfRange)
	}
	g.members = append(g.members, nil)
	copy(g.members[index+1:], g.members[index:])
	g.members[index] = item
	return nil
}

// RemoveAt deletes and returns the member at index.
func (g *GroupQueue) RemoveAt(index int) (*catalog.MediaItem, error) {
	if index < 0 || index >= len(g.members) {
		return nil, fmt.Errorf("remove from group %q at %d: %w", g.name, index, ErrIndexOutOfRange)
	}
	item := g.members[index]
	g.members = append(g.members[:index], g.members[index+1:]...)
	return item, nil
}

// Move repositions the member at from to to.
func (g *GroupQueue) Move(from, to int) error {
	if from < 0 || from >= len(g.members) || to < 0 || to >= len(g.members) {
		return fmt.Errorf("move in group %q from %d to %d: %w", g.name, from, to, ErrIndexOutOfRange)
	}
	g.members = moveElement(g.members, from, to)
	return nil
}

// Clone copies the group. Members stay shared catalog references.
func (g *GroupQueue) Clone() *GroupQueue {
	return NewGroupQueue(g.name, g.members...)
}

func moveElement[T any](s []T, from, to int) []T {
	if from == to {
		return s
	}
	v := s[from]
	if from < to {
		copy(s[from:to], s[from+1:to+1])
	} else {
		copy(s[to+1:from+1], s[to:from])
	}
	s[to] = v
	return s
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}
