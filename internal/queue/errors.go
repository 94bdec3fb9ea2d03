package queue

import "errors"

var (
	// ErrProfileParse reports a profile file that is malformed or truncated.
	ErrProfileParse = errors.New("profile parse error")
	// ErrDuplicateName reports a name that collides with an existing sibling.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrNotFound reports a lookup for a program, station, or group that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmptyName reports a blank program, station, or group name.
	ErrEmptyName = errors.New("name is empty")
	// ErrIndexOutOfRange reports a member or group position outside the sequence.
	ErrIndexOutOfRange = errors.New("index out of range")
)
