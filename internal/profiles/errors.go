package profiles

import "errors"

var (
	// ErrIO reports a profile that could not be written or deleted.
	ErrIO = errors.New("profile io failure")
	// ErrInvalidName reports an instructor name that cannot be used.
	ErrInvalidName = errors.New("invalid instructor name")
	// ErrNoCurrentInstructor reports SaveCurrent before any instructor was served.
	ErrNoCurrentInstructor = errors.New("no current instructor")
)
