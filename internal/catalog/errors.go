package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRoot reports a library root that is missing or not a directory.
	ErrInvalidRoot = errors.New("invalid library root")
	// ErrUnsupportedFileType reports a file whose extension is not a known media type.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrDecode reports a media source that could not be decoded.
	ErrDecode = errors.New("decode media")
	// ErrPathDepth reports a media path that does not have exactly four segments.
	ErrPathDepth = errors.New("media path must have 4 segments")

	ErrUnknownProgram  = errors.New("unknown program")
	ErrUnknownStation  = errors.New("unknown station")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownFile     = errors.New("unknown file")
)

// Level names a tier of the catalog tree.
type Level string

const (
	LevelProgram  Level = "program"
	LevelStation  Level = "station"
	LevelCategory Level = "category"
	LevelFile     Level = "file"
)

// ResolveError attributes a lookup failure to the tree level and path segment
// that could not be found.
type ResolveError struct {
	Level   Level
	Segment string
	Path    string
	Err     error
}

func (e *ResolveError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s %q: %v", e.Level, e.Segment, e.Err)
	}
	return fmt.Sprintf("resolve %q: %s %q: %v", e.Path, e.Level, e.Segment, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

func notFound(level Level, segment, path string) error {
	var sentinel error
	switch level {
	case LevelProgram:
		sentinel = ErrUnknownProgram
	case LevelStation:
		sentinel = ErrUnknownStation
	case LevelCategory:
		sentinel = ErrUnknownCategory
	default:
		sentinel = ErrUnknownFile
	}
	return &ResolveError{Level: level, Segment: segment, Path: path, Err: sentinel}
}
