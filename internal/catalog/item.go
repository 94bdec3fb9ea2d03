package catalog

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"sync"
)

// Kind identifies the media type of an item.
type Kind int

const (
	KindImage Kind = iota + 1
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

var extensionKinds = map[string]Kind{
	".jpg":  KindImage,
	".jpeg": KindImage,
	".png":  KindImage,
	".gif":  KindImage,
}

// KindForName maps a file name to its media kind by extension, case-insensitively.
func KindForName(name string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if kind, ok := extensionKinds[ext]; ok {
		return kind, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFileType, name)
}

// MediaItem is one file in the catalog. It is owned by its Category; queue
// groups only hold references to it.
type MediaItem struct {
	source  string
	name    string
	path    string
	display string
	kind    Kind
	dims    Dimensions

	thumbMu sync.Mutex
	thumb   image.Image
	fullMu  sync.Mutex
	full    image.Image
}

// SourcePath returns the absolute file system path of the item.
func (m *MediaItem) SourcePath() string { return m.source }

// Name returns the file name, extension included.
func (m *MediaItem) Name() string { return m.name }

// Path returns the canonical "Program/Station/Category/File" identifier.
func (m *MediaItem) Path() string { return m.path }

// DisplayName returns a human label derived from the file name.
func (m *MediaItem) DisplayName() string { return m.display }

func (m *MediaItem) Kind() Kind { return m.kind }

func (m *MediaItem) String() string { return m.path }

// ShortPath returns the last four segments of a file system path joined with
// "/". Paths with fewer than four segments yield ErrPathDepth.
func ShortPath(fsPath string) (string, error) {
	clean := filepath.ToSlash(filepath.Clean(fsPath))
	var segments []string
	for _, segment := range strings.Split(clean, "/") {
		if segment != "" && segment != "." {
			segments = append(segments, segment)
		}
	}
	if len(segments) < 4 {
		return "", fmt.Errorf("%w: %q", ErrPathDepth, fsPath)
	}
	return strings.Join(segments[len(segments)-4:], "/"), nil
}

func joinPath(program, station, category, file string) string {
	return program + "/" + station + "/" + category + "/" + file
}

// SplitPath breaks a 4-segment media path into its parts. Segments are taken
// verbatim; library names may carry leading or trailing spaces.
func SplitPath(path string) (program, station, category, file string, err error) {
	segments := strings.Split(path, "/")
	if len(segments) != 4 {
		return "", "", "", "", fmt.Errorf("%w: %q has %d", ErrPathDepth, path, len(segments))
	}
	for _, segment := range segments {
		if segment == "" {
			return "", "", "", "", fmt.Errorf("%w: %q has an empty segment", ErrPathDepth, path)
		}
	}
	return segments[0], segments[1], segments[2], segments[3], nil
}

// Resolve maps a 4-segment media path to its item. Failures are reported as
// ErrPathDepth or as a *ResolveError naming the level that did not match.
func (c *Catalog) Resolve(path string) (*MediaItem, error) {
	programName, stationName, categoryName, fileName, err := SplitPath(path)
	if err != nil {
		return nil, err
	}
	program, ok := c.programs[programName]
	if !ok {
		return nil, notFound(LevelProgram, programName, path)
	}
	station, ok := program.stations[stationName]
	if !ok {
		return nil, notFound(LevelStation, stationName, path)
	}
	category, ok := station.categories[categoryName]
	if !ok {
		return nil, notFound(LevelCategory, categoryName, path)
	}
	item, ok := category.items[fileName]
	if !ok {
		return nil, notFound(LevelFile, fileName, path)
	}
	return item, nil
}
