package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"engage/internal/logging"
	"engage/internal/textutil"
)

// Catalog is the scanned library tree. It is immutable after Load except for
// the renditions each MediaItem materializes on demand.
type Catalog struct {
	root     string
	dims     Dimensions
	programs map[string]*Program
	names    []string
	rejected int
}

// Program is a top-level library directory.
type Program struct {
	name     string
	stations map[string]*Station
	order    []string
}

// Station is a directory within a program.
type Station struct {
	name       string
	categories map[string]*Category
	order      []string
}

// Category is a directory within a station holding media files.
type Category struct {
	name  string
	items map[string]*MediaItem
	order []string
}

// Stats summarizes the size of a catalog.
type Stats struct {
	Programs   int
	Stations   int
	Categories int
	Items      int
	Rejected   int
}

// Option customizes Load.
type Option func(*loader)

// WithLogger routes scan logging to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithDimensions sets the rendition sizes used by loaded items.
func WithDimensions(dims Dimensions) Option {
	return func(l *loader) {
		l.dims = dims
	}
}

type loader struct {
	logger   *slog.Logger
	dims     Dimensions
	rejected int
}

// Load scans root and builds the catalog. A root that does not exist or is not
// a directory yields ErrInvalidRoot.
func Load(root string, opts ...Option) (*Catalog, error) {
	l := &loader{logger: logging.NewNop(), dims: DefaultDimensions()}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = logging.NewComponentLogger(l.logger, "catalog")

	start := time.Now()
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, root)
	}

	cat := &Catalog{root: abs, dims: l.dims, programs: make(map[string]*Program)}
	programDirs, err := l.listDirs(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}
	for _, name := range programDirs {
		program := l.loadProgram(filepath.Join(abs, name), name)
		if len(program.order) == 0 {
			l.logger.Warn("program has no stations; skipping", logging.String(logging.FieldProgram, name))
			continue
		}
		cat.programs[name] = program
		cat.names = append(cat.names, name)
	}

	cat.rejected = l.rejected
	stats := cat.Stats()
	l.logger.Info("catalog loaded",
		logging.String("root", abs),
		logging.Int("programs", stats.Programs),
		logging.Int("stations", stats.Stations),
		logging.Int("categories", stats.Categories),
		logging.Int("items", stats.Items),
		logging.Int("rejected", stats.Rejected),
		logging.Duration("elapsed", time.Since(start)),
	)
	return cat, nil
}

func (l *loader) loadProgram(dir, name string) *Program {
	program := &Program{name: name, stations: make(map[string]*Station)}
	stationDirs, err := l.listDirs(dir)
	if err != nil {
		l.logger.Warn("read program directory failed", logging.String(logging.FieldProgram, name), logging.Error(err))
		return program
	}
	for _, stationName := range stationDirs {
		station := l.loadStation(filepath.Join(dir, stationName), name, stationName)
		if len(station.order) == 0 {
			l.logger.Warn("station has no categories; skipping",
				logging.String(logging.FieldProgram, name),
				logging.String(logging.FieldStation, stationName))
			continue
		}
		program.stations[stationName] = station
		program.order = append(program.order, stationName)
		l.logger.Debug("station admitted",
			logging.String(logging.FieldProgram, name),
			logging.String(logging.FieldStation, stationName),
			logging.Int("categories", len(station.order)))
	}
	l.logger.Debug("program admitted", logging.String(logging.FieldProgram, name), logging.Int("stations", len(program.order)))
	return program
}

func (l *loader) loadStation(dir, programName, name string) *Station {
	station := &Station{name: name, categories: make(map[string]*Category)}
	categoryDirs, err := l.listDirs(dir)
	if err != nil {
		l.logger.Warn("read station directory failed", logging.String(logging.FieldStation, name), logging.Error(err))
		return station
	}
	for _, categoryName := range categoryDirs {
		category := l.loadCategory(filepath.Join(dir, categoryName), programName, name, categoryName)
		station.categories[categoryName] = category
		station.order = append(station.order, categoryName)
		l.logger.Debug("category admitted",
			logging.String(logging.FieldProgram, programName),
			logging.String(logging.FieldStation, name),
			logging.String("category", categoryName),
			logging.Int("items", len(category.order)))
	}
	return station
}

func (l *loader) loadCategory(dir, programName, stationName, name string) *Category {
	category := &Category{name: name, items: make(map[string]*MediaItem)}
	entries, err := os.ReadDir(dir)
	if err != nil {
		l.logger.Warn("read category directory failed", logging.String("category", name), logging.Error(err))
		return category
	}
	for _, entry := range entries {
		fileName := entry.Name()
		source := filepath.Join(dir, fileName)
		if textutil.IsHiddenName(fileName) {
			l.logger.Debug("hidden entry skipped", logging.String("entry", source))
			continue
		}
		if !isRegularFile(source, entry) {
			l.logger.Debug("non-file entry skipped", logging.String("entry", source))
			continue
		}
		kind, err := KindForName(fileName)
		if err != nil {
			l.rejected++
			l.logger.Warn("media file rejected",
				logging.String("file", source),
				logging.Error(err))
			continue
		}
		item := &MediaItem{
			source:  source,
			name:    fileName,
			path:    joinPath(programName, stationName, name, fileName),
			display: textutil.DisplayName(fileName),
			kind:    kind,
			dims:    l.dims,
		}
		category.items[fileName] = item
		category.order = append(category.order, fileName)
		l.logger.Debug("media file admitted", logging.String(logging.FieldPath, item.path))
	}
	sort.Strings(category.order)
	return category
}

// listDirs returns the sorted names of admitted subdirectories of dir. Names
// that are empty once trimmed cannot be queue names and are skipped.
func (l *loader) listDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)
		if textutil.IsHiddenName(name) {
			l.logger.Debug("hidden entry skipped", logging.String("entry", path))
			continue
		}
		if !isDir(path, entry) {
			l.logger.Debug("non-directory skipped", logging.String("entry", path))
			continue
		}
		if strings.TrimSpace(name) == "" {
			l.logger.Warn("directory with blank name skipped", logging.String("entry", path))
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func isDir(path string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isRegularFile(path string, entry os.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Root returns the absolute library root.
func (c *Catalog) Root() string { return c.root }

// Dimensions returns the rendition sizes items are scaled to.
func (c *Catalog) Dimensions() Dimensions { return c.dims }

// ProgramNames lists program names in sorted order.
func (c *Catalog) ProgramNames() []string {
	return append([]string(nil), c.names...)
}

// Programs lists programs in sorted order.
func (c *Catalog) Programs() []*Program {
	out := make([]*Program, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.programs[name])
	}
	return out
}

// HasProgram reports whether the catalog contains a program named name.
func (c *Catalog) HasProgram(name string) bool {
	_, ok := c.programs[name]
	return ok
}

// Program returns the named program or a *ResolveError wrapping ErrUnknownProgram.
func (c *Catalog) Program(name string) (*Program, error) {
	program, ok := c.programs[name]
	if !ok {
		return nil, notFound(LevelProgram, name, "")
	}
	return program, nil
}

// Stats counts the nodes in the catalog.
func (c *Catalog) Stats() Stats {
	stats := Stats{Rejected: c.rejected}
	for _, program := range c.programs {
		stats.Programs++
		for _, station := range program.stations {
			stats.Stations++
			for _, category := range station.categories {
				stats.Categories++
				stats.Items += len(category.items)
			}
		}
	}
	return stats
}

// Items returns every media item in catalog order.
func (c *Catalog) Items() []*MediaItem {
	var out []*MediaItem
	for _, program := range c.Programs() {
		out = append(out, program.Items()...)
	}
	return out
}

func (p *Program) Name() string { return p.name }

// StationNames lists station names in sorted order.
func (p *Program) StationNames() []string {
	return append([]string(nil), p.order...)
}

func (p *Program) Stations() []*Station {
	out := make([]*Station, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, p.stations[name])
	}
	return out
}

// Station returns the named station or a *ResolveError wrapping ErrUnknownStation.
func (p *Program) Station(name string) (*Station, error) {
	station, ok := p.stations[name]
	if !ok {
		return nil, notFound(LevelStation, name, "")
	}
	return station, nil
}

// Items returns every media item in the program.
func (p *Program) Items() []*MediaItem {
	var out []*MediaItem
	for _, station := range p.Stations() {
		for _, category := range station.Categories() {
			out = append(out, category.Items()...)
		}
	}
	return out
}

func (s *Station) Name() string { return s.name }

func (s *Station) Categories() []*Category {
	out := make([]*Category, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.categories[name])
	}
	return out
}

// Category returns the named category or a *ResolveError wrapping ErrUnknownCategory.
func (s *Station) Category(name string) (*Category, error) {
	category, ok := s.categories[name]
	if !ok {
		return nil, notFound(LevelCategory, name, "")
	}
	return category, nil
}

func (c *Category) Name() string { return c.name }

func (c *Category) Items() []*MediaItem {
	out := make([]*MediaItem, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.items[name])
	}
	return out
}

// Item returns the named media item or a *ResolveError wrapping ErrUnknownFile.
func (c *Category) Item(name string) (*MediaItem, error) {
	item, ok := c.items[name]
	if !ok {
		return nil, notFound(LevelFile, name, "")
	}
	return item, nil
}
