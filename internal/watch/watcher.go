package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"engage/internal/logging"
	"engage/internal/textutil"
)

// maxDepth is the deepest directory level watched: category directories.
const maxDepth = 3

// Watcher reports library changes through a debounced callback.
type Watcher struct {
	root     string
	debounce time.Duration
	logger   *slog.Logger
	fs       *fsnotify.Watcher
}

// New prepares a watcher for root. Close must be called when done.
func New(root string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve library root: %w", err)
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	w := &Watcher{
		root:     abs,
		debounce: debounce,
		logger:   logging.NewComponentLogger(logger, "watch"),
		fs:       fsw,
	}
	if err := w.addTree(abs); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Close releases the underlying watches.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run dispatches events until ctx is cancelled. onChange runs on the Run
// goroutine after each quiet period; its errors are logged and do not stop
// the watcher.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	debounce := time.NewTimer(0)
	<-debounce.C
	pending := 0

	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("watch new directory failed", logging.String("dir", event.Name), logging.Error(err))
					}
				}
			}
			pending++
			if !debounce.Stop() {
				select {
				case <-debounce.C:
				default:
				}
			}
			debounce.Reset(w.debounce)

		case <-debounce.C:
			w.logger.Info("library changed", logging.Int("events", pending))
			pending = 0
			if err := onChange(ctx); err != nil {
				w.logger.Error("library rescan failed", logging.Error(err))
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", logging.Error(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) == 0 {
		return false
	}
	return !textutil.IsHiddenName(filepath.Base(event.Name))
}

// depth returns how many levels below the root dir sits, or -1 when it is
// outside the root.
func (w *Watcher) depth(dir string) int {
	rel, err := filepath.Rel(w.root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return -1
	}
	if rel == "." {
		return 0
	}
	return len(strings.Split(rel, string(filepath.Separator)))
}

// addTree watches dir and its non-hidden subdirectories down to category level.
func (w *Watcher) addTree(dir string) error {
	d := w.depth(dir)
	if d < 0 || d > maxDepth {
		return nil
	}
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Debug("watching directory", logging.String("dir", dir))
	if d == maxDepth {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() || textutil.IsHiddenName(entry.Name()) {
			continue
		}
		if err := w.addTree(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
