package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"engage/internal/catalog"
	"engage/internal/queue"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if detail, ok := statDir(path); !ok {
		return Result{Name: name, Detail: detail}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckLibraryRoot verifies that the media library is a readable directory
// that yields at least one program.
func CheckLibraryRoot(name, path string) Result {
	if detail, ok := statDir(path); !ok {
		return Result{Name: name, Detail: detail}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	stats := cat.Stats()
	if stats.Programs == 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: no programs found)", path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d programs, %d items)", path, stats.Programs, stats.Items)}
}

// CheckDefaultProfile verifies that default.xml, when present, parses against
// the current library. A missing default passes because it is rebuilt on start.
func CheckDefaultProfile(_ context.Context, libraryDir, profileDir string) Result {
	const name = "Default profile"
	path := filepath.Join(profileDir, "default.xml")
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (absent; created on first run)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	defer f.Close()

	cat, err := catalog.Load(libraryDir)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	profile, report, err := queue.Decode(f, "default", cat)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	detail := fmt.Sprintf("%s (%d programs)", path, len(profile.Programs()))
	if n := len(report.Unresolved); n > 0 {
		detail = fmt.Sprintf("%s (%d programs, %d missing files)", path, len(profile.Programs()), n)
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

func statDir(path string) (string, bool) {
	if path == "" {
		return "(error: not configured)", false
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Sprintf("%s (error: does not exist)", path), false
		}
		return fmt.Sprintf("%s (error: stat: %v)", path, err), false
	}
	if !info.IsDir() {
		return fmt.Sprintf("%s (error: is not a directory)", path), false
	}
	return "", true
}
