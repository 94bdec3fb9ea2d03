package preflight

import (
	"context"
	"path/filepath"

	"engage/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	library := CheckLibraryRoot("Library directory", cfg.Paths.LibraryDir)
	results = append(results, library)
	results = append(results, CheckDirectoryAccess("Profile directory", cfg.Paths.ProfileDir))
	if library.Passed {
		results = append(results, CheckDefaultProfile(ctx, cfg.Paths.LibraryDir, cfg.Paths.ProfileDir))
	}
	if cfg.Journal.Enabled {
		results = append(results, CheckDirectoryAccess("Journal directory", filepath.Dir(cfg.Journal.Path)))
	}
	return results
}
