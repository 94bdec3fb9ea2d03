package config

const (
	defaultLibraryDir     = "~/.local/share/engage/library"
	defaultProfileDir     = "~/.local/share/engage/profiles"
	defaultLogDir         = "~/.local/share/engage/logs"
	defaultJournalPath    = "~/.local/share/engage/journal.db"
	defaultHeightToWidth  = 0.5625
	defaultThumbWidth     = 158
	defaultCenterWidth    = 750
	defaultPrefetchWorker = 4
	defaultWatchDebounce  = 500
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			ProfileDir: defaultProfileDir,
			LogDir:     defaultLogDir,
		},
		Display: Display{
			HeightToWidth: defaultHeightToWidth,
			ThumbWidth:    defaultThumbWidth,
			CenterWidth:   defaultCenterWidth,
		},
		Reconcile: Reconcile{
			PruneStale: true,
		},
		Prefetch: Prefetch{
			Enabled:    true,
			Thumbnails: true,
			Full:       false,
			Workers:    defaultPrefetchWorker,
		},
		Watch: Watch{
			Enabled:    false,
			DebounceMS: defaultWatchDebounce,
		},
		Journal: Journal{
			Enabled: true,
			Path:    defaultJournalPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
