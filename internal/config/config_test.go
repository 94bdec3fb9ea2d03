package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"engage/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("ENGAGE_LIBRARY_DIR", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLibrary := filepath.Join(tempHome, ".local", "share", "engage", "library")
	if cfg.Paths.LibraryDir != wantLibrary {
		t.Fatalf("unexpected library dir: got %q want %q", cfg.Paths.LibraryDir, wantLibrary)
	}
	if cfg.Paths.ProfileDir != filepath.Join(tempHome, ".local", "share", "engage", "profiles") {
		t.Fatalf("unexpected profile dir: %q", cfg.Paths.ProfileDir)
	}
	if !cfg.Reconcile.PruneStale {
		t.Fatal("expected stale pruning enabled by default")
	}
	if cfg.ThumbHeight() != 88 {
		t.Fatalf("expected thumb height 88, got %d", cfg.ThumbHeight())
	}
	if cfg.CenterHeight() != 421 {
		t.Fatalf("expected center height 421, got %d", cfg.CenterHeight())
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.ProfileDir, cfg.Paths.LogDir, filepath.Dir(cfg.Journal.Path)} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
	if _, err := os.Stat(cfg.Paths.LibraryDir); !os.IsNotExist(err) {
		t.Fatalf("library dir must not be created, stat err=%v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("ENGAGE_LIBRARY_DIR", "")
	configPath := filepath.Join(tempDir, "engage.toml")

	type payload struct {
		Paths struct {
			LibraryDir string `toml:"library_dir"`
			ProfileDir string `toml:"profile_dir"`
		} `toml:"paths"`
		Reconcile struct {
			PruneStale bool `toml:"prune_stale"`
		} `toml:"reconcile"`
		Display struct {
			ThumbWidth int `toml:"thumb_width"`
		} `toml:"display"`
	}
	custom := payload{}
	custom.Paths.LibraryDir = filepath.Join(tempDir, "lib")
	custom.Paths.ProfileDir = filepath.Join(tempDir, "profiles")
	custom.Reconcile.PruneStale = false
	custom.Display.ThumbWidth = 200

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected existing config at %q, got %q exists=%v", configPath, resolved, exists)
	}
	if cfg.Paths.LibraryDir != custom.Paths.LibraryDir {
		t.Fatalf("unexpected library dir %q", cfg.Paths.LibraryDir)
	}
	if cfg.Reconcile.PruneStale {
		t.Fatal("expected prune_stale false from file")
	}
	if cfg.ThumbHeight() != int(0.5625*200) {
		t.Fatalf("unexpected thumb height %d", cfg.ThumbHeight())
	}
	if cfg.Display.CenterWidth != config.Default().Display.CenterWidth {
		t.Fatalf("expected default center width, got %d", cfg.Display.CenterWidth)
	}
}

func TestLoadHonoursLibraryEnv(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Chdir(t.TempDir())
	t.Setenv("ENGAGE_LIBRARY_DIR", filepath.Join(tempDir, "usb", "Library"))

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.LibraryDir != filepath.Join(tempDir, "usb", "Library") {
		t.Fatalf("expected env library dir, got %q", cfg.Paths.LibraryDir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "zero thumb width",
			mutate: func(c *config.Config) { c.Display.ThumbWidth = 0 },
			want:   "display.thumb_width",
		},
		{
			name:   "negative ratio",
			mutate: func(c *config.Config) { c.Display.HeightToWidth = -1 },
			want:   "display.height_to_width",
		},
		{
			name:   "unknown log format",
			mutate: func(c *config.Config) { c.Logging.Format = "xml" },
			want:   "logging.format",
		},
		{
			name: "shared profile and library dir",
			mutate: func(c *config.Config) {
				c.Paths.LibraryDir = "/srv/engage"
				c.Paths.ProfileDir = "/srv/engage"
			},
			want: "paths.profile_dir",
		},
		{
			name: "watch without debounce",
			mutate: func(c *config.Config) {
				c.Watch.Enabled = true
				c.Watch.DebounceMS = 0
			},
			want: "watch.debounce_ms",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Paths.LibraryDir = "/srv/library"
			cfg.Paths.ProfileDir = "/srv/profiles"
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("ENGAGE_LIBRARY_DIR", "")
	target := filepath.Join(tempDir, "nested", "config.toml")

	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Prefetch.Workers != 4 {
		t.Fatalf("unexpected prefetch workers %d", cfg.Prefetch.Workers)
	}
}
