package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LibraryDir string `toml:"library_dir"`
	ProfileDir string `toml:"profile_dir"`
	LogDir     string `toml:"log_dir"`
}

// Display describes the presentation geometry renditions are scaled for.
type Display struct {
	// HeightToWidth is the height/width ratio of the target display (9/16).
	HeightToWidth float64 `toml:"height_to_width"`
	ThumbWidth    int     `toml:"thumb_width"`
	CenterWidth   int     `toml:"center_width"`
}

// Reconcile controls how the default profile tracks the media library.
type Reconcile struct {
	// PruneStale removes programs and stations from the default profile once
	// their directories disappear from the library. When false the default
	// profile only ever gains entries.
	PruneStale bool `toml:"prune_stale"`
}

// Prefetch controls the startup decode pass.
type Prefetch struct {
	Enabled    bool `toml:"enabled"`
	Thumbnails bool `toml:"thumbnails"`
	Full       bool `toml:"full"`
	Workers    int  `toml:"workers"`
}

// Watch controls library change detection.
type Watch struct {
	Enabled    bool `toml:"enabled"`
	DebounceMS int  `toml:"debounce_ms"`
}

// Journal contains configuration for the activity journal database.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Engage.
//
// Configuration sections by subsystem:
//   - Paths: media library, instructor profiles, and logs
//   - Display: rendition geometry
//   - Reconcile: default profile maintenance policy
//   - Prefetch: startup decode pass
//   - Watch: library change detection
//   - Journal: activity journal database
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Display   Display   `toml:"display"`
	Reconcile Reconcile `toml:"reconcile"`
	Prefetch  Prefetch  `toml:"prefetch"`
	Watch     Watch     `toml:"watch"`
	Journal   Journal   `toml:"journal"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/engage/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if os.IsNotExist(err) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %q is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("engage.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories Engage writes to. The library
// directory is read-only input and is never created here.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ProfileDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if c.Journal.Enabled && strings.TrimSpace(c.Journal.Path) != "" {
		if err := os.MkdirAll(filepath.Dir(c.Journal.Path), 0o755); err != nil {
			return fmt.Errorf("create journal directory: %w", err)
		}
	}
	return nil
}

// ThumbHeight returns the thumbnail box height derived from the display ratio.
func (c *Config) ThumbHeight() int {
	return int(c.Display.HeightToWidth * float64(c.Display.ThumbWidth))
}

// CenterHeight returns the center (stage) box height derived from the display ratio.
func (c *Config) CenterHeight() int {
	return int(c.Display.HeightToWidth * float64(c.Display.CenterWidth))
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
