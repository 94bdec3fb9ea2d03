package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDisplay(); err != nil {
		return err
	}
	if err := c.validateWatch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		return errors.New("paths.library_dir must be set")
	}
	if strings.TrimSpace(c.Paths.ProfileDir) == "" {
		return errors.New("paths.profile_dir must be set")
	}
	if c.Paths.ProfileDir == c.Paths.LibraryDir {
		return errors.New("paths.profile_dir must differ from paths.library_dir")
	}
	return nil
}

func (c *Config) validateDisplay() error {
	if c.Display.HeightToWidth <= 0 {
		return errors.New("display.height_to_width must be positive")
	}
	if err := ensurePositiveMap(map[string]int{
		"display.thumb_width":  c.Display.ThumbWidth,
		"display.center_width": c.Display.CenterWidth,
	}); err != nil {
		return err
	}
	if c.ThumbHeight() <= 0 || c.CenterHeight() <= 0 {
		return errors.New("display.height_to_width yields an empty rendition box")
	}
	return nil
}

func (c *Config) validateWatch() error {
	if c.Watch.Enabled && c.Watch.DebounceMS <= 0 {
		return errors.New("watch.debounce_ms must be positive when watch.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
