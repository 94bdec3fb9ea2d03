// Package config loads, normalizes, and validates Engage configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the ENGAGE_LIBRARY_DIR environment
// fallback. The Config type centralizes every knob the CLI and the profile
// store need: where the media library and instructor profiles live, the
// display geometry used to scale renditions, how the default profile is kept
// in step with the library, and logging/journal output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
