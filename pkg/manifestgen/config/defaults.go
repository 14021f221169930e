// Package config provides configuration management for the manifest generator.
package config

import "github.com/jamesainslie/manifestgen/pkg/manifestgen/manifest"

// AppName names the config, state and log locations.
const AppName = "manifestgen"

// EnvPrefix is the prefix for environment overrides (e.g. MANIFESTGEN_ROOT).
const EnvPrefix = "MANIFESTGEN"

// Default configuration values.
const (
	// DefaultRoot is the directory holding the game files, relative to the
	// working directory.
	DefaultRoot = "files"

	// DefaultOutput is the manifest written in the working directory.
	DefaultOutput = manifest.DefaultFilename

	// DefaultWorkers hashes one file at a time.
	DefaultWorkers = 1

	// DefaultNameWidth is how much of the current file name progress shows.
	DefaultNameWidth = 30

	// DefaultLogLevel is the file log level.
	DefaultLogLevel = "info"

	// DefaultLogMaxSize is the size at which the log file rotates.
	DefaultLogMaxSize = "10MB"

	// DefaultLogMaxAge is the number of days rotated logs are kept.
	DefaultLogMaxAge = 14

	// DefaultLogMaxBackups is the number of rotated logs kept.
	DefaultLogMaxBackups = 3
)
