package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSize    string `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
	Daily      bool   `mapstructure:"daily"`
}

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level    string         `mapstructure:"level"`
	Format   string         `mapstructure:"format"`
	Path     string         `mapstructure:"path"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

// Config represents the application configuration.
type Config struct {
	Root           string   `mapstructure:"root"`
	Output         string   `mapstructure:"output"`
	Exclude        []string `mapstructure:"exclude"`
	FollowSymlinks bool     `mapstructure:"follow_symlinks"`
	Sort           bool     `mapstructure:"sort"`
	Workers        struct {
		Hash int `mapstructure:"hash"`
		Walk int `mapstructure:"walk"`
	} `mapstructure:"workers"`
	Console struct {
		NameWidth int  `mapstructure:"name_width"`
		NoWait    bool `mapstructure:"no_wait"`
	} `mapstructure:"console"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("root", DefaultRoot)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("exclude", []string{})
	v.SetDefault("follow_symlinks", false)
	v.SetDefault("sort", true)
	v.SetDefault("workers.hash", DefaultWorkers)
	v.SetDefault("workers.walk", 0)
	v.SetDefault("console.name_width", DefaultNameWidth)
	v.SetDefault("console.no_wait", false)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.path", "") // Empty means DefaultLogPath
	v.SetDefault("logging.rotation.max_size", DefaultLogMaxSize)
	v.SetDefault("logging.rotation.max_age", DefaultLogMaxAge)
	v.SetDefault("logging.rotation.max_backups", DefaultLogMaxBackups)
	v.SetDefault("logging.rotation.daily", false)
}

// Configure prepares v to read the config file and environment.
// An empty file searches the config directory for config.yaml.
func Configure(v *viper.Viper, file string) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
}

// ReadInConfig reads the config file into v. A missing file is not an error.
func ReadInConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Load loads configuration from file and environment variables.
// Config file location: $XDG_CONFIG_HOME/manifestgen/config.yaml, falling
// back to ~/.config/manifestgen/config.yaml. Environment variables are
// prefixed with MANIFESTGEN_ (e.g., MANIFESTGEN_WORKERS_HASH).
func Load(file string) (*Config, error) {
	v := viper.New()
	Configure(v, file)

	if err := ReadInConfig(v); err != nil {
		return nil, err
	}
	return Unmarshal(v)
}

// Unmarshal decodes the settings held by v.
func Unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	logPath, err := ExpandPath(cfg.Logging.Path)
	if err != nil {
		return nil, err
	}
	cfg.Logging.Path = logPath

	return &cfg, nil
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, AppName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", AppName), nil
}

// ConfigPath returns the path of the default config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// StateDir returns $XDG_STATE_HOME/manifestgen/ for log files.
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(StateDir(), AppName+".log")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, path[1:]), nil
}

// WriteDefault writes a default config file if none exists and returns its
// path. An existing file is left untouched.
func WriteDefault() (string, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to check config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write default config: %w", err)
	}

	return configPath, nil
}

// defaultConfig renders the commented default config file.
func defaultConfig() string {
	return fmt.Sprintf(`# manifestgen configuration

# Directory holding the game files (relative to the working directory)
root: %s

# Manifest written for the launcher
output: %s

# Glob patterns of relative paths to leave out, e.g. "*.log" or "saves"
exclude: []

# Include symlinked files and directories
follow_symlinks: false

# Sort records by path for reproducible manifests
sort: true

workers:
  # Files hashed concurrently (1 = sequential)
  hash: %d
  # Directory readers during enumeration (0 = automatic)
  walk: 0

console:
  # Characters of the current file name shown next to the progress bar
  name_width: %d
  # Do not wait for a key press before exiting
  no_wait: false

logging:
  # Log level: debug, info, warn, error
  level: %s
  # Log format: text, json, logfmt
  format: text
  # Log file path (empty means $XDG_STATE_HOME/manifestgen/manifestgen.log)
  path: ""
  rotation:
    max_size: %s
    max_age: %d       # days
    max_backups: %d
    daily: false
`, DefaultRoot, DefaultOutput, DefaultWorkers, DefaultNameWidth,
		DefaultLogLevel, DefaultLogMaxSize, DefaultLogMaxAge, DefaultLogMaxBackups)
}
