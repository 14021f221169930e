package main

import (
	"github.com/google/uuid"
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/config"
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/logging"
	"github.com/spf13/cobra"
)

var logger = logging.Get("cli")

// initializeLogging loads the configuration and starts the log file. It
// runs before every command.
func initializeLogging(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	appConfig = cfg

	if err := logging.Init(loggingConfig(cfg, getVerbose(), uuid.NewString())); err != nil {
		return err
	}

	logger.Debug("command started", "command", cmd.CommandPath(), "log", logging.Path())
	return nil
}

// loggingConfig translates the logging section of the configuration.
func loggingConfig(cfg *config.Config, verbose bool, runID string) logging.Config {
	lc := logging.Config{
		Level:    cfg.Logging.Level,
		Format:   cfg.Logging.Format,
		Path:     cfg.Logging.Path,
		Rotation: parseRotationConfig(cfg.Logging.Rotation),
		Fields:   []interface{}{"run", runID},
	}
	if verbose {
		lc.Level = "debug"
		lc.ConsoleLevel = "debug"
	}
	return lc
}

// parseRotationConfig converts the config file form of the rotation
// settings. An empty or invalid size falls back to the default.
func parseRotationConfig(c config.RotationConfig) logging.RotationConfig {
	size, err := logging.ParseSize(c.MaxSize)
	if err != nil || size <= 0 {
		size = logging.DefaultMaxSize
	}

	return logging.RotationConfig{
		MaxSize:    size,
		MaxAge:     c.MaxAge,
		MaxBackups: c.MaxBackups,
		Daily:      c.Daily,
	}
}
