package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jamesainslie/manifestgen/pkg/manifestgen/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage manifestgen configuration settings.

Configuration is loaded from:
  1. $XDG_CONFIG_HOME/manifestgen/config.yaml (if set)
  2. ~/.config/manifestgen/config.yaml

Environment variables can override config file settings using the
MANIFESTGEN_ prefix:
  MANIFESTGEN_ROOT=build/files
  MANIFESTGEN_WORKERS_HASH=4
  MANIFESTGEN_LOGGING_LEVEL=debug`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after merging defaults, file, environment and flags.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	Long:  `Create a commented default configuration file if one doesn't exist.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// envOverrides lists the variables config show reports when set.
var envOverrides = []string{
	"root",
	"output",
	"exclude",
	"follow_symlinks",
	"sort",
	"workers.hash",
	"workers.walk",
	"console.name_width",
	"console.no_wait",
	"logging.level",
	"logging.format",
	"logging.path",
}

// envName returns the environment variable that overrides key.
func envName(key string) string {
	return config.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	cfg := appConfig

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		fmt.Fprintf(out, "Config file: %s\n\n", configFile)
	} else {
		fmt.Fprint(out, "Config file: (using defaults, no file found)\n\n")
	}

	logPath := cfg.Logging.Path
	if logPath == "" {
		logPath = config.DefaultLogPath()
	}

	fmt.Fprintln(out, "Current Configuration:")
	fmt.Fprintln(out, "----------------------")
	fmt.Fprintf(out, "root:                 %s\n", cfg.Root)
	fmt.Fprintf(out, "output:               %s\n", cfg.Output)
	fmt.Fprintf(out, "exclude:              %v\n", cfg.Exclude)
	fmt.Fprintf(out, "follow_symlinks:      %t\n", cfg.FollowSymlinks)
	fmt.Fprintf(out, "sort:                 %t\n", cfg.Sort)
	fmt.Fprintf(out, "workers.hash:         %d\n", cfg.Workers.Hash)
	fmt.Fprintf(out, "workers.walk:         %d\n", cfg.Workers.Walk)
	fmt.Fprintf(out, "console.name_width:   %d\n", cfg.Console.NameWidth)
	fmt.Fprintf(out, "console.no_wait:      %t\n", cfg.Console.NoWait)
	fmt.Fprintf(out, "logging.level:        %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "logging.format:       %s\n", cfg.Logging.Format)
	fmt.Fprintf(out, "logging.path:         %s\n", logPath)
	fmt.Fprintf(out, "logging.rotation:     %s, %d days, %d backups, daily=%t\n",
		cfg.Logging.Rotation.MaxSize, cfg.Logging.Rotation.MaxAge,
		cfg.Logging.Rotation.MaxBackups, cfg.Logging.Rotation.Daily)

	fmt.Fprintln(out, "\nEnvironment Overrides:")
	fmt.Fprintln(out, "----------------------")
	anyOverrides := false
	for _, key := range envOverrides {
		name := envName(key)
		if val, ok := os.LookupEnv(name); ok {
			fmt.Fprintf(out, "%s=%s\n", name, val)
			anyOverrides = true
		}
	}
	if !anyOverrides {
		fmt.Fprintln(out, "(none)")
	}

	return nil
}

// runConfigInit creates a default config file.
func runConfigInit(cmd *cobra.Command, _ []string) error {
	configPath, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file already exists: %s\n", configPath)
		return nil
	}

	if _, err := config.WriteDefault(); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created default config file: %s\n", configPath)
	return nil
}

// runConfigPath shows the config file path.
func runConfigPath(cmd *cobra.Command, _ []string) error {
	configPath, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), configPath)
	return nil
}
