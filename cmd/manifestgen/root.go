package main

import (
	"context"

	"github.com/jamesainslie/manifestgen/pkg/manifestgen/config"
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	configErr error
	appConfig *config.Config

	rootCmd = &cobra.Command{
		Use:   "manifestgen",
		Short: "Generate the api.json file manifest for the game launcher",
		Long: `manifestgen hashes every file below the game files directory and
writes api.json, the list of files the launcher checks and downloads.

Each entry holds the path relative to the files directory (forward
slashes), the SHA-256 of the content and the size in bytes. The file
must be uploaded to the server next to the game files.

Examples:
  manifestgen                       # Hash ./files into ./api.json
  manifestgen -r build/game -o out/api.json
  manifestgen -e "*.log" -e saves   # Leave out logs and the saves folder
  manifestgen -w 8 --no-wait        # Hash 8 files at a time, exit at once
  manifestgen inspect api.json      # Summarize an existing manifest`,
		Args:              cobra.NoArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: initializeLogging,
		RunE:              runGenerate,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/manifestgen/config.yaml)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only print errors and the final result")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "mirror debug logs to stderr")

	rootCmd.Flags().StringP("root", "r", config.DefaultRoot, "directory holding the game files")
	rootCmd.Flags().StringP("output", "o", config.DefaultOutput, "manifest file to write")
	rootCmd.Flags().IntP("workers", "w", config.DefaultWorkers, "files hashed concurrently")
	rootCmd.Flags().StringSliceP("exclude", "e", nil, "glob of relative paths to leave out (repeatable)")
	rootCmd.Flags().Bool("follow-symlinks", false, "include symlinked files and directories")
	rootCmd.Flags().Bool("no-sort", false, "keep discovery order instead of sorting by path")
	rootCmd.Flags().Bool("no-wait", false, "exit without waiting for a key press")

	// Bind flags to viper
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("root", rootCmd.Flags().Lookup("root"))
	_ = viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("workers.hash", rootCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("exclude", rootCmd.Flags().Lookup("exclude"))
	_ = viper.BindPFlag("follow_symlinks", rootCmd.Flags().Lookup("follow-symlinks"))
	_ = viper.BindPFlag("console.no_wait", rootCmd.Flags().Lookup("no-wait"))
}

// initConfig reads in config file and environment variables.
func initConfig() {
	config.Configure(viper.GetViper(), cfgFile)
	configErr = config.ReadInConfig(viper.GetViper())
}

// loadConfig decodes the merged flags, environment, file and defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if configErr != nil {
		return nil, configErr
	}

	// --no-sort is the negation of the sort setting.
	if f := cmd.Flags().Lookup("no-sort"); f != nil && f.Changed {
		viper.Set("sort", f.Value.String() != "true")
	}

	return config.Unmarshal(viper.GetViper())
}

// Execute runs the root command.
func Execute() error {
	defer func() { _ = logging.Close() }()
	return rootCmd.ExecuteContext(context.Background())
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	return viper.GetBool("verbose")
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}
