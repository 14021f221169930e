package main

import (
	"fmt"

	"github.com/jamesainslie/manifestgen/pkg/manifestgen/console"
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/manifest"
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/types"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [manifest]",
	Short: "Summarize a manifest file",
	Long: `Read a manifest and print how many files it lists and their total size.

The files on disk are not checked. Without an argument the configured
output file is read.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

// runInspect prints a summary of a manifest.
func runInspect(cmd *cobra.Command, args []string) error {
	path := manifest.DefaultFilename
	if appConfig != nil && appConfig.Output != "" {
		path = appConfig.Output
	}
	if len(args) > 0 {
		path = args[0]
	}

	records, err := manifest.Read(path)
	if err != nil {
		return err
	}

	con := console.New(cmd.OutOrStdout(), console.WithQuiet(getQuiet()))
	con.Header(path)

	sum := manifest.Summarize(records)
	con.Info("files: " + types.FormatCount(sum.Files))
	con.Info("total size: " + types.FormatSize(sum.Bytes))

	if largest, ok := largestRecord(records); ok {
		con.Info(fmt.Sprintf("largest file: %s (%s)", largest.File, types.FormatSize(largest.Size)))
	}
	return nil
}

func largestRecord(records []manifest.FileRecord) (manifest.FileRecord, bool) {
	if len(records) == 0 {
		return manifest.FileRecord{}, false
	}
	best := records[0]
	for _, r := range records[1:] {
		if r.Size > best.Size {
			best = r
		}
	}
	return best, true
}
