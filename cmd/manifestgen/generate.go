package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jamesainslie/manifestgen/pkg/manifestgen/config"
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/console"
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/manifest"
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/scanner"
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/types"
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/walker"
	"github.com/spf13/cobra"
)

// generateOptions are the settings of one generation run.
type generateOptions struct {
	Root           string
	Output         string
	Exclude        []string
	FollowSymlinks bool
	Sort           bool
	Workers        int
	WalkWorkers    int
	NameWidth      int
}

func optionsFromConfig(cfg *config.Config) generateOptions {
	return generateOptions{
		Root:           cfg.Root,
		Output:         cfg.Output,
		Exclude:        cfg.Exclude,
		FollowSymlinks: cfg.FollowSymlinks,
		Sort:           cfg.Sort,
		Workers:        cfg.Workers.Hash,
		WalkWorkers:    cfg.Workers.Walk,
		NameWidth:      cfg.Console.NameWidth,
	}
}

// runGenerate is the root command handler.
func runGenerate(cmd *cobra.Command, _ []string) error {
	start := time.Now()
	out := cmd.OutOrStdout()
	con := console.New(out, console.WithQuiet(getQuiet()))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := optionsFromConfig(appConfig)
	logger.Info("generation started", "root", opts.Root, "output", opts.Output, "workers", opts.Workers)

	sum, err := generate(ctx, con, opts)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Warn("interrupted")
		con.Fail("interrupted by user!")
		return &reportedError{err: err}
	case err != nil:
		logger.Error("generation failed", "err", err)
		con.Error(err)
		waitForExit(cmd, con, "press any key to exit...")
		return &reportedError{err: err}
	}

	con.Summary(time.Since(start), sum)
	waitForExit(cmd, con, "press any key to finish...")
	return nil
}

// generate scans opts.Root and writes the manifest. A missing root is
// reported and yields a nil summary without error.
func generate(ctx context.Context, con *console.Console, opts generateOptions) (*manifest.Summary, error) {
	con.Header(filepath.Base(opts.Output))

	if _, err := walker.ValidateRoot(opts.Root); err != nil {
		if errors.Is(err, types.ErrRootNotFound) {
			logger.Warn("root not found", "root", opts.Root)
			con.Fail(fmt.Sprintf("directory %s not found!", opts.Root))
			con.Info(fmt.Sprintf("create a '%s' folder and put the game files in it", filepath.Base(opts.Root)))
			return nil, nil
		}
		return nil, err
	}

	con.Info(fmt.Sprintf("scanning directory %s...", opts.Root))

	sc := scanner.New(scanner.Options{
		Root:           opts.Root,
		FollowSymlinks: opts.FollowSymlinks,
		Exclude:        opts.Exclude,
		Sort:           opts.Sort,
		Workers:        opts.Workers,
		WalkWorkers:    opts.WalkWorkers,
		NameWidth:      opts.NameWidth,
		Reporter:       con,
	})

	result, err := sc.Scan(ctx)
	if err != nil {
		return nil, err
	}

	con.Info(fmt.Sprintf("saving to %s...", opts.Output))
	if err := manifest.Write(opts.Output, result.Records); err != nil {
		return nil, err
	}
	logger.Info("manifest written",
		"output", opts.Output,
		"records", len(result.Records),
		"failures", len(result.Failures))

	con.Success(fmt.Sprintf("done! created %s with %d files", opts.Output, len(result.Records)))
	con.Info(fmt.Sprintf("upload %s to the server for the launcher to work", filepath.Base(opts.Output)))

	sum := manifest.Summarize(result.Records)
	return &sum, nil
}

// waitForExit keeps the window open until a key is pressed when the run
// is interactive.
func waitForExit(cmd *cobra.Command, con *console.Console, prompt string) {
	if appConfig.Console.NoWait || !interactive(cmd.InOrStdin(), cmd.OutOrStdout()) {
		return
	}

	con.Info(prompt)
	if err := console.WaitForKey(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), ""); err != nil {
		logger.Debug("key wait failed", "err", err)
	}
}

// interactive reports whether both ends are terminals.
func interactive(in io.Reader, out io.Writer) bool {
	return console.IsTerminal(in) && console.IsTerminal(out)
}
