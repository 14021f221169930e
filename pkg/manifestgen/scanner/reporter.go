package scanner

import "github.com/jamesainslie/manifestgen/pkg/manifestgen/types"

// Reporter observes a scan. Calls are never made concurrently.
type Reporter interface {
	// Info receives a status line.
	Info(msg string)

	// Error receives a failure isolated to one file, usually a *types.FileError.
	Error(err error)

	// Progress is called exactly once per processed file.
	Progress(p types.Progress)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Info(string)             {}
func (NopReporter) Error(error)             {}
func (NopReporter) Progress(types.Progress) {}

// Ensure NopReporter implements Reporter.
var _ Reporter = NopReporter{}
