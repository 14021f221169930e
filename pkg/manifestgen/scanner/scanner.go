package scanner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jamesainslie/manifestgen/pkg/manifestgen/logging"
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/manifest"
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/types"
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/walker"
	"golang.org/x/sync/errgroup"
)

var logger = logging.Get("scanner")

// Outcome is the result of processing one discovered file: either a
// record or the error that kept it out of the manifest.
type Outcome struct {
	// Index is the position of the entry in discovery order.
	Index int

	// Entry is the file that was processed.
	Entry types.Entry

	// Record is valid when Err is nil.
	Record manifest.FileRecord

	// Err is the cause of a per-file failure, if any.
	Err error
}

// OK reports whether the file made it into the manifest.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Result contains the outcome of a complete scan.
type Result struct {
	// Records are the manifest entries, in discovery (or sorted) order.
	Records []manifest.FileRecord

	// Failures are the paths left out of the manifest and why.
	Failures []types.FileError

	// Discovered is the number of files found by the enumeration pass.
	Discovered int

	// TotalBytes is the sum of all recorded sizes.
	TotalBytes int64

	// Elapsed is the wall time of the scan.
	Elapsed time.Duration
}

// Scanner turns a directory into manifest records.
type Scanner struct {
	opts Options

	// mu serializes reporter calls and the processed counter.
	mu        sync.Mutex
	processed int
	total     int
}

// New creates a new Scanner with the given options.
// Options are validated and defaults are applied.
func New(opts Options) *Scanner {
	_ = opts.Validate()
	return &Scanner{opts: opts}
}

// Scan enumerates and hashes every file beneath the root.
// It blocks until complete or the context is cancelled; on cancellation no
// partial result is returned.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	startTime := time.Now()
	log := logger.With("root", s.opts.Root)

	// Pass 1: full enumeration so the total is known up front.
	s.opts.Reporter.Info("building file list...")
	entries, walkErrs, err := walker.Walk(ctx, s.opts.Root, walker.Options{
		FollowSymlinks: s.opts.FollowSymlinks,
		Exclude:        s.opts.Exclude,
		Sort:           s.opts.Sort,
		Workers:        s.opts.WalkWorkers,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		Records:    make([]manifest.FileRecord, 0, len(entries)),
		Discovered: len(entries),
	}

	for i := range walkErrs {
		fe := walkErrs[i]
		log.Warn("walk error", "path", fe.Path, "err", fe.Err)
		s.opts.Reporter.Error(&fe)
		result.Failures = append(result.Failures, fe)
	}

	s.total = len(entries)
	s.processed = 0
	s.opts.Reporter.Info(fmt.Sprintf("files found: %d", len(entries)))
	log.Info("enumeration complete", "files", len(entries), "walk_errors", len(walkErrs))

	// Pass 2: hash each file.
	outcomes, err := s.process(ctx, entries)
	if err != nil {
		log.Warn("scan aborted", "err", err)
		return nil, err
	}

	for _, out := range outcomes {
		if !out.OK() {
			result.Failures = append(result.Failures, types.FileError{Path: out.Entry.Rel, Err: out.Err})
			continue
		}
		result.Records = append(result.Records, out.Record)
		result.TotalBytes += out.Record.Size
	}

	result.Elapsed = time.Since(startTime)
	log.Info("scan complete",
		"records", len(result.Records),
		"failures", len(result.Failures),
		"bytes", result.TotalBytes,
		"elapsed", result.Elapsed)

	return result, nil
}

// process hashes entries sequentially or with a bounded pool and returns
// outcomes in discovery order.
func (s *Scanner) process(ctx context.Context, entries []types.Entry) ([]Outcome, error) {
	outcomes := make([]Outcome, len(entries))

	if s.opts.Workers <= 1 {
		for i, e := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			outcomes[i] = s.processOne(ctx, i, e)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return outcomes, nil
	}

	// Per-file errors are carried in outcomes, so no goroutine returns an
	// error and one failure never cancels the others.
	var g errgroup.Group
	g.SetLimit(s.opts.Workers)
	for i, e := range entries {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outcomes[i] = s.processOne(ctx, i, e)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// processOne hashes a single entry and reports it.
func (s *Scanner) processOne(ctx context.Context, index int, e types.Entry) Outcome {
	out := Outcome{Index: index, Entry: e}

	digest, err := s.opts.Hasher.Hash(ctx, e.Path)
	if err != nil {
		out.Err = err
	} else {
		out.Record = manifest.FileRecord{
			File: e.Rel,
			Hash: digest.Hex,
			Size: digest.Size,
		}
	}

	// A cancelled hash is not a per-file failure; the caller aborts.
	if ctx.Err() != nil {
		return out
	}

	s.report(out)
	return out
}

// report sends one progress update and, on failure, the error.
func (s *Scanner) report(out Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.processed++
	s.opts.Reporter.Progress(types.Progress{
		Current: s.processed,
		Total:   s.total,
		Name:    types.Truncate(out.Entry.Rel, s.opts.NameWidth),
	})

	if out.Err != nil {
		logger.Warn("file skipped", "file", out.Entry.Rel, "err", out.Err)
		s.opts.Reporter.Error(&types.FileError{Path: out.Entry.Rel, Err: out.Err})
		return
	}
	logger.Debug("file hashed", "file", out.Record.File, "size", out.Record.Size)
}
