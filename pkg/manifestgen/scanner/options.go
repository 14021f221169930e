// Package scanner builds a launcher manifest from a directory. It runs two
// passes: the walker first enumerates every file so the total is known,
// then each file is hashed and recorded. Failures on individual files are
// reported and skipped; they never abort the batch.
package scanner

import (
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/config"
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/hasher"
)

// Options configures the scanner behavior.
type Options struct {
	// Root is the directory whose files are listed in the manifest.
	Root string

	// FollowSymlinks includes symlinked files and directories.
	FollowSymlinks bool

	// Exclude contains glob patterns for relative paths to leave out.
	Exclude []string

	// Sort orders records by relative path instead of discovery order.
	Sort bool

	// Workers is the number of files hashed concurrently.
	// One keeps the scan fully sequential.
	Workers int

	// WalkWorkers bounds the directory readers used during enumeration.
	// Zero lets fastwalk choose.
	WalkWorkers int

	// NameWidth is the maximum number of runes of the current file name
	// passed to progress updates.
	NameWidth int

	// Hasher computes file digests. Nil uses SHA-256.
	Hasher hasher.Hasher

	// Reporter receives status, errors and progress. Nil discards them.
	Reporter Reporter
}

// DefaultOptions returns options matching the launcher's expectations.
func DefaultOptions() Options {
	return Options{
		Root:      config.DefaultRoot,
		Sort:      true,
		Workers:   config.DefaultWorkers,
		NameWidth: config.DefaultNameWidth,
	}
}

// Validate fills in defaults for unset or invalid values.
// It currently never fails.
func (o *Options) Validate() error {
	if o.Root == "" {
		o.Root = config.DefaultRoot
	}
	if o.Workers < 1 {
		o.Workers = config.DefaultWorkers
	}
	if o.WalkWorkers < 0 {
		o.WalkWorkers = 0
	}
	if o.NameWidth <= 0 {
		o.NameWidth = config.DefaultNameWidth
	}
	if o.Hasher == nil {
		o.Hasher = hasher.New()
	}
	if o.Reporter == nil {
		o.Reporter = NopReporter{}
	}
	return nil
}
