// Package walker enumerates the regular files beneath a directory using
// fastwalk. Directories are read in parallel; the result is a fully
// materialized list so callers know the total before doing any work.
package walker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/types"
)

// Options configures a walk.
type Options struct {
	// FollowSymlinks includes symlinks that resolve to regular files and
	// descends into symlinked directories. When false, symlinks are skipped.
	FollowSymlinks bool

	// Exclude contains glob patterns (path.Match syntax) matched against the
	// "/"-separated relative path and against the base name. A matching
	// directory is pruned.
	Exclude []string

	// Sort orders entries by relative path. Without it the order is whatever
	// order the directory reads completed in.
	Sort bool

	// Workers bounds fastwalk's directory readers. Zero uses fastwalk's default.
	Workers int
}

// ValidateRoot resolves root to a clean path and checks that it is an
// existing directory. A missing root wraps types.ErrRootNotFound.
func ValidateRoot(root string) (string, error) {
	root = filepath.Clean(root)

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", types.ErrRootNotFound, root)
		}
		return "", fmt.Errorf("cannot access %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", types.ErrNotDirectory, root)
	}
	return root, nil
}

// walk holds the state shared by concurrent fastwalk callbacks.
type walk struct {
	root string
	opts Options
	ctx  context.Context

	mu      sync.Mutex
	entries []types.Entry
	errs    []types.FileError
}

// Walk returns every regular file beneath root. Per-path failures below the
// root are collected and returned alongside the entries; they do not stop
// the walk. The returned error is reserved for an unusable root or a
// cancelled context.
func Walk(ctx context.Context, root string, opts Options) ([]types.Entry, []types.FileError, error) {
	root, err := ValidateRoot(root)
	if err != nil {
		return nil, nil, err
	}

	w := &walk{root: root, opts: opts, ctx: ctx}

	conf := fastwalk.Config{
		Follow:     opts.FollowSymlinks,
		NumWorkers: opts.Workers,
	}

	walkErr := fastwalk.Walk(&conf, root, w.visit)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, nil, ctxErr
	}
	if walkErr != nil {
		return nil, nil, fmt.Errorf("walking %s: %w", root, walkErr)
	}

	if opts.Sort {
		sort.Slice(w.entries, func(i, j int) bool {
			return w.entries[i].Rel < w.entries[j].Rel
		})
		sort.Slice(w.errs, func(i, j int) bool {
			return w.errs[i].Path < w.errs[j].Path
		})
	}

	if w.entries == nil {
		w.entries = []types.Entry{}
	}
	return w.entries, w.errs, nil
}

// visit is the fastwalk callback. It may run on several goroutines at once.
func (w *walk) visit(p string, d fs.DirEntry, err error) error {
	if ctxErr := w.ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if p == w.root {
		// A failure on the root itself means there is nothing to walk.
		return err
	}

	rel := w.relative(p)

	if err != nil {
		w.addError(rel, err)
		return nil
	}

	if w.isExcluded(rel) {
		if d.IsDir() {
			return fastwalk.SkipDir
		}
		return nil
	}

	switch {
	case d.IsDir():
		return nil
	case d.Type().IsRegular():
		w.add(p, rel)
	case d.Type()&fs.ModeSymlink != 0:
		w.visitSymlink(p, rel)
	}
	// Devices, sockets and pipes are not game files.
	return nil
}

// visitSymlink includes a link to a regular file when following is enabled.
// Links to directories are traversed by fastwalk itself.
func (w *walk) visitSymlink(p, rel string) {
	if !w.opts.FollowSymlinks {
		return
	}
	info, err := os.Stat(p)
	if err != nil {
		w.addError(rel, err)
		return
	}
	if info.Mode().IsRegular() {
		w.add(p, rel)
	}
}

// relative returns p relative to the root with "/" separators.
func (w *walk) relative(p string) string {
	rel, err := filepath.Rel(w.root, p)
	if err != nil {
		rel = strings.TrimPrefix(p, w.root+string(filepath.Separator))
	}
	return filepath.ToSlash(rel)
}

func (w *walk) add(p, rel string) {
	w.mu.Lock()
	w.entries = append(w.entries, types.Entry{Path: p, Rel: rel})
	w.mu.Unlock()
}

func (w *walk) addError(rel string, err error) {
	w.mu.Lock()
	w.errs = append(w.errs, types.FileError{Path: rel, Err: err})
	w.mu.Unlock()
}

// isExcluded reports whether rel matches any exclusion pattern.
func (w *walk) isExcluded(rel string) bool {
	for _, pattern := range w.opts.Exclude {
		if matchesPattern(rel, pattern) {
			return true
		}
	}
	return false
}

// matchesPattern checks rel against a single pattern: an exact or prefix
// directory match, then a glob against the base name, then against the
// full relative path.
func matchesPattern(rel, pattern string) bool {
	pattern = strings.Trim(filepath.ToSlash(pattern), "/")
	if pattern == "" {
		return false
	}

	if rel == pattern || strings.HasPrefix(rel, pattern+"/") {
		return true
	}

	if matched, err := path.Match(pattern, path.Base(rel)); err == nil && matched {
		return true
	}

	if matched, err := path.Match(pattern, rel); err == nil && matched {
		return true
	}

	return false
}
