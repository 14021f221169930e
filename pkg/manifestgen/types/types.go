// Package types provides the data types shared by the manifest generator's
// walker, scanner, and console, along with size formatting helpers.
package types

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

// ErrRootNotFound indicates the directory to scan does not exist.
// It is a configuration problem, not a failure of the scan itself.
var ErrRootNotFound = errors.New("root directory not found")

// ErrNotDirectory indicates the scan root exists but is not a directory.
var ErrNotDirectory = errors.New("root is not a directory")

// Entry is a regular file discovered beneath the scan root.
type Entry struct {
	// Path is the host path used to open the file.
	Path string

	// Rel is the path relative to the root, always "/"-separated.
	Rel string
}

// FileError is a failure isolated to a single path. The scan continues
// past it and the path is left out of the manifest.
type FileError struct {
	// Path is the "/"-separated path relative to the scan root.
	Path string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Progress is a snapshot sent once per processed file.
type Progress struct {
	// Current is the 1-based index of the file just processed.
	Current int

	// Total is the number of files discovered in the enumeration pass.
	Total int

	// Name is the relative path of the file, truncated for display.
	Name string
}

// Percent returns the completed fraction in the range [0, 1].
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return 1
	}
	f := float64(p.Current) / float64(p.Total)
	if f > 1 {
		return 1
	}
	return f
}

// FormatSize converts a size in bytes to a human-readable IEC string.
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatCount formats an integer with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// Truncate shortens s to at most width runes, keeping the beginning.
// A width of zero or less disables truncation.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width])
}
