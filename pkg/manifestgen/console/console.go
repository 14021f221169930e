// Package console renders the generator's human-facing output: banners,
// status lines, the per-file progress bar and the closing summary.
package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/manifest"
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/scanner"
	"github.com/jamesainslie/manifestgen/pkg/manifestgen/types"
	"github.com/mattn/go-isatty"
)

// Line prefixes.
const (
	InfoPrefix    = "*"
	SuccessPrefix = ">"
	ErrorPrefix   = "!"
)

// DefaultBarWidth is the width of the progress bar in cells.
const DefaultBarWidth = 30

// clearLine erases from the cursor to the end of the line.
const clearLine = "\x1b[K"

// Console writes styled output. It is not safe for concurrent use; the
// scanner serializes its Reporter calls.
type Console struct {
	out   io.Writer
	quiet bool
	live  bool
	st    styles
	bar   progress.Model

	// drawing is set while an unterminated progress line is on screen.
	drawing bool
}

// Option configures a Console.
type Option func(*Console)

// WithQuiet suppresses banners, info lines and progress. Errors and
// success lines are still printed.
func WithQuiet(quiet bool) Option {
	return func(c *Console) { c.quiet = quiet }
}

// WithLive forces in-place progress redraws on or off.
func WithLive(live bool) Option {
	return func(c *Console) { c.live = live }
}

// WithBarWidth sets the progress bar width.
func WithBarWidth(width int) Option {
	return func(c *Console) {
		if width > 0 {
			c.bar.Width = width
		}
	}
}

// New creates a Console writing to out. Progress is redrawn in place when
// out is a terminal and printed one line per file otherwise.
func New(out io.Writer, opts ...Option) *Console {
	c := &Console{
		out:  out,
		live: IsTerminal(out),
		st:   newStyles(lipgloss.NewRenderer(out)),
		bar:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(DefaultBarWidth)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w interface{}) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Header prints text in a rounded banner.
func (c *Console) Header(text string) {
	if c.quiet {
		return
	}
	c.line(c.st.banner.Render(text))
}

// Info prints a status line.
func (c *Console) Info(msg string) {
	if c.quiet {
		return
	}
	c.line(c.st.info.Render(InfoPrefix) + " " + msg)
}

// Success prints a completion line.
func (c *Console) Success(msg string) {
	c.line(c.st.success.Render(SuccessPrefix) + " " + msg)
}

// Fail prints an error line.
func (c *Console) Fail(msg string) {
	c.line(c.st.danger.Render(ErrorPrefix) + " " + msg)
}

// Error prints a failure. Per-file failures name the file.
func (c *Console) Error(err error) {
	var fe *types.FileError
	if errors.As(err, &fe) {
		c.Fail(fmt.Sprintf("error processing file %s: %v", fe.Path, fe.Err))
		return
	}
	c.Fail(fmt.Sprintf("error: %v", err))
}

// Progress draws the bar for p.
func (c *Console) Progress(p types.Progress) {
	if c.quiet {
		return
	}

	text := fmt.Sprintf("%s %s %s %s",
		c.st.label.Render("scanning"),
		c.bar.ViewAs(p.Percent()),
		c.st.muted.Render(fmt.Sprintf("%d/%d", p.Current, p.Total)),
		c.st.label.Render(p.Name))

	if !c.live {
		fmt.Fprintln(c.out, text)
		return
	}

	fmt.Fprint(c.out, "\r"+text+clearLine)
	c.drawing = true
	if p.Total > 0 && p.Current >= p.Total {
		c.endProgress()
	}
}

// Summary prints the closing banner with the elapsed time and, when
// known, what the manifest covers.
func (c *Console) Summary(elapsed time.Duration, sum *manifest.Summary) {
	c.Header("info")
	c.Info("elapsed time: " + elapsed.Round(time.Millisecond).String())
	if sum != nil {
		c.Info(fmt.Sprintf("files: %s, total size: %s",
			types.FormatCount(sum.Files), types.FormatSize(sum.Bytes)))
	}
}

// line prints one full line, finishing any progress line first.
func (c *Console) line(s string) {
	c.endProgress()
	fmt.Fprintln(c.out, strings.TrimRight(s, "\n"))
}

func (c *Console) endProgress() {
	if c.drawing {
		fmt.Fprintln(c.out)
		c.drawing = false
	}
}

// Ensure Console implements scanner.Reporter.
var _ scanner.Reporter = (*Console)(nil)
