package console

import "github.com/charmbracelet/lipgloss"

// Colors from the ANSI 256-color palette.
const (
	ColorBanner  = lipgloss.Color("51")  // cyan
	ColorInfo    = lipgloss.Color("39")  // blue
	ColorSuccess = lipgloss.Color("42")  // green
	ColorDanger  = lipgloss.Color("196") // red
	ColorMuted   = lipgloss.Color("245") // gray
)

// styles are bound to the renderer of one output so color detection
// follows that writer rather than os.Stdout.
type styles struct {
	banner  lipgloss.Style
	info    lipgloss.Style
	success lipgloss.Style
	danger  lipgloss.Style
	muted   lipgloss.Style
	label   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		banner: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBanner).
			Padding(0, 1),
		info:    r.NewStyle().Foreground(ColorInfo),
		success: r.NewStyle().Foreground(ColorSuccess),
		danger:  r.NewStyle().Foreground(ColorDanger),
		muted:   r.NewStyle().Foreground(ColorMuted),
		label:   r.NewStyle().Foreground(ColorBanner),
	}
}
