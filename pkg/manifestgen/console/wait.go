package console

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// keyWait is a program that ends on the first key press.
type keyWait struct {
	prompt string
	done   bool
}

func (m keyWait) Init() tea.Cmd { return nil }

func (m keyWait) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m keyWait) View() string {
	if m.done {
		return ""
	}
	return m.prompt
}

// WaitForKey shows prompt and blocks until a key is pressed on in or ctx
// is done. A cancelled context is not an error.
func WaitForKey(ctx context.Context, in io.Reader, out io.Writer, prompt string) error {
	p := tea.NewProgram(keyWait{prompt: prompt},
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithoutSignalHandler(),
	)

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || ctx.Err() != nil) {
		return nil
	}
	return err
}
