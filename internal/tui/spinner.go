package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type statusMsg string

type doneMsg struct{}

// SpinnerModel shows a spinner next to the current status line until the
// work reports done.
type SpinnerModel struct {
	spinner spinner.Model
	status  string

	Finished    bool
	Interrupted bool
}

// NewSpinner returns a spinner labelled status.
func NewSpinner(status string) SpinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = cursorStyle
	return SpinnerModel{spinner: s, status: status}
}

func (m SpinnerModel) Init() tea.Cmd { return m.spinner.Tick }

func (m SpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.status = string(msg)
		return m, nil
	case doneMsg:
		m.Finished = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Interrupted = true
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SpinnerModel) View() string {
	if m.Finished || m.Interrupted {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), m.status)
}

// Spin runs fn while a spinner renders on out. fn may update the label
// through status. Ctrl-C cancels fn's context and Spin returns once fn has
// returned.
func Spin(ctx context.Context, status string, in io.Reader, out io.Writer, fn func(ctx context.Context, status func(string)) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewSpinner(status), tea.WithInput(in), tea.WithOutput(out), tea.WithContext(ctx))

	errc := make(chan error, 1)
	go func() {
		err := fn(ctx, func(s string) { p.Send(statusMsg(s)) })
		errc <- err
		p.Send(doneMsg{})
	}()

	final, runErr := p.Run()
	if m, ok := final.(SpinnerModel); ok && m.Interrupted {
		cancel()
		<-errc
		return context.Canceled
	}
	err := <-errc
	if err != nil {
		return err
	}
	if runErr != nil && ctx.Err() == nil {
		return fmt.Errorf("running spinner: %w", runErr)
	}
	return nil
}
