package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel is a yes/no question answered with a single key.
type ConfirmModel struct {
	prompt string
	def    bool

	Answer  bool
	Done    bool
	Aborted bool
}

// NewConfirm asks prompt; enter picks def.
func NewConfirm(prompt string, def bool) ConfirmModel {
	return ConfirmModel{prompt: prompt, def: def}
}

func (m ConfirmModel) Init() tea.Cmd { return nil }

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.Answer, m.Done = true, true
	case "n", "N":
		m.Answer, m.Done = false, true
	case "enter":
		m.Answer, m.Done = m.def, true
	case "ctrl+c", "esc", "q":
		m.Aborted = true
	default:
		return m, nil
	}
	return m, tea.Quit
}

func (m ConfirmModel) View() string {
	if m.Done || m.Aborted {
		return ""
	}
	hint := "[Y/n]"
	if !m.def {
		hint = "[y/N]"
	}
	return fmt.Sprintf("%s %s ", titleStyle.Render(m.prompt), helpStyle.Render(hint))
}

// Confirm runs a ConfirmModel on in/out.
func Confirm(prompt string, def bool, in io.Reader, out io.Writer) (bool, error) {
	final, err := tea.NewProgram(NewConfirm(prompt, def), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return false, fmt.Errorf("running prompt: %w", err)
	}
	m := final.(ConfirmModel)
	if m.Aborted {
		return false, ErrAborted
	}
	return m.Answer, nil
}
