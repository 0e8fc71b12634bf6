package tui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/miguelrios/2025-compiled/internal/scanner"
)

// SelectModel is a checkbox list of conversation directories. The global
// directory starts checked.
type SelectModel struct {
	dirs    []scanner.Directory
	checked []bool
	cursor  int

	Confirmed bool
	Aborted   bool
}

// NewSelect returns a multiselect over dirs.
func NewSelect(dirs []scanner.Directory) SelectModel {
	checked := make([]bool, len(dirs))
	for i, d := range dirs {
		checked[i] = d.IsGlobal
	}
	return SelectModel{dirs: dirs, checked: checked}
}

func (m SelectModel) Init() tea.Cmd { return nil }

func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.Aborted = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.dirs)-1 {
			m.cursor++
		}
	case " ", "x":
		if len(m.checked) > 0 {
			m.checked[m.cursor] = !m.checked[m.cursor]
		}
	case "a":
		all := !m.allChecked()
		for i := range m.checked {
			m.checked[i] = all
		}
	case "enter":
		if len(m.Selected()) == 0 {
			return m, nil
		}
		m.Confirmed = true
		return m, tea.Quit
	}
	return m, nil
}

func (m SelectModel) allChecked() bool {
	for _, c := range m.checked {
		if !c {
			return false
		}
	}
	return true
}

// Selected returns the checked directories in list order.
func (m SelectModel) Selected() []scanner.Directory {
	var out []scanner.Directory
	for i, d := range m.dirs {
		if m.checked[i] {
			out = append(out, d)
		}
	}
	return out
}

func (m SelectModel) View() string {
	if m.Confirmed || m.Aborted {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Which conversations should go into your year?"))
	sb.WriteString("\n\n")
	for i, d := range m.dirs {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ]"
		if m.checked[i] {
			box = checkedStyle.Render("[x]")
		}
		meta := metaStyle.Render(fmt.Sprintf("%d chats, %s", d.ConversationCount, d.Size()))
		fmt.Fprintf(&sb, "%s%s %s  %s\n", cursor, box, d.ProjectName, meta)
	}
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("space toggle · a all · enter confirm · q quit"))
	sb.WriteString("\n")
	return sb.String()
}

// SelectDirectories runs the multiselect on in/out and returns the chosen
// directories, or ErrAborted.
func SelectDirectories(dirs []scanner.Directory, in io.Reader, out io.Writer) ([]scanner.Directory, error) {
	final, err := tea.NewProgram(NewSelect(dirs), tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return nil, fmt.Errorf("running directory picker: %w", err)
	}
	m := final.(SelectModel)
	if !m.Confirmed {
		return nil, ErrAborted
	}
	return m.Selected(), nil
}
