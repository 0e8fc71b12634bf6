// Package tui holds the small interactive prompts of the CLI: the directory
// multiselect, a yes/no confirm and a spinner around long-running work.
package tui

import (
	"errors"

	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user quits a prompt.
var ErrAborted = errors.New("aborted")

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ef5350")).
			Bold(true)

	checkedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#66bb6a"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)
