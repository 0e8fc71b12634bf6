// Package output renders styled terminal text for the compiled CLI.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Palette. Red and green are the festive accents of the deck.
var (
	ColorPrimary = lipgloss.Color("#ffffff")
	ColorAccent  = lipgloss.Color("#ef5350")
	ColorSuccess = lipgloss.Color("#66bb6a")
	ColorWarning = lipgloss.Color("#fff59d")
	ColorMuted   = lipgloss.Color("#888888")
)

// Reusable styles. SetNoColor swaps them for plain renderers.
var (
	StyleHeader  lipgloss.Style
	StyleAccent  lipgloss.Style
	StyleSuccess lipgloss.Style
	StyleWarning lipgloss.Style
	StyleMuted   lipgloss.Style
	StyleBold    lipgloss.Style

	// StyleLabel is the fixed-width left column of a stat line.
	StyleLabel lipgloss.Style
	// StyleValue is the emphasized right column of a stat line.
	StyleValue lipgloss.Style
)

const labelWidth = 26

var noColor bool

func init() {
	buildStyles(false)
}

func buildStyles(plain bool) {
	fg := func(c lipgloss.Color) lipgloss.Style {
		if plain {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(c)
	}
	bold := lipgloss.NewStyle()
	if !plain {
		bold = bold.Bold(true)
	}

	StyleHeader = fg(ColorPrimary)
	StyleAccent = fg(ColorAccent)
	StyleSuccess = fg(ColorSuccess)
	StyleWarning = fg(ColorWarning)
	StyleMuted = fg(ColorMuted)
	StyleBold = bold
	if !plain {
		StyleHeader = StyleHeader.Bold(true)
		StyleAccent = StyleAccent.Bold(true)
	}
	StyleLabel = lipgloss.NewStyle().Width(labelWidth)
	StyleValue = bold
}

// SetNoColor disables or re-enables color output globally.
func SetNoColor(disabled bool) {
	noColor = disabled
	buildStyles(disabled)
}

// IsNoColor reports whether color output is disabled.
func IsNoColor() bool {
	return noColor
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// AutoColor disables color when forced, when NO_COLOR is set, or when f is
// not a terminal.
func AutoColor(f *os.File, force bool) {
	_, env := os.LookupEnv("NO_COLOR")
	SetNoColor(force || env || !IsTerminal(f))
}
