package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miguelrios/2025-compiled/internal/scanner"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m tea.Model, keys ...tea.KeyMsg) (tea.Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(k)
	}
	return m, cmd
}

func testDirs() []scanner.Directory {
	return []scanner.Directory{
		{Path: "/h/.claude", ProjectName: scanner.GlobalName, ConversationCount: 12, IsGlobal: true},
		{Path: "/h/api/.claude", ProjectName: "api", ConversationCount: 3},
		{Path: "/h/web/.claude", ProjectName: "web", ConversationCount: 1},
	}
}

func TestSelect_GlobalPreselected(t *testing.T) {
	m := NewSelect(testDirs())
	sel := m.Selected()
	require.Len(t, sel, 1)
	assert.True(t, sel[0].IsGlobal)
	assert.Contains(t, m.View(), "[x] "+scanner.GlobalName)
}

func TestSelect_ToggleAndConfirm(t *testing.T) {
	m, cmd := press(t, NewSelect(testDirs()),
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	require.NotNil(t, cmd)
	sm := m.(SelectModel)
	assert.True(t, sm.Confirmed)
	names := []string{}
	for _, d := range sm.Selected() {
		names = append(names, d.ProjectName)
	}
	assert.Equal(t, []string{scanner.GlobalName, "api"}, names)
	assert.Empty(t, sm.View())
}

func TestSelect_ToggleAll(t *testing.T) {
	m, _ := press(t, NewSelect(testDirs()), runes("a"))
	assert.Len(t, m.(SelectModel).Selected(), 3)
	m, _ = press(t, m, runes("a"))
	assert.Empty(t, m.(SelectModel).Selected())
}

func TestSelect_EnterWithNothingChecked(t *testing.T) {
	m, cmd := press(t, NewSelect(testDirs()), runes("x"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.(SelectModel).Confirmed)
}

func TestSelect_CursorBounds(t *testing.T) {
	m, _ := press(t, NewSelect(testDirs()),
		tea.KeyMsg{Type: tea.KeyUp},
		runes("j"), runes("j"), runes("j"), runes("j"),
	)
	assert.Equal(t, 2, m.(SelectModel).cursor)
}

func TestSelect_Abort(t *testing.T) {
	m, cmd := press(t, NewSelect(testDirs()), tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, m.(SelectModel).Aborted)
	assert.False(t, m.(SelectModel).Confirmed)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name    string
		def     bool
		key     tea.KeyMsg
		answer  bool
		aborted bool
	}{
		{"yes", false, runes("y"), true, false},
		{"no", true, runes("n"), false, false},
		{"enter takes default yes", true, tea.KeyMsg{Type: tea.KeyEnter}, true, false},
		{"enter takes default no", false, tea.KeyMsg{Type: tea.KeyEnter}, false, false},
		{"ctrl+c aborts", true, tea.KeyMsg{Type: tea.KeyCtrlC}, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, cmd := press(t, NewConfirm("Generate?", tc.def), tc.key)
			require.NotNil(t, cmd)
			cm := m.(ConfirmModel)
			assert.Equal(t, tc.answer, cm.Answer)
			assert.Equal(t, tc.aborted, cm.Aborted)
		})
	}
}

func TestConfirm_IgnoresOtherKeys(t *testing.T) {
	m, cmd := press(t, NewConfirm("Generate?", true), runes("z"))
	assert.Nil(t, cmd)
	assert.False(t, m.(ConfirmModel).Done)
	assert.True(t, strings.Contains(m.View(), "[Y/n]"))
}

func TestSpinner_StatusAndDone(t *testing.T) {
	m := NewSpinner("Scanning")
	assert.Contains(t, m.View(), "Scanning")

	next, _ := m.Update(statusMsg("Parsing 40 files"))
	assert.Contains(t, next.View(), "Parsing 40 files")

	next, cmd := next.Update(doneMsg{})
	require.NotNil(t, cmd)
	assert.True(t, next.(SpinnerModel).Finished)
	assert.Empty(t, next.View())
}

func TestSpinner_Interrupt(t *testing.T) {
	next, cmd := NewSpinner("x").Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, next.(SpinnerModel).Interrupted)
}
