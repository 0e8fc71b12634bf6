package output

import (
	"bytes"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// visualLen / pad
// ---------------------------------------------------------------------------

func TestVisualLen_StripsANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain", "hello", 5},
		{"empty", "", 0},
		{"bold", "\x1b[1mhello\x1b[0m", 5},
		{"color", "\x1b[31mred\x1b[0m", 3},
		{"multiple sequences", "\x1b[1m\x1b[34mblue bold\x1b[0m", 9},
		{"box drawing", "───", 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := visualLen(tc.input); got != tc.want {
				t.Errorf("visualLen(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"needs padding", "hi", 5, "hi   "},
		{"exact width", "hello", 5, "hello"},
		{"over width", "toolong", 3, "toolong"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := pad(tc.input, tc.width); got != tc.want {
				t.Errorf("pad(%q, %d) = %q, want %q", tc.input, tc.width, got, tc.want)
			}
		})
	}

	if got := padLeft("7", 3); got != "  7" {
		t.Errorf("padLeft = %q, want %q", got, "  7")
	}
}

// ---------------------------------------------------------------------------
// Table
// ---------------------------------------------------------------------------

func TestTable_Render(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("Project", "Chats").AlignRight(1)
	tbl.AddRow("Global (~/.claude)", "120")
	tbl.AddRow("api", "7")

	out := tbl.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "─") {
		t.Error("expected separator on second line")
	}
	if !strings.HasSuffix(lines[3], "    7") {
		t.Errorf("count column not right aligned: %q", lines[3])
	}
	if visualLen(lines[2]) != visualLen(lines[3]) {
		t.Errorf("rows differ in width: %q vs %q", lines[2], lines[3])
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
}

func TestTable_EmptyHeaders(t *testing.T) {
	if out := NewTable().Render(); out != "" {
		t.Errorf("expected empty output for empty table, got %q", out)
	}
}

func TestTable_ShortAndLongRows(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("A", "B")
	tbl.AddRow("only")
	tbl.AddRow("x", "y", "dropped")

	out := tbl.Render()
	if strings.Contains(out, "dropped") {
		t.Error("extra values should be dropped")
	}
}

func TestTable_Fprint(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tbl := NewTable("Col1")
	tbl.AddRow("Val1")

	var buf bytes.Buffer
	tbl.Fprint(&buf)
	if buf.String() != tbl.String() {
		t.Error("Fprint output differs from String()")
	}
}

// ---------------------------------------------------------------------------
// Styles and helpers
// ---------------------------------------------------------------------------

func TestSetNoColor_Restores(t *testing.T) {
	SetNoColor(true)
	if got := StyleHeader.Render("test"); strings.Contains(got, "\x1b[") {
		t.Errorf("expected no ANSI codes, got %q", got)
	}
	if !IsNoColor() {
		t.Error("IsNoColor() = false after SetNoColor(true)")
	}
	SetNoColor(false)
	if IsNoColor() {
		t.Error("IsNoColor() = true after SetNoColor(false)")
	}
}

func TestBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tests := []struct {
		value, max, width int
		want              string
	}{
		{5, 10, 10, "█████░░░░░"},
		{0, 10, 4, "░░░░"},
		{20, 10, 4, "████"},
		{3, 0, 4, "░░░░"},
	}
	for _, tc := range tests {
		if got := Bar(tc.value, tc.max, tc.width); got != tc.want {
			t.Errorf("Bar(%d, %d, %d) = %q, want %q", tc.value, tc.max, tc.width, got, tc.want)
		}
	}
}

func TestProgress(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	var buf bytes.Buffer
	p := NewProgress(&buf, false)
	p.Step("loading %d files", 3)
	p.Done("done")
	if !strings.Contains(buf.String(), "→ loading 3 files") || !strings.Contains(buf.String(), "✓ done") {
		t.Errorf("unexpected progress output %q", buf.String())
	}

	buf.Reset()
	q := NewProgress(&buf, true)
	q.Step("hidden")
	q.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "! shown") {
		t.Errorf("quiet printer output %q", buf.String())
	}
}

func TestCount(t *testing.T) {
	if got := Count(1234567); got != "1,234,567" {
		t.Errorf("Count = %q", got)
	}
}
