package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is a column-aligned table. Widths are measured in terminal cells so
// styled cells line up.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
	right   map[int]bool
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = visualLen(h)
	}
	return &Table{headers: headers, widths: widths, right: map[int]bool{}}
}

// AlignRight right-aligns the given columns, typically counts.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

// AddRow appends a row. Missing values are blank; extra values are dropped.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.headers))
	for i := range t.headers {
		if i < len(values) {
			row[i] = values[i]
		}
		t.widths[i] = max(t.widths[i], visualLen(row[i]))
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render returns the formatted table.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		sb.WriteString(" ")
		for i, cell := range cells {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(style(t.align(i, cell)))
		}
		sb.WriteString("\n")
	}

	writeRow(t.headers, func(s string) string { return StyleHeader.Render(s) })

	rules := make([]string, len(t.widths))
	for i, w := range t.widths {
		rules[i] = strings.Repeat("─", w)
	}
	writeRow(rules, func(s string) string { return StyleMuted.Render(s) })

	for _, row := range t.rows {
		writeRow(row, func(s string) string { return s })
	}
	return sb.String()
}

// String implements fmt.Stringer.
func (t *Table) String() string {
	return t.Render()
}

// Fprint writes the table to w.
func (t *Table) Fprint(w io.Writer) {
	fmt.Fprint(w, t.Render())
}

func (t *Table) align(col int, s string) string {
	if t.right[col] {
		return padLeft(s, t.widths[col])
	}
	return pad(s, t.widths[col])
}

// visualLen returns the printed width of s, ignoring ANSI sequences.
func visualLen(s string) int {
	return lipgloss.Width(s)
}

func pad(s string, width int) string {
	if n := visualLen(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := visualLen(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
