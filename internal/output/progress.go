package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

const ruleWidth = 56

// Section returns a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(strings.ToUpper(title))
	rule := StyleMuted.Render(strings.Repeat("─", ruleWidth))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}

// Stat returns one "label  value" line.
func Stat(label, value string) string {
	return fmt.Sprintf(" %s %s", StyleLabel.Render(label), StyleValue.Render(value))
}

// Count formats n with comma grouping.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// Bar renders value as a share of maxValue, for example "██████░░░░".
func Bar(value, maxValue, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := 0
	if maxValue > 0 {
		filled = value * width / maxValue
	}
	filled = min(max(filled, 0), width)
	return StyleAccent.Render(strings.Repeat("█", filled)) + StyleMuted.Render(strings.Repeat("░", width-filled))
}

// Progress prints pipeline steps to a writer, normally stderr.
type Progress struct {
	w     io.Writer
	quiet bool
}

// NewProgress returns a printer writing to w. A quiet printer drops steps
// but still prints warnings.
func NewProgress(w io.Writer, quiet bool) *Progress {
	return &Progress{w: w, quiet: quiet}
}

// Step prints an in-progress message.
func (p *Progress) Step(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.w, " %s %s\n", StyleMuted.Render("→"), fmt.Sprintf(format, args...))
}

// Done prints a completed step.
func (p *Progress) Done(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.w, " %s %s\n", StyleSuccess.Render("✓"), fmt.Sprintf(format, args...))
}

// Warn prints a non-fatal problem.
func (p *Progress) Warn(format string, args ...any) {
	fmt.Fprintf(p.w, " %s %s\n", StyleWarning.Render("!"), fmt.Sprintf(format, args...))
}

// Writer returns the underlying writer.
func (p *Progress) Writer() io.Writer {
	return p.w
}
