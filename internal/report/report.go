// Package report assembles the year-in-review report and writes its
// artifacts: the HTML deck, data.json, the sample prompts file and the
// share URL.
package report

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/miguelrios/2025-compiled/internal/analyzer"
	"github.com/miguelrios/2025-compiled/internal/persona"
)

// DefaultSummaryLimit is the number of conversation summaries kept.
const DefaultSummaryLimit = 20

// DefaultFunFact is returned when no threshold fact applies.
const DefaultFunFact = "You had a great year coding with Claude!"

// Report is the complete year-in-review document written to data.json.
type Report struct {
	ID   string `json:"id"`
	Year int    `json:"year"`

	Persona            string  `json:"persona"`
	PersonaEmoji       string  `json:"personaEmoji"`
	PersonaName        string  `json:"personaName"`
	PersonaTagline     string  `json:"personaTagline"`
	PersonaDescription string  `json:"personaDescription"`
	SecondaryPersona   *string `json:"secondaryPersona"`
	Roast              string  `json:"roast"`
	Compliment         string  `json:"compliment"`

	Metrics  analyzer.Metrics  `json:"metrics"`
	Patterns analyzer.Patterns `json:"patterns"`
	Timeline analyzer.Timeline `json:"timeline"`

	YearSummary string   `json:"yearSummary"`
	Summaries   []string `json:"summaries"`

	PersonaImagePath *string `json:"personaImagePath"`
	ShareCardPath    *string `json:"shareCardPath"`

	GeneratedAt string `json:"generatedAt"`
	Version     string `json:"version"`
}

// Options carries the report metadata that does not come from the analysis.
type Options struct {
	Year    int
	Version string

	// SummaryLimit caps Summaries. Zero means DefaultSummaryLimit.
	SummaryLimit int

	// Now stamps GeneratedAt. Defaults to time.Now.
	Now func() time.Time
}

// Build resolves the named persona of result and assembles the report.
func Build(result persona.Result, m analyzer.Metrics, p analyzer.Patterns, tl analyzer.Timeline, yearSummary string, summaries []string, opts Options) Report {
	def := persona.Lookup(result.Persona)

	limit := opts.SummaryLimit
	if limit <= 0 {
		limit = DefaultSummaryLimit
	}
	kept := make([]string, 0, min(limit, len(summaries)))
	for _, s := range summaries {
		if len(kept) == limit {
			break
		}
		kept = append(kept, s)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	return Report{
		ID:                 uuid.NewString(),
		Year:               opts.Year,
		Persona:            def.ID,
		PersonaEmoji:       def.Emoji,
		PersonaName:        def.Name,
		PersonaTagline:     def.Tagline,
		PersonaDescription: def.Description,
		SecondaryPersona:   result.SecondaryPersona,
		Roast:              result.Roast,
		Compliment:         result.Compliment,
		Metrics:            m,
		Patterns:           p,
		Timeline:           tl,
		YearSummary:        yearSummary,
		Summaries:          kept,
		GeneratedAt:        now().UTC().Format(time.RFC3339),
		Version:            opts.Version,
	}
}

// SaveJSON writes the report as indented JSON, creating the parent directory.
func SaveJSON(r Report, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// LoadJSON reads a report previously written by SaveJSON.
func LoadJSON(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return Report{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return r, nil
}

// FormatNumber abbreviates large counts: 1.2M, 3.4K, or 999 with comma
// grouping below a thousand.
func FormatNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return humanize.Comma(int64(n))
	}
}

// FunFact picks one of the threshold facts that apply to r using rng, or
// returns DefaultFunFact.
func FunFact(r Report, rng *rand.Rand) string {
	var facts []string

	switch lines := r.Metrics.LinesWritten; {
	case lines > 100_000:
		facts = append(facts, fmt.Sprintf("You wrote enough code to fill %d pages!", int(math.Round(float64(lines)/50))))
	case lines > 10_000:
		facts = append(facts, fmt.Sprintf("%s lines is like writing a small novel in code.", humanize.Comma(int64(lines))))
	}

	switch late := r.Timeline.LateNightCount; {
	case late > 100:
		facts = append(facts, fmt.Sprintf("You coded past midnight %d times. Sleep is for the weak!", late))
	case late > 20:
		facts = append(facts, fmt.Sprintf("%d late night sessions. The night owl life chose you.", late))
	}

	tools := 0
	for _, n := range r.Metrics.ToolCounts {
		tools += n
	}
	if tools > 10_000 {
		facts = append(facts, fmt.Sprintf("Claude used tools %s times for you. That's dedication.", humanize.Comma(int64(tools))))
	}

	switch right := r.Patterns.ClaudePhrases["youreRight"]; {
	case right > 100:
		facts = append(facts, fmt.Sprintf("Claude agreed with you %d times. You're basically always right.", right))
	case right > 10:
		facts = append(facts, fmt.Sprintf("\"You're absolutely right\" - Claude, %d times this year.", right))
	}

	if len(facts) == 0 {
		return DefaultFunFact
	}
	if rng == nil {
		return facts[rand.IntN(len(facts))]
	}
	return facts[rng.IntN(len(facts))]
}
