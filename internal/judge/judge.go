package judge

import (
	"cmp"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/cbroglie/mustache"

	"github.com/miguelrios/2025-compiled/internal/analyzer"
	"github.com/miguelrios/2025-compiled/internal/claude"
	"github.com/miguelrios/2025-compiled/internal/persona"
)

const (
	personaMaxTokens = 1024
	summaryMaxTokens = 512

	// MaxSamples caps the prompts sent to the judge.
	MaxSamples = 500

	sampleMinLength = 20
	topLanguages    = 5
	summaryLimit    = 10

	// FallbackSummary is used when the model returns no summary text.
	FallbackSummary = "Your year with Claude was one for the books."
)

var (
	//go:embed prompts/persona.mustache
	personaTemplate string

	//go:embed prompts/summary.mustache
	summaryTemplate string
)

var jsonObjectRE = regexp.MustCompile(`(?s)\{.*\}`)

// Evaluate asks the model to pick the named persona that fits the year.
func (c *Client) Evaluate(ctx context.Context, m analyzer.Metrics, p analyzer.Patterns, tl analyzer.Timeline, samples []string) (persona.Result, error) {
	prompt, err := PersonaPrompt(m, p, tl, samples)
	if err != nil {
		return persona.Result{}, err
	}
	text, err := c.complete(ctx, prompt, personaMaxTokens)
	if err != nil {
		return persona.Result{}, fmt.Errorf("calling Claude API: %w", err)
	}
	result, err := ParseResult(text)
	if err != nil {
		return persona.Result{}, fmt.Errorf("parsing persona response: %w", err)
	}
	return result, nil
}

// Summary asks the model for a short pep talk about the year.
func (c *Client) Summary(ctx context.Context, m analyzer.Metrics, p analyzer.Patterns, tl analyzer.Timeline, personaName string, summaries []string) (string, error) {
	prompt, err := SummaryPrompt(m, p, tl, personaName, summaries)
	if err != nil {
		return "", err
	}
	text, err := c.complete(ctx, prompt, summaryMaxTokens)
	if err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}
	if text = strings.TrimSpace(text); text == "" {
		return FallbackSummary, nil
	}
	return text, nil
}

// PersonaPrompt renders the persona prompt. Samples are sanitized and capped
// at MaxSamples.
func PersonaPrompt(m analyzer.Metrics, p analyzer.Patterns, tl analyzer.Timeline, samples []string) (string, error) {
	stats := analyzer.CommunicationStats(p)

	var langs []string
	for _, l := range rankLanguages(m.Languages, topLanguages) {
		langs = append(langs, fmt.Sprintf("- .%s: %d files", l.ext, l.count))
	}
	languages := strings.Join(langs, "\n")
	if languages == "" {
		languages = "None recorded"
	}

	if len(samples) > MaxSamples {
		samples = samples[:MaxSamples]
	}
	var lines []string
	for i, s := range samples {
		lines = append(lines, fmt.Sprintf("%d. \"%s\"", i+1, Sanitize(s)))
	}
	sampleText := strings.Join(lines, "\n")
	if sampleText == "" {
		sampleText = "No samples available"
	}

	out, err := mustache.Render(personaTemplate, map[string]any{
		"totalPrompts":    m.TotalPrompts,
		"avgPromptLength": m.AvgPromptLength,
		"linesWritten":    m.LinesWritten,
		"filesCreated":    m.FilesCreated,
		"yellCount":       stats.YellCount,
		"politeCount":     stats.PoliteCount,
		"nitpickCount":    stats.NitpickCount,
		"questionCount":   p.QuestionCount,
		"languages":       languages,
		"busiestHour":     analyzer.FormatHour(tl.PeakHour),
		"busiestDay":      tl.PeakDay,
		"lateNightCount":  tl.LateNightCount,
		"longestStreak":   m.LongestStreak,
		"samplePrompts":   sampleText,
	})
	if err != nil {
		return "", fmt.Errorf("rendering persona prompt: %w", err)
	}
	return out, nil
}

// SummaryPrompt renders the year summary prompt with the first ten
// conversation summaries.
func SummaryPrompt(m analyzer.Metrics, p analyzer.Patterns, tl analyzer.Timeline, personaName string, summaries []string) (string, error) {
	stats := analyzer.CommunicationStats(p)

	top := "various"
	if ranked := rankLanguages(m.Languages, 1); len(ranked) > 0 {
		top = ranked[0].ext
	}

	if len(summaries) > summaryLimit {
		summaries = summaries[:summaryLimit]
	}
	var lines []string
	for i, s := range summaries {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, s))
	}
	summaryText := strings.Join(lines, "\n")
	if summaryText == "" {
		summaryText = "No summaries available"
	}

	out, err := mustache.Render(summaryTemplate, map[string]any{
		"totalPrompts":  m.TotalPrompts,
		"linesWritten":  m.LinesWritten,
		"filesCreated":  m.FilesCreated,
		"topLanguage":   "." + top,
		"busiestDay":    tl.PeakDay,
		"persona":       personaName,
		"yellCount":     stats.YellCount,
		"politeCount":   stats.PoliteCount,
		"nitpickCount":  stats.NitpickCount,
		"questionCount": p.QuestionCount,
		"summaries":     summaryText,
	})
	if err != nil {
		return "", fmt.Errorf("rendering summary prompt: %w", err)
	}
	return out, nil
}

type langCount struct {
	ext   string
	count int
}

func rankLanguages(languages map[string]int, n int) []langCount {
	ranked := make([]langCount, 0, len(languages))
	for ext, c := range languages {
		ranked = append(ranked, langCount{ext, c})
	}
	slices.SortFunc(ranked, func(a, b langCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.ext, b.ext)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// rawResult mirrors the JSON the model is asked for. Pointers detect
// missing fields.
type rawResult struct {
	Persona          *string  `json:"persona"`
	Confidence       *float64 `json:"confidence"`
	Reasoning        *string  `json:"reasoning"`
	SecondaryPersona *string  `json:"secondaryPersona"`
	Roast            *string  `json:"roast"`
	Compliment       *string  `json:"compliment"`
}

// ParseResult extracts the first-to-last brace span of text and validates it
// as a persona verdict. Unknown persona ids become THE_BUILDER, an unknown
// secondary persona is dropped, and confidence is clamped to [0, 1].
func ParseResult(text string) (persona.Result, error) {
	span := jsonObjectRE.FindString(text)
	if span == "" {
		return persona.Result{}, errors.New("no JSON object in response")
	}
	var raw rawResult
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		return persona.Result{}, fmt.Errorf("decoding persona JSON: %w (response was: %.200s)", err, span)
	}

	var missing []string
	if raw.Persona == nil {
		missing = append(missing, "persona")
	}
	if raw.Confidence == nil {
		missing = append(missing, "confidence")
	}
	if raw.Reasoning == nil {
		missing = append(missing, "reasoning")
	}
	if raw.Roast == nil {
		missing = append(missing, "roast")
	}
	if raw.Compliment == nil {
		missing = append(missing, "compliment")
	}
	if len(missing) > 0 {
		return persona.Result{}, fmt.Errorf("persona JSON missing %s", strings.Join(missing, ", "))
	}

	r := persona.Result{
		Persona:    *raw.Persona,
		Confidence: min(1, max(0, *raw.Confidence)),
		Reasoning:  *raw.Reasoning,
		Roast:      *raw.Roast,
		Compliment: *raw.Compliment,
	}
	if !persona.Known(r.Persona) {
		r.Persona = persona.DefaultID
	}
	if raw.SecondaryPersona != nil && persona.Known(*raw.SecondaryPersona) {
		s := *raw.SecondaryPersona
		r.SecondaryPersona = &s
	}
	return r, nil
}

// SamplePrompts returns up to limit user prompts longer than 20 characters,
// in dataset order.
func SamplePrompts(users []claude.UserEntry, limit int) []string {
	if limit <= 0 || limit > MaxSamples {
		limit = MaxSamples
	}
	var out []string
	for _, u := range users {
		if utf8.RuneCountInString(u.Content) <= sampleMinLength {
			continue
		}
		out = append(out, u.Content)
		if len(out) == limit {
			break
		}
	}
	return out
}
