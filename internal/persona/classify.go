package persona

import (
	"cmp"
	"slices"
	"strings"

	"github.com/miguelrios/2025-compiled/internal/analyzer"
)

// Deterministic is the rule-based classification of a year.
type Deterministic struct {
	Language Axis `json:"language"`
	Time     Axis `json:"time"`
	Style    Axis `json:"style"`
	Workflow Axis `json:"workflow"`

	// Primary is the axis persona promoted to headline the report.
	Primary Axis `json:"primary"`

	Roast      string `json:"combinedRoast"`
	Compliment string `json:"combinedCompliment"`
}

// Classify runs the four axis detectors, picks the primary persona and
// composes the roast and compliment. It never fails: empty input yields
// the documented defaults.
func Classify(m analyzer.Metrics, p analyzer.Patterns, tl analyzer.Timeline) Deterministic {
	d := Deterministic{
		Language: LanguageAxis(m.Languages),
		Time:     TimeAxis(tl.HourlyHeatmap, tl.WeekendPercent),
		Style:    StyleAxis(p, m.AvgPromptLength, m.TotalPrompts),
		Workflow: WorkflowAxis(m.ToolCounts),
	}
	d.Primary = primary(d)
	d.Roast = combinedRoast(d)
	d.Compliment = combinedCompliment(d)
	return d
}

// LanguageAxis picks the persona of the most used extension. With three or
// more languages and no language above half of the total, or with an
// unmapped extension, it returns DefaultLanguage. Count ties break by
// extension name.
func LanguageAxis(languages map[string]int) Axis {
	if len(languages) == 0 {
		return DefaultLanguage
	}
	type langCount struct {
		ext   string
		count int
	}
	ranked := make([]langCount, 0, len(languages))
	total := 0
	for ext, n := range languages {
		ranked = append(ranked, langCount{ext, n})
		total += n
	}
	slices.SortFunc(ranked, func(a, b langCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.ext, b.ext)
	})

	top := ranked[0]
	if len(ranked) >= 3 && percent(top.count, total) < 50 {
		return DefaultLanguage
	}
	if axis, ok := languageAxes[strings.ToLower(top.ext)]; ok {
		return axis
	}
	return DefaultLanguage
}

// TimeAxis classifies the hour-of-day distribution. weekendPercent is on
// the 0-100 scale.
func TimeAxis(hours [24]int, weekendPercent float64) Axis {
	total := 0
	for _, n := range hours {
		total += n
	}
	if total == 0 {
		return timeAxes[NineToFiver]
	}
	if weekendPercent > 50 {
		return timeAxes[WeekendWarrior]
	}

	peak := 0
	for h, n := range hours {
		if n > hours[peak] {
			peak = h
		}
	}
	if percent(hours[peak], total) < 12 {
		return timeAxes[Machine]
	}

	switch {
	case peak < 5:
		return timeAxes[Vampire]
	case peak < 8:
		return timeAxes[EarlyBird]
	case peak < 12:
		return timeAxes[MorningPerson]
	case peak < 14:
		return timeAxes[LunchCoder]
	case peak < 18:
		return timeAxes[NineToFiver]
	case peak < 21:
		return timeAxes[AfterHourer]
	default:
		return timeAxes[NightOwl]
	}
}

// StyleAxis classifies communication style. Counts are taken as a share of
// totalPrompts; with no prompts every share is zero.
func StyleAxis(p analyzer.Patterns, avgPromptLength, totalPrompts int) Axis {
	stats := analyzer.CommunicationStats(p)
	yell := percent(stats.YellCount, totalPrompts)
	polite := percent(stats.PoliteCount, totalPrompts)
	question := percent(p.QuestionCount, totalPrompts)
	exclaim := percent(p.ExclamationCount, totalPrompts)

	switch {
	case yell > 5:
		return styleAxes[Yeller]
	case question > 30:
		return styleAxes[Curious]
	case avgPromptLength < 30:
		return styleAxes[Minimalist]
	case avgPromptLength > 300:
		return styleAxes[Novelist]
	case polite > 20:
		return styleAxes[Diplomat]
	case exclaim > 15:
		return styleAxes[Enthusiast]
	case avgPromptLength > 150:
		return styleAxes[Architect]
	default:
		return styleAxes[Commander]
	}
}

// WorkflowAxis classifies tool usage by the shares of Read, Write, Edit,
// Bash, Grep and Glob among themselves.
func WorkflowAxis(toolCounts map[string]int) Axis {
	read, write, edit := toolCounts["Read"], toolCounts["Write"], toolCounts["Edit"]
	bash, search := toolCounts["Bash"], toolCounts["Grep"]+toolCounts["Glob"]

	total := read + write + edit + bash + search
	if total == 0 {
		return workflowAxes[FullStack]
	}
	share := func(n int) float64 { return float64(n) / float64(total) }

	switch {
	case share(bash) > 0.40:
		return workflowAxes[TerminalLord]
	case share(search) > 0.35:
		return workflowAxes[Detective]
	case share(read) > 0.40:
		return workflowAxes[Explorer]
	case share(write) > 0.35:
		return workflowAxes[Builder]
	case share(edit) > 0.35:
		return workflowAxes[Refactorer]
	default:
		return workflowAxes[FullStack]
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// primaryRule promotes one axis when its condition holds.
type primaryRule func(d Deterministic) (Axis, bool)

func when(pick func(Deterministic) Axis, id string) primaryRule {
	return func(d Deterministic) (Axis, bool) {
		a := pick(d)
		return a, a.ID == id
	}
}

func languageOf(d Deterministic) Axis { return d.Language }
func timeOf(d Deterministic) Axis     { return d.Time }
func styleOf(d Deterministic) Axis    { return d.Style }
func workflowOf(d Deterministic) Axis { return d.Workflow }

// primaryRules is evaluated in order; the first match wins. The language
// axis is the final default even when it is the generic polyglot.
var primaryRules = []primaryRule{
	when(styleOf, Yeller),
	when(timeOf, Vampire),
	when(timeOf, WeekendWarrior),
	when(styleOf, Minimalist),
	when(styleOf, Novelist),
	when(workflowOf, TerminalLord),
	func(d Deterministic) (Axis, bool) { return d.Language, d.Language.ID != Polyglot },
}

func primary(d Deterministic) Axis {
	for _, rule := range primaryRules {
		if a, ok := rule(d); ok {
			return a
		}
	}
	return languageOf(d)
}

// combo is a hand-written line for a pair of axis ids.
type combo struct {
	a, b string
	text string
}

var roastCombos = []combo{
	{Vampire, Yeller, "You're screaming at an AI at 3am. Your neighbors are filing complaints."},
	{TypeGuardian, Minimalist, "You type 'fix types' and expect miracles. That's not how TypeScript works."},
	{TerminalLord, Vampire, "Your terminal history from 4am reads like a cry for help."},
	{Novelist, SnakeCharmer, "Your prompts have more imports than a Python file. Which is saying something."},
}

var complimentCombos = []combo{
	{EarlyBird, Builder, "You create before the world wakes up. That's when the best work happens."},
	{TypeGuardian, Refactorer, "Type-safe refactoring. Your future self sends their thanks."},
	{Curious, Explorer, "You understand systems deeply before changing them. That's senior energy."},
	{WeekendWarrior, Enthusiast, "Your passion for coding is genuine. That energy is rare and valuable."},
}

func (d Deterministic) ids() []string {
	return []string{d.Language.ID, d.Time.ID, d.Style.ID, d.Workflow.ID}
}

func matchCombo(combos []combo, ids []string) (string, bool) {
	for _, c := range combos {
		if slices.Contains(ids, c.a) && slices.Contains(ids, c.b) {
			return c.text, true
		}
	}
	return "", false
}

func combinedRoast(d Deterministic) string {
	if text, ok := matchCombo(roastCombos, d.ids()); ok {
		return text
	}
	return d.Language.Roast
}

func combinedCompliment(d Deterministic) string {
	if text, ok := matchCombo(complimentCombos, d.ids()); ok {
		return text
	}
	return d.Language.Compliment + " " + d.Time.Compliment
}
