package analyzer

import (
	"math"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/miguelrios/2025-compiled/internal/claude"
	"github.com/miguelrios/2025-compiled/internal/collector"
)

// AnalyzeMetrics computes usage metrics. Hours, dates and weekdays are
// bucketed in loc (time.Local when nil).
func AnalyzeMetrics(ds *collector.Dataset, loc *time.Location) Metrics {
	if loc == nil {
		loc = time.Local
	}
	m := Metrics{
		TotalPrompts:   len(ds.UserEntries),
		TotalResponses: len(ds.AssistantEntries),
		Languages:      map[string]int{},
		ToolCounts:     map[string]int{},
		BashCommands:   map[string]int{},
	}

	sessions := make(map[string]struct{})
	activeDays := make(map[string]struct{})
	var hours [24]int
	var weekdays [7]int

	for _, e := range ds.UserEntries {
		if e.SessionID != "" {
			sessions[e.SessionID] = struct{}{}
		}
		m.TotalUserChars += utf8.RuneCountInString(e.Content)

		t := e.Timestamp.In(loc)
		activeDays[t.Format(dateLayout)] = struct{}{}
		hours[t.Hour()]++
		weekdays[t.Weekday()]++
	}

	for _, e := range ds.AssistantEntries {
		if e.Usage != nil {
			m.TotalTokensIn += e.Usage.InputTokens
			m.TotalTokensOut += e.Usage.OutputTokens
		}
		for _, b := range e.Blocks {
			if t, ok := b.(claude.TextBlock); ok {
				m.TotalAssistantChars += utf8.RuneCountInString(t.Text)
			}
		}
		for _, use := range e.ToolUses() {
			m.ToolCounts[use.Name]++
			m.countTool(use.Typed())
		}
	}

	m.TotalSessions = len(sessions)
	m.TotalConversations = len(sessions)
	if m.TotalPrompts > 0 {
		m.AvgPromptLength = int(math.Round(float64(m.TotalUserChars) / float64(m.TotalPrompts)))
	}

	m.BusiestHour = firstMax(hours[:])
	m.BusiestDay = Weekdays[firstMax(weekdays[:])]

	days := make([]string, 0, len(activeDays))
	for d := range activeDays {
		days = append(days, d)
	}
	m.LongestStreak = LongestStreak(days)

	return m
}

func (m *Metrics) countTool(in claude.ToolInput) {
	switch v := in.(type) {
	case claude.WriteInput:
		m.LinesWritten += LineCount(v.Content)
		m.FilesCreated++
		if v.HasPath {
			m.Languages[Extension(v.FilePath)]++
		}
	case claude.EditInput:
		m.LinesEdited += LineCount(v.NewString)
		m.FilesModified++
		if v.HasPath {
			m.Languages[Extension(v.FilePath)]++
		}
	case claude.BashInput:
		if cmd, ok := BashCommand(v.Command); ok {
			m.BashCommands[cmd]++
		}
	default:
		// Other tools are only counted by name.
	}
}

// LineCount returns the number of newline-separated lines in s.
func LineCount(s string) int {
	return strings.Count(s, "\n") + 1
}

// Extension returns the lowercased extension of path without the dot, or
// "unknown". Dotfiles such as .bashrc have no extension.
func Extension(path string) string {
	base := strings.TrimLeft(filepath.Base(path), ".")
	ext := filepath.Ext(base)
	if len(ext) <= 1 {
		return "unknown"
	}
	return strings.ToLower(ext[1:])
}

// BashCommand extracts the effective command of a shell line: the first
// whitespace-separated token, or when that token is an inline VAR=value
// assignment, the first token without "=".
func BashCommand(command string) (string, bool) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", false
	}
	if !strings.Contains(fields[0], "=") {
		return fields[0], true
	}
	for _, f := range fields[1:] {
		if !strings.Contains(f, "=") {
			return f, true
		}
	}
	return "", false
}

// LongestStreak returns the longest run of consecutive calendar days in
// days (YYYY-MM-DD strings, any order, duplicates allowed). Day differences
// are computed on UTC dates so DST transitions never break a run.
func LongestStreak(days []string) int {
	var dates []time.Time
	for _, d := range days {
		t, err := time.ParseInLocation(dateLayout, d, time.UTC)
		if err != nil {
			continue
		}
		dates = append(dates, t)
	}
	if len(dates) == 0 {
		return 0
	}
	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })
	dates = slices.CompactFunc(dates, func(a, b time.Time) bool { return a.Equal(b) })

	longest, current := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i-1].AddDate(0, 0, 1).Equal(dates[i]) {
			current++
			longest = max(longest, current)
		} else {
			current = 1
		}
	}
	return longest
}
