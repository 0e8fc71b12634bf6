package app

import (
	"cmp"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/miguelrios/2025-compiled/internal/analyzer"
	"github.com/miguelrios/2025-compiled/internal/output"
)

var statsTop int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the year's metrics, patterns and timeline",
	Long: `Stats reads every discovered directory and prints the numbers behind the
report without writing any files or calling the LLM judge.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsTop, "top", 5, "Rows to show in ranked lists")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	_, _, a, err := s.load(cmd.Context(), flagGlobal)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}

	renderMetrics(a.Metrics, statsTop)
	renderPatterns(a.Patterns)
	renderTimeline(a.Timeline)
	fmt.Println()
	return nil
}

type ranked struct {
	key   string
	count int
}

// rank sorts m by count descending, then key, and keeps the first n.
func rank(m map[string]int, n int) []ranked {
	out := make([]ranked, 0, len(m))
	for k, v := range m {
		out = append(out, ranked{k, v})
	}
	slices.SortFunc(out, func(a, b ranked) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.key, b.key)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func renderRanked(title string, m map[string]int, n int) {
	rows := rank(m, n)
	if len(rows) == 0 {
		return
	}
	fmt.Println(output.Section(title))
	top := rows[0].count
	for _, r := range rows {
		fmt.Printf(" %s %s %s\n", output.StyleLabel.Render(r.key), output.Bar(r.count, top, 20), output.StyleMuted.Render(output.Count(r.count)))
	}
}

func renderMetrics(m analyzer.Metrics, top int) {
	fmt.Println(output.Section("Usage"))
	fmt.Println(output.Stat("Prompts", output.Count(m.TotalPrompts)))
	fmt.Println(output.Stat("Responses", output.Count(m.TotalResponses)))
	fmt.Println(output.Stat("Conversations", output.Count(m.TotalConversations)))
	fmt.Println(output.Stat("Sessions", output.Count(m.TotalSessions)))
	fmt.Println(output.Stat("Tokens in / out", fmt.Sprintf("%s / %s", output.Count(int(m.TotalTokensIn)), output.Count(int(m.TotalTokensOut)))))
	fmt.Println(output.Stat("Lines written", output.Count(m.LinesWritten)))
	fmt.Println(output.Stat("Lines edited", output.Count(m.LinesEdited)))
	fmt.Println(output.Stat("Files created / modified", fmt.Sprintf("%s / %s", output.Count(m.FilesCreated), output.Count(m.FilesModified))))
	fmt.Println(output.Stat("Busiest day", m.BusiestDay))
	fmt.Println(output.Stat("Busiest hour", analyzer.FormatHour(m.BusiestHour)))
	fmt.Println(output.Stat("Longest streak", fmt.Sprintf("%d days", m.LongestStreak)))
	fmt.Println(output.Stat("Avg prompt length", fmt.Sprintf("%d chars", m.AvgPromptLength)))

	renderRanked("Languages", m.Languages, top)
	renderRanked("Tools", m.ToolCounts, top)
	renderRanked("Shell commands", m.BashCommands, top)
}

func renderPatterns(p analyzer.Patterns) {
	style := analyzer.DominantStyle(p)
	c := analyzer.CommunicationStats(p)

	fmt.Println(output.Section("Communication"))
	fmt.Println(output.Stat("Dominant style", style.Name))
	if style.Description != "" {
		fmt.Printf(" %s\n", output.StyleMuted.Render(style.Description))
	}
	fmt.Println(output.Stat(`"You're right"`, output.Count(p.ClaudePhrases["youreRight"])))
	fmt.Println(output.Stat("Yelled or swore", output.Count(c.YellCount)))
	fmt.Println(output.Stat("Please and thanks", output.Count(c.PoliteCount)))
	fmt.Println(output.Stat("Questions", output.Count(p.QuestionCount)))
	fmt.Println(output.Stat("Code blocks pasted", output.Count(p.CodeBlockCount)))
	fmt.Println(output.Stat("Longest prompt", fmt.Sprintf("%s chars", output.Count(p.LongestPrompt.Length))))

	renderRanked("Claude's favorite phrases", p.ClaudePhrases, 5)
}

func renderTimeline(tl analyzer.Timeline) {
	fmt.Println(output.Section("Timeline"))
	fmt.Println(output.Stat("First activity", tl.FirstActivity))
	fmt.Println(output.Stat("Last activity", tl.LastActivity))
	fmt.Println(output.Stat("Peak hour", fmt.Sprintf("%s (%s)", analyzer.FormatHour(tl.PeakHour), analyzer.TimeOfDay(tl.PeakHour))))
	fmt.Println(output.Stat("Peak day", tl.PeakDay))
	fmt.Println(output.Stat("Late-night prompts", output.Count(tl.LateNightCount)))
	fmt.Println(output.Stat("Weekend share", fmt.Sprintf("%.1f%%", tl.WeekendPercent)))

	peak := 0
	for _, n := range tl.MonthlyTrend {
		peak = max(peak, n)
	}
	fmt.Println()
	for i, n := range tl.MonthlyTrend {
		fmt.Printf(" %s %s %s\n", output.StyleLabel.Render(monthNames[i]), output.Bar(n, peak, 20), output.StyleMuted.Render(output.Count(n)))
	}
}

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
