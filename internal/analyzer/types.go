// Package analyzer computes the year-in-review statistics: usage metrics,
// communication patterns and the activity timeline. Every Analyze function
// is a pure fold over a collector.Dataset.
package analyzer

// Weekdays names the days of the week, indexed like time.Weekday.
var Weekdays = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Metrics is the flat aggregate snapshot of a dataset.
type Metrics struct {
	TotalPrompts       int `json:"totalPrompts"`
	TotalResponses     int `json:"totalResponses"`
	TotalConversations int `json:"totalConversations"`

	TotalTokensIn  int64 `json:"totalTokensIn"`
	TotalTokensOut int64 `json:"totalTokensOut"`

	LinesWritten  int `json:"linesWritten"`
	LinesEdited   int `json:"linesEdited"`
	FilesCreated  int `json:"filesCreated"`
	FilesModified int `json:"filesModified"`

	// Languages maps a lowercased file extension to Write/Edit invocations.
	Languages map[string]int `json:"languages"`

	// ToolCounts maps a tool name to its invocation count.
	ToolCounts map[string]int `json:"toolCounts"`

	// BashCommands maps the effective first token of Bash commands to counts.
	BashCommands map[string]int `json:"bashCommands"`

	BusiestDay    string `json:"busiestDay"`
	BusiestHour   int    `json:"busiestHour"`
	LongestStreak int    `json:"longestStreak"`

	TotalSessions int `json:"totalSessions"`

	// AvgSessionMinutes is reserved; session durations are not derived.
	AvgSessionMinutes float64 `json:"avgSessionMinutes"`

	TotalUserChars      int `json:"totalUserChars"`
	TotalAssistantChars int `json:"totalAssistantChars"`
	AvgPromptLength     int `json:"avgPromptLength"`
}

// PromptRecord is a stored prompt with its full character length.
type PromptRecord struct {
	Text   string `json:"text"`
	Length int    `json:"length"`
}

// Patterns is the text-signal aggregate of a dataset.
type Patterns struct {
	// ClaudePhrases counts assistant stock phrases by key.
	ClaudePhrases map[string]int `json:"claudePhrases"`

	// UserFrustration is a flat copy of UserStyle["yelling"].
	UserFrustration map[string]int `json:"userFrustration"`

	// UserStyle maps style category to sub-pattern key to match count.
	UserStyle map[string]map[string]int `json:"userStyle"`

	LongestPrompt  PromptRecord `json:"longestPrompt"`
	ShortestPrompt PromptRecord `json:"shortestPrompt"`

	QuestionCount    int `json:"questionCount"`
	ExclamationCount int `json:"exclamationCount"`
	EmojiCount       int `json:"emojiCount"`
	CodeBlockCount   int `json:"codeBlockCount"`
	URLCount         int `json:"urlCount"`
}

// Timeline is the calendar aggregate of a dataset.
type Timeline struct {
	HourlyHeatmap [24]int        `json:"hourlyHeatmap"`
	DailyActivity map[string]int `json:"dailyActivity"`
	WeekdayTotals [7]int         `json:"weekdayTotals"`
	MonthlyTrend  [12]int        `json:"monthlyTrend"`

	PeakHour int    `json:"peakHour"`
	PeakDay  string `json:"peakDay"`

	LateNightCount int     `json:"lateNightCount"`
	WeekendWarrior bool    `json:"weekendWarrior"`
	WeekendPercent float64 `json:"weekendPercent"`

	FirstActivity string `json:"firstActivity"`
	LastActivity  string `json:"lastActivity"`
}

// UnknownActivity marks first/last activity when there is none.
const UnknownActivity = "Unknown"

// dateLayout is the day-bucket key format.
const dateLayout = "2006-01-02"

// firstMax returns the index of the first maximum value.
func firstMax(counts []int) int {
	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	return best
}

// sum adds up counts.
func sum[M ~map[string]int](m M) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}
