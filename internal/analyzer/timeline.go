package analyzer

import (
	"fmt"
	"math"
	"time"

	"github.com/miguelrios/2025-compiled/internal/collector"
)

const weekendWarriorThreshold = 0.4

// AnalyzeTimeline buckets user activity by hour, date, weekday and month in
// loc (time.Local when nil).
func AnalyzeTimeline(ds *collector.Dataset, loc *time.Location) Timeline {
	if loc == nil {
		loc = time.Local
	}
	tl := Timeline{DailyActivity: map[string]int{}}

	var first, last string
	for _, e := range ds.UserEntries {
		t := e.Timestamp.In(loc)
		hour := t.Hour()
		date := t.Format(dateLayout)

		tl.HourlyHeatmap[hour]++
		tl.DailyActivity[date]++
		tl.WeekdayTotals[t.Weekday()]++
		tl.MonthlyTrend[t.Month()-1]++

		if first == "" || date < first {
			first = date
		}
		if last == "" || date > last {
			last = date
		}
		if hour < 5 {
			tl.LateNightCount++
		}
	}

	tl.PeakHour = firstMax(tl.HourlyHeatmap[:])
	tl.PeakDay = Weekdays[firstMax(tl.WeekdayTotals[:])]

	total := 0
	for _, n := range tl.WeekdayTotals {
		total += n
	}
	if total > 0 {
		frac := float64(tl.WeekdayTotals[time.Saturday]+tl.WeekdayTotals[time.Sunday]) / float64(total)
		tl.WeekendWarrior = frac > weekendWarriorThreshold
		tl.WeekendPercent = frac * 100
	}

	tl.FirstActivity, tl.LastActivity = UnknownActivity, UnknownActivity
	if first != "" {
		tl.FirstActivity, tl.LastActivity = first, last
	}
	return tl
}

// FormatHour renders an hour of the day as 12am, 1am ... 11pm.
func FormatHour(hour int) string {
	switch {
	case hour == 0:
		return "12am"
	case hour == 12:
		return "12pm"
	case hour < 12:
		return fmt.Sprintf("%dam", hour)
	default:
		return fmt.Sprintf("%dpm", hour-12)
	}
}

// TimeOfDay describes an hour of the day in words.
func TimeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 9:
		return "early morning"
	case hour >= 9 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 14:
		return "lunch time"
	case hour >= 14 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 21:
		return "evening"
	case hour >= 21 || hour < 1:
		return "night"
	default:
		return "late night"
	}
}

// Streak summarizes active days.
type Streak struct {
	ActiveDays    int `json:"totalActiveDays"`
	AveragePerDay int `json:"averagePerDay"`
}

// StreakInfo counts active days and the rounded average prompts per day.
func StreakInfo(tl Timeline) Streak {
	days := len(tl.DailyActivity)
	if days == 0 {
		return Streak{}
	}
	return Streak{
		ActiveDays:    days,
		AveragePerDay: int(math.Round(float64(sum(tl.DailyActivity)) / float64(days))),
	}
}

// DayPersonality is the character of a weekday on the "your day" slide.
type DayPersonality struct {
	Name    string `json:"name"`
	Emoji   string `json:"emoji"`
	Tagline string `json:"tagline"`
}

var dayPersonas = [7]DayPersonality{
	{"THE SUNDAY SCARIES", "😰", "Prepping for Monday, one commit at a time"},
	{"THE MONDAY MANIAC", "💪", "Fresh week, fresh bugs to squash"},
	{"THE TUESDAY GRINDER", "⚙️", "Head down, code flowing"},
	{"THE HUMP DAY HERO", "🐪", "Halfway there, still shipping"},
	{"THE THURSDAY THRASHER", "🎸", "Almost Friday energy"},
	{"THE FRIDAY DEPLOYER", "🔥", "YOLO deploying to prod"},
	{"THE SATURDAY HACKER", "🌙", "Side projects don't build themselves"},
}

// DayPersona returns the personality of the named weekday. Unknown names
// map to Sunday.
func DayPersona(weekday string) DayPersonality {
	for i, name := range Weekdays {
		if name == weekday {
			return dayPersonas[i]
		}
	}
	return dayPersonas[0]
}
