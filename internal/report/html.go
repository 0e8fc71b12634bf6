package report

import (
	"bytes"
	"cmp"
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"os"
	"slices"
	"time"

	"github.com/yuin/goldmark"

	"github.com/miguelrios/2025-compiled/internal/analyzer"
	"github.com/miguelrios/2025-compiled/internal/persona"
)

//go:embed templates/*.html
var templateFS embed.FS

var deckTemplate = template.Must(template.New("deck.html").Funcs(template.FuncMap{
	"formatNumber": FormatNumber,
	"formatHour":   analyzer.FormatHour,
	"timeOfDay":    analyzer.TimeOfDay,
	"add":          func(a, b int) int { return a + b },
	"heatClass":    func(level int) string { return heatClasses[level] },
}).ParseFS(templateFS, "templates/deck.html"))

var heatClasses = [5]string{"bg-white/10", "bg-white/30", "bg-white/50", "bg-white/75", "bg-white"}

const heatmapDays = 30

// LanguageShare is a language row on the "your stack" slide.
type LanguageShare struct {
	Ext     string
	Count   int
	Percent int
}

// ClockSegment is one hour wedge of the 24h activity clock.
type ClockSegment struct {
	Path    string
	Opacity float64
	Peak    bool
}

// ClockLabel marks a quarter of the clock.
type ClockLabel struct {
	X, Y  float64
	Label string
}

// DayBar is one weekday column.
type DayBar struct {
	Day     string
	Count   int
	Percent int
	Height  int
	Peak    bool
}

// HeatCell is one day of the recent-activity calendar. Blank cells pad the
// first week.
type HeatCell struct {
	Blank  bool
	Day    int
	Title  string
	Level  int
	Opaque bool
}

// Deck is the view model rendered by the HTML template.
type Deck struct {
	Report

	TopLanguage  string
	TopLanguages []LanguageShare
	YoureRight   int
	Vibe         persona.Axis
	TalkStyles   [4]string
	FunFact      string

	ClockSize     int
	ClockSegments []ClockSegment
	ClockLabels   []ClockLabel

	Day     analyzer.DayPersonality
	DayBars []DayBar

	Heatmap []HeatCell

	SummaryHTML template.HTML
}

// NewDeck prepares r for rendering. The heatmap covers the 30 days ending at
// the last active day, or at now when there was no activity.
func NewDeck(r Report, funFact string, now time.Time) Deck {
	d := Deck{
		Report:      r,
		TopLanguage: "code",
		YoureRight:  r.Patterns.ClaudePhrases["youreRight"],
		Vibe:        Vibe(r),
		TalkStyles:  TalkStyles(r),
		FunFact:     funFact,
		SummaryHTML: renderMarkdown(r.YearSummary),
	}

	d.TopLanguages = topLanguages(r.Metrics.Languages, 3)
	if len(d.TopLanguages) > 0 {
		d.TopLanguage = d.TopLanguages[0].Ext
	}

	d.ClockSize, d.ClockSegments, d.ClockLabels = clock(r.Timeline.HourlyHeatmap, r.Timeline.PeakHour)

	peak := dayBars(&d, r.Timeline.WeekdayTotals)
	d.Day = analyzer.DayPersona(analyzer.Weekdays[peak])

	end := now
	if last, err := time.ParseInLocation("2006-01-02", r.Timeline.LastActivity, now.Location()); err == nil {
		end = last
	}
	d.Heatmap = heatmap(r.Timeline.DailyActivity, end)
	return d
}

// RenderHTML writes the story deck for d.
func RenderHTML(w io.Writer, d Deck) error {
	if err := deckTemplate.Execute(w, d); err != nil {
		return fmt.Errorf("rendering deck: %w", err)
	}
	return nil
}

// WriteHTML renders d into path.
func WriteHTML(path string, d Deck) error {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, d); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// renderMarkdown converts markdown text to HTML using goldmark.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

func topLanguages(languages map[string]int, n int) []LanguageShare {
	total := 0
	var shares []LanguageShare
	for ext, c := range languages {
		total += c
		shares = append(shares, LanguageShare{Ext: ext, Count: c})
	}
	slices.SortFunc(shares, func(a, b LanguageShare) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Ext, b.Ext)
	})
	if len(shares) > n {
		shares = shares[:n]
	}
	for i := range shares {
		shares[i].Percent = roundPercent(shares[i].Count, total)
	}
	return shares
}

func roundPercent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}

// clock lays out 24 ring segments with hour 0 at the top, clockwise.
func clock(hours [24]int, peakHour int) (int, []ClockSegment, []ClockLabel) {
	const (
		size        = 240
		center      = size / 2
		outerRadius = 85.0
		innerRadius = 50.0
	)
	maxActivity := 1
	for _, h := range hours {
		maxActivity = max(maxActivity, h)
	}

	point := func(radius float64, hour float64) (float64, float64) {
		angle := (hour*15 - 90) * math.Pi / 180
		return center + radius*math.Cos(angle), center + radius*math.Sin(angle)
	}

	segments := make([]ClockSegment, 24)
	var labels []ClockLabel
	for hour := range 24 {
		x1o, y1o := point(outerRadius, float64(hour))
		x2o, y2o := point(outerRadius, float64(hour+1))
		x1i, y1i := point(innerRadius, float64(hour+1))
		x2i, y2i := point(innerRadius, float64(hour))

		opacity := 0.1
		if hours[hour] > 0 {
			opacity = 0.2 + float64(hours[hour])/float64(maxActivity)*0.8
		}
		peak := hour == peakHour
		if peak {
			opacity = 1
		}
		segments[hour] = ClockSegment{
			Path: fmt.Sprintf("M %.2f %.2f A %g %g 0 0 1 %.2f %.2f L %.2f %.2f A %g %g 0 0 0 %.2f %.2f Z",
				x1o, y1o, outerRadius, outerRadius, x2o, y2o, x1i, y1i, innerRadius, innerRadius, x2i, y2i),
			Opacity: math.Round(opacity*100) / 100,
			Peak:    peak,
		}

		if hour%6 == 0 {
			x, y := point(outerRadius+12, float64(hour))
			labels = append(labels, ClockLabel{
				X: math.Round(x*100) / 100, Y: math.Round(y*100) / 100,
				Label: [...]string{"12A", "6A", "12P", "6P"}[hour/6],
			})
		}
	}
	return size, segments, labels
}

// dayBars fills d.DayBars and returns the index of the busiest weekday.
func dayBars(d *Deck, totals [7]int) int {
	total, peak := 0, 0
	for i, n := range totals {
		total += n
		if n > totals[peak] {
			peak = i
		}
	}
	d.DayBars = make([]DayBar, 7)
	for i, n := range totals {
		pct := roundPercent(n, total)
		d.DayBars[i] = DayBar{
			Day:     analyzer.Weekdays[i][:3],
			Count:   n,
			Percent: pct,
			Height:  max(8, int(float64(pct)*1.2)),
			Peak:    i == peak,
		}
	}
	return peak
}

// heatmap returns the last 30 days ending at end, padded so the first cell
// lands on its weekday column.
func heatmap(daily map[string]int, end time.Time) []HeatCell {
	maxActivity := 1
	for _, n := range daily {
		maxActivity = max(maxActivity, n)
	}

	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
	start := end.AddDate(0, 0, -(heatmapDays - 1))

	cells := make([]HeatCell, 0, heatmapDays+6)
	for range int(start.Weekday()) {
		cells = append(cells, HeatCell{Blank: true})
	}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		n := daily[day.Format("2006-01-02")]
		level := 0
		if n > 0 {
			switch ratio := float64(n) / float64(maxActivity); {
			case ratio < 0.25:
				level = 1
			case ratio < 0.5:
				level = 2
			case ratio < 0.75:
				level = 3
			default:
				level = 4
			}
		}
		cells = append(cells, HeatCell{
			Day:    day.Day(),
			Title:  fmt.Sprintf("%s %d: %d prompts", day.Format("Jan"), day.Day(), n),
			Level:  level,
			Opaque: level > 2,
		})
	}
	return cells
}
