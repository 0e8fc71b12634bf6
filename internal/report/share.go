package report

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/miguelrios/2025-compiled/internal/analyzer"
	"github.com/miguelrios/2025-compiled/internal/persona"
)

// DefaultShareBaseURL is the hosted deck that decodes the ?d= payload.
const DefaultShareBaseURL = "https://blog.parcha.dev/static/2025-compiled?d="

// SharePayload is the compact subset of a report embedded in a share URL.
type SharePayload struct {
	Metrics  ShareMetrics  `json:"metrics"`
	Timeline ShareTimeline `json:"timeline"`
	Claude   ShareClaude   `json:"claude"`
}

type ShareMetrics struct {
	TotalPrompts   int            `json:"totalPrompts"`
	LinesWritten   int            `json:"linesWritten"`
	TotalResponses int            `json:"totalResponses"`
	FilesCreated   int            `json:"filesCreated"`
	TotalSessions  int            `json:"totalSessions"`
	LongestStreak  int            `json:"longestStreak"`
	Languages      map[string]int `json:"languages"`
	YoureRight     int            `json:"youreRight"`
}

type ShareTimeline struct {
	PeakHour      int            `json:"peakHour"`
	HourlyHeatmap [24]int        `json:"hourlyHeatmap"`
	WeekdayTotals [7]int         `json:"weekdayTotals"`
	DailyActivity map[string]int `json:"dailyActivity"`
}

type ShareClaude struct {
	VibeEmoji      string `json:"vibeEmoji"`
	VibeName       string `json:"vibeName"`
	VibeDesc       string `json:"vibeDesc"`
	TalkStyle1     string `json:"talkStyle1"`
	TalkStyle2     string `json:"talkStyle2"`
	TalkStyle3     string `json:"talkStyle3"`
	TalkStyle4     string `json:"talkStyle4"`
	PersonaEmoji   string `json:"personaEmoji"`
	PersonaName    string `json:"personaName"`
	PersonaTagline string `json:"personaTagline"`
	PersonaDesc    string `json:"personaDesc"`
	Roast          string `json:"roast"`
	Hype           string `json:"hype"`
	Summary        string `json:"summary"`
}

// Vibe is the communication-style axis shown on the "your vibe" slide.
func Vibe(r Report) persona.Axis {
	return persona.StyleAxis(r.Patterns, r.Metrics.AvgPromptLength, r.Metrics.TotalPrompts)
}

// TalkStyles describes how the user talks to Claude in four lines.
func TalkStyles(r Report) [4]string {
	c := analyzer.CommunicationStats(r.Patterns)
	return [4]string{
		fmt.Sprintf("Yelled or swore %s times", humanize.Comma(int64(c.YellCount))),
		fmt.Sprintf("Said please or thanks %s times", humanize.Comma(int64(c.PoliteCount))),
		fmt.Sprintf("Nitpicked %s times", humanize.Comma(int64(c.NitpickCount))),
		fmt.Sprintf("Asked %s questions", humanize.Comma(int64(c.QuestionCount))),
	}
}

// NewSharePayload extracts the share payload from r.
func NewSharePayload(r Report) SharePayload {
	vibe := Vibe(r)
	talk := TalkStyles(r)
	return SharePayload{
		Metrics: ShareMetrics{
			TotalPrompts:   r.Metrics.TotalPrompts,
			LinesWritten:   r.Metrics.LinesWritten,
			TotalResponses: r.Metrics.TotalResponses,
			FilesCreated:   r.Metrics.FilesCreated,
			TotalSessions:  r.Metrics.TotalSessions,
			LongestStreak:  r.Metrics.LongestStreak,
			Languages:      r.Metrics.Languages,
			YoureRight:     r.Patterns.ClaudePhrases["youreRight"],
		},
		Timeline: ShareTimeline{
			PeakHour:      r.Timeline.PeakHour,
			HourlyHeatmap: r.Timeline.HourlyHeatmap,
			WeekdayTotals: r.Timeline.WeekdayTotals,
			DailyActivity: r.Timeline.DailyActivity,
		},
		Claude: ShareClaude{
			VibeEmoji:      vibe.Emoji,
			VibeName:       vibe.Name,
			VibeDesc:       vibe.Tagline,
			TalkStyle1:     talk[0],
			TalkStyle2:     talk[1],
			TalkStyle3:     talk[2],
			TalkStyle4:     talk[3],
			PersonaEmoji:   r.PersonaEmoji,
			PersonaName:    r.PersonaName,
			PersonaTagline: r.PersonaTagline,
			PersonaDesc:    r.PersonaDescription,
			Roast:          r.Roast,
			Hype:           r.Compliment,
			Summary:        r.YearSummary,
		},
	}
}

// EncodeShare gzips the JSON payload and encodes it as unpadded URL-safe
// base64.
func EncodeShare(p SharePayload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshaling share payload: %w", err)
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return "", fmt.Errorf("compressing share payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compressing share payload: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeShare reverses EncodeShare.
func DecodeShare(encoded string) (SharePayload, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return SharePayload{}, fmt.Errorf("decoding share payload: %w", err)
	}
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return SharePayload{}, fmt.Errorf("decompressing share payload: %w", err)
	}
	defer zr.Close()
	data, err := io.ReadAll(zr)
	if err != nil {
		return SharePayload{}, fmt.Errorf("decompressing share payload: %w", err)
	}
	var p SharePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return SharePayload{}, fmt.Errorf("parsing share payload: %w", err)
	}
	return p, nil
}

// ShareURL returns base followed by the encoded payload of r. An empty base
// uses DefaultShareBaseURL.
func ShareURL(r Report, base string) (string, error) {
	if base == "" {
		base = DefaultShareBaseURL
	}
	encoded, err := EncodeShare(NewSharePayload(r))
	if err != nil {
		return "", err
	}
	return base + encoded, nil
}
