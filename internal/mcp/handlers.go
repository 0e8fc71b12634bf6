package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/miguelrios/2025-compiled/internal/analyzer"
	"github.com/miguelrios/2025-compiled/internal/persona"
)

// StatsResult is the wrapped_stats payload.
type StatsResult struct {
	Year int `json:"year"`
	analyzer.Metrics
}

// PersonaResult is the wrapped_persona payload.
type PersonaResult struct {
	Year    int                   `json:"year"`
	Name    string                `json:"name"`
	Tagline string                `json:"tagline"`
	Result  persona.Result        `json:"result"`
	Axes    persona.Deterministic `json:"axes"`
}

// PatternsResult is the wrapped_patterns payload.
type PatternsResult struct {
	Year          int                    `json:"year"`
	DominantStyle analyzer.Style         `json:"dominantStyle"`
	Communication analyzer.Communication `json:"communication"`
	analyzer.Patterns
}

// TimelineResult is the wrapped_timeline payload.
type TimelineResult struct {
	Year       int    `json:"year"`
	PeakHourAt string `json:"peakHourLabel"`
	TimeOfDay  string `json:"timeOfDay"`
	analyzer.Timeline
}

func (s *Server) handleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.respond(ctx, req, func(snap *Snapshot) any {
		return StatsResult{Year: snap.Year, Metrics: snap.Metrics}
	})
}

func (s *Server) handlePersona(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.respond(ctx, req, func(snap *Snapshot) any {
		axes := persona.Classify(snap.Metrics, snap.Patterns, snap.Timeline)
		result := persona.Fallback(axes)
		def := persona.Lookup(result.Persona)
		return PersonaResult{Year: snap.Year, Name: def.Name, Tagline: def.Tagline, Result: result, Axes: axes}
	})
}

func (s *Server) handlePatterns(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.respond(ctx, req, func(snap *Snapshot) any {
		return PatternsResult{
			Year:          snap.Year,
			DominantStyle: analyzer.DominantStyle(snap.Patterns),
			Communication: analyzer.CommunicationStats(snap.Patterns),
			Patterns:      snap.Patterns,
		}
	})
}

func (s *Server) handleTimeline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.respond(ctx, req, func(snap *Snapshot) any {
		return TimelineResult{
			Year:       snap.Year,
			PeakHourAt: analyzer.FormatHour(snap.Timeline.PeakHour),
			TimeOfDay:  analyzer.TimeOfDay(snap.Timeline.PeakHour),
			Timeline:   snap.Timeline,
		}
	})
}
