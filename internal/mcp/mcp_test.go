package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miguelrios/2025-compiled/internal/analyzer"
	"github.com/miguelrios/2025-compiled/internal/persona"
)

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

type countingLoader struct {
	calls []Args
	err   error
}

func (l *countingLoader) load(_ context.Context, args Args) (*Snapshot, error) {
	l.calls = append(l.calls, args)
	if l.err != nil {
		return nil, l.err
	}
	snap := &Snapshot{
		Year: args.Year,
		Metrics: analyzer.Metrics{
			TotalPrompts:  42,
			LinesWritten:  1200,
			Languages:     map[string]int{"go": 9},
			ToolCounts:    map[string]int{"Edit": 5},
			LongestStreak: 4,
		},
		Patterns: analyzer.Patterns{
			ClaudePhrases: map[string]int{"youreRight": 3},
			UserStyle:     map[string]map[string]int{"polite": {"please": 2}, "curious": {"why": 9}},
			QuestionCount: 9,
		},
		Timeline: analyzer.Timeline{PeakHour: 23, PeakDay: "Friday"},
	}
	snap.Timeline.HourlyHeatmap[23] = 40
	return snap, nil
}

func TestStats_DefaultYearAndCache(t *testing.T) {
	l := &countingLoader{}
	s := NewServer(l.load, "test", 2025)
	ctx := context.Background()

	res, err := s.handleStats(ctx, makeRequest(nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.EqualValues(t, 2025, got["year"])
	assert.EqualValues(t, 42, got["totalPrompts"])
	assert.EqualValues(t, 1200, got["linesWritten"])

	// Same arguments hit the cache, even through another tool.
	_, err = s.handleTimeline(ctx, makeRequest(map[string]any{"year": 2025}))
	require.NoError(t, err)
	assert.Len(t, l.calls, 1)

	_, err = s.handleStats(ctx, makeRequest(map[string]any{"year": 2024, "global_only": true}))
	require.NoError(t, err)
	require.Len(t, l.calls, 2)
	assert.Equal(t, Args{Year: 2024, GlobalOnly: true}, l.calls[1])
}

func TestLoaderError_IsToolError(t *testing.T) {
	l := &countingLoader{err: errors.New("no conversations found for 2025")}
	s := NewServer(l.load, "test", 2025)

	res, err := s.handlePersona(context.Background(), makeRequest(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "no conversations found")

	// Failures are not cached.
	_, _ = s.handlePersona(context.Background(), makeRequest(nil))
	assert.Len(t, l.calls, 2)
}

func TestInvalidArguments(t *testing.T) {
	l := &countingLoader{}
	s := NewServer(l.load, "test", 2025)

	res, err := s.handleStats(context.Background(), makeRequest(map[string]any{"year": "last"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "invalid arguments")
	assert.Empty(t, l.calls)
}

func TestPersona(t *testing.T) {
	l := &countingLoader{}
	s := NewServer(l.load, "test", 2025)

	res, err := s.handlePersona(context.Background(), makeRequest(nil))
	require.NoError(t, err)

	var got PersonaResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.NotEmpty(t, got.Result.Persona)
	assert.NotEmpty(t, got.Name)
	assert.Equal(t, persona.NightOwl, got.Axes.Time.ID)
}

func TestPatterns(t *testing.T) {
	l := &countingLoader{}
	s := NewServer(l.load, "test", 2025)

	res, err := s.handlePatterns(context.Background(), makeRequest(nil))
	require.NoError(t, err)

	var got PatternsResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, "curious", got.DominantStyle.Name)
	assert.Equal(t, 2, got.Communication.PoliteCount)
	assert.Equal(t, 3, got.ClaudePhrases["youreRight"])
}

func TestTimeline(t *testing.T) {
	l := &countingLoader{}
	s := NewServer(l.load, "test", 2025)

	res, err := s.handleTimeline(context.Background(), makeRequest(nil))
	require.NoError(t, err)

	var got TimelineResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &got))
	assert.Equal(t, "11pm", got.PeakHourAt)
	assert.Equal(t, 40, got.HourlyHeatmap[23])
}

func TestTools_Registered(t *testing.T) {
	s := NewServer((&countingLoader{}).load, "test", 2025)
	var names []string
	for _, tool := range s.tools() {
		names = append(names, tool.Tool.Name)
		assert.Contains(t, tool.Tool.InputSchema.Properties, "year")
		assert.Contains(t, tool.Tool.InputSchema.Properties, "global_only")
	}
	assert.Equal(t, []string{"wrapped_stats", "wrapped_persona", "wrapped_patterns", "wrapped_timeline"}, names)
	assert.NotNil(t, s.MCPServer())
}
