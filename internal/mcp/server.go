// Package mcp serves the year-in-review numbers over the Model Context
// Protocol so an assistant session can ask about its own history.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/miguelrios/2025-compiled/internal/analyzer"
)

// ServerName is the MCP implementation name.
const ServerName = "2025-compiled"

// Args are the arguments every tool accepts.
type Args struct {
	Year       int  `json:"year,omitempty"`
	GlobalOnly bool `json:"global_only,omitempty"`
}

// Snapshot is one analyzed year.
type Snapshot struct {
	Year     int
	Metrics  analyzer.Metrics
	Patterns analyzer.Patterns
	Timeline analyzer.Timeline
}

// Loader scans and analyzes the logs described by args.
type Loader func(ctx context.Context, args Args) (*Snapshot, error)

// Server answers tool calls from cached snapshots.
type Server struct {
	load        Loader
	version     string
	defaultYear int

	mu    sync.Mutex
	cache map[Args]*Snapshot
}

// NewServer returns a server that calls load at most once per argument set.
func NewServer(load Loader, version string, defaultYear int) *Server {
	return &Server{
		load:        load,
		version:     version,
		defaultYear: defaultYear,
		cache:       make(map[Args]*Snapshot),
	}
}

// MCPServer builds the mcp-go server with every tool registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer(ServerName, s.version, server.WithToolCapabilities(false))
	for _, t := range s.tools() {
		srv.AddTool(t.Tool, t.Handler)
	}
	return srv
}

// ServeStdio serves MCP over stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.MCPServer())
}

func (s *Server) tools() []server.ServerTool {
	return []server.ServerTool{
		{Tool: newTool("wrapped_stats", "Usage totals for the year: prompts, responses, tokens, lines written, files, languages, tools and streaks."), Handler: s.handleStats},
		{Tool: newTool("wrapped_persona", "The rule-based coding persona for the year with its four axes, roast and compliment."), Handler: s.handlePersona},
		{Tool: newTool("wrapped_patterns", "Communication patterns: assistant stock phrases, user style counts and prompt extremes."), Handler: s.handlePatterns},
		{Tool: newTool("wrapped_timeline", "Activity timeline: hourly heatmap, daily and monthly counts, peak hour and weekend share."), Handler: s.handleTimeline},
	}
}

func newTool(name, description string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithNumber("year", mcp.Description("Calendar year to analyze (default: the configured year)")),
		mcp.WithBoolean("global_only", mcp.Description("Only read ~/.claude, skipping project directories")),
	)
}

// snapshot returns the cached snapshot for the request's arguments.
func (s *Server) snapshot(ctx context.Context, req mcp.CallToolRequest) (*Snapshot, error) {
	args, err := decode[Args](req)
	if err != nil {
		return nil, err
	}
	if args.Year == 0 {
		args.Year = s.defaultYear
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if snap, ok := s.cache[args]; ok {
		return snap, nil
	}
	snap, err := s.load(ctx, args)
	if err != nil {
		return nil, err
	}
	s.cache[args] = snap
	return snap, nil
}

// decode unmarshals the request arguments into T through JSON.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var out T
	b, err := json.Marshal(req.GetArguments())
	if err != nil {
		return out, fmt.Errorf("marshal args: %w", err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("invalid arguments: %w", err)
	}
	return out, nil
}

// respond runs build against the request's snapshot and renders the value as
// indented JSON. Failures become tool errors.
func (s *Server) respond(ctx context.Context, req mcp.CallToolRequest, build func(*Snapshot) any) (*mcp.CallToolResult, error) {
	snap, err := s.snapshot(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := json.MarshalIndent(build(snap), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
