package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/miguelrios/2025-compiled/internal/analyzer"
	"github.com/miguelrios/2025-compiled/internal/claude"
	"github.com/miguelrios/2025-compiled/internal/collector"
	"github.com/miguelrios/2025-compiled/internal/config"
	"github.com/miguelrios/2025-compiled/internal/mcp"
	"github.com/miguelrios/2025-compiled/internal/output"
	"github.com/miguelrios/2025-compiled/internal/scanner"
	"github.com/miguelrios/2025-compiled/internal/tui"
)

// session is the resolved configuration of one command invocation.
type session struct {
	cfg    *config.Config
	home   string
	year   int
	window claude.Window
	logger *slog.Logger

	// skipJudge is set when the user declines sending samples to the API.
	skipJudge bool
}

// newSession loads config and applies the persistent flags on top of it.
func newSession() (*session, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	output.AutoColor(os.Stdout, flagNoColor)
	logger := newLogger(os.Stderr, flagVerbose)
	slog.SetDefault(logger)

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}

	year := cfg.Year
	if flagYear != 0 {
		year = flagYear
	}
	tz := cfg.Timezone
	if flagTZ != "" {
		tz = flagTZ
	}
	loc, err := loadLocation(tz)
	if err != nil {
		return nil, err
	}

	w, err := buildWindow(year, loc, flagSince, flagUntil, time.Now())
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, home: home, year: year, window: w, logger: logger}, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return loc, nil
}

var dateLayouts = []string{"2006-01-02", "2006-01-02T15:04:05", time.RFC3339, "2006/01/02"}

// parseDate accepts ISO dates or natural language such as "30 days ago" and
// returns the start of that day in loc.
func parseDate(s string, now time.Time, loc *time.Location) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return startOfDay(t.In(loc)), nil
		}
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	r, err := w.Parse(s, now.In(loc))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("parsing date %q: not a date", s)
	}
	return startOfDay(r.Time.In(loc)), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// buildWindow narrows the year window with optional since/until dates. Both
// ends are inclusive days.
func buildWindow(year int, loc *time.Location, since, until string, now time.Time) (claude.Window, error) {
	w := claude.YearWindow(year, loc)
	if since != "" {
		t, err := parseDate(since, now, loc)
		if err != nil {
			return w, fmt.Errorf("--since: %w", err)
		}
		w.Since = t
	}
	if until != "" {
		t, err := parseDate(until, now, loc)
		if err != nil {
			return w, fmt.Errorf("--until: %w", err)
		}
		w.Until = t.AddDate(0, 0, 1)
	}
	if !w.Since.IsZero() && !w.Until.IsZero() && !w.Since.Before(w.Until) {
		return w, fmt.Errorf("--since %s is after --until %s", since, until)
	}
	return w, nil
}

// discover lists the conversation directories.
func (s *session) discover(globalOnly bool) ([]scanner.Directory, error) {
	dirs, err := scanner.Scan(scanner.Options{
		Home:        s.home,
		ClaudeHome:  s.cfg.ClaudeHome,
		SearchPaths: s.cfg.SearchPaths,
		GlobalOnly:  globalOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("scanning for conversations: %w", err)
	}
	return dirs, nil
}

// collect aggregates dirs inside the session window. It fails with
// collector.ErrNoEntries when no prompt falls in the window.
func (s *session) collect(ctx context.Context, dirs []scanner.Directory, w claude.Window, history bool, progress func(string)) (*collector.Dataset, error) {
	opts := collector.Options{
		Window:   w,
		Workers:  s.cfg.Workers,
		Progress: progress,
		Logger:   s.logger,
	}
	if history {
		opts.History = []string{filepath.Join(s.cfg.ClaudeHome, "history.jsonl")}
	}

	ds, err := collector.Aggregate(ctx, dirs, opts)
	if err != nil {
		return nil, fmt.Errorf("reading conversations: %w", err)
	}
	if len(ds.UserEntries) == 0 {
		return nil, fmt.Errorf("%w for %d", collector.ErrNoEntries, w.Year)
	}
	return ds, nil
}

// analysis is the output of the three engines.
type analysis struct {
	Metrics  analyzer.Metrics  `json:"metrics"`
	Patterns analyzer.Patterns `json:"patterns"`
	Timeline analyzer.Timeline `json:"timeline"`
}

func (s *session) analyze(ds *collector.Dataset, loc *time.Location) (analysis, error) {
	lex := analyzer.DefaultLexicon()
	if s.cfg.LexiconFile != "" {
		var err error
		if lex, err = analyzer.LoadLexicon(s.cfg.LexiconFile); err != nil {
			return analysis{}, fmt.Errorf("loading lexicon: %w", err)
		}
	}
	return analysis{
		Metrics:  analyzer.AnalyzeMetrics(ds, loc),
		Patterns: analyzer.AnalyzePatternsWith(ds, lex),
		Timeline: analyzer.AnalyzeTimeline(ds, loc),
	}, nil
}

// load runs discover, collect and analyze with a spinner or progress lines.
func (s *session) load(ctx context.Context, globalOnly bool) ([]scanner.Directory, *collector.Dataset, analysis, error) {
	dirs, err := s.discover(globalOnly)
	if err != nil {
		return nil, nil, analysis{}, err
	}
	var ds *collector.Dataset
	err = withProgress(ctx, "Reading conversations", func(ctx context.Context, status func(string)) error {
		var err error
		ds, err = s.collect(ctx, dirs, s.window, flagHistory, status)
		return err
	})
	if err != nil {
		return nil, nil, analysis{}, err
	}
	a, err := s.analyze(ds, s.window.Loc())
	return dirs, ds, a, err
}

// mcpLoader adapts the pipeline to the MCP server. Each call analyzes a
// whole year; --since and --until do not apply.
func (s *session) mcpLoader() mcp.Loader {
	return func(ctx context.Context, args mcp.Args) (*mcp.Snapshot, error) {
		dirs, err := s.discover(args.GlobalOnly)
		if err != nil {
			return nil, err
		}
		w := claude.YearWindow(args.Year, s.window.Loc())
		ds, err := s.collect(ctx, dirs, w, false, nil)
		if err != nil {
			return nil, err
		}
		a, err := s.analyze(ds, w.Loc())
		if err != nil {
			return nil, err
		}
		return &mcp.Snapshot{Year: args.Year, Metrics: a.Metrics, Patterns: a.Patterns, Timeline: a.Timeline}, nil
	}
}

// withProgress runs fn under a spinner on a terminal, or with step lines on
// stderr otherwise. Step lines show only with --verbose.
func withProgress(ctx context.Context, label string, fn func(ctx context.Context, status func(string)) error) error {
	if output.IsTerminal(os.Stderr) && output.IsTerminal(os.Stdin) && !flagJSON {
		return tui.Spin(ctx, label, os.Stdin, os.Stderr, fn)
	}
	p := output.NewProgress(os.Stderr, !flagVerbose)
	p.Step("%s", label)
	return fn(ctx, func(msg string) { p.Step("%s", msg) })
}
