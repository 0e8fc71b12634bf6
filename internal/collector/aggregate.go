// Package collector merges conversation logs from several Claude
// directories into one de-duplicated, time-ordered Dataset.
package collector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/miguelrios/2025-compiled/internal/claude"
	"github.com/miguelrios/2025-compiled/internal/scanner"
)

// ErrNoEntries is returned by callers that require at least one prompt.
var ErrNoEntries = errors.New("no conversations found")

// Dataset is the merged view of every parsed log. It is built once per run
// and not modified afterwards.
type Dataset struct {
	UserEntries      []claude.UserEntry
	AssistantEntries []claude.AssistantEntry
	Summaries        []claude.SummaryEntry
	TotalFiles       int
	Directories      int
}

// Options configures Aggregate.
type Options struct {
	Window claude.Window

	// Workers bounds concurrent file parsing. Zero means runtime.NumCPU().
	Workers int

	// Progress receives human-readable status lines. May be nil.
	Progress func(string)

	// Logger receives warnings for unreadable files. Defaults to slog.Default().
	Logger *slog.Logger

	// History lists history.jsonl files whose prompts are merged after the
	// transcripts.
	History []string
}

type fileJob struct {
	dir  int
	path string
}

// Aggregate parses every transcript under dirs and merges the results.
// User and assistant entries are de-duplicated by id with the first
// occurrence winning in directory-then-file order, then each sequence is
// stably sorted by timestamp. Unreadable files are logged and skipped.
func Aggregate(ctx context.Context, dirs []scanner.Directory, opts Options) (*Dataset, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	progress := opts.Progress
	if progress == nil {
		progress = func(string) {}
	}

	ds := &Dataset{Directories: len(dirs)}

	var jobs []fileJob
	for i, dir := range dirs {
		progress(fmt.Sprintf("Scanning %s...", dir.ProjectName))
		files := FindTranscripts(dir.Path, logger)
		progress(fmt.Sprintf("  Found %d conversation files", len(files)))
		ds.TotalFiles += len(files)

		for _, f := range files {
			if strings.HasSuffix(f, "history.jsonl") {
				continue
			}
			jobs = append(jobs, fileJob{dir: i, path: f})
		}
	}

	results, err := parseAll(ctx, jobs, opts, logger)
	if err != nil {
		return nil, err
	}

	m := newMerger()
	for _, tr := range results {
		m.add(tr)
	}
	for _, path := range opts.History {
		entries, err := claude.ParseHistory(path, opts.Window)
		if err != nil {
			logger.Warn("skipping unreadable history", "path", path, "error", err)
			continue
		}
		m.add(claude.Transcript{Users: entries})
	}

	ds.UserEntries = m.users
	ds.AssistantEntries = m.assistants
	ds.Summaries = m.summaries

	sort.SliceStable(ds.UserEntries, func(i, j int) bool {
		return ds.UserEntries[i].Timestamp.Before(ds.UserEntries[j].Timestamp)
	})
	sort.SliceStable(ds.AssistantEntries, func(i, j int) bool {
		return ds.AssistantEntries[i].Timestamp.Before(ds.AssistantEntries[j].Timestamp)
	})

	progress(fmt.Sprintf("Collected %d prompts and %d responses", len(ds.UserEntries), len(ds.AssistantEntries)))
	return ds, nil
}

// parseAll parses jobs concurrently. Each result lands in the slot of its
// job so the caller can merge in enumeration order.
func parseAll(ctx context.Context, jobs []fileJob, opts Options, logger *slog.Logger) ([]claude.Transcript, error) {
	results := make([]claude.Transcript, len(jobs))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tr, err := claude.ParseFile(job.path, opts.Window)
			if err != nil {
				logger.Warn("skipping unreadable file", "path", job.path, "error", err)
				return nil
			}
			results[i] = tr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parsing transcripts: %w", err)
	}
	return results, nil
}

// FindTranscripts returns every .jsonl file under root, sorted, skipping
// hidden directories. An unlistable directory contributes nothing.
func FindTranscripts(root string, logger *slog.Logger) []string {
	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if logger != nil {
				logger.Debug("cannot list directory", "path", path, "error", err)
			}
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && strings.HasSuffix(d.Name(), ".jsonl") {
			files = append(files, path)
		}
		return nil
	})
	slices.Sort(files)
	return files
}

// merger folds transcripts into one dataset with a shared id set for user
// and assistant entries.
type merger struct {
	seen       map[string]struct{}
	users      []claude.UserEntry
	assistants []claude.AssistantEntry
	summaries  []claude.SummaryEntry
}

func newMerger() *merger {
	return &merger{seen: make(map[string]struct{})}
}

func (m *merger) firstSighting(id string) bool {
	if id == "" {
		return true
	}
	if _, ok := m.seen[id]; ok {
		return false
	}
	m.seen[id] = struct{}{}
	return true
}

func (m *merger) add(tr claude.Transcript) {
	for _, u := range tr.Users {
		if m.firstSighting(u.UUID) {
			m.users = append(m.users, u)
		}
	}
	for _, a := range tr.Assistants {
		if m.firstSighting(a.UUID) {
			m.assistants = append(m.assistants, a)
		}
	}
	m.summaries = append(m.summaries, tr.Summaries...)
}
