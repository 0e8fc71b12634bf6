package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/miguelrios/2025-compiled/internal/claude"
	"github.com/miguelrios/2025-compiled/internal/collector"
	"github.com/miguelrios/2025-compiled/internal/config"
	"github.com/miguelrios/2025-compiled/internal/judge"
	"github.com/miguelrios/2025-compiled/internal/output"
	"github.com/miguelrios/2025-compiled/internal/persona"
	"github.com/miguelrios/2025-compiled/internal/report"
	"github.com/miguelrios/2025-compiled/internal/scanner"
	"github.com/miguelrios/2025-compiled/internal/store"
	"github.com/miguelrios/2025-compiled/internal/tui"
)

var (
	wrappedAll     bool
	wrappedImages  bool
	wrappedNoJudge bool
	wrappedYes     bool
	wrappedOutput  string
	wrappedNoOpen  bool
	wrappedCopy    bool
	wrappedSeed    uint64
)

func init() {
	f := rootCmd.Flags()
	f.BoolVarP(&wrappedAll, "all", "a", false, "Use every discovered directory without asking")
	f.BoolVarP(&wrappedImages, "images", "i", false, "Generate the persona image and share card (needs GEMINI_API_KEY)")
	f.BoolVar(&wrappedNoJudge, "no-judge", false, "Skip the LLM judge and use the rule-based persona")
	f.BoolVarP(&wrappedYes, "yes", "y", false, "Do not ask for confirmation")
	f.StringVarP(&wrappedOutput, "output", "o", "", "Output directory (default: ./output/wrapped-{year})")
	f.BoolVar(&wrappedNoOpen, "no-open", false, "Do not open the report in a browser")
	f.BoolVar(&wrappedCopy, "copy", false, "Copy the share URL to the clipboard")
	f.Uint64Var(&wrappedSeed, "seed", 0, "Seed for prompt sampling and the fun fact (default: random)")
}

func runWrapped(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := newSession()
	if err != nil {
		return err
	}
	interactive := output.IsTerminal(os.Stdin) && output.IsTerminal(os.Stdout) && !flagJSON

	outDir, err := s.outputDir(wrappedOutput)
	if err != nil {
		return err
	}

	dirs, err := s.discover(flagGlobal)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		return fmt.Errorf("%w for %d", collector.ErrNoEntries, s.year)
	}
	dirs, err = chooseDirectories(dirs, interactive)
	if err != nil {
		return err
	}

	if interactive && !wrappedYes {
		ok, err := tui.Confirm(fmt.Sprintf("Compile %d from %d director%s?", s.year, len(dirs), plural(len(dirs), "y", "ies")), true, os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		if !ok {
			return tui.ErrAborted
		}
	}

	var ds *collector.Dataset
	err = withProgress(ctx, "Reading conversations", func(ctx context.Context, status func(string)) error {
		var err error
		ds, err = s.collect(ctx, dirs, s.window, flagHistory, status)
		return err
	})
	if err != nil {
		return err
	}

	a, err := s.analyze(ds, s.window.Loc())
	if err != nil {
		return err
	}

	summaries := make([]string, 0, len(ds.Summaries))
	for _, e := range ds.Summaries {
		summaries = append(summaries, e.Summary)
	}

	if s.cfg.APIKey != "" && !wrappedNoJudge && interactive && !wrappedYes {
		ok, err := tui.Confirm("Send sanitized prompt samples to Claude to judge your persona?", true, os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		s.skipJudge = !ok
	}

	var result persona.Result
	var yearSummary string
	err = withProgress(ctx, "Judging your year", func(ctx context.Context, status func(string)) error {
		result, yearSummary = s.judgeYear(ctx, a, ds.UserEntries, summaries, status)
		return nil
	})
	if err != nil {
		return err
	}

	r := report.Build(result, a.Metrics, a.Patterns, a.Timeline, yearSummary, summaries, report.Options{
		Year:         s.year,
		Version:      appVersion,
		SummaryLimit: s.cfg.SummaryLimit,
	})

	rng := newRNG(wrappedSeed)
	shareURL, err := s.writeArtifacts(ctx, &r, ds, outDir, rng)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	printWrapped(r, outDir, shareURL)

	if wrappedCopy {
		if err := clipboard.WriteAll(shareURL); err != nil {
			s.logger.Warn("could not copy share URL", "err", err)
		} else {
			fmt.Println(output.StyleSuccess.Render(" Share URL copied to clipboard"))
		}
	}

	if !wrappedNoOpen && interactive {
		if err := report.OpenBrowser(filepath.Join(outDir, "index.html")); err != nil {
			s.logger.Warn("could not open browser", "err", err)
		}
	}
	return nil
}

// chooseDirectories returns every directory when no choice is needed, and
// otherwise asks with the global directory preselected.
func chooseDirectories(dirs []scanner.Directory, interactive bool) ([]scanner.Directory, error) {
	if wrappedAll || flagGlobal || len(dirs) == 1 || !interactive {
		return dirs, nil
	}
	return tui.SelectDirectories(dirs, os.Stdin, os.Stdout)
}

// outputDir resolves and validates the output directory.
func (s *session) outputDir(flag string) (string, error) {
	dir := s.cfg.OutputDir(s.year)
	if flag != "" {
		dir = flag
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("finding working directory: %w", err)
	}
	abs, err := report.ValidateOutputPath(dir, s.home, cwd)
	if err != nil {
		return "", fmt.Errorf("invalid output path %q: %w", dir, err)
	}
	return abs, nil
}

// judgeYear asks the model for the persona and the year summary, falling back to
// the rule-based persona when the judge is disabled or fails.
func (s *session) judgeYear(ctx context.Context, a analysis, users []claude.UserEntry, summaries []string, status func(string)) (persona.Result, string) {
	fallback := persona.Fallback(persona.Classify(a.Metrics, a.Patterns, a.Timeline))
	if wrappedNoJudge || s.skipJudge {
		return fallback, judge.FallbackSummary
	}

	client, err := judge.New(s.cfg.APIKey, judge.WithModel(s.cfg.Model), judge.WithBaseURL(s.cfg.APIURL))
	if err != nil {
		if errors.Is(err, judge.ErrNoAPIKey) {
			s.logger.Info("no ANTHROPIC_API_KEY, using rule-based persona")
		} else {
			s.logger.Warn("judge unavailable", "err", err)
		}
		return fallback, judge.FallbackSummary
	}

	status(fmt.Sprintf("Asking %s for your persona", client.Model()))
	samples := judge.SamplePrompts(users, s.cfg.JudgeSamples)
	result, err := client.Evaluate(ctx, a.Metrics, a.Patterns, a.Timeline, samples)
	if err != nil {
		s.logger.Warn("persona judge failed, using rule-based persona", "err", err)
		result = fallback
	}

	status("Writing your year summary")
	summary, err := client.Summary(ctx, a.Metrics, a.Patterns, a.Timeline, persona.Lookup(result.Persona).Name, summaries)
	if err != nil {
		s.logger.Warn("summary failed", "err", err)
		summary = judge.FallbackSummary
	}
	return result, summary
}

// writeArtifacts writes every output file into outDir, generating images
// first so the deck and data.json can reference them. It returns the share
// URL.
func (s *session) writeArtifacts(ctx context.Context, r *report.Report, ds *collector.Dataset, outDir string, rng *rand.Rand) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	if wrappedImages {
		err := withProgress(ctx, "Generating images", func(ctx context.Context, _ func(string)) error {
			assets := report.GenerateAssets(ctx, *r, outDir, report.AssetOptions{
				Python: s.cfg.Python,
				Script: s.cfg.ImageScript,
				APIKey: s.cfg.GeminiAPIKey,
				Logger: s.logger,
			})
			r.PersonaImagePath = relativeTo(outDir, assets.PersonaImagePath)
			r.ShareCardPath = relativeTo(outDir, assets.ShareCardPath)
			return nil
		})
		if err != nil {
			return "", err
		}
	}

	if err := report.SaveJSON(*r, filepath.Join(outDir, "data.json")); err != nil {
		return "", fmt.Errorf("writing data.json: %w", err)
	}

	n, err := report.WriteSamplePrompts(filepath.Join(outDir, "sample_prompts.txt"), ds.UserEntries, rng)
	if err != nil {
		return "", fmt.Errorf("writing sample prompts: %w", err)
	}
	s.logger.Debug("wrote sample prompts", "count", n)

	deck := report.NewDeck(*r, report.FunFact(*r, rng), time.Now().In(s.window.Loc()))
	if err := report.WriteHTML(filepath.Join(outDir, "index.html"), deck); err != nil {
		return "", err
	}

	if s.cfg.ExportDB {
		if err := exportDB(ctx, *r, filepath.Join(outDir, config.DefaultDBName)); err != nil {
			return "", err
		}
	}

	shareURL, err := report.ShareURL(*r, s.cfg.ShareBaseURL)
	if err != nil {
		return "", fmt.Errorf("building share URL: %w", err)
	}
	return shareURL, nil
}

func exportDB(ctx context.Context, r report.Report, path string) error {
	db, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()
	if err := db.SaveReport(ctx, r); err != nil {
		return fmt.Errorf("exporting report: %w", err)
	}
	return nil
}

// relativeTo rewrites an asset path relative to the output directory so the
// deck can load it from disk.
func relativeTo(dir string, path *string) *string {
	if path == nil {
		return nil
	}
	rel, err := filepath.Rel(dir, *path)
	if err != nil {
		return path
	}
	rel = filepath.ToSlash(rel)
	return &rel
}

func newRNG(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>32|1))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func printWrapped(r report.Report, outDir, shareURL string) {
	m := r.Metrics
	fmt.Println(output.Section(fmt.Sprintf("%d compiled", r.Year)))
	fmt.Printf(" %s %s\n", r.PersonaEmoji, output.StyleAccent.Render(r.PersonaName))
	fmt.Printf(" %s\n\n", output.StyleMuted.Render(r.PersonaTagline))
	fmt.Println(output.Stat("Prompts sent", output.Count(m.TotalPrompts)))
	fmt.Println(output.Stat("Lines written", output.Count(m.LinesWritten)))
	fmt.Println(output.Stat("Files created", output.Count(m.FilesCreated)))
	fmt.Println(output.Stat("Longest streak", fmt.Sprintf("%d days", m.LongestStreak)))
	fmt.Println(output.Stat(`"You're right"`, output.Count(r.Patterns.ClaudePhrases["youreRight"])))

	fmt.Println(output.Section("Files"))
	fmt.Println(output.Stat("Story deck", filepath.Join(outDir, "index.html")))
	fmt.Println(output.Stat("Data", filepath.Join(outDir, "data.json")))
	fmt.Println(output.Stat("Share link", shareURL))
	fmt.Println()
}
