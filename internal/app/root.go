// Package app contains the Cobra command tree for compiled.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

// Persistent flags shared by every analysis command.
var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string

	flagYear    int
	flagTZ      string
	flagGlobal  bool
	flagSince   string
	flagUntil   string
	flagHistory bool
)

var rootCmd = &cobra.Command{
	Use:   "compiled",
	Short: "Your year with Claude Code, compiled",
	Long: `compiled reads the Claude Code conversation logs on this machine and
turns a year of prompts into a Wrapped-style story: usage numbers, your
communication style, an activity timeline and a coding persona.

Running 'compiled' with no subcommand generates the full report: an HTML
story deck, data.json, sample prompts, a SQLite export and a share link.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runWrapped,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/compiled/config.yaml)")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&flagJSON, "json", false, "Output as JSON")
	pf.BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
	pf.IntVar(&flagYear, "year", 0, "Year to compile (default: 2025 or the configured year)")
	pf.StringVar(&flagTZ, "tz", "", "IANA timezone for hour and day buckets (default: local)")
	pf.BoolVarP(&flagGlobal, "global", "g", false, "Only read ~/.claude, skipping project directories")
	pf.StringVar(&flagSince, "since", "", "Only include activity from this date (e.g. 2025-06-01, \"30 days ago\")")
	pf.StringVar(&flagUntil, "until", "", "Only include activity up to and including this date")
	pf.BoolVar(&flagHistory, "history", false, "Also read prompts from ~/.claude/history.jsonl")
}
