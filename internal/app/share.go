package app

import (
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/miguelrios/2025-compiled/internal/output"
	"github.com/miguelrios/2025-compiled/internal/report"
)

var shareCopy bool

var shareCmd = &cobra.Command{
	Use:   "share [data.json]",
	Short: "Print the share link for an existing report",
	Long: `Share rebuilds the share URL from a data.json written by an earlier run.
Without an argument it reads data.json from the configured output directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShare,
}

func init() {
	shareCmd.Flags().BoolVar(&shareCopy, "copy", false, "Copy the share URL to the clipboard")
	rootCmd.AddCommand(shareCmd)
}

func runShare(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	path := filepath.Join(s.cfg.OutputDir(s.year), "data.json")
	if len(args) == 1 {
		path = args[0]
	}
	r, err := report.LoadJSON(path)
	if err != nil {
		return err
	}

	url, err := report.ShareURL(r, s.cfg.ShareBaseURL)
	if err != nil {
		return fmt.Errorf("building share URL: %w", err)
	}
	fmt.Println(url)

	if shareCopy {
		if err := clipboard.WriteAll(url); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), output.StyleSuccess.Render("Copied to clipboard"))
	}
	return nil
}
