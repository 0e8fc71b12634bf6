package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/miguelrios/2025-compiled/internal/output"
	"github.com/miguelrios/2025-compiled/internal/scanner"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the Claude Code log directories on this machine",
	Long: `Scan finds the global ~/.claude directory plus every project directory
under the configured search paths that holds a .claude folder with at least
one conversation, and shows how many conversations each holds.`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	dirs, err := s.discover(flagGlobal)
	if err != nil {
		return err
	}

	if flagJSON {
		if dirs == nil {
			dirs = []scanner.Directory{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(dirs)
	}

	if len(dirs) == 0 {
		fmt.Println(output.StyleMuted.Render(" No Claude Code conversations found."))
		return nil
	}

	tbl := scanTable(dirs)
	fmt.Println(output.Section(fmt.Sprintf("%d directories", len(dirs))))
	tbl.Fprint(os.Stdout)
	return nil
}

func scanTable(dirs []scanner.Directory) *output.Table {
	tbl := output.NewTable("Project", "Chats", "Size", "Path").AlignRight(1, 2)
	total := 0
	for _, d := range dirs {
		tbl.AddRow(d.ProjectName, output.Count(d.ConversationCount), d.Size(), d.Path)
		total += d.ConversationCount
	}
	tbl.AddRow(output.StyleBold.Render("Total"), output.StyleBold.Render(output.Count(total)), "", "")
	return tbl
}
