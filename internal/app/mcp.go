package app

import (
	"github.com/spf13/cobra"

	"github.com/miguelrios/2025-compiled/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP stdio server over your year in review",
	Long: `Start a Model Context Protocol stdio server that Claude Code can query
during a session. The server exposes four tools, each taking an optional
year and global_only argument:

  wrapped_stats     Usage totals, languages, tools and streaks
  wrapped_persona   Rule-based persona with its four axes
  wrapped_patterns  Assistant phrases and user communication style
  wrapped_timeline  Hourly, daily and monthly activity

Add to your Claude Code MCP configuration (~/.claude/settings.json):
  {"mcpServers":{"compiled":{"command":"compiled","args":["mcp"]}}}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	return mcp.NewServer(s.mcpLoader(), appVersion, s.year).ServeStdio()
}
