// Package scanner discovers Claude Code log directories on disk.
package scanner

import "github.com/dustin/go-humanize"

// GlobalName is the display name of the user-level ~/.claude directory.
const GlobalName = "Global (~/.claude)"

// Directory describes one .claude directory holding conversation logs.
type Directory struct {
	// Path is the absolute filesystem path to the .claude directory.
	Path string `json:"path"`

	// ProjectName is a short display name derived from the path.
	ProjectName string `json:"projectName"`

	// ConversationCount is the number of .jsonl files found under Path.
	ConversationCount int `json:"conversationCount"`

	// TotalSizeBytes is the combined size of all files under Path.
	TotalSizeBytes int64 `json:"totalSizeBytes"`

	// IsGlobal marks the user-level ~/.claude directory.
	IsGlobal bool `json:"isGlobal"`
}

// Size returns TotalSizeBytes in human-readable form.
func (d Directory) Size() string {
	return humanize.IBytes(uint64(max(d.TotalSizeBytes, 0)))
}

// Options controls where Scan looks.
type Options struct {
	// Home is the user's home directory. Only paths that resolve inside it
	// are accepted.
	Home string

	// ClaudeHome is the global Claude directory, usually Home/.claude.
	ClaudeHome string

	// SearchPaths are scanned one level deep for <child>/.claude.
	// Defaults to Home.
	SearchPaths []string

	// GlobalOnly restricts the result to ClaudeHome.
	GlobalOnly bool
}
