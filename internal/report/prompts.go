package report

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/miguelrios/2025-compiled/internal/claude"
)

const (
	samplePromptMinLength = 30
	samplePromptCount     = 200
	samplePromptMaxLength = 500
)

// noisePrefixes mark user entries that Claude Code writes on the user's
// behalf.
var noisePrefixes = []string{
	"<command-",
	"<local-command",
	"Caveat:",
	"This session is being continued",
}

func isNoise(content string) bool {
	if utf8.RuneCountInString(content) < samplePromptMinLength {
		return true
	}
	for _, p := range noisePrefixes {
		if strings.HasPrefix(content, p) {
			return true
		}
	}
	return strings.Contains(content, "<system-reminder>")
}

// SamplePrompts filters out short and machine-written prompts, shuffles the
// rest with rng and returns up to 200 of them, each cut to 500 characters
// with whitespace collapsed.
func SamplePrompts(users []claude.UserEntry, rng *rand.Rand) []string {
	var kept []string
	for _, u := range users {
		if !isNoise(u.Content) {
			kept = append(kept, u.Content)
		}
	}

	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(kept), func(i, j int) { kept[i], kept[j] = kept[j], kept[i] })

	if len(kept) > samplePromptCount {
		kept = kept[:samplePromptCount]
	}
	for i, s := range kept {
		if utf8.RuneCountInString(s) > samplePromptMaxLength {
			s = string([]rune(s)[:samplePromptMaxLength])
		}
		kept[i] = strings.Join(strings.Fields(s), " ")
	}
	return kept
}

// WriteSamplePrompts writes SamplePrompts to path as a numbered list separated
// by blank lines and returns how many were written.
func WriteSamplePrompts(path string, users []claude.UserEntry, rng *rand.Rand) (int, error) {
	prompts := SamplePrompts(users, rng)
	lines := make([]string, len(prompts))
	for i, p := range prompts {
		lines[i] = fmt.Sprintf("%d. %s", i+1, p)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n\n")), 0o644); err != nil {
		return 0, fmt.Errorf("writing sample prompts: %w", err)
	}
	return len(prompts), nil
}
