package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/miguelrios/2025-compiled/internal/persona"
)

// AssetOptions configures the external image generator.
type AssetOptions struct {
	// Python and Script form the command: Python Script <prompt> --output <dir>.
	Python string
	Script string

	// APIKey is passed to the script as GEMINI_API_KEY. Generation is
	// skipped when empty.
	APIKey string

	// Stdout and Stderr receive the script's output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer

	Logger *slog.Logger
}

// Assets holds the generated image paths; nil means not generated.
type Assets struct {
	PersonaImagePath *string
	ShareCardPath    *string
}

// ShareCardPrompt describes the social card for r.
func ShareCardPrompt(r Report) string {
	prompt := fmt.Sprintf(`Brutalist minimalist social share card for social media.
		White background, black monospace text.
		Large bold text "%s" centered at top.
		Below it in smaller text: "%s lines of code"
		At bottom: "CLAUDE WRAPPED %d"
		Thin decorative red and green border lines at edges for Christmas aesthetic.
		Sharp 90-degree corners only, absolutely no rounded edges, no gradients.
		Stark high contrast, clean minimal design.
		Social card 1200x630 aspect ratio.`,
		strings.ToUpper(r.PersonaName), humanize.Comma(int64(r.Metrics.LinesWritten)), r.Year)
	return strings.Join(strings.Fields(prompt), " ")
}

// GenerateAssets runs the image script for the persona backdrop (images/)
// and the share card (share/) concurrently. A failed or skipped image
// leaves its path nil.
func GenerateAssets(ctx context.Context, r Report, outputDir string, opts AssetOptions) Assets {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.APIKey == "" {
		logger.Info("skipping image generation", "reason", "no GEMINI_API_KEY")
		return Assets{}
	}

	var assets Assets
	jobs := []struct {
		dir    string
		prompt string
		out    **string
	}{
		{filepath.Join(outputDir, "images"), persona.Lookup(r.Persona).ImagePrompt, &assets.PersonaImagePath},
		{filepath.Join(outputDir, "share"), ShareCardPrompt(r), &assets.ShareCardPath},
	}

	var g errgroup.Group
	for _, job := range jobs {
		g.Go(func() error {
			path, err := generateImage(ctx, job.prompt, job.dir, opts)
			if err != nil {
				logger.Warn("image generation failed", "dir", job.dir, "err", err)
				return nil
			}
			*job.out = path
			return nil
		})
	}
	_ = g.Wait()
	return assets
}

func generateImage(ctx context.Context, prompt, dir string, opts AssetOptions) (*string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, opts.Python, opts.Script, prompt, "--output", dir)
	cmd.Env = append(os.Environ(), "GEMINI_API_KEY="+opts.APIKey)
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running %s: %w", opts.Script, err)
	}

	path, ok := latestPNG(dir)
	if !ok {
		return nil, fmt.Errorf("no image written to %s", dir)
	}
	return &path, nil
}

// latestPNG returns the lexically last *.png in dir. Generated names carry
// a timestamp, so this is the newest image.
func latestPNG(dir string) (string, bool) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	slices.Sort(matches)
	return matches[len(matches)-1], true
}

// OpenBrowser opens path with the platform's default handler without
// waiting for it to exit.
func OpenBrowser(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
