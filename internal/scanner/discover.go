package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scan finds the global Claude directory and every project-level .claude
// directory one level below each search path. The global directory is
// listed first whenever it exists; project directories need at least one
// conversation file.
func Scan(opts Options) ([]Directory, error) {
	home := opts.Home
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		home = h
	}
	claudeHome := opts.ClaudeHome
	if claudeHome == "" {
		claudeHome = filepath.Join(home, ".claude")
	}

	var dirs []Directory
	seen := make(map[string]bool)

	if info, err := os.Stat(claudeHome); err == nil && info.IsDir() {
		if d, ok := analyze(claudeHome, home, true); ok {
			dirs = append(dirs, d)
			seen[d.Path] = true
		}
	}

	if opts.GlobalOnly {
		return dirs, nil
	}

	searchPaths := opts.SearchPaths
	if len(searchPaths) == 0 {
		searchPaths = []string{home}
	}

	for _, root := range searchPaths {
		entries, err := os.ReadDir(root)
		if err != nil {
			// Unlistable search paths contribute nothing.
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			// Skip hidden directories.
			if strings.HasPrefix(entry.Name(), ".") {
				continue
			}

			candidate := filepath.Join(root, entry.Name(), ".claude")
			abs, err := filepath.Abs(candidate)
			if err != nil {
				abs = candidate
			}
			if seen[abs] {
				continue
			}
			info, err := os.Stat(abs)
			if err != nil || !info.IsDir() {
				continue
			}

			d, ok := analyze(abs, home, false)
			if !ok || d.ConversationCount == 0 {
				continue
			}
			dirs = append(dirs, d)
			seen[abs] = true
		}
	}

	sort.SliceStable(dirs, func(i, j int) bool {
		if dirs[i].IsGlobal != dirs[j].IsGlobal {
			return dirs[i].IsGlobal
		}
		if dirs[i].ConversationCount != dirs[j].ConversationCount {
			return dirs[i].ConversationCount > dirs[j].ConversationCount
		}
		return strings.ToLower(dirs[i].ProjectName) < strings.ToLower(dirs[j].ProjectName)
	})

	return dirs, nil
}

func analyze(path, home string, global bool) (Directory, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Directory{}, false
	}
	if !IsWithin(abs, home) {
		return Directory{}, false
	}

	count, size := walkStats(abs)
	name := ProjectName(abs)
	if global {
		name = GlobalName
	}
	return Directory{
		Path:              abs,
		ProjectName:       name,
		ConversationCount: count,
		TotalSizeBytes:    size,
		IsGlobal:          global,
	}, true
}

// IsWithin reports whether path, after resolving symlinks, lies inside root.
func IsWithin(path, root string) bool {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false
	}
	resolvedRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		resolvedRoot = filepath.Clean(root)
	}
	rel, err := filepath.Rel(resolvedRoot, resolved)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// ProjectName derives a display name for a project .claude directory from
// its parent. Claude Code encodes absolute paths as dash-joined names, so a
// parent such as "-home-dev-myapp" yields its last segment.
func ProjectName(path string) string {
	parent := filepath.Base(filepath.Dir(path))
	if !strings.HasPrefix(parent, "-") {
		return parent
	}
	var last string
	for _, part := range strings.Split(parent, "-") {
		if part != "" {
			last = part
		}
	}
	if last == "" {
		return parent
	}
	return last
}

// walkStats counts .jsonl files and sums file sizes under dir in one pass.
// Unreadable subtrees are skipped.
func walkStats(dir string) (int, int64) {
	var count int
	var size int64
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".jsonl") {
			count++
		}
		if info, err := d.Info(); err == nil {
			size += info.Size()
		}
		return nil
	})
	return count, size
}
