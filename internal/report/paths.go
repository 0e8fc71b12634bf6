package report

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var sensitiveDirs = []string{"/etc", "/usr", "/var", "/bin", "/sbin", "/root", "/System", "/Library"}

// ValidateOutputPath resolves path against cwd and checks that it is safe to
// write into: no ".." components, inside home or cwd, and outside the
// system directories. A system prefix that contains home itself (running as
// root) does not reject paths under home.
func ValidateOutputPath(path, home, cwd string) (string, error) {
	if strings.Contains(path, "..") {
		return "", errors.New("path traversal (..) not allowed in output path")
	}

	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(cwd, resolved)
	}
	resolved = filepath.Clean(resolved)

	inHome := within(resolved, home)
	if !inHome && !within(resolved, cwd) {
		return "", errors.New("output path must be within home directory or current directory")
	}

	for _, dir := range sensitiveDirs {
		if !within(resolved, dir) {
			continue
		}
		if inHome && within(filepath.Clean(home), dir) {
			continue
		}
		return "", fmt.Errorf("cannot write to system directory: %s", dir)
	}
	return resolved, nil
}

// within reports whether path equals root or lies beneath it, lexically.
func within(path, root string) bool {
	if root == "" {
		return false
	}
	rel, err := filepath.Rel(filepath.Clean(root), path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
