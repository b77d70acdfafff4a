package core

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Cleaner removes template files that generated projects should not keep.
type Cleaner struct{}

// NewCleaner creates a Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// CleanResult lists what a clean removed.
type CleanResult struct {
	Removed []string // project-relative slash paths
}

// Clean removes every file or directory under projectDir matching one of
// patterns. Patterns are doublestar globs relative to projectDir; a leading
// "./" or "/" is ignored. Directories left empty by a removal are removed too.
func (c *Cleaner) Clean(projectDir string, patterns []string) (*CleanResult, error) {
	if projectDir == "" {
		return nil, fmt.Errorf("project directory is required")
	}
	if !dirExists(projectDir) {
		return nil, fmt.Errorf("project directory %s not found", projectDir)
	}

	fsys := os.DirFS(projectDir)
	seen := make(map[string]bool)
	var matches []string
	for _, p := range patterns {
		p = strings.TrimPrefix(strings.TrimPrefix(p, "./"), "/")
		if p == "" {
			continue
		}
		found, err := doublestar.Glob(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		for _, m := range found {
			if !seen[m] && m != "." {
				seen[m] = true
				matches = append(matches, m)
			}
		}
	}
	sort.Strings(matches)

	result := &CleanResult{}
	for _, m := range matches {
		if isCovered(m, result.Removed) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(projectDir, filepath.FromSlash(m))); err != nil {
			return nil, fmt.Errorf("removing %s: %w", m, err)
		}
		result.Removed = append(result.Removed, m)

		// Clean up directories the removal emptied
		for dir := path.Dir(m); dir != "."; dir = path.Dir(dir) {
			cleanupEmptyDir(filepath.Join(projectDir, filepath.FromSlash(dir)))
		}
	}
	return result, nil
}

// isCovered reports whether p lies inside an already removed directory.
func isCovered(p string, removed []string) bool {
	for _, r := range removed {
		if strings.HasPrefix(p, r+"/") {
			return true
		}
	}
	return false
}
