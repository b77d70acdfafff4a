package core

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ownerRepoPattern matches "owner/repo" format (2 segments, no protocol).
var ownerRepoPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+/[a-zA-Z0-9_.-]+$`)

// ParseSource parses a template source string into a structured ParsedSource.
//
// Supported formats:
//   - "owner/repo"                    → GitHub repo
//   - "./local/path" or "/abs/path"   → Local directory
//   - "git@host:owner/repo.git"       → SSH git URL
//   - "https://gitee.com/owner/repo"  → HTTPS git URL
func ParseSource(input string) (*ParsedSource, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty source")
	}

	// Local paths: starts with ./ ../ / or ~
	if isLocalPath(input) {
		return parseLocalSource(input)
	}

	// SSH git URL: git@host:owner/repo.git
	if strings.HasPrefix(input, "git@") {
		return parseSSHSource(input)
	}

	// HTTPS URLs
	if strings.HasPrefix(input, "https://") || strings.HasPrefix(input, "http://") {
		return parseHTTPSource(input)
	}

	// owner/repo
	if ownerRepoPattern.MatchString(input) {
		segments := strings.SplitN(input, "/", 2)
		return &ParsedSource{
			Type:     SourceTypeGit,
			Host:     "github.com",
			Owner:    segments[0],
			Repo:     segments[1],
			CloneURL: fmt.Sprintf("https://github.com/%s/%s.git", segments[0], segments[1]),
		}, nil
	}

	return nil, fmt.Errorf("unrecognized source format: %q", input)
}

// ApplyCloneOverride replaces the clone URL when overrides maps it to another one.
func ApplyCloneOverride(src *ParsedSource, overrides map[string]string) {
	if src.Type != SourceTypeGit {
		return
	}
	if alt, ok := overrides[src.CloneURL]; ok && alt != "" {
		src.CloneURL = alt
	}
}

func isLocalPath(input string) bool {
	return strings.HasPrefix(input, "./") ||
		strings.HasPrefix(input, "../") ||
		strings.HasPrefix(input, "/") ||
		strings.HasPrefix(input, "~/")
}

func parseLocalSource(input string) (*ParsedSource, error) {
	absPath, err := filepath.Abs(expandPath(input))
	if err != nil {
		return nil, fmt.Errorf("resolving local path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("local path not found: %s", absPath)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("local path is not a directory: %s", absPath)
	}

	return &ParsedSource{
		Type:     SourceTypeLocal,
		CloneURL: absPath,
	}, nil
}

func parseSSHSource(input string) (*ParsedSource, error) {
	// git@github.com:owner/repo.git
	parts := strings.SplitN(input, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid SSH URL: %q", input)
	}

	result := &ParsedSource{
		Type:     SourceTypeGit,
		Host:     strings.TrimPrefix(parts[0], "git@"),
		CloneURL: input,
	}

	segments := strings.SplitN(strings.TrimSuffix(parts[1], ".git"), "/", 2)
	if len(segments) == 2 {
		result.Owner = segments[0]
		result.Repo = segments[1]
	}
	return result, nil
}

func parseHTTPSource(input string) (*ParsedSource, error) {
	u, err := url.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	result := &ParsedSource{
		Type:     SourceTypeGit,
		Host:     u.Host,
		CloneURL: input,
	}

	// Parse path segments: /owner/repo[.git]
	pathParts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(pathParts) == 2 {
		result.Owner = pathParts[0]
		result.Repo = strings.TrimSuffix(pathParts[1], ".git")
		result.CloneURL = fmt.Sprintf("%s://%s/%s/%s.git", u.Scheme, u.Host, result.Owner, result.Repo)
	}
	return result, nil
}
