package discovery

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// LoadIgnoreFiles reads a .gitignore and a .confsentryignore file from root
// and returns the merged parsed patterns. If neither exists, it returns an
// empty slice and nil error. .confsentryignore lets an operator exclude
// vendor backup directories or TFTP staging areas from a scan without
// touching a .gitignore that is also maintained for source control.
func LoadIgnoreFiles(root string) ([]string, error) {
	patterns, err := loadIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil, err
	}

	local, err := loadIgnoreFile(filepath.Join(root, ".confsentryignore"))
	if err != nil {
		return nil, err
	}

	return append(patterns, local...), nil
}

func loadIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close() //nolint:errcheck // best-effort close on read-only file

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return patterns, nil
}

// IsIgnored reports whether a relative path matches any of the provided
// ignore patterns. Device-config workspaces are flat exports, not deep git
// trees with override rules, so only the two forms that show up in practice
// are supported:
//   - A name or glob matched against any path component (e.g. "*.bak")
//   - A directory-only pattern ending in "/" (e.g. "staging/")
//
// Root-anchoring ("/foo") and negation ("!foo") are not recognized; a
// pattern that needs either is treated as a plain component glob.
//
// The .git directory is always ignored regardless of patterns.
func IsIgnored(path string, patterns []string) bool {
	if isGitPath(path) {
		return true
	}

	for _, pattern := range patterns {
		if matchPattern(path, pattern) {
			return true
		}
	}
	return false
}

func isGitPath(path string) bool {
	parts := strings.Split(filepath.ToSlash(path), "/")
	for _, part := range parts {
		if part == ".git" {
			return true
		}
	}
	return false
}

func matchPattern(path, pattern string) bool {
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "/")

	dirOnly := strings.HasSuffix(pattern, "/")
	if dirOnly {
		pattern = strings.TrimSuffix(pattern, "/")
	}

	parts := strings.Split(filepath.ToSlash(path), "/")
	for i, part := range parts {
		matched, _ := filepath.Match(pattern, part)
		if !matched {
			continue
		}
		if dirOnly && i == len(parts)-1 {
			continue
		}
		return true
	}
	return false
}
