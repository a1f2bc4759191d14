// Package discovery finds candidate device-configuration files under a
// workspace directory.
//
// It recursively walks a root directory, classifies files by extension and
// well-known name, and returns a sorted inventory of files that look like
// device configuration. Gitignore-style patterns are respected and the .git
// directory is always skipped.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
)

// Candidate represents a single discovered configuration file.
type Candidate struct {
	// Path is the file path relative to the walker root.
	Path string
	// AbsPath is the absolute file path.
	AbsPath string
	// Size is the file size in bytes.
	Size int64
}

// configExtensions are file extensions treated as device configuration.
var configExtensions = map[string]bool{
	".cfg":   true,
	".conf":  true,
	".ios":   true,
	".junos": true,
	".txt":   true,
}

// configNames are exact file names treated as device configuration
// regardless of extension.
var configNames = map[string]bool{
	"running-config":  true,
	"startup-config":  true,
	"running-config.": true,
}

// isCandidate reports whether a file name looks like a device configuration
// file.
func isCandidate(name string) bool {
	if configNames[name] {
		return true
	}
	ext := filepath.Ext(name)
	return configExtensions[ext]
}

// Walker recursively discovers configuration candidates under Root.
type Walker struct {
	// Root is the directory to walk.
	Root string
	// IgnorePatterns holds gitignore-style patterns for skipping files.
	IgnorePatterns []string
}

// NewWalker creates a Walker rooted at root. It attempts to load a
// .gitignore and a .confsentryignore file from root; if neither exists the
// walker proceeds with no ignore patterns.
func NewWalker(root string) *Walker {
	patterns, _ := LoadIgnoreFiles(root)
	return &Walker{
		Root:           root,
		IgnorePatterns: patterns,
	}
}

// Walk recursively traverses the Root directory and returns the collected
// configuration candidates sorted by relative path. Directories matching
// ignore patterns or named .git are skipped entirely.
func (w *Walker) Walk() ([]Candidate, error) {
	absRoot, err := filepath.Abs(w.Root)
	if err != nil {
		return nil, err
	}

	var candidates []Candidate

	err = filepath.Walk(absRoot, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		if info.IsDir() && info.Name() == ".git" {
			return filepath.SkipDir
		}

		if IsIgnored(rel, w.IgnorePatterns) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}
		if !isCandidate(info.Name()) {
			return nil
		}

		candidates = append(candidates, Candidate{
			Path:    filepath.ToSlash(rel),
			AbsPath: path,
			Size:    info.Size(),
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Path < candidates[j].Path
	})

	return candidates, nil
}
