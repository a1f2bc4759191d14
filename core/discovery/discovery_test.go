package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(full), err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", full, err)
	}
}

func TestWalker_FindsConfigCandidatesByExtensionAndName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "routers/r1.cfg", "hostname r1\n")
	writeFile(t, dir, "routers/r2.conf", "hostname r2\n")
	writeFile(t, dir, "routers/running-config", "hostname r3\n")
	writeFile(t, dir, "README.md", "not a config")
	writeFile(t, dir, "notes.go", "package notes")

	w := NewWalker(dir)
	candidates, err := w.Walk()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var paths []string
	for _, c := range candidates {
		paths = append(paths, c.Path)
	}

	want := []string{"routers/r1.cfg", "routers/r2.conf", "routers/running-config"}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i, p := range want {
		if paths[i] != p {
			t.Fatalf("expected sorted path %q at index %d, got %q", p, i, paths[i])
		}
	}
}

func TestWalker_SkipsGitDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".git/config", "should never surface")
	writeFile(t, dir, "r1.cfg", "hostname r1\n")

	w := NewWalker(dir)
	candidates, err := w.Walk()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Path != "r1.cfg" {
		t.Fatalf("expected only r1.cfg, got %+v", candidates)
	}
}

func TestWalker_RespectsGitignorePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "staging/\n")
	writeFile(t, dir, "staging/r1.cfg", "hostname staging\n")
	writeFile(t, dir, "prod/r1.cfg", "hostname prod\n")

	w := NewWalker(dir)
	candidates, err := w.Walk()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Path != "prod/r1.cfg" {
		t.Fatalf("expected only prod/r1.cfg, got %+v", candidates)
	}
}

func TestIsIgnored_MatchesGlobAgainstAnyPathComponent(t *testing.T) {
	patterns := []string{"*.bak"}
	if !IsIgnored("routers/r1.cfg.bak", patterns) {
		t.Fatal("expected nested *.bak file to be ignored")
	}
	if IsIgnored("routers/r1.cfg", patterns) {
		t.Fatal("expected non-matching file to stay unignored")
	}
}

func TestLoadIgnoreFiles_MergesGitignoreAndLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "*.bak\n")
	writeFile(t, dir, ".confsentryignore", "scratch/\n")

	patterns, err := LoadIgnoreFiles(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patterns) != 2 {
		t.Fatalf("expected 2 merged patterns, got %v", patterns)
	}
}
