package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func writeYAML(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestLoadRulePackFile_ValidPack(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, "pack.yaml", `
rules:
  - id: CFG-VTY-TELNET
    selector: "line vty"
    level: warning
    obu: network-security
    owner: netsec-team
    remediation: "disable telnet on vty lines"
`)

	rs, err := LoadRulePackFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, ok := rs.ByID("CFG-VTY-TELNET")
	if !ok {
		t.Fatal("expected CFG-VTY-TELNET to be loaded")
	}
	if r.Meta.Level != LevelWarning {
		t.Fatalf("expected warning level, got %s", r.Meta.Level)
	}
	if r.Check == nil {
		t.Fatal("expected check function resolved from builtin registry")
	}
}

func TestLoadRulePackFile_InvalidLevel(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, "pack.yaml", `
rules:
  - id: CFG-VTY-TELNET
    selector: "line vty"
    level: critical
`)

	if _, err := LoadRulePackFile(path); err == nil {
		t.Fatal("expected an error for invalid level")
	}
}

func TestLoadRulePackFile_UnregisteredRuleID(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, "pack.yaml", `
rules:
  - id: CFG-DOES-NOT-EXIST
    selector: "line vty"
    level: warning
`)

	_, err := LoadRulePackFile(path)
	if err == nil {
		t.Fatal("expected an error for an unregistered rule id")
	}
}

func TestLoadRulePackFile_EmptyID(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, "pack.yaml", `
rules:
  - id: ""
    selector: "line vty"
    level: warning
`)

	if _, err := LoadRulePackFile(path); err == nil {
		t.Fatal("expected an error for empty rule id")
	}
}

func TestLoadRulePackDir_MergesFilesInLexicographicOrder(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "b-pack.yaml", `
rules:
  - id: CFG-SNMP-DEFAULT
    level: error
    owner: team-b
`)
	writeYAML(t, dir, "a-pack.yaml", `
rules:
  - id: CFG-SNMP-DEFAULT
    level: error
    owner: team-a
`)
	writeYAML(t, dir, "notes.txt", "not a yaml file, must be ignored")

	rs, err := LoadRulePackDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rs.Rules()) != 2 {
		t.Fatalf("expected both duplicate-id rules retained, got %d", len(rs.Rules()))
	}
	r, ok := rs.ByID("CFG-SNMP-DEFAULT")
	if !ok {
		t.Fatal("expected CFG-SNMP-DEFAULT to resolve")
	}
	if r.Meta.Owner != "team-b" {
		t.Fatalf("expected b-pack.yaml (lexicographically last) to win, got owner %q", r.Meta.Owner)
	}
}

func TestLoadRulePackDir_MissingDirectory(t *testing.T) {
	if _, err := LoadRulePackDir(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}
