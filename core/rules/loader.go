package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlRule is the on-disk shape of a single declarative rule entry. Selector
// and metadata come from YAML; the check function is resolved by id from
// builtinChecks, so a rule pack can only reference behavior this binary
// actually ships.
type yamlRule struct {
	ID          string `yaml:"id"`
	Selector    string `yaml:"selector"`
	Level       string `yaml:"level"`
	OBU         string `yaml:"obu"`
	Owner       string `yaml:"owner"`
	Remediation string `yaml:"remediation"`
}

type ruleFile struct {
	Rules []yamlRule `yaml:"rules"`
}

var validLevels = map[string]Level{
	"error":   LevelError,
	"warning": LevelWarning,
	"info":    LevelInfo,
}

// LoadRulePackFile reads a single YAML rule pack and returns a RuleSet whose
// rules' behavior is resolved from the builtin check registry.
func LoadRulePackFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule pack %s: %w", path, err)
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing rule pack %s: %w", path, err)
	}

	rs := NewRuleSet()
	for i, yr := range rf.Rules {
		r, err := resolveRule(yr)
		if err != nil {
			return nil, fmt.Errorf("rule %d in %s: %w", i, path, err)
		}
		rs.Add(r)
	}
	return rs, nil
}

// LoadRulePackDir reads every .yaml/.yml file in dir, in lexicographic
// order, and merges them into a single RuleSet.
func LoadRulePackDir(dir string) (*RuleSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading rule pack directory %s: %w", dir, err)
	}

	rs := NewRuleSet()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		fileRS, err := LoadRulePackFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		for _, r := range fileRS.Rules() {
			rs.Add(r)
		}
	}
	return rs, nil
}

func resolveRule(yr yamlRule) (Rule, error) {
	if yr.ID == "" {
		return Rule{}, fmt.Errorf("rule id must not be empty")
	}
	level, ok := validLevels[strings.ToLower(yr.Level)]
	if !ok {
		return Rule{}, fmt.Errorf("invalid level %q for rule %s", yr.Level, yr.ID)
	}
	check, ok := builtinChecks[yr.ID]
	if !ok {
		return Rule{}, fmt.Errorf("rule %s has no registered check function", yr.ID)
	}
	return Rule{
		ID:       yr.ID,
		Selector: yr.Selector,
		Meta: Metadata{
			Level:       level,
			OBU:         yr.OBU,
			Owner:       yr.Owner,
			Remediation: yr.Remediation,
		},
		Check: check,
	}, nil
}
