// Package core wires the sanitizer, parser, and rule engine into a
// filesystem-facing scan pipeline.
package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ScanConfig holds project-level configuration loaded from
// .confsentry.yaml.
type ScanConfig struct {
	Scan    ScanSettings    `yaml:"scan"`
	Output  OutputSettings  `yaml:"output"`
	Explain ExplainSettings `yaml:"explain"`
	Policy  PolicySettings  `yaml:"policy"`
}

// ScanSettings controls which files are scanned and how rules behave.
type ScanSettings struct {
	Exclude    []string    `yaml:"exclude"`
	RulesDir   string      `yaml:"rules_dir"`
	SchemaPath string      `yaml:"schema_path"`
	Rules      RulesConfig `yaml:"rules"`
}

// RulesConfig allows disabling built-in rules.
type RulesConfig struct {
	Disable []string `yaml:"disable"`
}

// OutputSettings controls default output format and directory.
type OutputSettings struct {
	Format    string `yaml:"format"`
	Directory string `yaml:"directory"`
}

// ExplainSettings controls defaults for the remediation assistant, applied
// by cmd/confsentry/explain_cmd.go whenever the corresponding flag is left
// unset.
type ExplainSettings struct {
	APIKeyEnv string  `yaml:"api_key_env"`
	Model     string  `yaml:"model"`
	BaseURL   string  `yaml:"base_url"`
	Timeout   string  `yaml:"timeout"`
	RPS       float64 `yaml:"rps"`
}

// PolicySettings controls the pass/fail threshold for the batch CLI.
type PolicySettings struct {
	FailOn string `yaml:"fail_on"`
}

// LoadScanConfig reads .confsentry.yaml from root and returns the parsed
// config. If the file does not exist, a zero-value ScanConfig is returned
// with no error.
func LoadScanConfig(root string) (*ScanConfig, error) {
	path := filepath.Join(root, ".confsentry.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ScanConfig{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg ScanConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &cfg, nil
}
