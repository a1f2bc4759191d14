package ast

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// schemaFile is the top-level structure of a YAML block-starter extension
// file: a named, ordered list of patterns combined with the built-in schema
// and evaluated ahead of it.
type schemaFile struct {
	Patterns []StarterPattern `yaml:"patterns"`
}

// LoadSchemaYAML reads additional block-starter patterns from a YAML file
// and returns a Schema combining them with the built-in defaults, with the
// file's patterns evaluated first. This must be called before any parser
// built against the returned Schema begins parsing.
func LoadSchemaYAML(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading block-starter schema %s: %w", path, err)
	}

	var sf schemaFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing block-starter schema %s: %w", path, err)
	}

	combined := make([]StarterPattern, 0, len(sf.Patterns)+len(defaultPatterns))
	combined = append(combined, sf.Patterns...)
	combined = append(combined, defaultPatterns...)

	s, err := NewSchema(combined)
	if err != nil {
		return nil, fmt.Errorf("compiling block-starter schema %s: %w", path, err)
	}
	return s, nil
}
