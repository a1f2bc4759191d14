package assist

import (
	"encoding/json"
	"fmt"
	"os"
)

// Report is the top-level output of the remediation-suggestion pipeline.
type Report struct {
	SchemaVersion string       `json:"schema_version"`
	Suggestions   []Suggestion `json:"suggestions"`
	Usage         UsageStats   `json:"usage"`
}

// Suggestion holds the LLM-generated remediation text for a single failing
// rule result that shipped without a static remediation string.
type Suggestion struct {
	RuleID      string `json:"rule_id"`
	NodeID      string `json:"node_id"`
	Remediation string `json:"remediation"`
}

// UsageStats tracks LLM token consumption across all provider calls.
type UsageStats struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	RequestCount     int `json:"request_count"`
}

// JSON returns the report as pretty-printed JSON bytes.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// WriteFile writes the report to the given file path.
func (r *Report) WriteFile(path string) error {
	data, err := r.JSON()
	if err != nil {
		return fmt.Errorf("marshalling remediation report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
