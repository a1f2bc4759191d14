// Package assist provides optional LLM-based remediation suggestions for
// rule results that failed without a static remediation string. It never
// affects scan results and is strictly opt-in.
package assist

import (
	"context"

	"github.com/confsentry/confsentry/core/rules"
)

// Provider generates remediation suggestions for a batch of failing rule
// results. Implementations must be safe for concurrent use.
type Provider interface {
	Suggest(ctx context.Context, batch []rules.Result) (*ProviderResponse, error)
}

// ProviderResponse holds the suggestions parsed out of a single provider
// call along with the token usage it cost.
type ProviderResponse struct {
	Suggestions      []Suggestion
	PromptTokens     int
	CompletionTokens int
}
