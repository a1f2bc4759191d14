package assist

import (
	"context"
	"fmt"

	"github.com/confsentry/confsentry/core/rules"
)

const defaultBatchSize = 10

// Assistant orchestrates LLM-based remediation suggestions for failing rule
// results that shipped without a static remediation string. It is
// strictly side-effect-free: it never mutates the results it is given.
type Assistant struct {
	provider    Provider
	rateLimiter *RateLimiter
	batchSize   int
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithBatchSize sets how many results are sent per LLM call (default 10).
func WithBatchSize(n int) Option {
	return func(a *Assistant) {
		if n > 0 {
			a.batchSize = n
		}
	}
}

// WithRateLimiter attaches a RateLimiter, applied before every provider
// call.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(a *Assistant) { a.rateLimiter = rl }
}

// NewAssistant creates an Assistant with the given provider and options.
func NewAssistant(provider Provider, opts ...Option) *Assistant {
	a := &Assistant{
		provider:  provider,
		batchSize: defaultBatchSize,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Suggest generates remediation suggestions for every failing result in
// results that has no static remediation already attached. Results that
// already carry a remediation, or that passed, are skipped without
// consuming a provider call.
//
// If the provider returns an error partway through, Suggest degrades
// gracefully: it returns the suggestions gathered so far alongside the
// error.
func (a *Assistant) Suggest(ctx context.Context, results []rules.Result) (*Report, error) {
	report := &Report{SchemaVersion: "1.0.0"}

	var pending []rules.Result
	for _, r := range results {
		if !r.Passed && r.Remediation == "" {
			pending = append(pending, r)
		}
	}
	if len(pending) == 0 {
		return report, nil
	}

	for i := 0; i < len(pending); i += a.batchSize {
		end := i + a.batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[i:end]

		if a.rateLimiter != nil {
			if err := a.rateLimiter.Allow(ctx); err != nil {
				return report, fmt.Errorf("rate limiter: %w", err)
			}
		}

		resp, err := a.provider.Suggest(ctx, batch)
		if err != nil {
			return report, fmt.Errorf("provider completion: %w", err)
		}

		report.Usage.PromptTokens += resp.PromptTokens
		report.Usage.CompletionTokens += resp.CompletionTokens
		report.Usage.RequestCount++
		report.Suggestions = append(report.Suggestions, resp.Suggestions...)
	}

	return report, nil
}
