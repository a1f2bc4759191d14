package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/confsentry/confsentry/assist"
	"github.com/confsentry/confsentry/core"
)

// runExplain runs a scan and drafts LLM-based remediations for failing
// results that shipped with no static remediation.
func runExplain(args []string) int {
	fs := flag.NewFlagSet("explain", flag.ContinueOnError)

	var (
		model     string
		baseURL   string
		batchSize int
		rps       float64
		output    string
	)

	fs.StringVar(&model, "model", "", "LLM model name (default: gpt-4o, or config's explain.model)")
	fs.StringVar(&baseURL, "base-url", "", "custom OpenAI-compatible API base URL (default: config's explain.base_url)")
	fs.IntVar(&batchSize, "batch-size", 10, "results per LLM request")
	fs.Float64Var(&rps, "rps", 0, "requests per second against the LLM provider (default: 1, or config's explain.rps)")
	fs.StringVar(&output, "output", "suggestions.json", "output file path")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: confsentry explain <path> [flags]")
		return 2
	}
	target := fs.Arg(0)

	cfg, err := core.LoadScanConfig(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading config: %v\n", err)
		return 2
	}
	if model == "" {
		model = cfg.Explain.Model
	}
	if model == "" {
		model = "gpt-4o"
	}
	if baseURL == "" {
		baseURL = cfg.Explain.BaseURL
	}
	if rps == 0 {
		rps = cfg.Explain.RPS
	}
	if rps == 0 {
		rps = 1
	}

	apiKeyEnv := cfg.Explain.APIKeyEnv
	if apiKeyEnv == "" {
		apiKeyEnv = "OPENAI_API_KEY"
	}
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" && baseURL == "" {
		fmt.Fprintf(os.Stderr, "error: %s environment variable is required (or set --base-url for a local endpoint)\n", apiKeyEnv)
		return 2
	}

	var requestTimeout time.Duration
	if cfg.Explain.Timeout != "" {
		d, err := time.ParseDuration(cfg.Explain.Timeout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: parsing explain.timeout %q: %v\n", cfg.Explain.Timeout, err)
			return 2
		}
		requestTimeout = d
	}

	fmt.Printf("confsentry — scanning %s\n", target)
	result, err := core.RunScan(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: scan failed: %v\n", err)
		return 2
	}

	allResults := flattenResults(result)

	pending := 0
	for _, r := range allResults {
		if !r.Passed && r.Remediation == "" {
			pending++
		}
	}
	if pending == 0 {
		fmt.Println("[explain] no results are missing a remediation")
		return 0
	}

	var providerOpts []assist.OpenAIOption
	providerOpts = append(providerOpts, assist.WithModel(model))
	if baseURL != "" {
		providerOpts = append(providerOpts, assist.WithBaseURL(baseURL))
	}
	if apiKeyEnv != "OPENAI_API_KEY" {
		providerOpts = append(providerOpts, assist.WithAPIKey(apiKey))
	}
	if requestTimeout > 0 {
		providerOpts = append(providerOpts, assist.WithTimeout(requestTimeout))
	}
	provider := assist.NewOpenAIProvider(providerOpts...)

	var assistantOpts []assist.Option
	if batchSize > 0 {
		assistantOpts = append(assistantOpts, assist.WithBatchSize(batchSize))
	}
	assistantOpts = append(assistantOpts, assist.WithRateLimiter(assist.NewRateLimiter(rps)))
	assistant := assist.NewAssistant(provider, assistantOpts...)

	fmt.Println("[explain] generating remediation suggestions...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	suggestions, err := assistant.Suggest(ctx, allResults)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: explain failed: %v\n", err)
		return 2
	}

	if err := suggestions.WriteFile(output); err != nil {
		fmt.Fprintf(os.Stderr, "error: writing %s: %v\n", output, err)
		return 2
	}

	fmt.Printf("[explain] wrote %s (%d suggestion(s))\n", output, len(suggestions.Suggestions))
	fmt.Println("[done]")
	return 0
}
