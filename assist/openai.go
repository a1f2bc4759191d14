package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/confsentry/confsentry/core/rules"
)

// OpenAIProvider implements Provider using the official OpenAI Go SDK. It
// supports any OpenAI-compatible endpoint via WithBaseURL, which lets
// confsentry point explain at a local vLLM or Ollama server instead of the
// hosted API.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

// OpenAIOption configures an OpenAIProvider.
type OpenAIOption func(*openaiConfig)

type openaiConfig struct {
	model   string
	apiKey  string
	baseURL string
	timeout time.Duration
}

// WithModel sets the model name (default: "gpt-4o").
func WithModel(model string) OpenAIOption {
	return func(c *openaiConfig) { c.model = model }
}

// WithAPIKey sets the API key explicitly, overriding the SDK's default
// OPENAI_API_KEY lookup. Used when a workspace's .confsentry.yaml points
// explain at a differently-named environment variable via
// explain.api_key_env.
func WithAPIKey(key string) OpenAIOption {
	return func(c *openaiConfig) { c.apiKey = key }
}

// WithBaseURL sets a custom base URL, enabling Ollama, vLLM, Azure, or
// other OpenAI-compatible endpoints.
func WithBaseURL(url string) OpenAIOption {
	return func(c *openaiConfig) { c.baseURL = url }
}

// WithTimeout sets the per-request timeout for the chat completion call.
func WithTimeout(d time.Duration) OpenAIOption {
	return func(c *openaiConfig) { c.timeout = d }
}

// NewOpenAIProvider creates an OpenAIProvider with the given options. The
// API key is read from OPENAI_API_KEY by the underlying SDK unless
// WithAPIKey overrides it.
func NewOpenAIProvider(opts ...OpenAIOption) *OpenAIProvider {
	cfg := openaiConfig{model: "gpt-4o"}
	for _, o := range opts {
		o(&cfg)
	}

	var clientOpts []option.RequestOption
	if cfg.apiKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.apiKey))
	}
	if cfg.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.timeout > 0 {
		clientOpts = append(clientOpts, option.WithRequestTimeout(cfg.timeout))
	}

	return &OpenAIProvider{
		client: openai.NewClient(clientOpts...),
		model:  cfg.model,
	}
}

// Suggest sends batch as a single chat completion request and parses the
// reply into remediation suggestions keyed by rule id and node id.
func (p *OpenAIProvider) Suggest(ctx context.Context, batch []rules.Result) (*ProviderResponse, error) {
	params := openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt()),
			openai.UserMessage(formatResults(batch)),
		},
	}

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &suggestions); err != nil {
		return nil, fmt.Errorf("invalid JSON from LLM: %w", err)
	}

	return &ProviderResponse{
		Suggestions:      suggestions,
		PromptTokens:     int(completion.Usage.PromptTokens),
		CompletionTokens: int(completion.Usage.CompletionTokens),
	}, nil
}
