package llm

import (
	"context"
	"time"

	"github.com/ppiankov/claimcheck/internal/model"
)

// Provider is the completion-service boundary. The pipeline issues four kinds
// of requests through it: query formulation, summarization and relevance
// scoring use Complete; verdict synthesis uses Stream.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Complete sends one non-streamed prompt and returns the completion text.
	Complete(ctx context.Context, prompt string) (string, error)

	// Stream sends one streamed prompt. Each incremental response fragment is
	// passed to onDelta in arrival order; a non-nil error from onDelta stops
	// the stream and is returned unchanged.
	Stream(ctx context.Context, prompt string, onDelta func(delta string) error) error

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "ollama" or "openai".
	Provider string

	// Model name (provider-specific).
	Model string

	// BaseURL for custom endpoints (e.g. a local Ollama).
	BaseURL string

	// APIKey for OpenAI-compatible endpoints.
	APIKey string

	// Timeout for a single completion request. Verdict synthesis can run for
	// a while on local models, so the default is generous.
	Timeout time.Duration

	// Proxy settings for the outbound HTTP client.
	HTTPProxy  string
	HTTPSProxy string
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:   mc.Provider,
		Model:      mc.Model,
		BaseURL:    mc.BaseURL,
		APIKey:     mc.APIKey,
		Timeout:    mc.Timeout,
		HTTPProxy:  mc.HTTPProxy,
		HTTPSProxy: mc.HTTPSProxy,
	}
}
