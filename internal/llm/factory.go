package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a completion provider based on configuration. An empty
// provider name defaults to ollama, the canonical collaborator.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "ollama", "":
		return NewOllamaProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: ollama, openai)", config.Provider)
	}
}
