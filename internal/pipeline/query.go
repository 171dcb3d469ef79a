package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/claimcheck/internal/llm"
)

// Formulator turns a free-form claim into a compact search query.
type Formulator struct {
	provider llm.Provider
}

// NewFormulator creates a query formulator.
func NewFormulator(provider llm.Provider) *Formulator {
	return &Formulator{provider: provider}
}

// Formulate asks the completion service for a search query of at most six
// words. The completion text is returned verbatim apart from whitespace
// framing; a failed or empty completion is fatal for the request.
func (f *Formulator) Formulate(ctx context.Context, claim string) (string, error) {
	resp, err := f.provider.Complete(ctx, buildQueryPrompt(claim))
	if err != nil {
		return "", fmt.Errorf("query formulation failed: %w", err)
	}

	query := strings.TrimSpace(resp)
	if query == "" {
		return "", fmt.Errorf("query formulation failed: empty completion")
	}
	return query, nil
}
