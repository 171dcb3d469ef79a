package pipeline

import (
	"context"

	"github.com/ppiankov/claimcheck/internal/extract"
	"github.com/ppiankov/claimcheck/internal/llm"
)

// Summarizer compresses extracted page text into a fact-preserving summary.
type Summarizer struct {
	provider      llm.Provider
	fallbackLimit int
}

// NewSummarizer creates a summarizer. fallbackLimit caps the raw text used
// when the completion service fails.
func NewSummarizer(provider llm.Provider, fallbackLimit int) *Summarizer {
	return &Summarizer{provider: provider, fallbackLimit: fallbackLimit}
}

// Summarize asks the completion service to summarize rawContent. A
// summarization failure must never lose the source: it falls back to the
// truncated raw content instead of propagating the error.
func (s *Summarizer) Summarize(ctx context.Context, rawContent string) string {
	summary, err := s.provider.Complete(ctx, buildSummaryPrompt(rawContent))
	if err != nil {
		return extract.Truncate(rawContent, s.fallbackLimit)
	}
	return summary
}
