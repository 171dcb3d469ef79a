package pipeline

import (
	"context"
	"strings"

	"github.com/ppiankov/claimcheck/internal/llm"
	"github.com/ppiankov/claimcheck/internal/model"
)

// NoSourcesText is the terminal text produced when synthesis is attempted
// with no sources. The controller normally aborts before that point; this is
// the fail-fast answer for direct callers.
const NoSourcesText = "Error: No sources available for fact checking"

// Synthesizer produces the final verdict as an ordered, finite,
// non-restartable sequence of accumulated-text snapshots.
type Synthesizer struct {
	provider llm.Provider
}

// NewSynthesizer creates a verdict synthesizer.
func NewSynthesizer(provider llm.Provider) *Synthesizer {
	return &Synthesizer{provider: provider}
}

// Synthesize streams the verdict for the claim from the given sources.
// onUpdate receives the full text accumulated so far after every fragment,
// never just the delta; an error from onUpdate stops the stream and is
// returned unchanged. If the completion call fails before any fragment
// arrives, the synthesizer degrades to a single terminal error text instead
// of failing the request.
func (s *Synthesizer) Synthesize(ctx context.Context, claim string, sources []model.ProcessedSource, onUpdate func(accumulated string) error) (string, error) {
	if len(sources) == 0 {
		if onUpdate != nil {
			if err := onUpdate(NoSourcesText); err != nil {
				return "", err
			}
		}
		return NoSourcesText, nil
	}

	var accumulated strings.Builder
	var updateErr error

	err := s.provider.Stream(ctx, buildVerdictPrompt(claim, sources), func(delta string) error {
		accumulated.WriteString(delta)
		if onUpdate != nil {
			if err := onUpdate(accumulated.String()); err != nil {
				updateErr = err
				return err
			}
		}
		return nil
	})

	if updateErr != nil {
		return accumulated.String(), updateErr
	}
	if err != nil {
		if accumulated.Len() == 0 {
			terminal := "Unable to generate fact check response. " + err.Error()
			if onUpdate != nil {
				if cbErr := onUpdate(terminal); cbErr != nil {
					return terminal, cbErr
				}
			}
			return terminal, nil
		}
		return accumulated.String(), err
	}

	return accumulated.String(), nil
}
