// Package score rates processed content against the claim and ranks the
// surviving sources.
package score

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ppiankov/claimcheck/internal/llm"
	"github.com/ppiankov/claimcheck/internal/model"
)

// Scorer asks the completion service how relevant a piece of content is to
// the claim, on a 0-10 scale with a rationale.
type Scorer struct {
	provider llm.Provider
}

// NewScorer creates a relevance scorer.
func NewScorer(provider llm.Provider) *Scorer {
	return &Scorer{provider: provider}
}

// Score rates content against the claim. The completion response is
// validated in four stages and any failure collapses to score 0 with a
// diagnostic explanation: a malformed or adversarial completion must never
// propagate past this boundary as anything but a zero score.
func (s *Scorer) Score(ctx context.Context, content, claim string) model.RelevanceScore {
	resp, err := s.provider.Complete(ctx, buildRelevancePrompt(content, claim))
	if err != nil {
		return model.RelevanceScore{Score: 0, Explanation: err.Error()}
	}

	var parsed any
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp)), &parsed); err != nil {
		return model.RelevanceScore{Score: 0, Explanation: "Error parsing relevance analysis"}
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return model.RelevanceScore{Score: 0, Explanation: "Invalid response format"}
	}

	rawScore, scoreOK := obj["score"].(float64)
	explanation, explanationOK := obj["explanation"].(string)
	if !scoreOK || !explanationOK {
		return model.RelevanceScore{Score: 0, Explanation: "Invalid response format"}
	}

	return model.RelevanceScore{Score: clampScore(rawScore), Explanation: explanation}
}

func clampScore(raw float64) int {
	score := int(raw)
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

func buildRelevancePrompt(content, claim string) string {
	return fmt.Sprintf(`Analyze how relevant the following content is to fact-checking this claim:

<claim>
%s
</claim>

<content>
%s
</content>

Rate relevance from 0-10 and explain why. Provide response in PROPER JSON format:
{
    "score": <0-10>,
    "explanation": "<explanation>"
}
If any error is present in the text, the score should be ZERO.
Make sure all JSON is valid.`, claim, content)
}
