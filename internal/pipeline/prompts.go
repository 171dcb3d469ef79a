package pipeline

import (
	"fmt"
	"strings"

	"github.com/ppiankov/claimcheck/internal/model"
)

func buildQueryPrompt(claim string) string {
	return fmt.Sprintf(`Convert the following fact-checking request into a clear, focused search query.
Focus on the key elements that need verification.
Search query must be six words or fewer. Follow the example, "Evidence for/against <claim>".

Request: %s

Provide only the search query, nothing else.`, claim)
}

func buildSummaryPrompt(rawContent string) string {
	return fmt.Sprintf(`Analyze and summarize the following webpage content, focusing on extracting factual information and key details. Remove any advertisements, navigation elements, or irrelevant content. Maintain important context and specific details that could be useful for fact-checking:

<content>
%s
</content>

Provide a detailed summary that:
1. Preserves specific facts, figures, and quotes
2. Maintains chronological order of events if present
3. Keeps source attributions and citations
4. Removes boilerplate website content
5. Eliminates redundant information

Format the summary in clear paragraphs.`, rawContent)
}

func buildVerdictPrompt(claim string, sources []model.ProcessedSource) string {
	var sourcesText strings.Builder
	for i, source := range sources {
		if i > 0 {
			sourcesText.WriteString("\n\n")
		}
		fmt.Fprintf(&sourcesText, "Source %d:\n%s", i+1, source.Content)
	}

	return fmt.Sprintf(`Fact check the following claim using the provided sources at the end of this prompt:

<claim>
%s
</claim>

Reiterate the claim and expand its assumptions, briefly.
Provide a detailed analysis of the claim's veracity, citing specific information from the sources.
DO NOT refer to any information not present in the sources.
Format your response in markdown with clear sections:

1. Verdict (True/False/Partially True/Unverified)
2. One sentence reiteration of the claim (removing political or charged language)
3. Explanation
4. Key Evidence

<sources>
%s
</sources>`, claim, sourcesText.String())
}
