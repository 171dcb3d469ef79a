package model

// SearchResult is one unranked hit returned by the search engine.
type SearchResult struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// RelevanceScore rates how useful a piece of content is for verifying the
// claim. Score 0 means unusable: extraction failed, the relevance analysis
// could not be validated, or the model judged the content irrelevant.
type RelevanceScore struct {
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

// ProcessedSource is a search result that survived extraction,
// summarization, and relevance scoring.
type ProcessedSource struct {
	URL       string         `json:"url"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Relevance RelevanceScore `json:"relevance"`
}

// SourceRef is the client-facing view of a processed source: the summarized
// content stays server-side, only URL, title and relevance go on the wire.
type SourceRef struct {
	URL       string         `json:"url"`
	Title     string         `json:"title"`
	Relevance RelevanceScore `json:"relevance"`
}

// Ref strips the content from a processed source.
func (s ProcessedSource) Ref() SourceRef {
	return SourceRef{URL: s.URL, Title: s.Title, Relevance: s.Relevance}
}

// Refs converts a slice of processed sources to wire references.
func Refs(sources []ProcessedSource) []SourceRef {
	refs := make([]SourceRef, 0, len(sources))
	for _, s := range sources {
		refs = append(refs, s.Ref())
	}
	return refs
}
