// Package extract turns a URL into plain text suitable for summarization
// and relevance scoring.
package extract

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// Extractor fetches a page and reduces it to plain text. Extract never fails
// outward: any fetch or parse problem becomes a text value describing the
// error, which the relevance scorer downstream is instructed to score 0.
type Extractor struct {
	fetcher  *Fetcher
	maxChars int
}

// NewExtractor creates an extractor that truncates extracted text to
// maxChars before it is handed to summarization.
func NewExtractor(fetcher *Fetcher, maxChars int) *Extractor {
	return &Extractor{fetcher: fetcher, maxChars: maxChars}
}

// Extract fetches the URL and returns its visible text, capped at the
// configured limit. ok is false when extraction failed; the returned text is
// then the error description, which skips summarization and is handed to the
// relevance scorer as-is.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (content string, ok bool) {
	markup, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return fmt.Sprintf("Error extracting content: %v", err), false
	}

	text := StripMarkup(markup)
	return Truncate(text, e.maxChars), true
}

// Truncate caps text at limit bytes without splitting a UTF-8 sequence. Only
// the trailing bytes of a rune the cap cut in half are dropped; invalid bytes
// anywhere else in the text are kept as-is.
func Truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	cut := text[:limit]
	for i := 0; i < utf8.UTFMax-1 && len(cut) > 0; i++ {
		r, size := utf8.DecodeLastRuneInString(cut)
		if r != utf8.RuneError || size != 1 {
			break
		}
		cut = cut[:len(cut)-1]
	}
	return cut
}
