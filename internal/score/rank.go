package score

import (
	"sort"

	"github.com/ppiankov/claimcheck/internal/model"
)

// SelectTop orders sources by relevance score descending and truncates to n.
// The sort is stable: equal scores keep their encounter order. Running it on
// an already sorted, already truncated list returns the list unchanged.
func SelectTop(sources []model.ProcessedSource, n int) []model.ProcessedSource {
	ranked := make([]model.ProcessedSource, len(sources))
	copy(ranked, sources)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Relevance.Score > ranked[j].Relevance.Score
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
