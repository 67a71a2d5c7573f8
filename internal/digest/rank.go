package digest

import "sort"

// Rank orders a deduplicated batch into its final total order: score
// descending, then published descending (timestampless items last), then
// URL ascending. The order is a pure function of the batch, so re-running
// on identical input always gives the identical ranking — required for
// stable Top-N selection across adjacent runs.
func Rank(items []ClassifiedItem) []ClassifiedItem {
	ranked := make([]ClassifiedItem, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		switch {
		case a.Published != nil && b.Published != nil:
			if !a.Published.Equal(*b.Published) {
				return a.Published.After(*b.Published)
			}
		case a.Published != nil:
			return true
		case b.Published != nil:
			return false
		}
		return a.URL < b.URL
	})
	return ranked
}

// TopN returns the first n ranked items. A pure slice: no re-sort.
func TopN(ranked []ClassifiedItem, n int) []ClassifiedItem {
	if n <= 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}
