package digest

import (
	"regexp"
	"strings"
)

// \W would also split on umlauts, so spell out the Unicode classes.
var nonWordRuns = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// NormalizeTitle reduces a title to its dedup key: lowercase, every
// non-word run collapsed to a single space, trimmed. Syndicated copies of
// the same story from different outlets usually agree on this key.
func NormalizeTitle(title string) string {
	t := strings.ToLower(title)
	t = nonWordRuns.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// Deduplicate collapses items describing the same story. Two checks, in
// order of strictness: exact URL match, then normalized-title match. Within
// an equivalence class the highest score survives; ties go to the earliest
// published item, then to first-seen order, so identical input always
// yields the identical survivor. The survivor's PickupCount is the class
// size — how many outlets carried the story.
func Deduplicate(items []ClassifiedItem) []ClassifiedItem {
	byURL := make(map[string]int, len(items))   // url -> index into out
	byTitle := make(map[string]int, len(items)) // normalized title -> index into out
	out := make([]ClassifiedItem, 0, len(items))

	for _, it := range items {
		idx := -1
		if it.URL != "" {
			if i, ok := byURL[it.URL]; ok {
				idx = i
			}
		}
		key := NormalizeTitle(it.Title)
		if idx < 0 && key != "" {
			if i, ok := byTitle[key]; ok {
				idx = i
			}
		}

		if idx < 0 {
			it.PickupCount = 1
			out = append(out, it)
			idx = len(out) - 1
		} else {
			kept := out[idx]
			pickups := kept.PickupCount + 1
			if betterRepresentative(it, kept) {
				kept = it
			}
			kept.PickupCount = pickups
			out[idx] = kept
		}

		if it.URL != "" {
			byURL[it.URL] = idx
		}
		if key != "" {
			byTitle[key] = idx
		}
	}
	return out
}

// betterRepresentative reports whether candidate should replace kept as the
// class representative. kept wins all ties, which preserves first-seen
// order.
func betterRepresentative(candidate, kept ClassifiedItem) bool {
	if candidate.Score != kept.Score {
		return candidate.Score > kept.Score
	}
	switch {
	case candidate.Published == nil:
		return false
	case kept.Published == nil:
		return true
	default:
		return candidate.Published.Before(*kept.Published)
	}
}
