package digest

import "time"

// FilterRecent drops items older than maxAge relative to now. Items without
// a timestamp pass through: feed timestamps are unreliable and losing a
// genuinely new but mis-stamped story is worse than an occasional stale one.
// maxAge <= 0 disables the filter.
func FilterRecent(items []RawItem, now time.Time, maxAge time.Duration) []RawItem {
	if maxAge <= 0 {
		return items
	}
	kept := make([]RawItem, 0, len(items))
	for _, it := range items {
		if it.Published != nil && now.Sub(*it.Published) > maxAge {
			continue
		}
		kept = append(kept, it)
	}
	return kept
}
