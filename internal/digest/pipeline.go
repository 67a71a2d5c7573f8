package digest

import "time"

// Options carries the per-run parameters of one batch invocation. Seen is
// an explicit set of already-handled URLs (e.g. links alerted on a previous
// urgent run) threaded through the call instead of living in any global.
type Options struct {
	Now    time.Time
	MaxAge time.Duration
	Seen   map[string]struct{}
}

// Result is one processed batch plus bookkeeping about what was dropped on
// the way. Items is ranked and deduplicated; an empty Items is a valid
// outcome, not an error.
type Result struct {
	Items Batch
	Stats Stats

	Entries    int
	DroppedOld int
	// DroppedIrrelevant counts items that never mention the brand.
	DroppedIrrelevant int
	DroppedSeen       int
	// Collapsed counts source items merged away by dedup.
	Collapsed int
}

// Batch is a ranked, deduplicated sequence of classified items.
type Batch []ClassifiedItem

// Process runs the whole engine over one batch of feed entries:
// normalize -> recency -> seen/relevance filter -> classify -> dedup ->
// rank. It is a pure function of (entries, opts, rules); callers bucket the
// returned batch however the presentation needs it.
func Process(entries []Entry, c *Classifier, opts Options) Result {
	res := Result{Entries: len(entries)}

	raw := NormalizeAll(entries)

	recent := FilterRecent(raw, opts.Now, opts.MaxAge)
	res.DroppedOld = len(raw) - len(recent)

	kept := make([]RawItem, 0, len(recent))
	for _, it := range recent {
		if _, dup := opts.Seen[it.URL]; dup {
			res.DroppedSeen++
			continue
		}
		if !c.Relevant(it) {
			res.DroppedIrrelevant++
			continue
		}
		kept = append(kept, it)
	}

	classified := c.ClassifyAll(kept)

	deduped := Deduplicate(classified)
	res.Collapsed = len(classified) - len(deduped)

	res.Items = Rank(deduped)
	res.Stats = Summarize(res.Items)
	return res
}
