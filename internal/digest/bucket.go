package digest

import "sort"

// TopicBucket is one presentation section: a topic and its members in
// ranked order.
type TopicBucket struct {
	Topic Topic
	Items []ClassifiedItem
}

// MaxScore returns the strongest member's score, or 0 for an empty bucket.
// Input order inside a bucket is ranked order, so this is the first item.
func (b TopicBucket) MaxScore() int {
	if len(b.Items) == 0 {
		return 0
	}
	return b.Items[0].Score
}

// TopicBucketOrder selects how topic sections are ordered in the digest.
type TopicBucketOrder string

const (
	// OrderByMaxScore leads with whichever topic holds the single most
	// relevant story of the day.
	OrderByMaxScore TopicBucketOrder = "max_score"
	// OrderFixed uses the legacy fixed section order (recall first,
	// Sonstiges last) regardless of scores.
	OrderFixed TopicBucketOrder = "fixed"
)

// TopicBuckets partitions a ranked batch by topic. Relative ranked order is
// preserved inside each bucket; empty topics are omitted, so every input
// item lands in exactly one bucket. Bucket order follows the given policy —
// the two policies are never mixed.
func TopicBuckets(ranked []ClassifiedItem, order TopicBucketOrder) []TopicBucket {
	members := make(map[Topic][]ClassifiedItem)
	for _, it := range ranked {
		members[it.Topic] = append(members[it.Topic], it)
	}

	buckets := make([]TopicBucket, 0, len(members))
	for _, t := range Topics {
		if items, ok := members[t]; ok {
			buckets = append(buckets, TopicBucket{Topic: t, Items: items})
		}
	}

	if order == OrderByMaxScore {
		sort.SliceStable(buckets, func(i, j int) bool {
			return buckets[i].MaxScore() > buckets[j].MaxScore()
		})
	}
	return buckets
}

// TierBuckets is the headline-oriented presentation view.
type TierBuckets struct {
	Headline        []ClassifiedItem
	FurtherMentions []ClassifiedItem
	International   []ClassifiedItem
}

// SplitTiers slices a ranked batch into headline (first headlineN),
// further mentions (the next mentionsN), and an international section of
// not-yet-placed international items capped at intlMax. Views only — the
// items are shared with the ranked batch, never copied-and-mutated.
func SplitTiers(ranked []ClassifiedItem, headlineN, mentionsN, intlMax int) TierBuckets {
	if headlineN < 0 {
		headlineN = 0
	}
	if headlineN > len(ranked) {
		headlineN = len(ranked)
	}
	mentionsEnd := headlineN + mentionsN
	if mentionsN < 0 || mentionsEnd > len(ranked) {
		mentionsEnd = len(ranked)
	}

	tb := TierBuckets{
		Headline:        ranked[:headlineN],
		FurtherMentions: ranked[headlineN:mentionsEnd],
	}

	for _, it := range ranked[mentionsEnd:] {
		if intlMax >= 0 && len(tb.International) >= intlMax {
			break
		}
		if it.International {
			tb.International = append(tb.International, it)
		}
	}
	return tb
}
