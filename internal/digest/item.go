// Package digest turns raw feed entries about the monitored brand into a
// ranked, deduplicated, topic-bucketed batch ready for rendering.
//
// The pipeline is: normalize -> recency filter -> relevance filter ->
// classify -> dedup -> rank -> bucket. Every stage is a pure function over
// its input batch; nothing in this package keeps state between runs.
package digest

import "time"

// Tier is the coarse credibility class of a source host.
type Tier string

const (
	TierSerious Tier = "serious"
	TierTabloid Tier = "tabloid"
	TierNeutral Tier = "neutral"
)

// Topic is the single category assigned to an item. Matching is
// first-match-wins over the ordered rule list, so safety topics must be
// listed before generic ones in the rules file.
type Topic string

const (
	TopicQualityRecall Topic = "quality_recall"
	TopicHygieneOps    Topic = "hygiene_ops"
	TopicPricingPromo  Topic = "pricing_promo"
	TopicExpansion     Topic = "expansion"
	TopicPersonnel     Topic = "personnel"
	TopicReputation    Topic = "reputation"
	TopicOther         Topic = "other"
)

// Topics lists all known topics in the legacy report order. Used by the
// fixed-order bucketing policy and by rules validation.
var Topics = []Topic{
	TopicQualityRecall,
	TopicHygieneOps,
	TopicPricingPromo,
	TopicExpansion,
	TopicPersonnel,
	TopicReputation,
	TopicOther,
}

// Label returns the German section heading used in reports.
func (t Topic) Label() string {
	switch t {
	case TopicQualityRecall:
		return "Rückruf / Sicherheit"
	case TopicHygieneOps:
		return "Hygiene / Qualität"
	case TopicPricingPromo:
		return "Preise / Aktionen"
	case TopicExpansion:
		return "Filialen / Expansion"
	case TopicPersonnel:
		return "Personal / Arbeitsbedingungen"
	case TopicReputation:
		return "Reputation / Medien"
	default:
		return "Sonstiges"
	}
}

// Entry is one feed entry as handed over by the fetch adapter. Summary may
// still contain HTML. Published/Updated carry the raw strings from the feed
// so the normalizer can fall back to lenient parsing when the adapter could
// not parse them.
type Entry struct {
	Title           string
	Link            string
	Summary         string
	Published       string
	Updated         string
	PublishedParsed *time.Time
	UpdatedParsed   *time.Time
}

// RawItem is a normalized feed entry. Immutable once created.
type RawItem struct {
	Title      string
	Summary    string // plain text, display-capped
	URL        string
	SourceHost string
	Published  *time.Time // UTC, nil when the feed gave no usable timestamp
}

// ClassifiedItem is a RawItem plus the full classification bundle. It is
// derived deterministically from the RawItem and never mutated afterwards;
// re-classification means producing a new value.
type ClassifiedItem struct {
	RawItem

	Tier          Tier
	Topic         Topic
	Critical      bool
	International bool
	Score         int

	// PickupCount is the number of source items collapsed into this
	// representative by dedup. 1 for items nobody else picked up.
	PickupCount int
}
