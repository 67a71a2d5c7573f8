package digest

import (
	"regexp"
	"strings"
)

// Classifier derives the classification bundle for normalized items. All
// keyword and domain policy lives in the injected Rules; the classifier
// itself is stateless and never fails — unmatchable input degrades to the
// most conservative bundle (neutral tier, Other topic, not critical, not
// international).
type Classifier struct {
	rules *Rules
}

func NewClassifier(rules *Rules) *Classifier {
	return &Classifier{rules: rules}
}

// Relevant reports whether the item mentions the monitored brand at all.
// With no brand terms configured everything is relevant.
func (c *Classifier) Relevant(item RawItem) bool {
	if len(c.rules.BrandTerms) == 0 {
		return true
	}
	text := strings.ToLower(item.Title + " " + item.Summary)
	return containsAny(text, c.rules.BrandTerms)
}

// Classify produces the ClassifiedItem for one RawItem. The steps compose
// in a fixed order: tier, topic, de-escalation override, criticality,
// internationality, then the additive score.
func (c *Classifier) Classify(item RawItem) ClassifiedItem {
	text := strings.ToLower(item.Title + " " + item.Summary)

	tier := c.tierOf(item.SourceHost)
	topic := c.topicOf(text)

	deescalated := containsAny(text, c.rules.DeescalationPhrases)
	critical := !deescalated && c.critical(text, topic)
	international := c.international(item.SourceHost, text)

	return ClassifiedItem{
		RawItem:       item,
		Tier:          tier,
		Topic:         topic,
		Critical:      critical,
		International: international,
		Score:         c.score(tier, text, critical, international),
		PickupCount:   1,
	}
}

// ClassifyAll maps Classify over a batch, keeping input order.
func (c *Classifier) ClassifyAll(items []RawItem) []ClassifiedItem {
	out := make([]ClassifiedItem, 0, len(items))
	for _, it := range items {
		out = append(out, c.Classify(it))
	}
	return out
}

func (c *Classifier) tierOf(host string) Tier {
	host = strings.ToLower(host)
	if host == "" {
		return TierNeutral
	}
	// Tabloid membership wins over serious: a host on both lists is a
	// config mistake and the cautious reading is the lower tier.
	if containsAny(host, c.rules.TabloidDomains) {
		return TierTabloid
	}
	if containsAny(host, c.rules.SeriousDomains) {
		return TierSerious
	}
	return TierNeutral
}

// topicOf returns the first topic whose keyword set matches. Rule order is
// policy: recall/safety rules are listed before generic store news so that
// "Rückruf" beats "Filiale".
func (c *Classifier) topicOf(text string) Topic {
	for _, tr := range c.rules.TopicRules {
		if containsAny(text, tr.Keywords) {
			return tr.Topic
		}
	}
	return TopicOther
}

// critical is true on a severe-harm keyword match, or as a fallback when
// the topic itself belongs to the configured high-risk subset. Callers
// apply the de-escalation override before this result is used.
func (c *Classifier) critical(text string, topic Topic) bool {
	if containsAny(text, c.rules.CriticalKeywords) {
		return true
	}
	return c.rules.highRisk(topic)
}

func (c *Classifier) international(host, text string) bool {
	foreignHost := host != "" && !strings.HasSuffix(host, c.rules.HomeTLD)
	foreignText := containsAny(text, c.rules.ForeignMarkets)

	switch c.rules.InternationalMode {
	case InternationalByDomain:
		return foreignHost
	case InternationalByKeyword:
		return foreignText
	default:
		return foreignHost || foreignText
	}
}

// score composes the declarative scoring policy: base by tier, plus purely
// additive bonuses for high-impact keywords, criticality and
// internationality. No multiplication, no randomness.
func (c *Classifier) score(tier Tier, text string, critical, international bool) int {
	w := c.rules.Weights

	score := w.Neutral
	switch tier {
	case TierSerious:
		score = w.Serious
	case TierTabloid:
		score = w.Tabloid
	}

	if containsAny(text, c.rules.ImpactKeywords) {
		score += w.Impact
	}
	if critical {
		score += w.Critical
	}
	if international {
		score += w.International
	}
	return score
}

// containsAny matches keywords against lowercased text. Phrases use plain
// substring match; very short tokens are matched on word boundaries so that
// e.g. "eu" does not fire inside "neu".
func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if strings.Contains(k, " ") || len(k) > 3 {
			if strings.Contains(text, k) {
				return true
			}
			continue
		}
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`)
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
