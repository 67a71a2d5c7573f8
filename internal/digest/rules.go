package digest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// InternationalMode selects how internationality is detected. The script
// variants never agreed on this, so it is an explicit policy knob.
type InternationalMode string

const (
	InternationalByDomain  InternationalMode = "domain"
	InternationalByKeyword InternationalMode = "keyword"
	InternationalByBoth    InternationalMode = "both"
)

// TopicRule binds one topic to its keyword set. Rule order in the file is
// the match order.
type TopicRule struct {
	Topic    Topic    `yaml:"topic"`
	Keywords []string `yaml:"keywords"`
}

// Weights is the declarative scoring policy: base score by tier plus purely
// additive bonuses. Tuning note: with the defaults a critical neutral-tier
// item (1+3=4) outranks a non-critical serious-tier one (3); set Critical
// below 3 to invert that.
type Weights struct {
	Serious       int `yaml:"serious"`
	Tabloid       int `yaml:"tabloid"`
	Neutral       int `yaml:"neutral"`
	Impact        int `yaml:"impact"`
	Critical      int `yaml:"critical"`
	International int `yaml:"international"`
}

// Rules is the full classification policy, supplied as data so behavior
// changes are config diffs rather than code forks.
type Rules struct {
	// BrandTerms gates relevance: items mentioning none of these are
	// dropped before classification. Empty disables the filter.
	BrandTerms []string `yaml:"brand_terms"`

	TabloidDomains []string `yaml:"tabloid_domains"`
	SeriousDomains []string `yaml:"serious_domains"`

	TopicRules []TopicRule `yaml:"topics"`

	CriticalKeywords    []string `yaml:"critical_keywords"`
	DeescalationPhrases []string `yaml:"deescalation_phrases"`
	ImpactKeywords      []string `yaml:"impact_keywords"`

	HomeTLD           string            `yaml:"home_tld"`
	ForeignMarkets    []string          `yaml:"foreign_markets"`
	InternationalMode InternationalMode `yaml:"international_mode"`

	// HighRiskTopics imply criticality even without a critical keyword
	// match (still suppressed by a de-escalation phrase).
	HighRiskTopics []Topic `yaml:"high_risk_topics"`

	Weights Weights `yaml:"weights"`
}

// LoadRules reads and validates a rules file. Any problem here is a broken
// deployment, so callers are expected to treat errors as fatal.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return &r, nil
}

// Validate checks that every rule set the classifier depends on is present.
func (r *Rules) Validate() error {
	if len(r.TopicRules) == 0 {
		return fmt.Errorf("no topic rules defined")
	}
	known := make(map[Topic]bool, len(Topics))
	for _, t := range Topics {
		known[t] = true
	}
	for i, tr := range r.TopicRules {
		if !known[tr.Topic] {
			return fmt.Errorf("topic rule %d: unknown topic %q", i, tr.Topic)
		}
		if tr.Topic == TopicOther {
			return fmt.Errorf("topic rule %d: %q is the implicit default and takes no keywords", i, TopicOther)
		}
		if len(tr.Keywords) == 0 {
			return fmt.Errorf("topic rule %d (%s): empty keyword set", i, tr.Topic)
		}
	}
	for _, t := range r.HighRiskTopics {
		if !known[t] {
			return fmt.Errorf("high_risk_topics: unknown topic %q", t)
		}
	}
	if len(r.CriticalKeywords) == 0 {
		return fmt.Errorf("critical_keywords must not be empty")
	}
	if len(r.DeescalationPhrases) == 0 {
		return fmt.Errorf("deescalation_phrases must not be empty")
	}
	if r.HomeTLD == "" {
		return fmt.Errorf("home_tld must be set")
	}
	switch r.InternationalMode {
	case InternationalByDomain, InternationalByKeyword, InternationalByBoth:
	case "":
		r.InternationalMode = InternationalByBoth
	default:
		return fmt.Errorf("international_mode must be domain, keyword or both, got %q", r.InternationalMode)
	}
	if r.Weights == (Weights{}) {
		return fmt.Errorf("weights must be set")
	}
	if r.Weights.Neutral <= 0 || r.Weights.Tabloid <= 0 || r.Weights.Serious <= 0 {
		return fmt.Errorf("tier base weights must be positive")
	}
	return nil
}

func (r *Rules) highRisk(t Topic) bool {
	for _, h := range r.HighRiskTopics {
		if h == t {
			return true
		}
	}
	return false
}
