package digest

import "time"

// testRules mirrors the production rules file closely enough for the
// engine tests without touching the filesystem.
func testRules() *Rules {
	return &Rules{
		BrandTerms:     []string{"kaufland"},
		TabloidDomains: []string{"bild.de", "express.de", "tz.de", "promiflash.de"},
		SeriousDomains: []string{"handelsblatt", "faz.net", "sueddeutsche", "tagesschau", "spiegel.de", "ndr.de"},
		TopicRules: []TopicRule{
			{Topic: TopicQualityRecall, Keywords: []string{"rückruf", "salmonellen", "gesundheitsgefahr", "verunreinigung"}},
			{Topic: TopicHygieneOps, Keywords: []string{"hygiene", "schimmel", "verdorben", "abgelaufen"}},
			{Topic: TopicPricingPromo, Keywords: []string{"preis", "rabatt", "angebot", "inflation"}},
			{Topic: TopicExpansion, Keywords: []string{"neue filiale", "eröffnung", "neuer markt", "umbau", "filiale"}},
			{Topic: TopicPersonnel, Keywords: []string{"mitarbeiter", "streik", "tarif", "lohn"}},
			{Topic: TopicReputation, Keywords: []string{"shitstorm", "boykott", "skandal", "kritik"}},
		},
		CriticalKeywords:    []string{"rückruf", "salmonellen", "gesundheitsgefahr", "vergiftung"},
		DeescalationPhrases: []string{"wieder geöffnet", "modernisiert", "entwarnung"},
		ImpactKeywords:      []string{"umsatz", "eröffnung", "rückruf", "skandal", "boykott", "krise"},
		HomeTLD:             ".de",
		ForeignMarkets:      []string{"rumänien", "bulgarien", "tschechien", "polen"},
		InternationalMode:   InternationalByBoth,
		HighRiskTopics:      []Topic{TopicQualityRecall, TopicHygieneOps, TopicReputation},
		Weights: Weights{
			Serious:       3,
			Tabloid:       2,
			Neutral:       1,
			Impact:        2,
			Critical:      3,
			International: 1,
		},
	}
}

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	u := t.UTC()
	return &u
}
