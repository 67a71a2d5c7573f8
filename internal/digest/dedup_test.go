package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Kaufland ruft Hackfleisch zurück!", "kaufland ruft hackfleisch zurück"},
		{"  Kaufland:   Rückruf – Salmonellen  ", "kaufland rückruf salmonellen"},
		{"KAUFLAND RUFT HACKFLEISCH ZURÜCK", "kaufland ruft hackfleisch zurück"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTitle(tt.in))
	}
}

func TestDeduplicateByURL(t *testing.T) {
	a := ClassifiedItem{RawItem: RawItem{Title: "A", URL: "https://x.de/1"}, Score: 3}
	b := ClassifiedItem{RawItem: RawItem{Title: "B", URL: "https://x.de/1"}, Score: 5}

	out := Deduplicate([]ClassifiedItem{a, b})

	require.Len(t, out, 1)
	assert.Equal(t, 5, out[0].Score, "survivor must carry the class maximum")
	assert.Equal(t, 2, out[0].PickupCount)
}

func TestDeduplicateByNormalizedTitle(t *testing.T) {
	// Same story syndicated by two outlets: URLs differ only by tracking
	// params, normalized titles agree.
	a := ClassifiedItem{RawItem: RawItem{
		Title: "Kaufland ruft Hackfleisch zurück",
		URL:   "https://a.de/story?utm_source=rss",
	}, Score: 5}
	b := ClassifiedItem{RawItem: RawItem{
		Title: "Kaufland ruft Hackfleisch zurück!",
		URL:   "https://b.de/story?ref=feed",
	}, Score: 7}

	out := Deduplicate([]ClassifiedItem{a, b})

	require.Len(t, out, 1)
	assert.Equal(t, 7, out[0].Score)
	assert.Equal(t, "https://b.de/story?ref=feed", out[0].URL)
	assert.Equal(t, 2, out[0].PickupCount, "pickup count is the class size")
}

func TestDeduplicateTieBreaks(t *testing.T) {
	early := ClassifiedItem{RawItem: RawItem{Title: "Gleiche Story", URL: "https://a.de/1", Published: ts("2026-08-24T06:00:00Z")}, Score: 4}
	late := ClassifiedItem{RawItem: RawItem{Title: "Gleiche Story", URL: "https://b.de/1", Published: ts("2026-08-24T09:00:00Z")}, Score: 4}

	t.Run("equal scores keep the earliest published", func(t *testing.T) {
		out := Deduplicate([]ClassifiedItem{late, early})
		require.Len(t, out, 1)
		assert.Equal(t, "https://a.de/1", out[0].URL)
	})

	t.Run("equal scores and times keep first seen", func(t *testing.T) {
		twin := late
		twin.URL = "https://c.de/1"
		out := Deduplicate([]ClassifiedItem{late, twin})
		require.Len(t, out, 1)
		assert.Equal(t, "https://b.de/1", out[0].URL)
	})

	t.Run("timestamped beats undated on ties", func(t *testing.T) {
		undated := ClassifiedItem{RawItem: RawItem{Title: "Gleiche Story", URL: "https://d.de/1"}, Score: 4}
		out := Deduplicate([]ClassifiedItem{undated, early})
		require.Len(t, out, 1)
		assert.Equal(t, "https://a.de/1", out[0].URL)
	})
}

func TestDeduplicateDeterministic(t *testing.T) {
	items := []ClassifiedItem{
		{RawItem: RawItem{Title: "Story Eins", URL: "https://a.de/1"}, Score: 3},
		{RawItem: RawItem{Title: "Story Eins", URL: "https://b.de/1"}, Score: 6},
		{RawItem: RawItem{Title: "Story Zwei", URL: "https://a.de/2"}, Score: 2},
		{RawItem: RawItem{Title: "Story Zwei!", URL: "https://a.de/2"}, Score: 2},
	}

	first := Deduplicate(items)
	second := Deduplicate(items)
	assert.Equal(t, first, second, "identical input must yield identical survivors")
	require.Len(t, first, 2)
}

func TestDeduplicateKeepsDistinctStories(t *testing.T) {
	items := []ClassifiedItem{
		{RawItem: RawItem{Title: "Rückruf bei Kaufland", URL: "https://a.de/1"}, Score: 5},
		{RawItem: RawItem{Title: "Neue Filiale in Jena", URL: "https://a.de/2"}, Score: 2},
	}
	out := Deduplicate(items)
	assert.Len(t, out, 2)
	for _, it := range out {
		assert.Equal(t, 1, it.PickupCount)
	}
}
