package digest

import (
	"testing"
	"time"
)

func TestFilterRecent(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	fresh := RawItem{URL: "https://a.de/fresh", Published: ts("2026-08-25T06:00:00Z")}
	stale := RawItem{URL: "https://a.de/stale", Published: ts("2026-08-23T06:00:00Z")}
	undated := RawItem{URL: "https://a.de/undated"}

	got := FilterRecent([]RawItem{fresh, stale, undated}, now, 24*time.Hour)

	if len(got) != 2 {
		t.Fatalf("kept %d items, want 2", len(got))
	}
	if got[0].URL != fresh.URL {
		t.Errorf("first kept = %s, want fresh item", got[0].URL)
	}
	// Fail-open: no timestamp means keep.
	if got[1].URL != undated.URL {
		t.Errorf("second kept = %s, want undated item", got[1].URL)
	}
}

func TestFilterRecentDisabled(t *testing.T) {
	items := []RawItem{{URL: "a", Published: ts("2000-01-01T00:00:00Z")}}
	if got := FilterRecent(items, time.Now(), 0); len(got) != 1 {
		t.Errorf("maxAge 0 should disable the filter, kept %d", len(got))
	}
}

func TestFilterRecentBoundary(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	exact := RawItem{URL: "x", Published: ts("2026-08-24T12:00:00Z")}

	// Exactly at the cutoff is still inside the window.
	if got := FilterRecent([]RawItem{exact}, now, 24*time.Hour); len(got) != 1 {
		t.Errorf("item exactly maxAge old should be kept")
	}
}
