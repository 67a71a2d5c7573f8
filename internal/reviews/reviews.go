// Package reviews aggregates Google-review pilot data supplied as JSON.
// The data arrives via environment secrets, not an API; malformed input
// yields an empty result, never an error mid-run.
package reviews

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
)

// StoreSnapshot is one store's last-24h review movement for the daily
// digest.
type StoreSnapshot struct {
	Region  string  `json:"region"`
	Store   string  `json:"store"`
	Avg     float64 `json:"avg"`
	Delta   float64 `json:"delta"`
	Count24 int     `json:"count_24h"`
	Flag    string  `json:"flag"`
}

// Priority ranks a snapshot for the daily table: a big rating swing plus
// many fresh reviews means someone should look at that store.
func (s StoreSnapshot) Priority() float64 {
	return math.Abs(s.Delta)*10 + float64(s.Count24)
}

// ParseDaily reads the REVIEWS_JSON payload and returns the top stores by
// priority. Empty or broken input returns nil — the pilot block then shows
// its placeholder row.
func ParseDaily(raw string, top int) []StoreSnapshot {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "[]" {
		return nil
	}

	var stores []StoreSnapshot
	if err := json.Unmarshal([]byte(raw), &stores); err != nil {
		return nil
	}

	sort.SliceStable(stores, func(i, j int) bool {
		return stores[i].Priority() > stores[j].Priority()
	})
	if top > 0 && len(stores) > top {
		stores = stores[:top]
	}
	return stores
}

// WeeklyStore is one store's aggregated week in the weekly report.
type WeeklyStore struct {
	StoreID       string  `json:"store_id"`
	Name          string  `json:"name"`
	Region        string  `json:"region"`
	NewReviews    int     `json:"new_reviews"`
	NewNegative   int     `json:"new_negative"`
	ShareNegative float64 `json:"share_negative"`
	DeltaRating   float64 `json:"delta_rating"`
	AvgRating     float64 `json:"avg_rating"`
}

// WeeklyData is the WEEKLY_REVIEWS_JSON payload with defaults applied.
type WeeklyData struct {
	GeneratedAt     string        `json:"generated_at"`
	WindowDays      int           `json:"window_days"`
	TotalNewReviews int           `json:"total_new_reviews"`
	Stores          []WeeklyStore `json:"stores"`
}

// ParseWeekly reads the weekly payload. Missing fields get defaults; broken
// JSON degrades to an empty report.
func ParseWeekly(raw string) WeeklyData {
	var data WeeklyData
	raw = strings.TrimSpace(raw)
	if raw != "" {
		// Best effort: a partial decode still fills what it can.
		_ = json.Unmarshal([]byte(raw), &data)
	}

	if data.WindowDays == 0 {
		data.WindowDays = 7
	}
	if data.TotalNewReviews == 0 {
		for _, s := range data.Stores {
			data.TotalNewReviews += s.NewReviews
		}
	}
	return data
}

// TopByNewReviews returns the n stores with the most new reviews.
func (d WeeklyData) TopByNewReviews(n int) []WeeklyStore {
	return topBy(d.Stores, n, func(a, b WeeklyStore) bool {
		return a.NewReviews > b.NewReviews
	})
}

// TopByDelta returns the n stores with the biggest rating improvement.
func (d WeeklyData) TopByDelta(n int) []WeeklyStore {
	return topBy(d.Stores, n, func(a, b WeeklyStore) bool {
		return a.DeltaRating > b.DeltaRating
	})
}

// TopByNegativeShare returns the n stores with the highest share of
// negative reviews.
func (d WeeklyData) TopByNegativeShare(n int) []WeeklyStore {
	return topBy(d.Stores, n, func(a, b WeeklyStore) bool {
		return a.ShareNegative > b.ShareNegative
	})
}

func topBy(stores []WeeklyStore, n int, less func(a, b WeeklyStore) bool) []WeeklyStore {
	sorted := make([]WeeklyStore, len(stores))
	copy(sorted, stores)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
