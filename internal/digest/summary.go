package digest

// Stats are pure derived counters over a batch; safe to recompute at any
// time.
type Stats struct {
	Total         int
	Critical      int
	International int
	PerTopic      map[Topic]int
}

// Summarize counts a batch. The batch itself is not touched.
func Summarize(items []ClassifiedItem) Stats {
	s := Stats{PerTopic: make(map[Topic]int)}
	for _, it := range items {
		s.Total++
		if it.Critical {
			s.Critical++
		}
		if it.International {
			s.International++
		}
		s.PerTopic[it.Topic]++
	}
	return s
}
