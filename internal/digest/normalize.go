package digest

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"klbrief/internal/htmltext"
)

// SummaryMaxRunes is the display budget for normalized summaries.
const SummaryMaxRunes = 260

// Normalize turns one feed entry into a RawItem. It never fails: missing
// fields become empty strings and unparseable timestamps become nil, which
// the recency filter treats as "keep".
func Normalize(e Entry) RawItem {
	summary := htmltext.Truncate(htmltext.ToText(e.Summary), SummaryMaxRunes)

	return RawItem{
		Title:      strings.TrimSpace(e.Title),
		Summary:    summary,
		URL:        strings.TrimSpace(e.Link),
		SourceHost: hostOf(e.Link),
		Published:  publishedAt(e),
	}
}

// NormalizeAll maps Normalize over a batch, keeping input order.
func NormalizeAll(entries []Entry) []RawItem {
	items := make([]RawItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, Normalize(e))
	}
	return items
}

// publishedAt resolves the publish time, preferring published over updated.
// Parsed values from the fetch adapter win; raw strings go through lenient
// parsing as a fallback because feed timestamps come in many shapes.
func publishedAt(e Entry) *time.Time {
	if t := utcOrNil(e.PublishedParsed); t != nil {
		return t
	}
	if t := utcOrNil(e.UpdatedParsed); t != nil {
		return t
	}
	for _, raw := range []string{e.Published, e.Updated} {
		if raw == "" {
			continue
		}
		if t, err := dateparse.ParseAny(raw); err == nil {
			u := t.UTC()
			return &u
		}
	}
	return nil
}

func utcOrNil(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}

// hostOf extracts the bare host from a link: strip the scheme, cut at the
// first slash, drop any www prefix.
func hostOf(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	link = strings.TrimPrefix(link, "https://")
	link = strings.TrimPrefix(link, "http://")
	if i := strings.IndexByte(link, '/'); i >= 0 {
		link = link[:i]
	}
	link = strings.TrimPrefix(link, "www.")
	return strings.ToLower(link)
}
