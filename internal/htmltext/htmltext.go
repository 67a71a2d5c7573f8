// Package htmltext converts feed-supplied HTML fragments into display text.
package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ToText strips all markup from an HTML fragment and collapses whitespace.
// Invalid or plain-text input is returned collapsed but otherwise as-is;
// this function never fails.
func ToText(fragment string) string {
	if fragment == "" {
		return ""
	}
	if !strings.ContainsAny(fragment, "<&") {
		return Collapse(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return Collapse(fragment)
	}
	return Collapse(doc.Text())
}

// Collapse trims the string and folds every whitespace run into one space.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate cuts s to at most max runes, appending the ellipsis marker when
// something was cut. max <= 0 disables truncation.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
