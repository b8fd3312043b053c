// Package htmltext reduces HTML fragments to plain text for briefing content.
package htmltext

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var spaceExpr = regexp.MustCompile(`\s+`)

// Strip removes markup from an HTML fragment and normalizes whitespace.
// Feed descriptions arrive as anything from plain text to full article HTML;
// the result is always a single-spaced text string.
func Strip(fragment string) string {
	if fragment == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		// Not parseable as HTML; treat as text.
		return normalize(fragment)
	}

	doc.Find("script, style").Remove()
	return normalize(doc.Text())
}

// Truncate bounds s to max bytes, cutting on a rune boundary.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	out := make([]rune, 0, max)
	size := 0
	for _, r := range runes {
		size += len(string(r))
		if size > max {
			break
		}
		out = append(out, r)
	}
	return string(out)
}

func normalize(s string) string {
	return strings.TrimSpace(spaceExpr.ReplaceAllString(s, " "))
}
