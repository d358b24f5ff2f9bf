// Package timeparsing rewrites relative and natural-language dates in a
// command line into absolute timestamps.
//
// Expansion is layered and runs once over the whole command line:
//  1. Keywords (now, today, next week, last month, ...)
//  2. Calendar dates (March 5 2024 @ 14:30)
//  3. Signed compact durations (-7d, +6h), per token
//
// Every layer is a pure function of its input and an injected reference
// instant, so expansion is deterministic under test.
package timeparsing

import (
	"strings"
	"time"
)

// Layout is the timestamp format produced by every expansion layer:
// ISO-8601 with millisecond precision and no offset.
const Layout = "2006-01-02T15:04:05.000"

// Format renders t using Layout.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Expand runs the full pre-pass over a token list. The tokens are joined
// with single spaces so that multi-word phrases ("next week",
// "March 5 2024") can be matched across token boundaries, then the result
// is split on whitespace again.
//
// Expansion is idempotent: no keyword, month name or signed duration
// matches a timestamp in Layout.
func Expand(tokens []string, now time.Time) []string {
	if len(tokens) == 0 {
		return nil
	}
	line := strings.Join(tokens, " ")
	line = ExpandKeywords(line, KeywordMap(now))
	line = ExpandDates(line, now)
	return ExpandDurations(strings.Fields(line), now)
}
