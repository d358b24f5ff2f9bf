package timeparsing

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var nlpParser = newNLPParser()

func newNLPParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// ParseNaturalLanguage resolves free-form phrases such as "tomorrow at 9am",
// "next monday" or "3 days ago" relative to now.
//
// This is wider than the keyword table used by Expand and is never applied
// to query text.
func ParseNaturalLanguage(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date expression")
	}
	r, err := nlpParser.Parse(s, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", s, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("not a recognizable date: %q", s)
	}
	return r.Time, nil
}

// absoluteLayouts are tried after the relative layers fail.
var absoluteLayouts = []string{
	Layout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseRelativeTime resolves a single date expression using every layer
// the query pre-pass knows, in order:
//  1. Compact duration (+6h, -1d)
//  2. Keyword (today, next week)
//  3. Calendar date (March 5 2024 @ 14:30)
//  4. Absolute timestamp (Layout, RFC3339, date-only)
//  5. Natural language (in 3 days, next monday at 2pm)
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date expression")
	}

	if t, err := ParseCompactDuration(s, now); err == nil {
		return t, nil
	}

	if ts, ok := KeywordMap(now)[normalizeSpace(strings.ToLower(s))]; ok {
		return time.ParseInLocation(Layout, ts, now.Location())
	}

	if expanded := ExpandDates(s, now); expanded != s {
		if t, err := time.ParseInLocation(Layout, expanded, now.Location()); err == nil {
			return t, nil
		}
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t, nil
		}
	}

	return ParseNaturalLanguage(s, now)
}
