package timeparsing

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// KeywordMap returns the relative-date keywords and their timestamps for
// the given reference instant. Day-granular keywords resolve to midnight
// in now's location; weeks start on Monday.
func KeywordMap(now time.Time) map[string]string {
	y, m, d := now.Date()
	loc := now.Location()

	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	week := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
	month := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	year := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)

	return map[string]string{
		"now":        Format(now),
		"today":      Format(today),
		"yesterday":  Format(today.AddDate(0, 0, -1)),
		"tomorrow":   Format(today.AddDate(0, 0, 1)),
		"this week":  Format(week),
		"next week":  Format(week.AddDate(0, 0, 7)),
		"last week":  Format(week.AddDate(0, 0, -7)),
		"this month": Format(month),
		"next month": Format(month.AddDate(0, 1, 0)),
		"last month": Format(month.AddDate(0, -1, 0)),
		"this year":  Format(year),
		"next year":  Format(year.AddDate(1, 0, 0)),
		"last year":  Format(year.AddDate(-1, 0, 0)),
	}
}

// ExpandKeywords replaces every whole-word occurrence of a keyword in s
// with its timestamp. Longer keys win over shorter overlapping ones and
// the replacement is a single pass, so substituted text is never
// rescanned.
func ExpandKeywords(s string, keywords map[string]string) string {
	if len(keywords) == 0 || s == "" {
		return s
	}
	re := keywordPattern(keywords)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		if ts, ok := keywords[normalizeSpace(match)]; ok {
			return ts
		}
		return match
	})
}

// keywordPattern builds one alternation over all keys, longest first.
// Spaces inside a phrase match any run of whitespace.
func keywordPattern(keywords map[string]string) *regexp.Regexp {
	keys := make([]string, 0, len(keywords))
	for k := range keywords {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	alts := make([]string, len(keys))
	for i, k := range keys {
		words := strings.Fields(k)
		for j, w := range words {
			words[j] = regexp.QuoteMeta(w)
		}
		alts[i] = strings.Join(words, `\s+`)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)\b`)
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
