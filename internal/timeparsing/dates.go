package timeparsing

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var months = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// datePattern matches "<Month> <Day>[ <Year>][ @ <Hour>:<Minute>]".
// Groups: 1 month, 2 day, 3 year, 4 hour, 5 minute.
var datePattern = regexp.MustCompile(`(?i)\b(` +
	`january|february|march|april|may|june|july|august|september|october|november|december|` +
	`jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec` +
	`)\s+(\d{1,2})(?:\s+(\d{4}))?(?:\s*@\s*(\d{1,2}):(\d{2}))?\b`)

// ExpandDates replaces calendar dates written as "March 5", "march 5 2024"
// or "Mar 5 2024 @ 14:30" with timestamps. The year defaults to now's
// year and the time to midnight. Matches that do not name a real date or
// time, such as "February 30", are left as written.
func ExpandDates(s string, now time.Time) string {
	matches := datePattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		group := func(i int) string {
			if m[2*i] < 0 {
				return ""
			}
			return s[m[2*i]:m[2*i+1]]
		}

		t, ok := resolveDate(group(1), group(2), group(3), group(4), group(5), now)
		if !ok {
			continue
		}
		sb.WriteString(s[last:m[0]])
		sb.WriteString(Format(t))
		last = m[1]
	}
	sb.WriteString(s[last:])
	return sb.String()
}

func resolveDate(monthStr, dayStr, yearStr, hourStr, minStr string, now time.Time) (time.Time, bool) {
	month, ok := months[strings.ToLower(monthStr)[:3]]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(dayStr)

	year := now.Year()
	if yearStr != "" {
		year, _ = strconv.Atoi(yearStr)
	}

	hour, minute := 0, 0
	if hourStr != "" {
		hour, _ = strconv.Atoi(hourStr)
		minute, _ = strconv.Atoi(minStr)
		if hour > 23 || minute > 59 {
			return time.Time{}, false
		}
	}

	t := time.Date(year, month, day, hour, minute, 0, 0, now.Location())
	// time.Date normalizes overflow (Feb 30 -> Mar 1); reject those.
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
