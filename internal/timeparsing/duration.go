package timeparsing

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// compactDurationRe matches compact duration patterns: [+-]?(\d+)([hdwmy])
// Examples: +6h, -1d, +2w, 3m, 1y
var compactDurationRe = regexp.MustCompile(`^([+-]?)(\d+)([hdwmy])$`)

// ParseCompactDuration parses compact duration syntax and returns now
// shifted by that amount.
//
// Units: h hours, d days, w weeks, m months, y years. A missing sign
// means positive.
//
//   - "+6h" -> now + 6 hours
//   - "-1d" -> now - 1 day
//   - "3m"  -> now + 3 months
func ParseCompactDuration(s string, now time.Time) (time.Time, error) {
	matches := compactDurationRe.FindStringSubmatch(s)
	if matches == nil {
		return time.Time{}, fmt.Errorf("not a compact duration: %q", s)
	}

	amount, err := strconv.Atoi(matches[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid duration amount: %q", matches[2])
	}
	if matches[1] == "-" {
		amount = -amount
	}

	switch matches[3] {
	case "h":
		return now.Add(time.Duration(amount) * time.Hour), nil
	case "d":
		return now.AddDate(0, 0, amount), nil
	case "w":
		return now.AddDate(0, 0, amount*7), nil
	case "m":
		return now.AddDate(0, amount, 0), nil
	default:
		return now.AddDate(amount, 0, 0), nil
	}
}

// IsCompactDuration returns true if the string matches compact duration syntax.
func IsCompactDuration(s string) bool {
	return compactDurationRe.MatchString(s)
}

// ExpandDurations replaces tokens that are signed compact durations
// ("-7d", "+2w") with timestamps relative to now. Unsigned forms are
// left alone: "3m" is far more likely to be a literal value than a date.
func ExpandDurations(tokens []string, now time.Time) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok
		if len(tok) < 3 || (tok[0] != '+' && tok[0] != '-') {
			continue
		}
		if t, err := ParseCompactDuration(tok, now); err == nil {
			out[i] = Format(t)
		}
	}
	return out
}
