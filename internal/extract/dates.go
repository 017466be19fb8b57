package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dmyPattern = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4}|\d{2})(?:[ T]+(\d{1,2}):(\d{2})(?::(\d{2}))?)?$`)
	isoPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

// ParseDate reads a day/month/year date with an optional H:MM[:SS] time. Two-digit
// years are taken as 20YY. ISO dates (YYYY-MM-DD) are accepted too since spreadsheet
// exports sometimes emit them. Anything else yields ok=false.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if m := dmyPattern.FindStringSubmatch(s); m != nil {
		year := atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
		return buildTime(year, atoi(m[2]), atoi(m[1]), atoi(m[4]), atoi(m[5]), atoi(m[6]))
	}

	if m := isoPattern.FindStringSubmatch(s); m != nil {
		return buildTime(atoi(m[1]), atoi(m[2]), atoi(m[3]), 0, 0, 0)
	}

	return time.Time{}, false
}

// buildTime rejects values time.Date would silently normalise (31/02, 25:00).
func buildTime(year, month, day, hour, min, sec int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || hour > 23 || min > 59 || sec > 59 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, hour, min, sec, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

// atoi returns 0 for empty optional groups.
func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
