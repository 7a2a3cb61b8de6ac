// Package dateutil parses user-supplied dates and the relative "+N"
// end-date shorthand before the pipeline sees a resolved range.
package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layout is the date format accepted from users and config.
const Layout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// ResolveEnd interprets s as either a YYYY-MM-DD date or a "+N" offset
// meaning N calendar days after start.
func ResolveEnd(start time.Time, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "+") {
		days, err := strconv.Atoi(s[1:])
		if err != nil || days <= 0 {
			return time.Time{}, fmt.Errorf("invalid day offset %q (want +N)", s)
		}
		return start.AddDate(0, 0, days), nil
	}
	end, err := ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	if !end.After(start) {
		return time.Time{}, fmt.Errorf("end date %s is not after start date %s",
			end.Format(Layout), start.Format(Layout))
	}
	return end, nil
}
