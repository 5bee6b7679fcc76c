// Package dateutils provides the date conventions used by the different
// sections of a portfolio export.
//
// The export does not describe which convention a section uses: monthly
// performance rows are written month-first ("12/31/2023") while ledger rows
// are written day-first ("31/12/2023"). Each section is therefore parsed with
// an explicit Convention, and a sniffing safeguard swaps day and month when
// the configured order is impossible for a given value.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayoutISO is the layout used for every date the report emits.
const DateLayoutISO = "2006-01-02"

// Convention is the field order of a numeric date string.
type Convention string

const (
	DMY Convention = "DMY"
	MDY Convention = "MDY"
	ISO Convention = "ISO"
)

// ParseConvention validates a configured convention name.
func ParseConvention(s string) (Convention, error) {
	switch c := Convention(strings.ToUpper(strings.TrimSpace(s))); c {
	case DMY, MDY, ISO:
		return c, nil
	default:
		return "", fmt.Errorf("unknown date convention %q (want DMY, MDY or ISO)", s)
	}
}

var (
	spaceRe   = regexp.MustCompile(`\s+`)
	numericRe = regexp.MustCompile(`^(\d{1,4})[./-](\d{1,2})[./-](\d{1,4})$`)
)

// CleanDateString removes unwanted characters and normalizes a date string.
// A trailing time component ("T10:00:00", " 00:00:00") is dropped.
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	dateStr = spaceRe.ReplaceAllString(dateStr, " ")
	if i := strings.IndexAny(dateStr, "T "); i > 0 {
		dateStr = dateStr[:i]
	}
	return dateStr
}

// Parse reads a calendar date written with the given convention and returns
// it at midnight UTC. ISO dates (YYYY-MM-DD) are always accepted.
//
// When the configured order yields an impossible month but the swapped order
// is valid (e.g. "31/12/2024" under MDY), the swapped reading is used.
func Parse(dateStr string, conv Convention) (time.Time, error) {
	clean := CleanDateString(dateStr)
	if clean == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	m := numericRe.FindStringSubmatch(clean)
	if m == nil {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
	}
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	c, _ := strconv.Atoi(m[3])

	// Year first is unambiguous.
	if len(m[1]) == 4 {
		return build(a, b, c, dateStr)
	}
	if len(m[3]) != 4 {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
	}

	day, month := a, b
	if conv == MDY {
		day, month = b, a
	}
	if month > 12 && day <= 12 {
		day, month = month, day
	}
	return build(c, month, day, dateStr)
}

func build(year, month, day int, raw string) (time.Time, error) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", raw)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 -> Mar 1); reject it.
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", raw)
	}
	return t, nil
}

// ParseISO parses a YYYY-MM-DD calendar date, as supplied by filter inputs.
func ParseISO(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayoutISO, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q, expected YYYY-MM-DD: %w", dateStr, err)
	}
	return t, nil
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
// The zero time formats as an empty string.
func ToISODate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutISO)
}

// Truncate drops the time-of-day component of t.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CompareDates compares two calendar dates, ignoring the time component:
//
//	-1 if date1 is before date2
//	 0 if date1 is equal to date2
//	 1 if date1 is after date2
func CompareDates(date1, date2 time.Time) int {
	date1 = Truncate(date1)
	date2 = Truncate(date2)

	switch {
	case date1.Before(date2):
		return -1
	case date1.After(date2):
		return 1
	default:
		return 0
	}
}

// InRange reports whether d lies within [from, to]. A zero bound is open.
func InRange(d, from, to time.Time) bool {
	if !from.IsZero() && CompareDates(d, from) < 0 {
		return false
	}
	if !to.IsZero() && CompareDates(d, to) > 0 {
		return false
	}
	return true
}
