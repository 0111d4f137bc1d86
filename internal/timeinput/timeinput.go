// Package timeinput formats and validates the date and time strings users type.
package timeinput

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// datePattern accepts "-" and "/" so typed dates and calendar-picked dates share one parser.
var datePattern = regexp.MustCompile(`^(\d{2})[-/](\d{2})[-/](\d{4})$`)

// Date is a calendar day without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String renders DD-MM-YYYY.
func (d Date) String() string {
	return fmt.Sprintf("%02d-%02d-%04d", d.Day, int(d.Month), d.Year)
}

// Display renders DD/MM/YYYY.
func (d Date) Display() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// In returns midnight of the day in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// AddDays shifts the date by n calendar days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.In(time.UTC).AddDate(0, 0, n))
}

func digits(raw string, max int) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == max {
				break
			}
		}
	}
	return b.String()
}

// FormatTimeInput keeps up to four digits and inserts ":" after the hour.
func FormatTimeInput(raw string) string {
	d := digits(raw, 4)
	if len(d) <= 2 {
		return d
	}
	return d[:2] + ":" + d[2:]
}

// FormatDateInput keeps up to eight digits and inserts "/" after the day and the month.
func FormatDateInput(raw string) string {
	d := digits(raw, 8)
	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 4:
		return d[:2] + "/" + d[2:]
	default:
		return d[:2] + "/" + d[2:4] + "/" + d[4:]
	}
}

// IsValidTime reports whether s is a 24h HH:MM time.
func IsValidTime(s string) bool {
	return timePattern.MatchString(s)
}

// ParseDate parses DD-MM-YYYY (or DD/MM/YYYY) and rejects impossible days.
func ParseDate(s string) (Date, error) {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return Date{}, fmt.Errorf("invalid date %q", s)
	}
	return Date{Year: year, Month: time.Month(month), Day: day}, nil
}

// ParseClock splits a valid HH:MM into hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	if !IsValidTime(s) {
		return 0, 0, fmt.Errorf("invalid time %q", s)
	}
	hour, _ = strconv.Atoi(s[:2])
	minute, _ = strconv.Atoi(s[3:])
	return hour, minute, nil
}

// IsValidFutureDate reports whether s parses and falls on today or later,
// today being the calendar day of now in now's location.
func IsValidFutureDate(s string, now time.Time) bool {
	d, err := ParseDate(s)
	if err != nil {
		return false
	}
	return !d.Before(DateOf(now))
}
