// Package datetime parses the date, clock and timezone strings used in content
// files and formats schedule times for display.
package datetime

import (
	"fmt"
	"strconv"
	"time"
	_ "time/tzdata"

	"conferencesite/internal/domain"
)

const (
	dateLayout       = "2006-01-02"
	legacyDateLayout = "02-01-2006"
	clockLayout      = "15:04"
)

// ParseDateTime combines a calendar date, a clock time and an IANA timezone name
// into an absolute instant.
func ParseDateTime(date, clock, timezone string) (time.Time, error) {
	loc, err := loadLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}
	year, month, day, err := parseCalendarDate(date)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, month, day, hour, minute, 0, 0, loc), nil
}

// ParseDate is ParseDateTime at midnight.
func ParseDate(date, timezone string) (time.Time, error) {
	return ParseDateTime(date, "00:00", timezone)
}

// ParseCalendarDate parses a date without a timezone and returns its components.
func ParseCalendarDate(date string) (year int, month time.Month, day int, err error) {
	return parseCalendarDate(date)
}

// ParseClock parses an "HH:MM" wall-clock time.
func ParseClock(clock string) (hour, minute int, err error) {
	return parseClock(clock)
}

// AddNull zero-pads n to two digits when 0 <= n < 10.
func AddNull(n int) string {
	if n >= 0 && n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// FormatClock renders t as H:MM, hour unpadded.
func FormatClock(t time.Time) string {
	return strconv.Itoa(t.Hour()) + ":" + AddNull(t.Minute())
}

func loadLocation(timezone string) (*time.Location, error) {
	// time.LoadLocation maps "" to UTC; content must name its zone.
	if timezone == "" {
		return nil, fmt.Errorf("%w: empty timezone", domain.ErrInvalidTimeSpec)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", domain.ErrInvalidTimeSpec, timezone)
	}
	return loc, nil
}

func parseCalendarDate(date string) (int, time.Month, int, error) {
	for _, layout := range []string{dateLayout, legacyDateLayout} {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Year(), t.Month(), t.Day(), nil
		}
	}
	return 0, 0, 0, fmt.Errorf("%w: malformed date %q", domain.ErrInvalidTimeSpec, date)
}

func parseClock(clock string) (int, int, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: malformed time %q", domain.ErrInvalidTimeSpec, clock)
	}
	return t.Hour(), t.Minute(), nil
}
