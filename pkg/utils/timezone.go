package utils

import (
	"fmt"
	"time"
)

// DateAt converts a civil date "YYYY-MM-DD" plus wall-clock "HH:MM" into an
// absolute instant in the given zone. The zone is always passed explicitly:
// weekday and slot math must never depend on the process TZ.
func DateAt(loc *time.Location, dateISO, timeHHMM string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", dateISO+" "+timeHHMM, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s %s: %w", dateISO, timeHHMM, err)
	}
	return t, nil
}

// WeekdayAt resolves the weekday (0=Sunday..6=Saturday) of a civil date in
// the given zone.
func WeekdayAt(loc *time.Location, dateISO string) (int, error) {
	t, err := DateAt(loc, dateISO, "00:00")
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

// DayBounds returns the half-open interval covering the civil date in the
// given zone: [00:00 of date, 00:00 of the next day).
func DayBounds(loc *time.Location, dateISO string) (time.Time, time.Time, error) {
	start, err := DateAt(loc, dateISO, "00:00")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}
