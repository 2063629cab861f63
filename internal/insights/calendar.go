package insights

import (
	"fmt"
	"time"
)

// WeekKey returns the "{year}-W{week}" bucket for t, using Thursday-anchored
// ISO week numbering: week 1 is the week containing the year's first
// Thursday. The year in the key is the week's year, so the last days of
// December can map to week 1 of the following year.
func WeekKey(t time.Time) string {
	year, week := isoWeek(t)
	return fmt.Sprintf("%d-W%d", year, week)
}

// MonthKey returns the "{year}-{month}" bucket for t, month zero-padded to
// two digits. Unlike WeekKey it always uses the timestamp's own year.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%d-%02d", t.Year(), int(t.Month()))
}

// isoWeek shifts the date to the Thursday of its own week, then counts whole
// weeks from January 1 of the shifted year. Time of day is discarded first
// so a timestamp and its date resolve to the same week.
func isoWeek(t time.Time) (year, week int) {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	weekday := int(d.Weekday()) // Sunday is 0, treat it as weekday 7
	if weekday == 0 {
		weekday = 7
	}
	thursday := d.AddDate(0, 0, 4-weekday)

	yearStart := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := int(thursday.Sub(yearStart).Hours() / 24)

	// ceil((days+1)/7) in integer arithmetic
	week = (days + 7) / 7
	return thursday.Year(), week
}
