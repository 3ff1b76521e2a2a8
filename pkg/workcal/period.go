package workcal

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate parses an ISO "YYYY-MM-DD" calendar date (midnight UTC).
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return d, nil
}

func FormatDate(d time.Time) string {
	return d.Format(dateLayout)
}

// DateOnly strips the time-of-day part, keeping the calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of calendar days in the month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthRange returns the half-open interval [first day of month, first day of
// the next month) used for month-bucketing queries.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// DatePeriod is a contiguous run of calendar days, closed on both ends:
// [Start, Start+Days-1].
type DatePeriod struct {
	Start time.Time
	Days  int
}

func (p DatePeriod) End() time.Time {
	return p.Start.AddDate(0, 0, p.Days-1)
}

// Contains reports whether the day falls inside the closed interval.
func (p DatePeriod) Contains(day time.Time) bool {
	day = DateOnly(day)
	return !day.Before(DateOnly(p.Start)) && !day.After(DateOnly(p.End()))
}

// DatePeriodsOverlap reports whether the two closed intervals intersect.
// A shared boundary day counts as overlap.
func DatePeriodsOverlap(a, b DatePeriod) bool {
	return !DateOnly(a.Start).After(DateOnly(b.End())) && !DateOnly(a.End()).Before(DateOnly(b.Start))
}
