package workcal

import (
	"context"
	"time"
)

// HolidayLookup answers whether a calendar date is a national holiday. The
// holiday table is an injected fact table, never package state.
type HolidayLookup interface {
	IsHoliday(ctx context.Context, day time.Time) (bool, error)
}

// Calendar answers business-day questions against an injected holiday table.
type Calendar struct {
	holidays HolidayLookup
}

func NewCalendar(holidays HolidayLookup) *Calendar {
	return &Calendar{holidays: holidays}
}

// IsBusinessDay reports whether the day is a weekday and not a holiday.
func (c *Calendar) IsBusinessDay(ctx context.Context, day time.Time) (bool, error) {
	if !isWeekday(day) {
		return false, nil
	}
	holiday, err := c.holidays.IsHoliday(ctx, DateOnly(day))
	if err != nil {
		return false, err
	}
	return !holiday, nil
}

// BusinessDays lists the business days in the closed range [start, end].
func (c *Calendar) BusinessDays(ctx context.Context, start, end time.Time) ([]time.Time, error) {
	var days []time.Time
	for d := DateOnly(start); !d.After(DateOnly(end)); d = d.AddDate(0, 0, 1) {
		ok, err := c.IsBusinessDay(ctx, d)
		if err != nil {
			return nil, err
		}
		if ok {
			days = append(days, d)
		}
	}
	return days, nil
}

// BusinessDaysBetween counts business days in the closed range [start, end].
func (c *Calendar) BusinessDaysBetween(ctx context.Context, start, end time.Time) (int, error) {
	days, err := c.BusinessDays(ctx, start, end)
	if err != nil {
		return 0, err
	}
	return len(days), nil
}

// WeekdaySlots counts the Monday-Friday slots of the month's calendar grid.
// Holidays are NOT excluded here: monthly summaries intentionally use the
// holiday-blind count, while IsBusinessDay checks the holiday table.
func WeekdaySlots(year int, month time.Month) int {
	slots := 0
	for d := 1; d <= DaysInMonth(year, month); d++ {
		if isWeekday(time.Date(year, month, d, 0, 0, 0, 0, time.UTC)) {
			slots++
		}
	}
	return slots
}

func isWeekday(day time.Time) bool {
	wd := day.Weekday()
	return wd >= time.Monday && wd <= time.Friday
}
