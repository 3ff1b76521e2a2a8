package summary

import (
	"github.com/shiftbook/shiftbook/pkg/absence"
	"github.com/shiftbook/shiftbook/pkg/timeentry"
)

// MonthlySummary is the accounting view of one owner's month. It is computed
// from the entry stores on every request and never persisted.
type MonthlySummary struct {
	Year              int
	Month             int
	TotalDays         int
	NonAccountingDays int
	WorkingDays       int
	ExpectedHours     float64
	WorkedHours       float64
	BalanceHours      float64
}

// YearlyTotals is the field-wise sum of the twelve monthly summaries.
type YearlyTotals struct {
	Year              int
	TotalDays         int
	NonAccountingDays int
	WorkingDays       int
	ExpectedHours     float64
	WorkedHours       float64
	BalanceHours      float64
}

// MonthDetail pairs a month's summary with the entries it was computed from.
type MonthDetail struct {
	Summary              MonthlySummary
	TimeEntries          []timeentry.Entry
	NonAccountingEntries []absence.Entry
}
