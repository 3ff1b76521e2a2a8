package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftbook/shiftbook/internal/rules"
	"github.com/shiftbook/shiftbook/pkg/absence"
	"github.com/shiftbook/shiftbook/pkg/timeentry"
	"github.com/shiftbook/shiftbook/pkg/user"
	"github.com/shiftbook/shiftbook/pkg/workcal"
)

type Service interface {
	MonthSummary(ctx context.Context, year int, month time.Month) (MonthlySummary, error)
	YearSummary(ctx context.Context, year int) (map[int]MonthlySummary, error)
	YearTotals(ctx context.Context, year int) (YearlyTotals, error)
	MonthDetail(ctx context.Context, year int, month time.Month) (MonthDetail, error)
}

// ServiceImpl aggregates entry stores into monthly and yearly summaries. It
// is read only and takes no owner lock; concurrent writes are tolerated and
// simply show up in the next computation.
type ServiceImpl struct {
	timeEntries timeentry.Repository
	absences    absence.Repository
}

func NewService(timeEntries timeentry.Repository, absences absence.Repository) *ServiceImpl {
	return &ServiceImpl{timeEntries: timeEntries, absences: absences}
}

func (s *ServiceImpl) MonthSummary(ctx context.Context, year int, month time.Month) (MonthlySummary, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.monthSummary(ctx, userId, year, month)
}

func (s *ServiceImpl) monthSummary(ctx context.Context, userId int, year int, month time.Month) (MonthlySummary, error) {
	from, to := workcal.MonthRange(year, month)

	entries, err := s.timeEntries.GetEntries(ctx, userId, from, to)
	if err != nil {
		return MonthlySummary{}, rules.StoreFailure(err)
	}
	worked := 0.0
	for _, e := range entries {
		worked += e.Hours()
	}

	// A period spanning into the next month still counts all of its days
	// against the month it starts in.
	absences, err := s.absences.GetEntries(ctx, userId, from, to)
	if err != nil {
		return MonthlySummary{}, rules.StoreFailure(err)
	}
	nonAccounting := 0
	for _, a := range absences {
		nonAccounting += a.Days
	}

	workingDays := workcal.WeekdaySlots(year, month) - nonAccounting
	if workingDays < 0 {
		workingDays = 0
	}
	expected := float64(workingDays * workcal.ExpectedHoursPerDay)

	return MonthlySummary{
		Year:              year,
		Month:             int(month),
		TotalDays:         workcal.DaysInMonth(year, month),
		NonAccountingDays: nonAccounting,
		WorkingDays:       workingDays,
		ExpectedHours:     expected,
		WorkedHours:       worked,
		BalanceHours:      worked - expected,
	}, nil
}

func (s *ServiceImpl) YearSummary(ctx context.Context, year int) (map[int]MonthlySummary, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	months := make(map[int]MonthlySummary, 12)
	for m := time.January; m <= time.December; m++ {
		monthly, err := s.monthSummary(ctx, userId, year, m)
		if err != nil {
			return nil, err
		}
		months[int(m)] = monthly
	}
	return months, nil
}

func (s *ServiceImpl) YearTotals(ctx context.Context, year int) (YearlyTotals, error) {
	months, err := s.YearSummary(ctx, year)
	if err != nil {
		return YearlyTotals{}, err
	}
	totals := YearlyTotals{Year: year}
	for _, m := range months {
		totals.TotalDays += m.TotalDays
		totals.NonAccountingDays += m.NonAccountingDays
		totals.WorkingDays += m.WorkingDays
		totals.ExpectedHours += m.ExpectedHours
		totals.WorkedHours += m.WorkedHours
		totals.BalanceHours += m.BalanceHours
	}
	return totals, nil
}

func (s *ServiceImpl) MonthDetail(ctx context.Context, year int, month time.Month) (MonthDetail, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return MonthDetail{}, fmt.Errorf("failed to get current user: %w", err)
	}
	monthly, err := s.monthSummary(ctx, userId, year, month)
	if err != nil {
		return MonthDetail{}, err
	}
	from, to := workcal.MonthRange(year, month)
	entries, err := s.timeEntries.GetEntries(ctx, userId, from, to)
	if err != nil {
		return MonthDetail{}, rules.StoreFailure(err)
	}
	absences, err := s.absences.GetEntries(ctx, userId, from, to)
	if err != nil {
		return MonthDetail{}, rules.StoreFailure(err)
	}
	return MonthDetail{
		Summary:              monthly,
		TimeEntries:          entries,
		NonAccountingEntries: absences,
	}, nil
}
