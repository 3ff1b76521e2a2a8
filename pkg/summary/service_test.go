package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shiftbook/shiftbook/internal/rules"
	"github.com/shiftbook/shiftbook/pkg/absence"
	"github.com/shiftbook/shiftbook/pkg/timeentry"
	"github.com/shiftbook/shiftbook/pkg/user"
	"github.com/shiftbook/shiftbook/pkg/workcal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSummaryTest(t *testing.T) (*ServiceImpl, *timeentry.RepositoryStub, *absence.RepositoryStub, context.Context) {
	timeEntries := timeentry.NewStubRepository()
	absences := absence.NewStubRepository()
	service := NewService(timeEntries, absences)
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Username: "anna"})
	t.Cleanup(timeEntries.Cleanup)
	t.Cleanup(absences.Cleanup)
	return service, timeEntries, absences, ctx
}

func storeShift(t *testing.T, repo *timeentry.RepositoryStub, date time.Time, start, end string) {
	t.Helper()
	startTod, err := workcal.ParseTimeOfDay(start)
	require.NoError(t, err)
	endTod, err := workcal.ParseTimeOfDay(end)
	require.NoError(t, err)
	_, err = repo.StoreEntry(context.Background(), 1, timeentry.Entry{
		Date:  date,
		Start: startTod,
		End:   endTod,
		Month: int(date.Month()),
		Year:  date.Year(),
	})
	require.NoError(t, err)
}

func TestService_MonthSummary(t *testing.T) {
	service, timeEntries, absences, ctx := setupSummaryTest(t)

	// 21 weekday slots in November 2024.
	for day := 1; day <= 20; day++ {
		storeShift(t, timeEntries, time.Date(2024, 11, day, 0, 0, 0, 0, time.UTC), "09:00", "17:00")
	}
	_, err := absences.StoreEntry(ctx, 1, absence.Entry{
		StartDate: time.Date(2024, 11, 25, 0, 0, 0, 0, time.UTC),
		Days:      2,
		Type:      absence.TypeVacation,
		Month:     11,
		Year:      2024,
	})
	require.NoError(t, err)

	summary, err := service.MonthSummary(ctx, 2024, time.November)

	require.NoError(t, err)
	assert.Equal(t, 30, summary.TotalDays)
	assert.Equal(t, 2, summary.NonAccountingDays)
	assert.Equal(t, 19, summary.WorkingDays)
	assert.Equal(t, 152.0, summary.ExpectedHours)
	// 20 shifts of 7h each (8h span minus the automatic break).
	assert.Equal(t, 140.0, summary.WorkedHours)
	assert.Equal(t, -12.0, summary.BalanceHours)
}

func TestService_MonthSummary_EmptyMonth(t *testing.T) {
	service, _, _, ctx := setupSummaryTest(t)

	summary, err := service.MonthSummary(ctx, 2024, time.January)

	require.NoError(t, err)
	assert.Equal(t, 31, summary.TotalDays)
	assert.Equal(t, 0, summary.NonAccountingDays)
	assert.Equal(t, 23, summary.WorkingDays)
	assert.Equal(t, 184.0, summary.ExpectedHours)
	assert.Equal(t, 0.0, summary.WorkedHours)
	assert.Equal(t, -184.0, summary.BalanceHours)
}

func TestService_MonthSummary_WorkingDaysNeverNegative(t *testing.T) {
	service, _, absences, ctx := setupSummaryTest(t)

	_, err := absences.StoreEntry(ctx, 1, absence.Entry{
		StartDate: time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
		Days:      40,
		Type:      absence.TypeMedicalLeave,
		Month:     11,
		Year:      2024,
	})
	require.NoError(t, err)

	summary, err := service.MonthSummary(ctx, 2024, time.November)

	require.NoError(t, err)
	assert.Equal(t, 0, summary.WorkingDays)
	assert.Equal(t, 0.0, summary.ExpectedHours)
}

func TestService_MonthSummary_SpanningAbsenceCountsInStartMonth(t *testing.T) {
	service, _, absences, ctx := setupSummaryTest(t)

	// Starts in November, ends in December.
	_, err := absences.StoreEntry(ctx, 1, absence.Entry{
		StartDate: time.Date(2024, 11, 28, 0, 0, 0, 0, time.UTC),
		Days:      6,
		Type:      absence.TypeVacation,
		Month:     11,
		Year:      2024,
	})
	require.NoError(t, err)

	november, err := service.MonthSummary(ctx, 2024, time.November)
	require.NoError(t, err)
	december, err := service.MonthSummary(ctx, 2024, time.December)
	require.NoError(t, err)

	assert.Equal(t, 6, november.NonAccountingDays)
	assert.Equal(t, 0, december.NonAccountingDays)
}

func TestService_MonthSummary_Idempotent(t *testing.T) {
	service, timeEntries, _, ctx := setupSummaryTest(t)
	storeShift(t, timeEntries, time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC), "09:00", "17:00")

	first, err := service.MonthSummary(ctx, 2024, time.November)
	require.NoError(t, err)
	second, err := service.MonthSummary(ctx, 2024, time.November)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestService_YearSummary(t *testing.T) {
	service, timeEntries, _, ctx := setupSummaryTest(t)
	storeShift(t, timeEntries, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), "09:00", "17:00")

	months, err := service.YearSummary(ctx, 2024)

	require.NoError(t, err)
	assert.Len(t, months, 12)
	assert.Equal(t, 7.0, months[3].WorkedHours)
	assert.Equal(t, 0.0, months[4].WorkedHours)
}

func TestService_YearTotals_MatchesYearSummary(t *testing.T) {
	service, timeEntries, absences, ctx := setupSummaryTest(t)
	storeShift(t, timeEntries, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), "09:00", "17:00")
	storeShift(t, timeEntries, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), "22:00", "06:00")
	_, err := absences.StoreEntry(ctx, 1, absence.Entry{
		StartDate: time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC),
		Days:      10,
		Type:      absence.TypeVacation,
		Month:     8,
		Year:      2024,
	})
	require.NoError(t, err)

	months, err := service.YearSummary(ctx, 2024)
	require.NoError(t, err)
	totals, err := service.YearTotals(ctx, 2024)
	require.NoError(t, err)

	expected := YearlyTotals{Year: 2024}
	for _, m := range months {
		expected.TotalDays += m.TotalDays
		expected.NonAccountingDays += m.NonAccountingDays
		expected.WorkingDays += m.WorkingDays
		expected.ExpectedHours += m.ExpectedHours
		expected.WorkedHours += m.WorkedHours
		expected.BalanceHours += m.BalanceHours
	}
	assert.Equal(t, expected, totals)
	assert.Equal(t, 366, totals.TotalDays)
	assert.Equal(t, 10, totals.NonAccountingDays)
}

func TestService_MonthDetail(t *testing.T) {
	service, timeEntries, absences, ctx := setupSummaryTest(t)
	storeShift(t, timeEntries, time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC), "09:00", "17:00")
	_, err := absences.StoreEntry(ctx, 1, absence.Entry{
		StartDate: time.Date(2024, 11, 25, 0, 0, 0, 0, time.UTC),
		Days:      2,
		Type:      absence.TypeVacation,
		Month:     11,
		Year:      2024,
	})
	require.NoError(t, err)

	detail, err := service.MonthDetail(ctx, 2024, time.November)

	require.NoError(t, err)
	assert.Len(t, detail.TimeEntries, 1)
	assert.Len(t, detail.NonAccountingEntries, 1)
	assert.Equal(t, 2, detail.Summary.NonAccountingDays)
}

func TestService_RequiresUser(t *testing.T) {
	service, _, _, _ := setupSummaryTest(t)

	_, err := service.MonthSummary(context.Background(), 2024, time.November)

	assert.ErrorIs(t, err, user.ErrNoUser)
}

func TestService_StoreFailure(t *testing.T) {
	service, timeEntries, _, ctx := setupSummaryTest(t)
	timeEntries.FailWith = errors.New("connection refused")

	_, err := service.MonthSummary(ctx, 2024, time.November)

	assert.ErrorIs(t, err, rules.ErrStoreUnavailable)
}
