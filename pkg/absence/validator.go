package absence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftbook/shiftbook/internal/rules"
	"github.com/shiftbook/shiftbook/internal/utils"
	"github.com/shiftbook/shiftbook/pkg/workcal"
)

// TimeEntryDates lists the dates carrying at least one time entry within the
// half-open range [from, to). Wired to the time entry repository in the
// application dependencies.
type TimeEntryDates func(ctx context.Context, userId int, from, to time.Time) ([]time.Time, error)

// Validator decides whether a candidate non-accounting entry is admissible.
type Validator struct {
	repo           Repository
	timeEntryDates TimeEntryDates
	clock          utils.Clock
}

func NewValidator(repo Repository, timeEntryDates TimeEntryDates, clock utils.Clock) *Validator {
	return &Validator{repo: repo, timeEntryDates: timeEntryDates, clock: clock}
}

// Validate returns nil, a *rules.Violation with the rejection reason, or a
// store error wrapped as rules.ErrStoreUnavailable. exclude names the entry
// being updated; pass uuid.Nil on create.
func (v *Validator) Validate(ctx context.Context, userId int, candidate Entry, exclude uuid.UUID) error {
	if ceiling, ok := candidate.Type.MaxDays(); ok && candidate.Days > ceiling {
		return rules.Violationf("at most %d days allowed for %s", ceiling, candidate.Type)
	}

	if candidate.Type == TypeVacation {
		balance, err := v.vacationBalance(ctx, userId, exclude)
		if err != nil {
			return err
		}
		if candidate.Days > balance {
			return rules.Violationf("insufficient vacation balance: %d days available", balance)
		}
	}

	existing, err := v.repo.GetAll(ctx, userId)
	if err != nil {
		return rules.StoreFailure(err)
	}
	for _, other := range existing {
		if exclude != uuid.Nil && other.UID.Valid && other.UID.UUID == exclude {
			continue
		}
		if workcal.DatePeriodsOverlap(candidate.Period(), other.Period()) {
			return rules.Violationf("overlaps another non-accounting period")
		}
	}

	// The worked/absent exclusivity is checked from both sides: time entry
	// validation rejects dates inside absence periods, and here an absence
	// period must not cover a date that already has a shift.
	period := candidate.Period()
	dates, err := v.timeEntryDates(ctx, userId, period.Start, period.End().AddDate(0, 0, 1))
	if err != nil {
		return rules.StoreFailure(err)
	}
	if len(dates) > 0 {
		return rules.Violationf("conflicts with an existing time entry on %s", workcal.FormatDate(dates[0]))
	}

	return nil
}

// vacationBalance is the remaining allowance for the current calendar year:
// 30 minus the vacation days already booked this year, always recomputed
// from the entry history. When updating a vacation entry, its own days are
// not counted against the balance.
func (v *Validator) vacationBalance(ctx context.Context, userId int, exclude uuid.UUID) (int, error) {
	yearStart := time.Date(v.clock.Now().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	entries, err := v.repo.GetEntries(ctx, userId, yearStart, yearEnd)
	if err != nil {
		return 0, rules.StoreFailure(err)
	}
	used := 0
	for _, e := range entries {
		if e.Type != TypeVacation {
			continue
		}
		if exclude != uuid.Nil && e.UID.Valid && e.UID.UUID == exclude {
			continue
		}
		used += e.Days
	}
	return workcal.VacationDaysPerYear - used, nil
}
