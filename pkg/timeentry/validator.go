package timeentry

import (
	"context"

	"github.com/google/uuid"
	"github.com/shiftbook/shiftbook/internal/rules"
	"github.com/shiftbook/shiftbook/internal/utils"
	"github.com/shiftbook/shiftbook/pkg/workcal"
)

// AbsencePeriods lists an owner's non-accounting periods (unbounded history).
// Wired to the absence repository in the application dependencies.
type AbsencePeriods func(ctx context.Context, userId int) ([]workcal.DatePeriod, error)

// Validator decides whether a candidate shift entry is admissible. Each call
// is a pure function of the candidate and the owner's stored entries; no
// state is retained between calls.
type Validator struct {
	repo     Repository
	absences AbsencePeriods
	clock    utils.Clock
}

func NewValidator(repo Repository, absences AbsencePeriods, clock utils.Clock) *Validator {
	return &Validator{repo: repo, absences: absences, clock: clock}
}

// Validate returns nil for an admissible candidate, a *rules.Violation with
// the rejection reason, or a store error wrapped as rules.ErrStoreUnavailable.
// When updating, exclude names the entry being replaced; pass uuid.Nil on
// create.
func (v *Validator) Validate(ctx context.Context, userId int, candidate Entry, exclude uuid.UUID) error {
	today := workcal.DateOnly(v.clock.Now())
	if workcal.DateOnly(candidate.Date).After(today) {
		return rules.Violationf("future entries are not allowed")
	}

	if candidate.Hours() > workcal.MaxShiftHours {
		return rules.Violationf("entry cannot exceed %d hours", workcal.MaxShiftHours)
	}

	sameDay, err := v.repo.GetEntriesForDate(ctx, userId, candidate.Date)
	if err != nil {
		return rules.StoreFailure(err)
	}
	for _, existing := range sameDay {
		if exclude != uuid.Nil && existing.UID.Valid && existing.UID.UUID == exclude {
			continue
		}
		if workcal.TimePeriodsOverlap(candidate.Start, candidate.End, existing.Start, existing.End) {
			return rules.Violationf("overlaps another entry on the same day")
		}
	}

	periods, err := v.absences(ctx, userId)
	if err != nil {
		return rules.StoreFailure(err)
	}
	candidateDay := workcal.DatePeriod{Start: candidate.Date, Days: 1}
	for _, period := range periods {
		if workcal.DatePeriodsOverlap(period, candidateDay) {
			return rules.Violationf("conflicts with a non-accounting period")
		}
	}

	return nil
}
