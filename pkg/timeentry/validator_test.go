package timeentry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shiftbook/shiftbook/internal/rules"
	"github.com/shiftbook/shiftbook/internal/utils"
	"github.com/shiftbook/shiftbook/pkg/workcal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) workcal.TimeOfDay {
	t.Helper()
	tod, err := workcal.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func setupValidatorTest(t *testing.T) (*Validator, *RepositoryStub, *stubAbsences, *utils.MockClock) {
	repo := NewStubRepository()
	absences := &stubAbsences{}
	clock := &utils.MockClock{FixedNow: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)}
	validator := NewValidator(repo, absences.periods, clock)
	t.Cleanup(repo.Cleanup)
	return validator, repo, absences, clock
}

type stubAbsences struct {
	result   []workcal.DatePeriod
	failWith error
}

func (s *stubAbsences) periods(ctx context.Context, userId int) ([]workcal.DatePeriod, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return s.result, nil
}

func TestValidator_Validate(t *testing.T) {
	ctx := context.Background()
	userId := 1

	t.Run("accepts a plain entry", func(t *testing.T) {
		validator, _, _, _ := setupValidatorTest(t)
		err := validator.Validate(ctx, userId, Entry{
			Date:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
			Start: mustTime(t, "09:00"),
			End:   mustTime(t, "17:00"),
		}, uuid.Nil)
		assert.NoError(t, err)
	})

	t.Run("accepts an entry dated today", func(t *testing.T) {
		validator, _, _, clock := setupValidatorTest(t)
		err := validator.Validate(ctx, userId, Entry{
			Date:  workcal.DateOnly(clock.Now()),
			Start: mustTime(t, "09:00"),
			End:   mustTime(t, "17:00"),
		}, uuid.Nil)
		assert.NoError(t, err)
	})

	t.Run("rejects a future entry", func(t *testing.T) {
		validator, _, _, _ := setupValidatorTest(t)
		err := validator.Validate(ctx, userId, Entry{
			Date:  time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
			Start: mustTime(t, "09:00"),
			End:   mustTime(t, "17:00"),
		}, uuid.Nil)
		violation, ok := rules.AsViolation(err)
		require.True(t, ok)
		assert.Contains(t, violation.Reason, "future")
	})

	t.Run("rejects overlap with an entry on the same day", func(t *testing.T) {
		validator, repo, _, _ := setupValidatorTest(t)
		_, err := repo.StoreEntry(ctx, userId, Entry{
			Date:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
			Start: mustTime(t, "08:00"),
			End:   mustTime(t, "12:00"),
		})
		require.NoError(t, err)

		err = validator.Validate(ctx, userId, Entry{
			Date:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
			Start: mustTime(t, "11:30"),
			End:   mustTime(t, "16:00"),
		}, uuid.Nil)
		violation, ok := rules.AsViolation(err)
		require.True(t, ok)
		assert.Contains(t, violation.Reason, "overlaps")
	})

	t.Run("accepts touching entries on the same day", func(t *testing.T) {
		validator, repo, _, _ := setupValidatorTest(t)
		_, err := repo.StoreEntry(ctx, userId, Entry{
			Date:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
			Start: mustTime(t, "08:00"),
			End:   mustTime(t, "12:00"),
		})
		require.NoError(t, err)

		err = validator.Validate(ctx, userId, Entry{
			Date:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
			Start: mustTime(t, "12:00"),
			End:   mustTime(t, "16:00"),
		}, uuid.Nil)
		assert.NoError(t, err)
	})

	t.Run("an updated entry does not conflict with itself", func(t *testing.T) {
		validator, repo, _, _ := setupValidatorTest(t)
		uid, err := repo.StoreEntry(ctx, userId, Entry{
			Date:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
			Start: mustTime(t, "08:00"),
			End:   mustTime(t, "12:00"),
		})
		require.NoError(t, err)

		err = validator.Validate(ctx, userId, Entry{
			Date:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
			Start: mustTime(t, "08:30"),
			End:   mustTime(t, "12:30"),
		}, uid)
		assert.NoError(t, err)
	})

	t.Run("another owner's entries never conflict", func(t *testing.T) {
		validator, repo, _, _ := setupValidatorTest(t)
		_, err := repo.StoreEntry(ctx, 2, Entry{
			Date:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
			Start: mustTime(t, "08:00"),
			End:   mustTime(t, "12:00"),
		})
		require.NoError(t, err)

		err = validator.Validate(ctx, userId, Entry{
			Date:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
			Start: mustTime(t, "08:00"),
			End:   mustTime(t, "12:00"),
		}, uuid.Nil)
		assert.NoError(t, err)
	})

	t.Run("rejects a date inside a non-accounting period", func(t *testing.T) {
		validator, _, absences, _ := setupValidatorTest(t)
		absences.result = []workcal.DatePeriod{
			{Start: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), Days: 5},
		}

		err := validator.Validate(ctx, userId, Entry{
			Date:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
			Start: mustTime(t, "09:00"),
			End:   mustTime(t, "17:00"),
		}, uuid.Nil)
		violation, ok := rules.AsViolation(err)
		require.True(t, ok)
		assert.Contains(t, violation.Reason, "non-accounting")
	})

	t.Run("accepts the day after a non-accounting period ends", func(t *testing.T) {
		validator, _, absences, _ := setupValidatorTest(t)
		absences.result = []workcal.DatePeriod{
			{Start: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), Days: 3},
		}

		err := validator.Validate(ctx, userId, Entry{
			Date:  time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC),
			Start: mustTime(t, "09:00"),
			End:   mustTime(t, "17:00"),
		}, uuid.Nil)
		assert.NoError(t, err)
	})

	t.Run("repository failure surfaces as store unavailable", func(t *testing.T) {
		validator, repo, _, _ := setupValidatorTest(t)
		repo.FailWith = errors.New("connection refused")

		err := validator.Validate(ctx, userId, Entry{
			Date:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
			Start: mustTime(t, "09:00"),
			End:   mustTime(t, "17:00"),
		}, uuid.Nil)
		assert.ErrorIs(t, err, rules.ErrStoreUnavailable)
	})

	t.Run("absence lookup failure surfaces as store unavailable", func(t *testing.T) {
		validator, _, absences, _ := setupValidatorTest(t)
		absences.failWith = errors.New("connection refused")

		err := validator.Validate(ctx, userId, Entry{
			Date:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
			Start: mustTime(t, "09:00"),
			End:   mustTime(t, "17:00"),
		}, uuid.Nil)
		assert.ErrorIs(t, err, rules.ErrStoreUnavailable)
	})
}
