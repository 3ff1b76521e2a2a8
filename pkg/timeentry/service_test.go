package timeentry

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shiftbook/shiftbook/internal/event_bus"
	"github.com/shiftbook/shiftbook/internal/rules"
	"github.com/shiftbook/shiftbook/internal/utils"
	"github.com/shiftbook/shiftbook/pkg/user"
	"github.com/shiftbook/shiftbook/pkg/workcal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServiceTest(t *testing.T) (*ServiceImpl, *RepositoryStub, context.Context) {
	repo := NewStubRepository()
	absences := &stubAbsences{}
	clock := &utils.MockClock{FixedNow: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)}
	validator := NewValidator(repo, absences.periods, clock)
	service := NewService(repo, validator, utils.NewOwnerLock(), nil)
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Username: "anna"})
	t.Cleanup(repo.Cleanup)
	return service, repo, ctx
}

func TestService_Create(t *testing.T) {
	service, _, ctx := setupServiceTest(t)

	created, err := service.Create(ctx, Entry{
		Date:    time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
		Start:   mustTime(t, "09:00"),
		End:     mustTime(t, "17:00"),
		Comment: "regular shift",
	})

	require.NoError(t, err)
	assert.True(t, created.UID.Valid)
	assert.Equal(t, 6, created.Month)
	assert.Equal(t, 2024, created.Year)
	assert.Equal(t, 7.0, created.Hours())
}

func TestService_Create_RequiresUser(t *testing.T) {
	service, _, _ := setupServiceTest(t)

	_, err := service.Create(context.Background(), Entry{
		Date:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
		Start: mustTime(t, "09:00"),
		End:   mustTime(t, "17:00"),
	})

	assert.ErrorIs(t, err, user.ErrNoUser)
}

func TestService_Create_RejectedEntryIsNotStored(t *testing.T) {
	service, repo, ctx := setupServiceTest(t)

	_, err := service.Create(ctx, Entry{
		Date:  time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
		Start: mustTime(t, "09:00"),
		End:   mustTime(t, "17:00"),
	})

	_, isViolation := rules.AsViolation(err)
	assert.True(t, isViolation)
	stored, err := repo.GetEntries(ctx, 1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestService_Update(t *testing.T) {
	service, _, ctx := setupServiceTest(t)

	created, err := service.Create(ctx, Entry{
		Date:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
		Start: mustTime(t, "09:00"),
		End:   mustTime(t, "17:00"),
	})
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.UID.UUID, Entry{
		Date:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
		Start: mustTime(t, "10:00"),
		End:   mustTime(t, "18:00"),
	})

	require.NoError(t, err)
	assert.Equal(t, created.UID.UUID, updated.UID.UUID)
	assert.Equal(t, mustTime(t, "10:00"), updated.Start)
}

func TestService_Update_UnknownEntry(t *testing.T) {
	service, _, ctx := setupServiceTest(t)

	_, err := service.Update(ctx, uuid.New(), Entry{
		Date:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
		Start: mustTime(t, "09:00"),
		End:   mustTime(t, "17:00"),
	})

	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestService_Delete(t *testing.T) {
	service, _, ctx := setupServiceTest(t)

	created, err := service.Create(ctx, Entry{
		Date:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
		Start: mustTime(t, "09:00"),
		End:   mustTime(t, "17:00"),
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.UID.UUID))
	assert.ErrorIs(t, service.Delete(ctx, created.UID.UUID), ErrEntryNotFound)
}

func TestService_ListForMonth(t *testing.T) {
	service, _, ctx := setupServiceTest(t)

	for _, day := range []int{3, 4, 28} {
		_, err := service.Create(ctx, Entry{
			Date:  time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC),
			Start: mustTime(t, "09:00"),
			End:   mustTime(t, "17:00"),
		})
		require.NoError(t, err)
	}
	_, err := service.Create(ctx, Entry{
		Date:  time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
		Start: mustTime(t, "09:00"),
		End:   mustTime(t, "17:00"),
	})
	require.NoError(t, err)

	entries, err := service.ListForMonth(ctx, 2024, time.June)

	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestService_Create_PublishesEvent(t *testing.T) {
	repo := NewStubRepository()
	absences := &stubAbsences{}
	clock := &utils.MockClock{FixedNow: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)}
	bus := event_bus.NewEventBus()
	service := NewService(repo, NewValidator(repo, absences.periods, clock), utils.NewOwnerLock(), bus)
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Username: "anna"})
	t.Cleanup(repo.Cleanup)

	var received []event_bus.TimeEntryChanged
	event_bus.SubscribeTyped[event_bus.TimeEntryChanged](bus, event_bus.TimeEntryStored,
		func(e event_bus.EventT[event_bus.TimeEntryChanged]) error {
			received = append(received, e.Data)
			return nil
		})

	created, err := service.Create(ctx, Entry{
		Date:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
		Start: mustTime(t, "09:00"),
		End:   mustTime(t, "17:00"),
	})

	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, created.UID.UUID.String(), received[0].UID)
	assert.Equal(t, "2024-06-14", received[0].Date)
	assert.Equal(t, 7.0, received[0].Hours)
}

func TestService_Validate_DoesNotPersist(t *testing.T) {
	service, repo, ctx := setupServiceTest(t)

	err := service.Validate(ctx, Entry{
		Date:  time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
		Start: mustTime(t, "09:00"),
		End:   mustTime(t, "17:00"),
	})

	require.NoError(t, err)
	stored, err := repo.GetEntriesForDate(ctx, 1, workcal.DateOnly(time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Empty(t, stored)
}
