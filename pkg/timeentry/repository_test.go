package timeentry

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shiftbook/shiftbook/internal/test_utils"
	"github.com/shiftbook/shiftbook/pkg/workcal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepository creates a test repository with a fresh database
func setupTestRepository(t *testing.T) *RepositoryImpl {
	db := test_utils.SetupTestDB(t)
	return NewRepository(db)
}

func setupRepositoryTest(t *testing.T) (*RepositoryImpl, context.Context, int) {
	repository := setupTestRepository(t)
	ctx := context.Background()
	userId := 1
	return repository, ctx, userId
}

func testEntry(t *testing.T, date string, start, end string) Entry {
	t.Helper()
	day, err := workcal.ParseDate(date)
	require.NoError(t, err)
	return Entry{
		Date:    day,
		Start:   mustTime(t, start),
		End:     mustTime(t, end),
		Comment: "test shift",
		Month:   int(day.Month()),
		Year:    day.Year(),
	}
}

func TestRepositoryImpl_StoreEntry(t *testing.T) {
	repo, ctx, userId := setupRepositoryTest(t)

	uid, err := repo.StoreEntry(ctx, userId, testEntry(t, "2024-06-14", "09:00", "17:00"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, uid)

	stored, err := repo.GetEntriesForDate(ctx, userId, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, uid, stored[0].UID.UUID)
	assert.Equal(t, mustTime(t, "09:00"), stored[0].Start)
	assert.Equal(t, mustTime(t, "17:00"), stored[0].End)
	assert.Equal(t, "test shift", stored[0].Comment)
}

func TestRepositoryImpl_GetEntriesForDate_OtherOwnerInvisible(t *testing.T) {
	repo, ctx, userId := setupRepositoryTest(t)

	_, err := repo.StoreEntry(ctx, 2, testEntry(t, "2024-06-14", "09:00", "17:00"))
	require.NoError(t, err)

	stored, err := repo.GetEntriesForDate(ctx, userId, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRepositoryImpl_GetEntries_HalfOpenRange(t *testing.T) {
	repo, ctx, userId := setupRepositoryTest(t)

	for _, date := range []string{"2024-05-31", "2024-06-01", "2024-06-30", "2024-07-01"} {
		_, err := repo.StoreEntry(ctx, userId, testEntry(t, date, "09:00", "17:00"))
		require.NoError(t, err)
	}

	from, to := workcal.MonthRange(2024, time.June)
	entries, err := repo.GetEntries(ctx, userId, from, to)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-06-01", workcal.FormatDate(entries[0].Date))
	assert.Equal(t, "2024-06-30", workcal.FormatDate(entries[1].Date))
}

func TestRepositoryImpl_EntryDates_Distinct(t *testing.T) {
	repo, ctx, userId := setupRepositoryTest(t)

	_, err := repo.StoreEntry(ctx, userId, testEntry(t, "2024-06-14", "08:00", "12:00"))
	require.NoError(t, err)
	_, err = repo.StoreEntry(ctx, userId, testEntry(t, "2024-06-14", "13:00", "17:00"))
	require.NoError(t, err)
	_, err = repo.StoreEntry(ctx, userId, testEntry(t, "2024-06-17", "09:00", "17:00"))
	require.NoError(t, err)

	from, to := workcal.MonthRange(2024, time.June)
	dates, err := repo.EntryDates(ctx, userId, from, to)
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.Equal(t, "2024-06-14", workcal.FormatDate(dates[0]))
	assert.Equal(t, "2024-06-17", workcal.FormatDate(dates[1]))
}

func TestRepositoryImpl_UpdateEntry(t *testing.T) {
	repo, ctx, userId := setupRepositoryTest(t)

	uid, err := repo.StoreEntry(ctx, userId, testEntry(t, "2024-06-14", "09:00", "17:00"))
	require.NoError(t, err)

	updated := testEntry(t, "2024-06-15", "10:00", "18:00")
	updated.UID = uuid.NullUUID{UUID: uid, Valid: true}
	found, err := repo.UpdateEntry(ctx, userId, updated)
	require.NoError(t, err)
	assert.True(t, found)

	stored, err := repo.GetEntriesForDate(ctx, userId, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, mustTime(t, "10:00"), stored[0].Start)
}

func TestRepositoryImpl_UpdateEntry_WrongOwner(t *testing.T) {
	repo, ctx, userId := setupRepositoryTest(t)

	uid, err := repo.StoreEntry(ctx, userId, testEntry(t, "2024-06-14", "09:00", "17:00"))
	require.NoError(t, err)

	updated := testEntry(t, "2024-06-14", "10:00", "18:00")
	updated.UID = uuid.NullUUID{UUID: uid, Valid: true}
	found, err := repo.UpdateEntry(ctx, 2, updated)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRepositoryImpl_DeleteEntry(t *testing.T) {
	repo, ctx, userId := setupRepositoryTest(t)

	uid, err := repo.StoreEntry(ctx, userId, testEntry(t, "2024-06-14", "09:00", "17:00"))
	require.NoError(t, err)

	found, err := repo.DeleteEntry(ctx, userId, uid)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.DeleteEntry(ctx, userId, uid)
	require.NoError(t, err)
	assert.False(t, found)
}
