package holiday

import (
	"context"
	"testing"
	"time"

	"github.com/shiftbook/shiftbook/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepositoryTest(t *testing.T) (*RepositoryImpl, context.Context) {
	db := test_utils.SetupTestDB(t)
	return NewRepository(db), context.Background()
}

func TestRepositoryImpl_StoreAndLookup(t *testing.T) {
	repo, ctx := setupRepositoryTest(t)
	mayFirst := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Store(ctx, Holiday{Date: mayFirst, Name: "Labour Day"}))

	isHoliday, err := repo.IsHoliday(ctx, mayFirst)
	require.NoError(t, err)
	assert.True(t, isHoliday)

	isHoliday, err = repo.IsHoliday(ctx, mayFirst.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, isHoliday)
}

func TestRepositoryImpl_Store_UpsertsName(t *testing.T) {
	repo, ctx := setupRepositoryTest(t)
	mayFirst := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Store(ctx, Holiday{Date: mayFirst, Name: "Labour Day"}))
	require.NoError(t, repo.Store(ctx, Holiday{Date: mayFirst, Name: "May Day"}))

	holidays, err := repo.ForYear(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "May Day", holidays[0].Name)
}

func TestRepositoryImpl_ForYear(t *testing.T) {
	repo, ctx := setupRepositoryTest(t)

	require.NoError(t, repo.Store(ctx, Holiday{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Name: "New Year"}))
	require.NoError(t, repo.Store(ctx, Holiday{Date: time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC), Name: "Christmas"}))
	require.NoError(t, repo.Store(ctx, Holiday{Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Name: "New Year"}))

	holidays, err := repo.ForYear(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, holidays, 2)
	assert.Equal(t, "New Year", holidays[0].Name)
	assert.Equal(t, "Christmas", holidays[1].Name)
}

func TestRepositoryImpl_Delete(t *testing.T) {
	repo, ctx := setupRepositoryTest(t)
	mayFirst := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Store(ctx, Holiday{Date: mayFirst, Name: "Labour Day"}))

	found, err := repo.Delete(ctx, mayFirst)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.Delete(ctx, mayFirst)
	require.NoError(t, err)
	assert.False(t, found)
}
