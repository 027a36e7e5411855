package scans

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOverviewDuplicateScenario(t *testing.T) {
	repo := NewRepo(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Classify(ctx, "2024-01-15T09:00:00", 100, 200)
	require.NoError(t, err)
	_, err = repo.Classify(ctx, "2024-01-15T09:05:00", 100, 200)
	require.NoError(t, err)

	ov, err := repo.DayOverview(ctx, "2024-01-15")
	require.NoError(t, err)

	assert.Equal(t, int64(2), ov.TotalBoxes)
	assert.Equal(t, int64(1), ov.OkCount)
	assert.Equal(t, int64(1), ov.NotOkCount)
	require.NotNil(t, ov.LatestOrderNumber)
	require.NotNil(t, ov.LatestClpNumber)
	assert.Equal(t, int64(100), *ov.LatestOrderNumber)
	assert.Equal(t, int64(200), *ov.LatestClpNumber)
}

func TestDayOverviewCountsAlwaysBalance(t *testing.T) {
	repo := NewRepo(newTestDB(t))
	ctx := context.Background()

	scans := []struct {
		at         string
		order, clp int64
	}{
		{"2024-01-15T08:00:00", 1, 1},
		{"2024-01-15T08:01:00", 0, 7},
		{"2024-01-15T08:02:00", 1, 1},
		{"2024-01-15T23:59:59", 2, 2},
		{"2024-01-16T00:00:00", 3, 3},
	}

	for _, s := range scans {
		_, err := repo.Classify(ctx, s.at, s.order, s.clp)
		require.NoError(t, err)

		for _, day := range []string{"2024-01-15", "2024-01-16"} {
			ov, err := repo.DayOverview(ctx, day)
			require.NoError(t, err)
			assert.Equal(t, ov.TotalBoxes, ov.OkCount+ov.NotOkCount, "day %s", day)
		}
	}

	ov, err := repo.DayOverview(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, int64(4), ov.TotalBoxes, "day boundary records both belong to the 15th")

	ov, err = repo.DayOverview(ctx, "2024-01-16")
	require.NoError(t, err)
	assert.Equal(t, int64(1), ov.TotalBoxes)
}

func TestDayOverviewEmptyDayHasNoLatest(t *testing.T) {
	repo := NewRepo(newTestDB(t))

	ov, err := repo.DayOverview(context.Background(), "2024-03-01")
	require.NoError(t, err)

	assert.Zero(t, ov.TotalBoxes)
	assert.Nil(t, ov.LatestOrderNumber)
	assert.Nil(t, ov.LatestClpNumber)
}

func TestLatestWindowIsOldestToNewest(t *testing.T) {
	repo := NewRepo(newTestDB(t))
	ctx := context.Background()

	for i := int64(1); i <= 12; i++ {
		_, err := repo.Classify(ctx, "2024-01-15T09:00:00", i, i)
		require.NoError(t, err)
	}

	latest, err := repo.Latest(ctx, 10)
	require.NoError(t, err)
	require.Len(t, latest, 10)

	assert.Equal(t, int64(3), latest[0].OrderNumber)
	assert.Equal(t, int64(12), latest[9].OrderNumber)
	for i := 1; i < len(latest); i++ {
		assert.Greater(t, latest[i].ID, latest[i-1].ID)
	}
}
