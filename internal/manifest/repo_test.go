package manifest

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conveyorhub/pkg/database"
	"conveyorhub/pkg/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestReplaceSetsPairsAndCountTogether(t *testing.T) {
	repo := NewRepo(newTestDB(t))
	ctx := context.Background()

	count, err := repo.ExpectedCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "count defaults to zero before any upload")

	first := []models.Pair{{OrderNumber: 100, ClpNumber: 200}, {OrderNumber: 300, ClpNumber: 400}}
	require.NoError(t, repo.Replace(ctx, first))

	pairs, err := repo.Pairs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, first, pairs)

	count, err = repo.ExpectedCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// a second upload discards the first wholesale
	second := []models.Pair{{OrderNumber: 500, ClpNumber: 600}}
	require.NoError(t, repo.Replace(ctx, second))

	pairs, err = repo.Pairs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, second, pairs)

	count, err = repo.ExpectedCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestReplaceWithEmptySetIsDeliberatelyEmpty(t *testing.T) {
	repo := NewRepo(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx, []models.Pair{{OrderNumber: 1, ClpNumber: 2}}))
	require.NoError(t, repo.Replace(ctx, nil))

	pairs, err := repo.Pairs(ctx)
	require.NoError(t, err)
	assert.Empty(t, pairs)

	count, err := repo.ExpectedCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

// Readers racing a replace must see a complete manifest from one upload or
// the other, never a mix and never a transient empty set.
func TestReplaceIsAtomicUnderConcurrentReads(t *testing.T) {
	repo := NewRepo(newTestDB(t))
	ctx := context.Background()

	setA := []models.Pair{{OrderNumber: 1, ClpNumber: 1}, {OrderNumber: 2, ClpNumber: 2}}
	setB := []models.Pair{{OrderNumber: 3, ClpNumber: 3}, {OrderNumber: 4, ClpNumber: 4}, {OrderNumber: 5, ClpNumber: 5}}
	require.NoError(t, repo.Replace(ctx, setA))

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			if err := repo.Replace(ctx, setB); err != nil {
				t.Errorf("replace B: %v", err)
				return
			}
			if err := repo.Replace(ctx, setA); err != nil {
				t.Errorf("replace A: %v", err)
				return
			}
		}
		close(stop)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}

			pairs, err := repo.Pairs(ctx)
			if err != nil {
				t.Errorf("pairs: %v", err)
				return
			}

			switch len(pairs) {
			case len(setA):
				assert.ElementsMatch(t, setA, pairs)
			case len(setB):
				assert.ElementsMatch(t, setB, pairs)
			default:
				t.Errorf("observed torn manifest with %d pairs", len(pairs))
				return
			}
		}
	}()

	wg.Wait()
}
