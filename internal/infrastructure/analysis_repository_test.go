package infrastructure

import (
	"context"
	"fmt"
	"testing"
	"time"

	"adprofit/internal/domain"
	"adprofit/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo() *AnalysisRepository {
	return NewAnalysisRepository(logger.New("error"))
}

func record(id string, created time.Time) domain.AnalysisRecord {
	return domain.AnalysisRecord{
		ID:        id,
		CreatedAt: created,
		Inputs:    domain.CalculationInputs{GMV: 1000, ItemsSold: 20},
	}
}

func TestAnalysisRepositoryStoreAndGet(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	stored := record("a", time.Now())
	require.NoError(t, repo.Store(ctx, stored))

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, stored, *got)
}

func TestAnalysisRepositoryGetMissing(t *testing.T) {
	repo := newTestRepo()

	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnalysisRepositoryListNewestFirst(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Store(ctx, record(fmt.Sprintf("id-%d", i), base.Add(time.Duration(i)*time.Minute))))
	}

	records, total, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, records, 2)
	assert.Equal(t, "id-4", records[0].ID)
	assert.Equal(t, "id-3", records[1].ID)

	records, _, err = repo.List(ctx, 2, 4)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "id-0", records[0].ID)

	records, _, err = repo.List(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAnalysisRepositoryStoreOverwritesByID(t *testing.T) {
	repo := newTestRepo()
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, record("a", time.Now())))
	updated := record("a", time.Now())
	updated.Inputs.GMV = 2000
	require.NoError(t, repo.Store(ctx, updated))

	_, total, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2000.0, got.Inputs.GMV)
}
