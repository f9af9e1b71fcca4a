package infrastructure

import (
	"context"
	"sync"
	"testing"

	"adscope/internal/domain"
	"adscope/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository() *SessionRepository {
	return NewSessionRepository(logger.New("error"))
}

func TestSessionRepositoryDataset(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	ds := &domain.Dataset{
		Rows:    []domain.SearchTermRow{{CampaignName: "Camp A"}},
		Columns: []string{domain.ColCampaignName},
	}

	require.NoError(t, repo.StoreDataset(ctx, "s1", ds))
	assert.Equal(t, 1, repo.Count(ctx))

	got, err := repo.GetDataset(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, ds, got)

	_, err = repo.GetDataset(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepositoryResults(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	_, err := repo.GetResults(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrNoResults)

	results := []domain.FlaggedTerm{{ID: 0, CustomerSearchTerm: "cheap dog toy"}}
	require.NoError(t, repo.StoreResults(ctx, "s1", results))

	got, err := repo.GetResults(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, results, got)
}

func TestSessionRepositoryBulkTable(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	table := [][]string{{"Campaign Name"}, {"Camp A"}}
	require.NoError(t, repo.StoreBulkTable(ctx, "s1", table))

	got, err := repo.GetBulkTable(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, table, got)

	_, err = repo.GetBulkTable(ctx, "other")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionRepositoryDeleteRemovesEverything(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	require.NoError(t, repo.StoreDataset(ctx, "s1", &domain.Dataset{}))
	require.NoError(t, repo.StoreBulkTable(ctx, "s1", [][]string{{"h"}}))
	require.NoError(t, repo.StoreResults(ctx, "s1", []domain.FlaggedTerm{}))

	require.NoError(t, repo.Delete(ctx, "s1"))
	assert.Equal(t, 0, repo.Count(ctx))

	_, err := repo.GetDataset(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = repo.GetBulkTable(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = repo.GetResults(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrNoResults)
}

func TestSessionRepositoryConcurrentAccess(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	require.NoError(t, repo.StoreDataset(ctx, "shared", &domain.Dataset{}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = repo.StoreResults(ctx, "shared", []domain.FlaggedTerm{{ID: 1}})
		}()
		go func() {
			defer wg.Done()
			_, _ = repo.GetDataset(ctx, "shared")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, repo.Count(ctx))
}
