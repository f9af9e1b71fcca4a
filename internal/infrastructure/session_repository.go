package infrastructure

import (
	"context"
	"sync"

	"adscope/internal/domain"
	"adscope/pkg/logger"
)

// implements domain.SessionRepository. Everything lives in process memory
// for the session's lifetime; the RWMutex closes the concurrent-request
// race on a shared session key.
type SessionRepository struct {
	datasets map[string]*domain.Dataset
	bulk     map[string][][]string
	results  map[string][]domain.FlaggedTerm
	mutex    sync.RWMutex
	logger   *logger.Logger
}

// creates a new in-memory session repository
func NewSessionRepository(logger *logger.Logger) *SessionRepository {
	return &SessionRepository{
		datasets: make(map[string]*domain.Dataset),
		bulk:     make(map[string][][]string),
		results:  make(map[string][]domain.FlaggedTerm),
		logger:   logger,
	}
}

func (r *SessionRepository) StoreDataset(ctx context.Context, sessionID string, ds *domain.Dataset) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.datasets[sessionID] = ds

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"session_id": sessionID,
		"rows":       len(ds.Rows),
	}).Info("Stored dataset in session")
	return nil
}

func (r *SessionRepository) GetDataset(ctx context.Context, sessionID string) (*domain.Dataset, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	ds, ok := r.datasets[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return ds, nil
}

func (r *SessionRepository) StoreBulkTable(ctx context.Context, sessionID string, table [][]string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.bulk[sessionID] = table

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"session_id": sessionID,
		"rows":       len(table),
	}).Info("Stored bulk operations table in session")
	return nil
}

func (r *SessionRepository) GetBulkTable(ctx context.Context, sessionID string) ([][]string, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	table, ok := r.bulk[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return table, nil
}

func (r *SessionRepository) StoreResults(ctx context.Context, sessionID string, results []domain.FlaggedTerm) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.results[sessionID] = results

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"session_id": sessionID,
		"flagged":    len(results),
	}).Info("Stored analysis results in session")
	return nil
}

func (r *SessionRepository) GetResults(ctx context.Context, sessionID string) ([]domain.FlaggedTerm, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	results, ok := r.results[sessionID]
	if !ok {
		return nil, domain.ErrNoResults
	}
	return results, nil
}

// Delete removes the dataset and every derived entry for the session.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.datasets, sessionID)
	delete(r.bulk, sessionID)
	delete(r.results, sessionID)

	r.logger.WithContext(ctx).WithField("session_id", sessionID).Info("Deleted session")
	return nil
}

func (r *SessionRepository) Count(ctx context.Context) int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.datasets)
}
