package infrastructure

import (
	"context"
	"fmt"
	"sync"

	"adprofit/internal/domain"
	"adprofit/pkg/logger"
)

// In-memory implementation of domain.AnalysisRepository. Records are kept
// in insertion order so history pages come back newest first.
type AnalysisRepository struct {
	byID   map[string]domain.AnalysisRecord
	order  []string
	mutex  sync.RWMutex
	logger *logger.Logger
}

func NewAnalysisRepository(logger *logger.Logger) *AnalysisRepository {
	return &AnalysisRepository{
		byID:   make(map[string]domain.AnalysisRecord),
		logger: logger,
	}
}

func (r *AnalysisRepository) Store(ctx context.Context, record domain.AnalysisRecord) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.byID[record.ID]; !exists {
		r.order = append(r.order, record.ID)
	}
	r.byID[record.ID] = record

	r.logger.WithContext(ctx).WithField("analysis_id", record.ID).Info("Stored analysis in memory")
	return nil
}

func (r *AnalysisRepository) GetByID(ctx context.Context, id string) (*domain.AnalysisRecord, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	record, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("analysis %s: %w", id, domain.ErrNotFound)
	}
	return &record, nil
}

func (r *AnalysisRepository) List(ctx context.Context, limit, offset int) ([]domain.AnalysisRecord, int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	total := len(r.order)
	if offset >= total {
		return []domain.AnalysisRecord{}, total, nil
	}

	// Newest first.
	records := make([]domain.AnalysisRecord, 0, limit)
	for i := total - 1 - offset; i >= 0 && len(records) < limit; i-- {
		records = append(records, r.byID[r.order[i]])
	}
	return records, total, nil
}
