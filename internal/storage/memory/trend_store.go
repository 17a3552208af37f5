package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nult2003/marketing-intelligence/internal/domain"
	"github.com/nult2003/marketing-intelligence/internal/storage"
)

// TrendStore is an in-memory implementation of storage.TrendStore.
type TrendStore struct {
	mu   sync.RWMutex
	data map[string]*domain.TrendMetric // keyed by ID
}

// NewTrendStore creates a new in-memory trend store.
func NewTrendStore() *TrendStore {
	return &TrendStore{data: make(map[string]*domain.TrendMetric)}
}

// Insert adds a trend metric. Returns ErrDuplicateKey if the ID exists.
func (s *TrendStore) Insert(_ context.Context, t *domain.TrendMetric) error {
	if t == nil || t.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[t.ID]; exists {
		return storage.ErrDuplicateKey
	}

	metricCopy := *t
	s.data[t.ID] = &metricCopy
	return nil
}

// List retrieves metrics for an industry tag published strictly after since,
// ordered by published_at DESC.
func (s *TrendStore) List(_ context.Context, industry string, since time.Time) ([]domain.TrendMetric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.TrendMetric
	for _, t := range s.data {
		if industry != storage.IndustryAll && t.IndustryTag != industry {
			continue
		}
		if !t.PublishedAt.After(since) {
			continue
		}
		result = append(result, *t)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].PublishedAt.Equal(result[j].PublishedAt) {
			return result[i].PublishedAt.After(result[j].PublishedAt)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.TrendStore = (*TrendStore)(nil)
