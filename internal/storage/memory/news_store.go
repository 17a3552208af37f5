package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/nult2003/marketing-intelligence/internal/domain"
	"github.com/nult2003/marketing-intelligence/internal/storage"
)

// NewsStore is an in-memory implementation of storage.NewsStore.
type NewsStore struct {
	mu   sync.RWMutex
	data map[string]*domain.NewsItem // keyed by ID
}

// NewNewsStore creates a new in-memory news store.
func NewNewsStore() *NewsStore {
	return &NewsStore{data: make(map[string]*domain.NewsItem)}
}

// Insert adds a news record. Returns ErrDuplicateKey if the ID exists.
func (s *NewsStore) Insert(_ context.Context, n *domain.NewsItem) error {
	if n == nil || n.ID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[n.ID]; exists {
		return storage.ErrDuplicateKey
	}

	// Store a copy to prevent external mutation
	itemCopy := *n
	s.data[n.ID] = &itemCopy
	return nil
}

// GetByID retrieves a record by ID. Returns ErrNotFound if not exists.
func (s *NewsStore) GetByID(_ context.Context, id string) (*domain.NewsItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	itemCopy := *n
	return &itemCopy, nil
}

// ListByIndustry retrieves records for an industry tag, ordered by
// created_at DESC, at most limit records (limit <= 0 means no limit).
func (s *NewsStore) ListByIndustry(_ context.Context, industry string, limit int) ([]domain.NewsItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.NewsItem
	for _, n := range s.data {
		if industry != storage.IndustryAll && n.Industry() != industry {
			continue
		}
		result = append(result, *n)
	}

	// Sort by created_at DESC, ID ASC for determinism
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.NewsStore = (*NewsStore)(nil)
