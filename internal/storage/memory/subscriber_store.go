package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/nult2003/marketing-intelligence/internal/domain"
	"github.com/nult2003/marketing-intelligence/internal/storage"
)

// SubscriberStore is an in-memory implementation of storage.SubscriberStore.
type SubscriberStore struct {
	mu     sync.RWMutex
	data   map[int64]*domain.Subscriber
	nextID int64
}

// NewSubscriberStore creates a new in-memory subscriber store.
func NewSubscriberStore() *SubscriberStore {
	return &SubscriberStore{data: make(map[int64]*domain.Subscriber)}
}

// Insert adds a subscriber. Returns ErrDuplicateKey if the email is already
// enrolled. The assigned ID is written back to sub.
func (s *SubscriberStore) Insert(_ context.Context, sub *domain.Subscriber) error {
	if sub == nil || sub.Email == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.data {
		if existing.Email == sub.Email {
			return storage.ErrDuplicateKey
		}
	}

	s.nextID++
	sub.ID = s.nextID
	subCopy := *sub
	s.data[sub.ID] = &subCopy
	return nil
}

// GetByEmail retrieves a subscriber by email. Returns ErrNotFound if not
// exists.
func (s *SubscriberStore) GetByEmail(_ context.Context, email string) (*domain.Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sub := range s.data {
		if sub.Email == email {
			subCopy := *sub
			return &subCopy, nil
		}
	}
	return nil, storage.ErrNotFound
}

// List retrieves all subscribers ordered by ID ASC.
func (s *SubscriberStore) List(_ context.Context) ([]domain.Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Subscriber, 0, len(s.data))
	for _, sub := range s.data {
		result = append(result, *sub)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// ToggleAlerts flips receive_email_alerts and returns the updated record.
func (s *SubscriberStore) ToggleAlerts(_ context.Context, id int64) (*domain.Subscriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}
	sub.ReceiveEmailAlerts = !sub.ReceiveEmailAlerts
	subCopy := *sub
	return &subCopy, nil
}

// Delete removes a subscriber. Returns ErrNotFound if not exists.
func (s *SubscriberStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[id]; !exists {
		return storage.ErrNotFound
	}
	delete(s.data, id)
	return nil
}

// Verify interface compliance at compile time.
var _ storage.SubscriberStore = (*SubscriberStore)(nil)
