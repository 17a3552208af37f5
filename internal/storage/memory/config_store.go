package memory

import (
	"context"
	"sync"

	"github.com/nult2003/marketing-intelligence/internal/domain"
	"github.com/nult2003/marketing-intelligence/internal/storage"
)

// ConfigStore is an in-memory implementation of storage.ConfigStore.
type ConfigStore struct {
	mu     sync.RWMutex
	config *domain.AdminConfig
}

// NewConfigStore creates an empty in-memory config store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{}
}

// Get retrieves the current config. Returns ErrNotFound when none has ever
// been written.
func (s *ConfigStore) Get(_ context.Context) (*domain.AdminConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.config == nil {
		return nil, storage.ErrNotFound
	}
	cfg := s.config.Clone()
	return &cfg, nil
}

// Replace overwrites the persisted config with cfg.
func (s *ConfigStore) Replace(_ context.Context, cfg domain.AdminConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cfg.Clone()
	s.config = &stored
	return nil
}

// Verify interface compliance at compile time.
var _ storage.ConfigStore = (*ConfigStore)(nil)
