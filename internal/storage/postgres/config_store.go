package postgres

import (
	"context"
	"fmt"

	"github.com/nult2003/marketing-intelligence/internal/domain"
	"github.com/nult2003/marketing-intelligence/internal/storage"
)

// ConfigStore implements storage.ConfigStore using PostgreSQL. A single row
// holds the current config; Replace upserts it.
type ConfigStore struct {
	pool *Pool
}

// NewConfigStore creates a new ConfigStore.
func NewConfigStore(pool *Pool) *ConfigStore {
	return &ConfigStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ConfigStore = (*ConfigStore)(nil)

// Get retrieves the current config. Returns ErrNotFound when none has ever
// been written.
func (s *ConfigStore) Get(ctx context.Context) (*domain.AdminConfig, error) {
	query := `
		SELECT search_keywords, scraping_interval_minutes
		FROM admin_configs
		ORDER BY id DESC
		LIMIT 1
	`

	var cfg domain.AdminConfig
	err := s.pool.QueryRow(ctx, query).Scan(&cfg.SearchKeywords, &cfg.ScrapingIntervalMinutes)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get admin config: %w", err)
	}
	return &cfg, nil
}

// Replace overwrites the persisted config with cfg. The full
// {keywords, interval} pair is always written together.
func (s *ConfigStore) Replace(ctx context.Context, cfg domain.AdminConfig) error {
	query := `
		INSERT INTO admin_configs (id, search_keywords, scraping_interval_minutes)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE
		SET search_keywords = EXCLUDED.search_keywords,
		    scraping_interval_minutes = EXCLUDED.scraping_interval_minutes
	`

	keywords := cfg.SearchKeywords
	if keywords == nil {
		keywords = []string{}
	}

	if _, err := s.pool.Exec(ctx, query, keywords, cfg.ScrapingIntervalMinutes); err != nil {
		return fmt.Errorf("replace admin config: %w", err)
	}
	return nil
}
