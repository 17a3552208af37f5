package storage

import (
	"context"
	"time"

	"github.com/nult2003/marketing-intelligence/internal/domain"
)

// IndustryAll is the wildcard industry filter: no server-side restriction.
const IndustryAll = "All"

// NewsStore provides access to scored news records. Records are immutable
// once inserted; the analytics pipeline only reads.
type NewsStore interface {
	// Insert adds a news record. Returns ErrDuplicateKey if the ID exists.
	Insert(ctx context.Context, n *domain.NewsItem) error

	// GetByID retrieves a record by ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, id string) (*domain.NewsItem, error)

	// ListByIndustry retrieves records for an industry tag (IndustryAll for
	// no filter), ordered by created_at DESC, at most limit records
	// (limit <= 0 means no limit).
	ListByIndustry(ctx context.Context, industry string, limit int) ([]domain.NewsItem, error)
}

// TrendStore provides access to trend metric records.
type TrendStore interface {
	// Insert adds a trend metric. Returns ErrDuplicateKey if the ID exists.
	Insert(ctx context.Context, t *domain.TrendMetric) error

	// List retrieves metrics for an industry tag (IndustryAll for no filter)
	// published strictly after since, ordered by published_at DESC.
	List(ctx context.Context, industry string, since time.Time) ([]domain.TrendMetric, error)
}

// ConfigStore provides read/replace access to the persisted crawler
// configuration. Replace always writes the full {keywords, interval} pair.
type ConfigStore interface {
	// Get retrieves the current config. Returns ErrNotFound when none has
	// ever been written.
	Get(ctx context.Context) (*domain.AdminConfig, error)

	// Replace overwrites the persisted config with cfg.
	Replace(ctx context.Context, cfg domain.AdminConfig) error
}

// SubscriberStore provides CRUD access to alert subscriber records.
type SubscriberStore interface {
	// Insert adds a subscriber. Returns ErrDuplicateKey if the email is
	// already enrolled. The assigned ID is written back to s.
	Insert(ctx context.Context, s *domain.Subscriber) error

	// GetByEmail retrieves a subscriber by email. Returns ErrNotFound if not
	// exists.
	GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error)

	// List retrieves all subscribers ordered by ID ASC.
	List(ctx context.Context) ([]domain.Subscriber, error)

	// ToggleAlerts flips receive_email_alerts for a subscriber and returns
	// the updated record. Returns ErrNotFound if not exists.
	ToggleAlerts(ctx context.Context, id int64) (*domain.Subscriber, error)

	// Delete removes a subscriber. Returns ErrNotFound if not exists.
	Delete(ctx context.Context, id int64) error
}
