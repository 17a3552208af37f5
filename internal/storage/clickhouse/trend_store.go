package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/nult2003/marketing-intelligence/internal/domain"
	"github.com/nult2003/marketing-intelligence/internal/storage"
)

// TrendStore implements storage.TrendStore using ClickHouse. Trend metrics
// are the read-heavy analytics side of the data set, so they live next to
// the analytical engine rather than in the transactional store.
type TrendStore struct {
	conn *Conn
}

// NewTrendStore creates a new TrendStore.
func NewTrendStore(conn *Conn) *TrendStore {
	return &TrendStore{conn: conn}
}

// Compile-time interface check.
var _ storage.TrendStore = (*TrendStore)(nil)

// Insert adds a trend metric. ClickHouse MergeTree does not enforce
// uniqueness at insert time, so duplicates are checked explicitly first.
func (s *TrendStore) Insert(ctx context.Context, t *domain.TrendMetric) error {
	if t == nil || t.ID == "" {
		return storage.ErrInvalidInput
	}

	exists, err := s.exists(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return storage.ErrDuplicateKey
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO market_trends (
			id, news_id, company_name, metric_name, metric_value,
			metric_unit, metric_type, industry_tag, published_at
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	err = batch.Append(
		t.ID, t.NewsID, t.CompanyName, t.MetricName, t.MetricValue,
		t.MetricUnit, t.MetricType, t.IndustryTag, t.PublishedAt,
	)
	if err != nil {
		return fmt.Errorf("append to batch: %w", err)
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// List retrieves metrics for an industry tag published strictly after since,
// ordered by published_at DESC.
func (s *TrendStore) List(ctx context.Context, industry string, since time.Time) ([]domain.TrendMetric, error) {
	query := `
		SELECT id, news_id, company_name, metric_name, metric_value,
		       metric_unit, metric_type, industry_tag, published_at
		FROM market_trends
		WHERE published_at > ?
	`
	args := []any{since}
	if industry != storage.IndustryAll {
		query += ` AND industry_tag = ?`
		args = append(args, industry)
	}
	query += ` ORDER BY published_at DESC, id ASC`

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list trends: %w", err)
	}
	defer rows.Close()

	var result []domain.TrendMetric
	for rows.Next() {
		var t domain.TrendMetric
		err := rows.Scan(
			&t.ID, &t.NewsID, &t.CompanyName, &t.MetricName, &t.MetricValue,
			&t.MetricUnit, &t.MetricType, &t.IndustryTag, &t.PublishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan trend row: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trend rows: %w", err)
	}
	return result, nil
}

// exists checks for a metric with the given ID.
func (s *TrendStore) exists(ctx context.Context, id string) (bool, error) {
	var count uint64
	err := s.conn.QueryRow(ctx, `SELECT count() FROM market_trends WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
