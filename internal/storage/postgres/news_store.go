package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nult2003/marketing-intelligence/internal/domain"
	"github.com/nult2003/marketing-intelligence/internal/storage"
)

// NewsStore implements storage.NewsStore using PostgreSQL.
type NewsStore struct {
	pool *Pool
}

// NewNewsStore creates a new NewsStore.
func NewNewsStore(pool *Pool) *NewsStore {
	return &NewsStore{pool: pool}
}

// Compile-time interface check.
var _ storage.NewsStore = (*NewsStore)(nil)

const newsColumns = `
	id, title, url, summary, source_domain,
	sentiment_score, impact_score, urgency, risk_type, industry_tag,
	action_recommendation, published_at, created_at
`

// Insert adds a news record. Returns ErrDuplicateKey if the ID exists.
func (s *NewsStore) Insert(ctx context.Context, n *domain.NewsItem) error {
	if n == nil || n.ID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO news (
			id, title, url, summary, source_domain,
			sentiment_score, impact_score, urgency, risk_type, industry_tag,
			action_recommendation, published_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	var publishedAt any
	if !n.PublishedAt.IsZero() {
		publishedAt = n.PublishedAt
	}

	_, err := s.pool.Exec(ctx, query,
		n.ID,
		n.Title,
		n.URL,
		n.Summary,
		nullIfEmpty(n.SourceDomain),
		n.SentimentScore,
		n.ImpactScore,
		string(n.Urgency),
		nullIfEmpty(string(n.RiskType)),
		nullIfEmpty(n.IndustryTag),
		nullIfEmpty(n.ActionRecommendation),
		publishedAt,
		n.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert news: %w", err)
	}
	return nil
}

// GetByID retrieves a record by ID. Returns ErrNotFound if not exists.
func (s *NewsStore) GetByID(ctx context.Context, id string) (*domain.NewsItem, error) {
	query := `SELECT` + newsColumns + `FROM news WHERE id = $1`

	row := s.pool.QueryRow(ctx, query, id)
	n, err := scanNews(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get news by id: %w", err)
	}
	return n, nil
}

// ListByIndustry retrieves records for an industry tag, ordered by
// created_at DESC, at most limit records (limit <= 0 means no limit).
func (s *NewsStore) ListByIndustry(ctx context.Context, industry string, limit int) ([]domain.NewsItem, error) {
	query := `SELECT` + newsColumns + `FROM news`
	args := []any{}
	if industry != storage.IndustryAll {
		query += ` WHERE COALESCE(industry_tag, 'General') = $1`
		args = append(args, industry)
	}
	query += ` ORDER BY created_at DESC, id ASC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list news by industry: %w", err)
	}
	defer rows.Close()

	return scanNewsRows(rows)
}

// scanNews scans a single news row.
func scanNews(row pgx.Row) (*domain.NewsItem, error) {
	var n domain.NewsItem
	var sourceDomain, riskType, industryTag, action *string
	var publishedAt *time.Time

	err := row.Scan(
		&n.ID,
		&n.Title,
		&n.URL,
		&n.Summary,
		&sourceDomain,
		&n.SentimentScore,
		&n.ImpactScore,
		&n.Urgency,
		&riskType,
		&industryTag,
		&action,
		&publishedAt,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	n.SourceDomain = deref(sourceDomain)
	n.RiskType = domain.RiskType(deref(riskType))
	n.IndustryTag = deref(industryTag)
	n.ActionRecommendation = deref(action)
	if publishedAt != nil {
		n.PublishedAt = *publishedAt
	}
	return &n, nil
}

// scanNewsRows scans all news rows.
func scanNewsRows(rows pgx.Rows) ([]domain.NewsItem, error) {
	var result []domain.NewsItem
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("scan news row: %w", err)
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate news rows: %w", err)
	}
	return result, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
