package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nult2003/marketing-intelligence/internal/domain"
	"github.com/nult2003/marketing-intelligence/internal/storage"
)

// SubscriberStore implements storage.SubscriberStore using PostgreSQL.
type SubscriberStore struct {
	pool *Pool
}

// NewSubscriberStore creates a new SubscriberStore.
func NewSubscriberStore(pool *Pool) *SubscriberStore {
	return &SubscriberStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SubscriberStore = (*SubscriberStore)(nil)

// Insert adds a subscriber. Returns ErrDuplicateKey if the email is already
// enrolled. The assigned ID is written back to sub.
func (s *SubscriberStore) Insert(ctx context.Context, sub *domain.Subscriber) error {
	if sub == nil || sub.Email == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO subscribers (email, is_admin, industry_preference, receive_email_alerts)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := s.pool.QueryRow(ctx, query,
		sub.Email,
		sub.IsAdmin,
		nullIfEmpty(sub.IndustryPreference),
		sub.ReceiveEmailAlerts,
	).Scan(&sub.ID)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert subscriber: %w", err)
	}
	return nil
}

// GetByEmail retrieves a subscriber by email. Returns ErrNotFound if not
// exists.
func (s *SubscriberStore) GetByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	query := `
		SELECT id, email, is_admin, industry_preference, receive_email_alerts
		FROM subscribers
		WHERE email = $1
	`

	sub, err := scanSubscriber(s.pool.QueryRow(ctx, query, email))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get subscriber by email: %w", err)
	}
	return sub, nil
}

// List retrieves all subscribers ordered by ID ASC.
func (s *SubscriberStore) List(ctx context.Context) ([]domain.Subscriber, error) {
	query := `
		SELECT id, email, is_admin, industry_preference, receive_email_alerts
		FROM subscribers
		ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var result []domain.Subscriber
	for rows.Next() {
		sub, err := scanSubscriber(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscriber row: %w", err)
		}
		result = append(result, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriber rows: %w", err)
	}
	return result, nil
}

// ToggleAlerts flips receive_email_alerts and returns the updated record.
func (s *SubscriberStore) ToggleAlerts(ctx context.Context, id int64) (*domain.Subscriber, error) {
	query := `
		UPDATE subscribers
		SET receive_email_alerts = NOT receive_email_alerts
		WHERE id = $1
		RETURNING id, email, is_admin, industry_preference, receive_email_alerts
	`

	sub, err := scanSubscriber(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("toggle subscriber alerts: %w", err)
	}
	return sub, nil
}

// Delete removes a subscriber. Returns ErrNotFound if not exists.
func (s *SubscriberStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM subscribers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// scanSubscriber scans a single subscriber row.
func scanSubscriber(row pgx.Row) (*domain.Subscriber, error) {
	var sub domain.Subscriber
	var industry *string
	err := row.Scan(&sub.ID, &sub.Email, &sub.IsAdmin, &industry, &sub.ReceiveEmailAlerts)
	if err != nil {
		return nil, err
	}
	sub.IndustryPreference = deref(industry)
	return &sub, nil
}
