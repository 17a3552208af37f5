package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/nult2003/marketing-intelligence/internal/domain"
	"github.com/nult2003/marketing-intelligence/internal/observability"
	"github.com/nult2003/marketing-intelligence/internal/storage"
)

// Client consumes the external crawler collaborator's record collections
// over HTTP. Every fetch is a single attempt: failures are wrapped as
// transient and reported once, never retried here.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the collaborator API at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchResult carries the validated records of one fetch plus the records
// rejected at the boundary.
type FetchResult struct {
	News     []domain.NewsItem
	Trends   []domain.TrendMetric
	Rejected []*domain.ContractViolationError
}

// FetchNews pulls the news collection filtered server-side by industry tag.
func (c *Client) FetchNews(ctx context.Context, industry string) ([]domain.NewsItem, []*domain.ContractViolationError, error) {
	var payloads []newsPayload
	if err := c.get(ctx, "/api/news", map[string]string{"industry": industry}, &payloads); err != nil {
		observability.RecordFetch("news", "error")
		return nil, nil, err
	}
	observability.RecordFetch("news", "success")

	var items []domain.NewsItem
	var rejected []*domain.ContractViolationError
	for _, p := range payloads {
		item, err := parseNews(p)
		if err != nil {
			rejected = append(rejected, asViolation(err))
			continue
		}
		items = append(items, *item)
	}
	return items, rejected, nil
}

// FetchTrends pulls the trend collection filtered server-side by industry
// tag and named time range.
func (c *Client) FetchTrends(ctx context.Context, industry string, timeRange domain.TimeRange) ([]domain.TrendMetric, []*domain.ContractViolationError, error) {
	params := map[string]string{"industry": industry, "time_range": string(timeRange)}
	var payloads []trendPayload
	if err := c.get(ctx, "/api/trends", params, &payloads); err != nil {
		observability.RecordFetch("trends", "error")
		return nil, nil, err
	}
	observability.RecordFetch("trends", "success")

	var metrics []domain.TrendMetric
	var rejected []*domain.ContractViolationError
	for _, p := range payloads {
		m, err := parseTrend(p)
		if err != nil {
			rejected = append(rejected, asViolation(err))
			continue
		}
		metrics = append(metrics, *m)
	}
	return metrics, rejected, nil
}

// get performs one GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	q := u.Query()
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTransientFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", domain.ErrTransientFetch, path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", domain.ErrTransientFetch, path, err)
	}
	return nil
}

// StoreResult summarizes one store pass.
type StoreResult struct {
	Inserted   int
	Duplicates int
}

// StoreNews inserts validated news records, skipping duplicates (the same
// article fetched twice hashes to the same ID).
func StoreNews(ctx context.Context, store storage.NewsStore, items []domain.NewsItem) (StoreResult, error) {
	var res StoreResult
	for i := range items {
		err := store.Insert(ctx, &items[i])
		switch {
		case err == nil:
			res.Inserted++
		case isDuplicate(err):
			res.Duplicates++
		default:
			return res, fmt.Errorf("insert news %s: %w", items[i].ID, err)
		}
	}
	observability.RecordIngested("news", res.Inserted)
	return res, nil
}

// StoreTrends inserts validated trend metrics, skipping duplicates.
func StoreTrends(ctx context.Context, store storage.TrendStore, metrics []domain.TrendMetric) (StoreResult, error) {
	var res StoreResult
	for i := range metrics {
		err := store.Insert(ctx, &metrics[i])
		switch {
		case err == nil:
			res.Inserted++
		case isDuplicate(err):
			res.Duplicates++
		default:
			return res, fmt.Errorf("insert trend %s: %w", metrics[i].ID, err)
		}
	}
	observability.RecordIngested("trend", res.Inserted)
	return res, nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, storage.ErrDuplicateKey)
}

func asViolation(err error) *domain.ContractViolationError {
	var cv *domain.ContractViolationError
	if errors.As(err, &cv) {
		return cv
	}
	return &domain.ContractViolationError{Field: "record", Value: "", Reason: err.Error()}
}
