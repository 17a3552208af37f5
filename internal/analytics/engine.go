package analytics

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/nult2003/marketing-intelligence/internal/domain"
	"github.com/nult2003/marketing-intelligence/internal/observability"
	"github.com/nult2003/marketing-intelligence/internal/storage"
)

// Engine derives every analytics view from the stored record set on demand.
// Views are pure functions of the filtered set: nothing here mutates a
// record, and nothing is persisted.
type Engine struct {
	newsStore  storage.NewsStore
	trendStore storage.TrendStore
	logger     *log.Logger

	// loggedViolations dedups contract-anomaly logging: each offending value
	// is reported once per process, not once per snapshot.
	mu               sync.Mutex
	loggedViolations map[string]struct{}
}

// NewEngine creates an analytics engine over the given stores.
func NewEngine(newsStore storage.NewsStore, trendStore storage.TrendStore, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		newsStore:        newsStore,
		trendStore:       trendStore,
		logger:           logger,
		loggedViolations: make(map[string]struct{}),
	}
}

// Snapshot loads records filtered by industry and time range and computes
// all derived views. Deterministic: identical filtered sets always produce
// identical snapshots, regardless of how the set was obtained.
func (e *Engine) Snapshot(ctx context.Context, industry string, timeRange domain.TimeRange, mode domain.SortMode) (*domain.AnalyticsSnapshot, error) {
	return e.snapshotAt(ctx, industry, timeRange, mode, time.Now().UTC())
}

// snapshotAt is Snapshot with an injectable clock for tests.
func (e *Engine) snapshotAt(ctx context.Context, industry string, timeRange domain.TimeRange, mode domain.SortMode, now time.Time) (*domain.AnalyticsSnapshot, error) {
	start := time.Now()

	all, err := e.newsStore.ListByIndustry(ctx, industry, 0)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	items := FilterWindow(all, timeRange, now)

	trends, err := e.trendStore.List(ctx, industry, Cutoff(timeRange, now))
	if err != nil {
		return nil, fmt.Errorf("list trends: %w", err)
	}

	points, rejected := Correlate(items)
	for _, cv := range rejected {
		e.logViolationOnce(cv.Field+"="+cv.Value, cv)
		observability.RecordContractViolation(cv.Field)
	}

	risk, unknownRisk := CountRisk(items)
	for value := range unknownRisk {
		e.logViolationOnce("risk_type="+value, &domain.ContractViolationError{
			Field:  "risk_type",
			Value:  value,
			Reason: "outside the named categories, folded into Other",
		})
	}

	snap := &domain.AnalyticsSnapshot{
		Industry:    industry,
		TimeRange:   timeRange,
		SortMode:    mode,
		GeneratedAt: now,
		ItemCount:   len(items),
		Sentiment:   ClassifySentiment(items),
		Risk:        risk,
		Industries:  RankIndustries(items),
		Correlation: points,
		Feed:        GroupFeed(items, mode, now),
		Trends:      trends,
	}

	observability.RecordSnapshot(string(timeRange), time.Since(start).Seconds())
	return snap, nil
}

func (e *Engine) logViolationOnce(key string, cv *domain.ContractViolationError) {
	e.mu.Lock()
	_, seen := e.loggedViolations[key]
	if !seen {
		e.loggedViolations[key] = struct{}{}
	}
	e.mu.Unlock()

	if !seen {
		e.logger.Printf("rejected record(s): %v", cv)
	}
}
