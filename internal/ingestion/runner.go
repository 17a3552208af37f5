package ingestion

import (
	"context"
	"log"
	"time"

	"github.com/nult2003/marketing-intelligence/internal/domain"
	"github.com/nult2003/marketing-intelligence/internal/observability"
	"github.com/nult2003/marketing-intelligence/internal/storage"
)

// ConfigProvider exposes the current crawler configuration to the runner.
// Backed by the configsync reconciler in the server.
type ConfigProvider interface {
	Snapshot() domain.AdminConfig
}

// RunnerOptions configures the ingestion runner.
type RunnerOptions struct {
	Client     *Client
	NewsStore  storage.NewsStore
	TrendStore storage.TrendStore
	Config     ConfigProvider
	Logger     *log.Logger
}

// Runner periodically pulls records from the crawler collaborator and stores
// the ones that pass validation. The pull interval follows the configured
// scraping interval; TriggerNow forces an out-of-band cycle.
type Runner struct {
	client     *Client
	newsStore  storage.NewsStore
	trendStore storage.TrendStore
	config     ConfigProvider
	logger     *log.Logger
	guard      *LatestGuard
	trigger    chan struct{}
}

// NewRunner creates an ingestion runner.
func NewRunner(opts RunnerOptions) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Writer(), "[ingestion] ", log.LstdFlags|log.Lshortfile)
	}
	return &Runner{
		client:     opts.Client,
		newsStore:  opts.NewsStore,
		trendStore: opts.TrendStore,
		config:     opts.Config,
		logger:     logger,
		guard:      NewLatestGuard(),
		trigger:    make(chan struct{}, 1),
	}
}

// TriggerNow requests an out-of-band ingestion cycle. Coalesces with an
// already-pending trigger.
func (r *Runner) TriggerNow() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Run executes the pull loop until ctx is cancelled. Runs one cycle
// immediately on start.
func (r *Runner) Run(ctx context.Context) error {
	r.cycle(ctx)

	for {
		interval := time.Duration(r.config.Snapshot().ScrapingIntervalMinutes) * time.Minute
		if interval <= 0 {
			interval = time.Hour
		}
		timer := time.NewTimer(interval)

		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-r.trigger:
			timer.Stop()
			r.logger.Println("out-of-band ingestion cycle triggered")
			r.cycle(ctx)
		case <-timer.C:
			r.cycle(ctx)
		}
	}
}

// cycle fetches and stores one round of news and trends for all industries.
// Fetch failures are logged once and skipped: the pipeline keeps serving the
// last successfully stored set.
func (r *Runner) cycle(ctx context.Context) {
	ticket := r.guard.Begin("cycle")

	news, rejectedNews, err := r.client.FetchNews(ctx, storage.IndustryAll)
	if err != nil {
		r.logger.Printf("fetch news: %v", err)
		return
	}
	trends, rejectedTrends, err := r.client.FetchTrends(ctx, storage.IndustryAll, domain.RangeYearly)
	if err != nil {
		r.logger.Printf("fetch trends: %v", err)
		return
	}

	if !r.guard.Accept("cycle", ticket) {
		// A newer cycle started while this one was in flight.
		observability.RecordFetch("cycle", "superseded")
		return
	}

	for _, cv := range rejectedNews {
		r.logger.Printf("rejected news record: %v", cv)
		observability.RecordContractViolation(cv.Field)
	}
	observability.RecordRejected("news", len(rejectedNews))
	for _, cv := range rejectedTrends {
		r.logger.Printf("rejected trend record: %v", cv)
		observability.RecordContractViolation(cv.Field)
	}
	observability.RecordRejected("trend", len(rejectedTrends))

	newsRes, err := StoreNews(ctx, r.newsStore, news)
	if err != nil {
		r.logger.Printf("store news: %v", err)
		return
	}
	trendRes, err := StoreTrends(ctx, r.trendStore, trends)
	if err != nil {
		r.logger.Printf("store trends: %v", err)
		return
	}

	r.logger.Printf("ingestion cycle: %d news (+%d dup), %d trends (+%d dup), %d rejected",
		newsRes.Inserted, newsRes.Duplicates, trendRes.Inserted, trendRes.Duplicates,
		len(rejectedNews)+len(rejectedTrends))
}
