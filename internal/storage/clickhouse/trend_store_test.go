package clickhouse_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nult2003/marketing-intelligence/internal/domain"
	"github.com/nult2003/marketing-intelligence/internal/storage"
	"github.com/nult2003/marketing-intelligence/internal/storage/clickhouse"
)

func makeTrend(id, industry string, publishedAt time.Time) *domain.TrendMetric {
	return &domain.TrendMetric{
		ID:          id,
		NewsID:      "news-" + id,
		CompanyName: "Tesla",
		MetricName:  "market share",
		MetricValue: 23.5,
		MetricUnit:  "%",
		MetricType:  domain.MetricTypeRatio,
		IndustryTag: industry,
		PublishedAt: publishedAt,
	}
}

func TestTrendStore_InsertAndList(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := clickhouse.NewTrendStore(conn)
	ctx := context.Background()
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Insert(ctx, makeTrend("t1", "Energy", base.Add(-time.Hour))))
	require.NoError(t, store.Insert(ctx, makeTrend("t2", "Energy", base.Add(-2*time.Hour))))

	got, err := store.List(ctx, "Energy", base.AddDate(0, -1, 0))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "t1", got[0].ID, "newest first")
	assert.Equal(t, "Tesla", got[0].CompanyName)
	assert.Equal(t, 23.5, got[0].MetricValue)
}

func TestTrendStore_InsertDuplicate(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := clickhouse.NewTrendStore(conn)
	ctx := context.Background()

	metric := makeTrend("dup", "Energy", time.Now().UTC())
	require.NoError(t, store.Insert(ctx, metric))

	err := store.Insert(ctx, metric)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestTrendStore_ListFilters(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	store := clickhouse.NewTrendStore(conn)
	ctx := context.Background()
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Insert(ctx, makeTrend("recent", "Energy", base.Add(-time.Hour))))
	require.NoError(t, store.Insert(ctx, makeTrend("stale", "Energy", base.AddDate(0, -2, 0))))
	require.NoError(t, store.Insert(ctx, makeTrend("other", "Mining", base.Add(-time.Hour))))

	since := base.AddDate(0, -1, 0)

	energy, err := store.List(ctx, "Energy", since)
	require.NoError(t, err)
	require.Len(t, energy, 1)
	assert.Equal(t, "recent", energy[0].ID)

	all, err := store.List(ctx, storage.IndustryAll, since)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
