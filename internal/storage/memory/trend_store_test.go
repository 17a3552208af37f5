package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nult2003/marketing-intelligence/internal/domain"
	"github.com/nult2003/marketing-intelligence/internal/storage"
)

func makeTrend(id, industry string, publishedAt time.Time) *domain.TrendMetric {
	return &domain.TrendMetric{
		ID:          id,
		MetricName:  "market share",
		MetricValue: 10.0,
		IndustryTag: industry,
		PublishedAt: publishedAt,
	}
}

func TestTrendStore_InsertAndDuplicate(t *testing.T) {
	ctx := context.Background()
	store := NewTrendStore()
	now := time.Now().UTC()

	if err := store.Insert(ctx, makeTrend("t1", "Energy", now)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, makeTrend("t1", "Energy", now)); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("duplicate insert err = %v, want ErrDuplicateKey", err)
	}
}

func TestTrendStore_ListFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	store := NewTrendStore()
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	metrics := []*domain.TrendMetric{
		makeTrend("old", "Energy", base.AddDate(0, -2, 0)),
		makeTrend("mid", "Energy", base.Add(-48*time.Hour)),
		makeTrend("new", "Energy", base.Add(-time.Hour)),
		makeTrend("other", "Mining", base.Add(-time.Hour)),
	}
	for _, m := range metrics {
		if err := store.Insert(ctx, m); err != nil {
			t.Fatalf("Insert %s failed: %v", m.ID, err)
		}
	}

	since := base.AddDate(0, -1, 0)
	got, err := store.List(ctx, "Energy", since)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "new" || got[1].ID != "mid" {
		t.Errorf("list = %+v, want [new mid] newest first, old excluded", got)
	}

	all, err := store.List(ctx, storage.IndustryAll, since)
	if err != nil {
		t.Fatalf("List(All) failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("All list has %d records, want 3", len(all))
	}
}

func TestTrendStore_SinceBoundaryExclusive(t *testing.T) {
	ctx := context.Background()
	store := NewTrendStore()
	cutoff := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	if err := store.Insert(ctx, makeTrend("at", "Energy", cutoff)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.List(ctx, "Energy", cutoff)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("metric published exactly at since included, want excluded")
	}
}
