package reporting

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nult2003/marketing-intelligence/internal/analytics"
	"github.com/nult2003/marketing-intelligence/internal/domain"
	"github.com/nult2003/marketing-intelligence/internal/storage"
	"github.com/nult2003/marketing-intelligence/internal/storage/memory"
)

func fp(v float64) *float64 {
	return &v
}

func seedStores(t *testing.T) (*memory.NewsStore, *memory.TrendStore) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	newsStore := memory.NewNewsStore()
	items := []*domain.NewsItem{
		{
			ID: "n1", Title: "EV subsidies extended", URL: "https://example.com/1",
			SourceDomain: "example.com", SentimentScore: fp(8.5), ImpactScore: fp(7.0),
			Urgency: domain.UrgencyHigh, RiskType: domain.RiskPolicy,
			IndustryTag: "Electric Vehicle", CreatedAt: now.Add(-time.Hour),
		},
		{
			ID: "n2", Title: "Lithium supply warning", URL: "https://example.com/2",
			SourceDomain: "example.com", SentimentScore: fp(3.0), ImpactScore: fp(8.0),
			Urgency: domain.UrgencyMedium, RiskType: domain.RiskSupplyChain,
			IndustryTag: "Mining", CreatedAt: now.Add(-2 * time.Hour),
		},
	}
	for _, it := range items {
		if err := newsStore.Insert(ctx, it); err != nil {
			t.Fatalf("Insert news failed: %v", err)
		}
	}

	trendStore := memory.NewTrendStore()
	metric := &domain.TrendMetric{
		ID: "t1", CompanyName: "Tesla", MetricName: "market share",
		MetricValue: 23.5, MetricUnit: "%", MetricType: domain.MetricTypeRatio,
		IndustryTag: "Electric Vehicle", PublishedAt: now.Add(-time.Hour),
	}
	if err := trendStore.Insert(ctx, metric); err != nil {
		t.Fatalf("Insert trend failed: %v", err)
	}

	return newsStore, trendStore
}

func TestGenerate_WritesAllFiles(t *testing.T) {
	newsStore, trendStore := seedStores(t)
	engine := analytics.NewEngine(newsStore, trendStore, log.New(io.Discard, "", 0))

	dir := t.TempDir()
	gen := NewGenerator(engine, dir)

	if err := gen.Generate(context.Background(), storage.IndustryAll, domain.RangeMonthly); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for _, name := range []string{"REPORT.md", "industry_ranking.csv", "risk_distribution.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected file %s: %v", name, err)
		}
	}
}

func TestGenerate_MarkdownContent(t *testing.T) {
	newsStore, trendStore := seedStores(t)
	engine := analytics.NewEngine(newsStore, trendStore, log.New(io.Discard, "", 0))

	dir := t.TempDir()
	gen := NewGenerator(engine, dir)
	if err := gen.Generate(context.Background(), storage.IndustryAll, domain.RangeMonthly); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "REPORT.md"))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	report := string(data)

	for _, want := range []string{
		"# Market Intelligence Report",
		"EV subsidies extended",
		"Lithium supply warning",
		"Electric Vehicle",
		"market share",
		"Tesla",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRenderIndustryCSV(t *testing.T) {
	ranking := domain.IndustryRanking{
		{IndustryTag: "Mining", MeanScore: 8.0},
		{IndustryTag: "Electric Vehicle", MeanScore: 7.0},
	}

	got := RenderIndustryCSV(ranking)
	want := "industry_tag,mean_score\nMining,8.0\nElectric Vehicle,7.0\n"
	if got != want {
		t.Errorf("CSV = %q, want %q", got, want)
	}
}

func TestRenderRiskCSV(t *testing.T) {
	dist := domain.RiskDistribution{
		{Category: domain.RiskPolicy, Count: 2},
		{Category: domain.RiskNone, Count: 1},
	}

	got := RenderRiskCSV(dist)
	want := "category,count\nPolicy,2\nNone,1\n"
	if got != want {
		t.Errorf("CSV = %q, want %q", got, want)
	}
}

func TestRenderMarkdown_EmptySnapshot(t *testing.T) {
	snap := &domain.AnalyticsSnapshot{
		Industry:    storage.IndustryAll,
		TimeRange:   domain.RangeMonthly,
		GeneratedAt: time.Now().UTC(),
	}

	report := RenderMarkdown(snap)
	for _, want := range []string{
		"No scored records in range.",
		"No records in range.",
		"No impact-scored records in range.",
		"No trend metrics in range.",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("empty report missing %q", want)
		}
	}
}
