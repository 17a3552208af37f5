// Package reporting renders an analytics snapshot to files for offline
// review: a markdown report plus CSV exports of the tabular views.
package reporting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nult2003/marketing-intelligence/internal/analytics"
	"github.com/nult2003/marketing-intelligence/internal/domain"
)

// Generator produces report files from analytics snapshots.
type Generator struct {
	engine    *analytics.Engine
	outputDir string
}

// NewGenerator creates a generator writing into outputDir.
func NewGenerator(engine *analytics.Engine, outputDir string) *Generator {
	return &Generator{engine: engine, outputDir: outputDir}
}

// Generate computes a snapshot for (industry, timeRange) and writes
// REPORT.md, industry_ranking.csv and risk_distribution.csv.
func (g *Generator) Generate(ctx context.Context, industry string, timeRange domain.TimeRange) error {
	snap, err := g.engine.Snapshot(ctx, industry, timeRange, domain.SortLatest)
	if err != nil {
		return fmt.Errorf("compute snapshot: %w", err)
	}

	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	files := map[string]string{
		"REPORT.md":             RenderMarkdown(snap),
		"industry_ranking.csv":  RenderIndustryCSV(snap.Industries),
		"risk_distribution.csv": RenderRiskCSV(snap.Risk),
	}
	for name, content := range files {
		path := filepath.Join(g.outputDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}
