// Package main generates a one-shot analytics report from stored records.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/nult2003/marketing-intelligence/internal/analytics"
	"github.com/nult2003/marketing-intelligence/internal/domain"
	"github.com/nult2003/marketing-intelligence/internal/reporting"
	"github.com/nult2003/marketing-intelligence/internal/storage"
	chstore "github.com/nult2003/marketing-intelligence/internal/storage/clickhouse"
	pgstore "github.com/nult2003/marketing-intelligence/internal/storage/postgres"
)

func main() {
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	industry := flag.String("industry", storage.IndustryAll, "Industry filter (\"All\" for everything)")
	timeRange := flag.String("time-range", string(domain.RangeMonthly), "Time range: Daily, Weekly, Monthly, Quarterly or Yearly")
	outputDir := flag.String("output-dir", "reports", "Directory to write report files into")

	flag.Parse()

	logger := log.New(os.Stdout, "[report] ", log.LstdFlags)

	if *postgresDSN == "" || *clickhouseDSN == "" {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required")
	}
	rng, err := parseTimeRange(*timeRange)
	if err != nil {
		logger.Fatalf("Invalid --time-range: %v", err)
	}

	ctx := context.Background()

	pool, err := pgstore.NewPool(ctx, *postgresDSN)
	if err != nil {
		logger.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	chConn, err := chstore.NewConn(ctx, *clickhouseDSN)
	if err != nil {
		logger.Fatalf("Failed to connect to clickhouse: %v", err)
	}
	defer chConn.Close()

	engine := analytics.NewEngine(pgstore.NewNewsStore(pool), chstore.NewTrendStore(chConn), logger)
	generator := reporting.NewGenerator(engine, *outputDir)

	if err := generator.Generate(ctx, *industry, rng); err != nil {
		logger.Fatalf("Failed to generate report: %v", err)
	}

	logger.Printf("Report written to %s", *outputDir)
}

func parseTimeRange(s string) (domain.TimeRange, error) {
	switch domain.TimeRange(s) {
	case domain.RangeDaily, domain.RangeWeekly, domain.RangeMonthly, domain.RangeQuarterly, domain.RangeYearly:
		return domain.TimeRange(s), nil
	}
	return "", fmt.Errorf("unknown range %q, expected one of %s", s,
		strings.Join([]string{
			string(domain.RangeDaily), string(domain.RangeWeekly), string(domain.RangeMonthly),
			string(domain.RangeQuarterly), string(domain.RangeYearly),
		}, ", "))
}
