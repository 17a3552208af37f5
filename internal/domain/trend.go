package domain

import "time"

// DefaultCompanyName is substituted when a metric carries no company name.
const DefaultCompanyName = "Global Market"

// Metric value types as extracted by the upstream scorer.
const (
	MetricTypeAbsolute = "absolute" // counts, prices
	MetricTypeRatio    = "ratio"    // percentages, shares
)

// TrendMetric is a single quantitative business metric (e.g. "market share")
// produced by the external crawler/scorer. Immutable once stored.
type TrendMetric struct {
	ID          string
	NewsID      string // optional link to the originating news record
	CompanyName string // empty is treated as DefaultCompanyName
	MetricName  string
	MetricValue float64
	MetricUnit  string
	MetricType  string // MetricTypeAbsolute or MetricTypeRatio
	IndustryTag string
	PublishedAt time.Time
}

// Company resolves the effective company name.
func (t *TrendMetric) Company() string {
	if t.CompanyName == "" {
		return DefaultCompanyName
	}
	return t.CompanyName
}
