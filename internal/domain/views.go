package domain

import "time"

// TimeRange is a named rolling window used to filter records by recency.
type TimeRange string

const (
	RangeDaily     TimeRange = "Daily"
	RangeWeekly    TimeRange = "Weekly"
	RangeMonthly   TimeRange = "Monthly"
	RangeQuarterly TimeRange = "Quarterly" // feed view only
	RangeYearly    TimeRange = "Yearly"
)

// SortMode selects the feed ordering.
type SortMode string

const (
	SortLatest        SortMode = "Latest"
	SortHighestImpact SortMode = "Highest Impact"
)

// Sentiment bucket labels in fixed display order.
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentRisk     = "Risk"
)

// SentimentSlice is one bucket of the sentiment composition view.
type SentimentSlice struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// SentimentMix is the sentiment composition view: buckets in fixed order
// (Positive, Neutral, Risk) with zero-count buckets dropped. Counts sum to
// the number of filtered items carrying a sentiment score.
type SentimentMix []SentimentSlice

// RiskSlice is one category of the risk distribution view.
type RiskSlice struct {
	Category RiskType `json:"category"`
	Count    int      `json:"count"`
}

// RiskDistribution lists risk categories in the fixed RiskCategories order
// with zero-count categories dropped. Counts sum to the full filtered item
// count: every item falls into exactly one category.
type RiskDistribution []RiskSlice

// IndustryRank is one entry of the industry impact ranking.
type IndustryRank struct {
	IndustryTag string  `json:"industry_tag"`
	MeanScore   float64 `json:"mean_score"` // one decimal, half-up
}

// IndustryRanking is sorted descending by mean score; ties keep the order in
// which industries were first encountered.
type IndustryRanking []IndustryRank

// CorrelationPoint projects one news record onto the (impact, urgency) plane.
type CorrelationPoint struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	ImpactScore   float64 `json:"impact_score"`
	UrgencyWeight int     `json:"urgency_weight"`
}

// CorrelationSet is the urgency/impact point set used for correlation
// display; never aggregated further.
type CorrelationSet []CorrelationPoint

// FeedGroup is one labeled section of the grouped feed
// ("Today", "Yesterday", "This Week", or a month-year such as "March 2024").
type FeedGroup struct {
	Label string     `json:"label"`
	Items []NewsItem `json:"items"`
}

// GroupedFeed sections the sorted feed into date-labeled groups. Group order
// is canonical (Today, Yesterday, This Week, then months descending)
// regardless of the item sort mode; item order within a group comes from the
// sort pass.
type GroupedFeed []FeedGroup

// AnalyticsSnapshot bundles every derived view for one (industry, range)
// query. Ephemeral: recomputed on demand, never persisted.
type AnalyticsSnapshot struct {
	Industry     string           `json:"industry"`
	TimeRange    TimeRange        `json:"time_range"`
	SortMode     SortMode         `json:"sort_mode"`
	GeneratedAt  time.Time        `json:"generated_at"`
	ItemCount    int              `json:"item_count"`
	Sentiment    SentimentMix     `json:"sentiment"`
	Risk         RiskDistribution `json:"risk"`
	Industries   IndustryRanking  `json:"industries"`
	Correlation  CorrelationSet   `json:"correlation"`
	Feed         GroupedFeed      `json:"feed"`
	Trends       []TrendMetric    `json:"trends"`
}
