package analytics

import "github.com/nult2003/marketing-intelligence/internal/domain"

// Chart colors for the sentiment buckets.
const (
	colorPositive = "#16a34a"
	colorNeutral  = "#64748b"
	colorRisk     = "#dc2626"
)

// Sentiment score thresholds: above the positive threshold is Positive,
// below the risk threshold is Risk, the closed interval between is Neutral.
const (
	sentimentPositiveAbove = 7.0
	sentimentRiskBelow     = 4.0
)

// ClassifySentiment buckets the filtered set by sentiment score. Items
// without a score are excluded entirely: they appear in no bucket and do not
// contribute to any count. Zero-count buckets are dropped; the remainder
// keeps the fixed order Positive, Neutral, Risk.
func ClassifySentiment(items []domain.NewsItem) domain.SentimentMix {
	var positive, neutral, risk int
	for _, it := range items {
		if it.SentimentScore == nil {
			continue
		}
		switch score := *it.SentimentScore; {
		case score > sentimentPositiveAbove:
			positive++
		case score < sentimentRiskBelow:
			risk++
		default:
			neutral++
		}
	}

	var mix domain.SentimentMix
	if positive > 0 {
		mix = append(mix, domain.SentimentSlice{Label: domain.SentimentPositive, Count: positive, Color: colorPositive})
	}
	if neutral > 0 {
		mix = append(mix, domain.SentimentSlice{Label: domain.SentimentNeutral, Count: neutral, Color: colorNeutral})
	}
	if risk > 0 {
		mix = append(mix, domain.SentimentSlice{Label: domain.SentimentRisk, Count: risk, Color: colorRisk})
	}
	return mix
}
