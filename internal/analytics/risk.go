package analytics

import "github.com/nult2003/marketing-intelligence/internal/domain"

// CountRisk counts every item into exactly one of the six fixed risk
// categories: an absent risk_type resolves to None, anything outside the
// named categories folds into Other. Zero-count categories are dropped,
// preserving the relative order of the remainder.
//
// The second return value maps each unknown raw risk_type value to how many
// items carried it, so callers can log the contract anomaly once per value
// instead of silently masking upstream scoring bugs.
func CountRisk(items []domain.NewsItem) (domain.RiskDistribution, map[string]int) {
	counts := make(map[domain.RiskType]int, len(domain.RiskCategories))
	var unknown map[string]int
	for _, it := range items {
		resolved := it.Risk()
		counts[resolved]++
		if resolved == domain.RiskOther && it.RiskType != domain.RiskOther {
			if unknown == nil {
				unknown = make(map[string]int)
			}
			unknown[string(it.RiskType)]++
		}
	}

	var dist domain.RiskDistribution
	for _, c := range domain.RiskCategories {
		if counts[c] > 0 {
			dist = append(dist, domain.RiskSlice{Category: c, Count: counts[c]})
		}
	}
	return dist, unknown
}
