package analytics

import (
	"github.com/nult2003/marketing-intelligence/internal/domain"
)

// Correlate projects each item into an (impact, urgency-weight) point. An
// urgency outside the Low/Medium/High contract is a scoring bug upstream:
// the record is rejected from the point set and reported, never coerced to a
// default weight. Items without an impact score produce no point since they
// have no position on the impact axis.
func Correlate(items []domain.NewsItem) (domain.CorrelationSet, []*domain.ContractViolationError) {
	var points domain.CorrelationSet
	var rejected []*domain.ContractViolationError
	for _, it := range items {
		if it.ImpactScore == nil {
			continue
		}
		if !it.Urgency.Valid() {
			rejected = append(rejected, &domain.ContractViolationError{
				Field:  "urgency",
				Value:  string(it.Urgency),
				Reason: "outside Low/Medium/High",
			})
			continue
		}
		points = append(points, domain.CorrelationPoint{
			ID:            it.ID,
			Title:         it.Title,
			ImpactScore:   *it.ImpactScore,
			UrgencyWeight: it.Urgency.Weight(),
		})
	}
	return points, rejected
}
