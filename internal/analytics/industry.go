package analytics

import (
	"math"
	"sort"

	"github.com/nult2003/marketing-intelligence/internal/domain"
)

// RankIndustries computes the mean impact score per industry tag over the
// items that carry an impact score. Means are rounded to one decimal place,
// half-up. The result is sorted descending by mean; ties keep the order in
// which industries were first encountered during the grouping pass.
func RankIndustries(items []domain.NewsItem) domain.IndustryRanking {
	type group struct {
		sum   float64
		count int
	}
	groups := make(map[string]*group)
	var order []string // first-encounter order, the tie-break for the sort

	for _, it := range items {
		if it.ImpactScore == nil {
			continue
		}
		tag := it.Industry()
		g, ok := groups[tag]
		if !ok {
			g = &group{}
			groups[tag] = g
			order = append(order, tag)
		}
		g.sum += *it.ImpactScore
		g.count++
	}

	ranking := make(domain.IndustryRanking, 0, len(order))
	for _, tag := range order {
		g := groups[tag]
		ranking = append(ranking, domain.IndustryRank{
			IndustryTag: tag,
			MeanScore:   roundHalfUp1(g.sum / float64(g.count)),
		})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].MeanScore > ranking[j].MeanScore
	})
	return ranking
}

// roundHalfUp1 rounds to one decimal place, half-up. Scores are non-negative,
// so rounding half away from zero is half-up.
func roundHalfUp1(v float64) float64 {
	return math.Round(v*10) / 10
}
