package reporting

import (
	"fmt"
	"strings"

	"github.com/nult2003/marketing-intelligence/internal/domain"
)

// RenderIndustryCSV renders the industry ranking as CSV string.
func RenderIndustryCSV(ranking domain.IndustryRanking) string {
	var sb strings.Builder
	sb.WriteString("industry_tag,mean_score\n")
	for _, r := range ranking {
		sb.WriteString(fmt.Sprintf("%s,%.1f\n", r.IndustryTag, r.MeanScore))
	}
	return sb.String()
}

// RenderRiskCSV renders the risk distribution as CSV string.
func RenderRiskCSV(dist domain.RiskDistribution) string {
	var sb strings.Builder
	sb.WriteString("category,count\n")
	for _, r := range dist {
		sb.WriteString(fmt.Sprintf("%s,%d\n", r.Category, r.Count))
	}
	return sb.String()
}
