package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/nult2003/marketing-intelligence/internal/domain"
)

// RenderMarkdown renders a snapshot as a Markdown report.
func RenderMarkdown(snap *domain.AnalyticsSnapshot) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Market Intelligence Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", snap.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Industry: %s | Range: %s | Records: %d\n\n",
		snap.Industry, snap.TimeRange, snap.ItemCount))

	// Sentiment composition
	sb.WriteString("## Sentiment Composition\n\n")
	if len(snap.Sentiment) > 0 {
		sb.WriteString("| Bucket | Count |\n")
		sb.WriteString("|--------|-------|\n")
		for _, s := range snap.Sentiment {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", s.Label, s.Count))
		}
	} else {
		sb.WriteString("No scored records in range.\n")
	}
	sb.WriteString("\n")

	// Risk distribution
	sb.WriteString("## Risk Distribution\n\n")
	if len(snap.Risk) > 0 {
		sb.WriteString("| Category | Count |\n")
		sb.WriteString("|----------|-------|\n")
		for _, r := range snap.Risk {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", r.Category, r.Count))
		}
	} else {
		sb.WriteString("No records in range.\n")
	}
	sb.WriteString("\n")

	// Industry ranking
	sb.WriteString("## Industry Impact Ranking\n\n")
	if len(snap.Industries) > 0 {
		sb.WriteString("| Industry | Mean Impact |\n")
		sb.WriteString("|----------|-------------|\n")
		for _, r := range snap.Industries {
			sb.WriteString(fmt.Sprintf("| %s | %.1f |\n", r.IndustryTag, r.MeanScore))
		}
	} else {
		sb.WriteString("No impact-scored records in range.\n")
	}
	sb.WriteString("\n")

	// Feed sections
	sb.WriteString("## Feed\n\n")
	for _, group := range snap.Feed {
		sb.WriteString(fmt.Sprintf("### %s\n\n", group.Label))
		for _, item := range group.Items {
			sb.WriteString(fmt.Sprintf("- %s (%s)\n", item.Title, item.SourceDomain))
		}
		sb.WriteString("\n")
	}

	// Trends
	sb.WriteString("## Trend Metrics\n\n")
	if len(snap.Trends) > 0 {
		sb.WriteString("| Company | Metric | Value | Unit |\n")
		sb.WriteString("|---------|--------|-------|------|\n")
		for _, t := range snap.Trends {
			sb.WriteString(fmt.Sprintf("| %s | %s | %g | %s |\n",
				t.Company(), t.MetricName, t.MetricValue, t.MetricUnit))
		}
	} else {
		sb.WriteString("No trend metrics in range.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
