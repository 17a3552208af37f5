package ingestion

import (
	"strconv"
	"time"

	"github.com/nult2003/marketing-intelligence/internal/domain"
	"github.com/nult2003/marketing-intelligence/internal/idhash"
)

// newsPayload is the wire shape of one news record from the crawler
// collaborator. Fields are validated before anything reaches aggregation;
// malformed records are rejected with a contract violation, not coerced.
type newsPayload struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	URL                  string   `json:"url"`
	SourceDomain         string   `json:"source_domain"`
	Summary              string   `json:"summary"`
	SentimentScore       *float64 `json:"sentiment_score"`
	ImpactScore          *float64 `json:"impact_score"`
	Urgency              string   `json:"urgency"`
	RiskType             string   `json:"risk_type"`
	ActionRecommendation string   `json:"action_recommendation"`
	IndustryTag          string   `json:"industry_tag"`
	PublishedAt          *time.Time `json:"published_at"`
	CreatedAt            *time.Time `json:"created_at"`
}

// trendPayload is the wire shape of one trend metric record.
type trendPayload struct {
	ID          string     `json:"id"`
	NewsID      string     `json:"news_id"`
	MetricName  string     `json:"metric_name"`
	CompanyName string     `json:"company_name"`
	MetricValue *float64   `json:"metric_value"`
	MetricUnit  string     `json:"metric_unit"`
	MetricType  string     `json:"metric_type"`
	IndustryTag string     `json:"industry_tag"`
	PublishedAt *time.Time `json:"published_at"`
}

// parseNews validates one wire record into a domain NewsItem.
func parseNews(p newsPayload) (*domain.NewsItem, error) {
	if p.Title == "" {
		return nil, &domain.ContractViolationError{Field: "title", Value: "", Reason: "required"}
	}
	if p.URL == "" {
		return nil, &domain.ContractViolationError{Field: "url", Value: "", Reason: "required"}
	}
	if p.CreatedAt == nil || p.CreatedAt.IsZero() {
		// The upstream contract always provides created_at; an absent value
		// is rejected rather than defaulted to epoch zero.
		return nil, &domain.ContractViolationError{Field: "created_at", Value: "", Reason: "required"}
	}
	urgency := domain.Urgency(p.Urgency)
	if !urgency.Valid() {
		return nil, &domain.ContractViolationError{Field: "urgency", Value: p.Urgency, Reason: "outside Low/Medium/High"}
	}
	if err := checkScore("sentiment_score", p.SentimentScore); err != nil {
		return nil, err
	}
	if err := checkScore("impact_score", p.ImpactScore); err != nil {
		return nil, err
	}

	id := p.ID
	if id == "" {
		id = idhash.NewsID(p.URL, p.Title)
	}

	item := &domain.NewsItem{
		ID:                   id,
		Title:                p.Title,
		URL:                  p.URL,
		Summary:              p.Summary,
		SourceDomain:         p.SourceDomain,
		SentimentScore:       p.SentimentScore,
		ImpactScore:          p.ImpactScore,
		Urgency:              urgency,
		RiskType:             domain.RiskType(p.RiskType),
		IndustryTag:          p.IndustryTag,
		ActionRecommendation: p.ActionRecommendation,
		CreatedAt:            p.CreatedAt.UTC(),
	}
	if p.PublishedAt != nil {
		item.PublishedAt = p.PublishedAt.UTC()
	}
	return item, nil
}

// parseTrend validates one wire record into a domain TrendMetric.
func parseTrend(p trendPayload) (*domain.TrendMetric, error) {
	if p.MetricName == "" {
		return nil, &domain.ContractViolationError{Field: "metric_name", Value: "", Reason: "required"}
	}
	if p.MetricValue == nil {
		return nil, &domain.ContractViolationError{Field: "metric_value", Value: "", Reason: "required"}
	}
	if p.PublishedAt == nil || p.PublishedAt.IsZero() {
		return nil, &domain.ContractViolationError{Field: "published_at", Value: "", Reason: "required"}
	}
	if p.MetricType != "" && p.MetricType != domain.MetricTypeAbsolute && p.MetricType != domain.MetricTypeRatio {
		return nil, &domain.ContractViolationError{Field: "metric_type", Value: p.MetricType, Reason: "outside absolute/ratio"}
	}

	id := p.ID
	if id == "" {
		id = idhash.TrendID(p.CompanyName, p.MetricName, p.PublishedAt.UnixMilli(), *p.MetricValue)
	}

	return &domain.TrendMetric{
		ID:          id,
		NewsID:      p.NewsID,
		CompanyName: p.CompanyName,
		MetricName:  p.MetricName,
		MetricValue: *p.MetricValue,
		MetricUnit:  p.MetricUnit,
		MetricType:  p.MetricType,
		IndustryTag: p.IndustryTag,
		PublishedAt: p.PublishedAt.UTC(),
	}, nil
}

// checkScore rejects scores outside the 0-10 contract. nil is fine: it means
// the scorer assigned none.
func checkScore(field string, v *float64) error {
	if v == nil {
		return nil
	}
	if *v < 0 || *v > 10 {
		return &domain.ContractViolationError{
			Field:  field,
			Value:  strconv.FormatFloat(*v, 'g', -1, 64),
			Reason: "outside 0-10",
		}
	}
	return nil
}
