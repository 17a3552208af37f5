package domain

import "time"

// Urgency is the action urgency assigned by the upstream scorer.
type Urgency string

const (
	UrgencyLow    Urgency = "Low"
	UrgencyMedium Urgency = "Medium"
	UrgencyHigh   Urgency = "High"
)

// Valid reports whether the urgency is one of the three contract values.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// Weight returns the ordinal encoding used for correlation display.
// Returns 0 for values outside the contract; callers must reject those.
func (u Urgency) Weight() int {
	switch u {
	case UrgencyHigh:
		return 3
	case UrgencyMedium:
		return 2
	case UrgencyLow:
		return 1
	}
	return 0
}

// RiskType is the primary risk category assigned by the upstream scorer.
type RiskType string

const (
	RiskPolicy      RiskType = "Policy"
	RiskCompetition RiskType = "Competition"
	RiskSupplyChain RiskType = "Supply Chain"
	RiskFinancial   RiskType = "Financial"
	RiskOther       RiskType = "Other"
	RiskNone        RiskType = "None"
)

// RiskCategories is the fixed display order for risk distribution views.
var RiskCategories = []RiskType{
	RiskPolicy,
	RiskCompetition,
	RiskSupplyChain,
	RiskFinancial,
	RiskOther,
	RiskNone,
}

// DefaultIndustryTag is substituted when a record carries no industry tag.
const DefaultIndustryTag = "General"

// NewsItem is a single scored market-intelligence record produced by the
// external crawler/scorer. Immutable once stored; the analytics pipeline
// never writes to it.
type NewsItem struct {
	ID                   string   // deterministic content hash, see idhash
	Title                string
	URL                  string
	Summary              string
	SourceDomain         string   // optional
	SentimentScore       *float64 // 0-10, nil when the scorer assigned none
	ImpactScore          *float64 // 0-10, nil when the scorer assigned none
	Urgency              Urgency
	RiskType             RiskType // empty is treated as RiskNone
	IndustryTag          string   // empty is treated as DefaultIndustryTag
	ActionRecommendation string   // optional
	PublishedAt          time.Time
	CreatedAt            time.Time // required by the upstream contract
}

// Industry resolves the effective industry tag.
func (n *NewsItem) Industry() string {
	if n.IndustryTag == "" {
		return DefaultIndustryTag
	}
	return n.IndustryTag
}

// Risk resolves the effective risk category for counting: empty means None,
// anything outside the named categories folds into Other.
func (n *NewsItem) Risk() RiskType {
	if n.RiskType == "" {
		return RiskNone
	}
	for _, c := range RiskCategories {
		if n.RiskType == c {
			return c
		}
	}
	return RiskOther
}

// EffectiveTime is the instant used for time-window filtering. PublishedAt
// wins when the upstream provided one; otherwise CreatedAt.
func (n *NewsItem) EffectiveTime() time.Time {
	if !n.PublishedAt.IsZero() {
		return n.PublishedAt
	}
	return n.CreatedAt
}
