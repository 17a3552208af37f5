package domain

// Scraping interval bounds in minutes.
const (
	MinScrapingIntervalMinutes = 15
	MaxScrapingIntervalMinutes = 1440
)

// AdminConfig is the crawler configuration: which keywords to search for and
// how often to run. Dual-owned: the remote persistence collaborator holds the
// durable copy, configsync holds the session-local editable copy.
type AdminConfig struct {
	SearchKeywords          []string // ordered, no duplicates, insertion order is display order
	ScrapingIntervalMinutes int      // within [MinScrapingIntervalMinutes, MaxScrapingIntervalMinutes]
}

// Clone returns a deep copy so callers can mutate freely.
func (c AdminConfig) Clone() AdminConfig {
	out := AdminConfig{ScrapingIntervalMinutes: c.ScrapingIntervalMinutes}
	if c.SearchKeywords != nil {
		out.SearchKeywords = make([]string, len(c.SearchKeywords))
		copy(out.SearchKeywords, c.SearchKeywords)
	}
	return out
}

// HasKeyword reports whether kw is already present (case-sensitive equality).
func (c AdminConfig) HasKeyword(kw string) bool {
	for _, k := range c.SearchKeywords {
		if k == kw {
			return true
		}
	}
	return false
}

// Subscriber is an alert recipient record managed through the admin API.
type Subscriber struct {
	ID                 int64
	Email              string
	IsAdmin            bool
	IndustryPreference string
	ReceiveEmailAlerts bool
}
