package analytics

import (
	"time"

	"github.com/nult2003/marketing-intelligence/internal/domain"
)

// Cutoff maps a named time range to its cutoff instant relative to now.
// An item passes the window iff its timestamp is strictly after the cutoff.
//
// Daily means the start of the current calendar day (in now's location), not
// a rolling 24 hours, so the window lines up with the "Today" feed label.
// Unknown ranges fall back to Monthly, matching the upstream API default.
func Cutoff(r domain.TimeRange, now time.Time) time.Time {
	switch r {
	case domain.RangeDaily:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	case domain.RangeWeekly:
		return now.AddDate(0, 0, -7)
	case domain.RangeMonthly:
		return now.AddDate(0, -1, 0)
	case domain.RangeQuarterly:
		return now.AddDate(0, -3, 0)
	case domain.RangeYearly:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, -1, 0)
	}
}

// FilterWindow returns the items whose effective time is strictly after the
// cutoff for (r, now). Input order is preserved; the input is not mutated.
func FilterWindow(items []domain.NewsItem, r domain.TimeRange, now time.Time) []domain.NewsItem {
	cutoff := Cutoff(r, now)
	var out []domain.NewsItem
	for _, it := range items {
		if it.EffectiveTime().After(cutoff) {
			out = append(out, it)
		}
	}
	return out
}
