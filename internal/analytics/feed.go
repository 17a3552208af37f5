package analytics

import (
	"sort"
	"time"

	"github.com/nult2003/marketing-intelligence/internal/domain"
)

// Feed group labels for the recent buckets.
const (
	groupToday     = "Today"
	groupYesterday = "Yesterday"
	groupThisWeek  = "This Week"
)

// GroupFeed sorts the filtered set by the selected mode and sections it into
// date-labeled groups. The sort is stable: ties keep their original relative
// order, which makes regrouping already-sorted output a no-op.
//
// Group order is always canonical (Today, Yesterday, This Week, then months
// descending) independent of the item sort mode. An impact-sorted feed
// therefore keeps chronological section headers while items inside each
// section stay impact-ordered.
func GroupFeed(items []domain.NewsItem, mode domain.SortMode, now time.Time) domain.GroupedFeed {
	sorted := make([]domain.NewsItem, len(items))
	copy(sorted, items)

	switch mode {
	case domain.SortHighestImpact:
		sort.SliceStable(sorted, func(i, j int) bool {
			return impactOf(sorted[i]) > impactOf(sorted[j])
		})
	default: // SortLatest
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	}

	type section struct {
		label string
		rank  int       // 0 Today, 1 Yesterday, 2 This Week, 3 months
		month time.Time // month start, orders month sections descending
		items []domain.NewsItem
	}
	byLabel := make(map[string]*section)
	var sections []*section

	for _, it := range sorted {
		label, rank, month := groupLabel(it.CreatedAt, now)
		sec, ok := byLabel[label]
		if !ok {
			sec = &section{label: label, rank: rank, month: month}
			byLabel[label] = sec
			sections = append(sections, sec)
		}
		sec.items = append(sec.items, it)
	}

	sort.SliceStable(sections, func(i, j int) bool {
		if sections[i].rank != sections[j].rank {
			return sections[i].rank < sections[j].rank
		}
		return sections[i].month.After(sections[j].month)
	})

	feed := make(domain.GroupedFeed, 0, len(sections))
	for _, sec := range sections {
		feed = append(feed, domain.FeedGroup{Label: sec.label, Items: sec.items})
	}
	return feed
}

// groupLabel assigns the feed section for a creation time relative to now.
func groupLabel(created, now time.Time) (label string, rank int, month time.Time) {
	if sameDay(created, now) {
		return groupToday, 0, time.Time{}
	}
	if sameDay(created, now.AddDate(0, 0, -1)) {
		return groupYesterday, 1, time.Time{}
	}
	if created.After(now.AddDate(0, 0, -7)) {
		return groupThisWeek, 2, time.Time{}
	}
	y, m, _ := created.Date()
	monthStart := time.Date(y, m, 1, 0, 0, 0, 0, created.Location())
	return monthStart.Format("January 2006"), 3, monthStart
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// impactOf orders items in the impact sort; records without a score sort
// last. Ordering only: the nil is never written back or counted as a zero
// score anywhere else.
func impactOf(n domain.NewsItem) float64 {
	if n.ImpactScore == nil {
		return -1
	}
	return *n.ImpactScore
}
