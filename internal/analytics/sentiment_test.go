package analytics

import (
	"testing"
	"time"

	"github.com/nult2003/marketing-intelligence/internal/domain"
)

func TestClassifySentiment_Thresholds(t *testing.T) {
	now := time.Now()
	items := []domain.NewsItem{
		withSentiment(makeItem("a", now), 8.0), // > 7: Positive
		withSentiment(makeItem("b", now), 3.0), // < 4: Risk
		withSentiment(makeItem("c", now), 5.0), // [4, 7]: Neutral
	}

	mix := ClassifySentiment(items)
	if len(mix) != 3 {
		t.Fatalf("got %d buckets, want 3", len(mix))
	}

	want := []domain.SentimentSlice{
		{Label: domain.SentimentPositive, Count: 1, Color: "#16a34a"},
		{Label: domain.SentimentNeutral, Count: 1, Color: "#64748b"},
		{Label: domain.SentimentRisk, Count: 1, Color: "#dc2626"},
	}
	for i, w := range want {
		if mix[i] != w {
			t.Errorf("bucket[%d] = %+v, want %+v", i, mix[i], w)
		}
	}
}

func TestClassifySentiment_BoundariesAreNeutral(t *testing.T) {
	now := time.Now()
	items := []domain.NewsItem{
		withSentiment(makeItem("lo", now), 4.0), // closed interval includes 4
		withSentiment(makeItem("hi", now), 7.0), // and 7
	}

	mix := ClassifySentiment(items)
	if len(mix) != 1 {
		t.Fatalf("got %d buckets, want 1", len(mix))
	}
	if mix[0].Label != domain.SentimentNeutral || mix[0].Count != 2 {
		t.Errorf("bucket = %+v, want Neutral count 2", mix[0])
	}
}

func TestClassifySentiment_NilScoreExcluded(t *testing.T) {
	now := time.Now()
	items := []domain.NewsItem{
		makeItem("unscored", now), // no sentiment score at all
		withSentiment(makeItem("scored", now), 9.0),
	}

	mix := ClassifySentiment(items)
	total := 0
	for _, s := range mix {
		total += s.Count
	}
	if total != 1 {
		t.Errorf("bucket counts sum to %d, want 1 (unscored items in no bucket)", total)
	}
}

func TestClassifySentiment_ZeroBucketsDropped(t *testing.T) {
	now := time.Now()
	items := []domain.NewsItem{
		withSentiment(makeItem("a", now), 9.0),
		withSentiment(makeItem("b", now), 2.0),
	}

	mix := ClassifySentiment(items)
	if len(mix) != 2 {
		t.Fatalf("got %d buckets, want 2 (Neutral dropped)", len(mix))
	}
	if mix[0].Label != domain.SentimentPositive || mix[1].Label != domain.SentimentRisk {
		t.Errorf("bucket order = [%s %s], want [Positive Risk]", mix[0].Label, mix[1].Label)
	}
}

func TestClassifySentiment_EmptyInput(t *testing.T) {
	if mix := ClassifySentiment(nil); len(mix) != 0 {
		t.Errorf("got %d buckets for empty input, want 0", len(mix))
	}
}

func withSentiment(it domain.NewsItem, v float64) domain.NewsItem {
	it.SentimentScore = score(v)
	return it
}
