package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nult2003/marketing-intelligence/internal/domain"
	"github.com/nult2003/marketing-intelligence/internal/storage"
)

func makeNews(id, industry string, createdAt time.Time) *domain.NewsItem {
	return &domain.NewsItem{
		ID:          id,
		Title:       "title " + id,
		URL:         "https://example.com/" + id,
		Urgency:     domain.UrgencyLow,
		IndustryTag: industry,
		CreatedAt:   createdAt,
	}
}

func TestNewsStore_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewNewsStore()
	now := time.Now().UTC()

	if err := store.Insert(ctx, makeNews("n1", "Energy", now)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByID(ctx, "n1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "title n1" {
		t.Errorf("Title = %s, want title n1", got.Title)
	}

	if _, err := store.GetByID(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("missing ID err = %v, want ErrNotFound", err)
	}
}

func TestNewsStore_DuplicateRejected(t *testing.T) {
	ctx := context.Background()
	store := NewNewsStore()
	now := time.Now().UTC()

	if err := store.Insert(ctx, makeNews("n1", "Energy", now)); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Insert(ctx, makeNews("n1", "Energy", now)); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("duplicate insert err = %v, want ErrDuplicateKey", err)
	}
}

func TestNewsStore_ListByIndustry(t *testing.T) {
	ctx := context.Background()
	store := NewNewsStore()
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	records := []*domain.NewsItem{
		makeNews("a", "Energy", base.Add(-2*time.Hour)),
		makeNews("b", "Energy", base.Add(-time.Hour)),
		makeNews("c", "Mining", base),
		makeNews("d", "", base.Add(-3*time.Hour)), // resolves to General
	}
	for _, r := range records {
		if err := store.Insert(ctx, r); err != nil {
			t.Fatalf("Insert %s failed: %v", r.ID, err)
		}
	}

	energy, err := store.ListByIndustry(ctx, "Energy", 0)
	if err != nil {
		t.Fatalf("ListByIndustry failed: %v", err)
	}
	if len(energy) != 2 || energy[0].ID != "b" || energy[1].ID != "a" {
		t.Errorf("Energy list = %+v, want [b a] newest first", energy)
	}

	all, err := store.ListByIndustry(ctx, storage.IndustryAll, 0)
	if err != nil {
		t.Fatalf("ListByIndustry(All) failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("All list has %d records, want 4", len(all))
	}

	general, err := store.ListByIndustry(ctx, domain.DefaultIndustryTag, 0)
	if err != nil {
		t.Fatalf("ListByIndustry(General) failed: %v", err)
	}
	if len(general) != 1 || general[0].ID != "d" {
		t.Errorf("General list = %+v, want only d", general)
	}
}

func TestNewsStore_ListLimit(t *testing.T) {
	ctx := context.Background()
	store := NewNewsStore()
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		if err := store.Insert(ctx, makeNews(id, "Energy", base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	got, err := store.ListByIndustry(ctx, storage.IndustryAll, 2)
	if err != nil {
		t.Fatalf("ListByIndustry failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "c" {
		t.Errorf("limited list = %+v, want the 2 newest starting with c", got)
	}
}

func TestNewsStore_CopiesOnReadAndWrite(t *testing.T) {
	ctx := context.Background()
	store := NewNewsStore()
	original := makeNews("n1", "Energy", time.Now().UTC())

	if err := store.Insert(ctx, original); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	original.Title = "mutated after insert"

	got, err := store.GetByID(ctx, "n1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "title n1" {
		t.Errorf("stored record mutated through caller pointer: %s", got.Title)
	}

	got.Title = "mutated after read"
	again, _ := store.GetByID(ctx, "n1")
	if again.Title != "title n1" {
		t.Errorf("stored record mutated through returned pointer: %s", again.Title)
	}
}
