package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/nult2003/marketing-intelligence/internal/domain"
	"github.com/nult2003/marketing-intelligence/internal/storage"
)

func TestSubscriberStore_InsertAssignsID(t *testing.T) {
	ctx := context.Background()
	store := NewSubscriberStore()

	sub := &domain.Subscriber{Email: "ops@example.com", ReceiveEmailAlerts: true}
	if err := store.Insert(ctx, sub); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if sub.ID == 0 {
		t.Error("ID not assigned on insert")
	}

	dup := &domain.Subscriber{Email: "ops@example.com"}
	if err := store.Insert(ctx, dup); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("duplicate email err = %v, want ErrDuplicateKey", err)
	}
}

func TestSubscriberStore_GetByEmail(t *testing.T) {
	ctx := context.Background()
	store := NewSubscriberStore()

	if err := store.Insert(ctx, &domain.Subscriber{Email: "a@example.com", IndustryPreference: "Energy"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.IndustryPreference != "Energy" {
		t.Errorf("IndustryPreference = %s, want Energy", got.IndustryPreference)
	}

	if _, err := store.GetByEmail(ctx, "missing@example.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("missing email err = %v, want ErrNotFound", err)
	}
}

func TestSubscriberStore_ListOrderedByID(t *testing.T) {
	ctx := context.Background()
	store := NewSubscriberStore()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		if err := store.Insert(ctx, &domain.Subscriber{Email: email}); err != nil {
			t.Fatalf("Insert %s failed: %v", email, err)
		}
	}

	subs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("got %d subscribers, want 3", len(subs))
	}
	for i := 1; i < len(subs); i++ {
		if subs[i].ID <= subs[i-1].ID {
			t.Errorf("list not ordered by ID: %v", subs)
		}
	}
}

func TestSubscriberStore_ToggleAlerts(t *testing.T) {
	ctx := context.Background()
	store := NewSubscriberStore()

	sub := &domain.Subscriber{Email: "a@example.com", ReceiveEmailAlerts: true}
	if err := store.Insert(ctx, sub); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	toggled, err := store.ToggleAlerts(ctx, sub.ID)
	if err != nil {
		t.Fatalf("ToggleAlerts failed: %v", err)
	}
	if toggled.ReceiveEmailAlerts {
		t.Error("alerts still enabled after toggle")
	}

	toggled, err = store.ToggleAlerts(ctx, sub.ID)
	if err != nil {
		t.Fatalf("second ToggleAlerts failed: %v", err)
	}
	if !toggled.ReceiveEmailAlerts {
		t.Error("alerts not re-enabled after second toggle")
	}

	if _, err := store.ToggleAlerts(ctx, 999); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("unknown ID err = %v, want ErrNotFound", err)
	}
}

func TestSubscriberStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewSubscriberStore()

	sub := &domain.Subscriber{Email: "a@example.com"}
	if err := store.Insert(ctx, sub); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := store.Delete(ctx, sub.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, sub.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("double delete err = %v, want ErrNotFound", err)
	}
}
