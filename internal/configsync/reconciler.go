// Package configsync keeps the locally edited crawler configuration
// consistent with the remotely persisted copy. The local copy is hydrated
// from the remote exactly once; after that it is the sole source of truth
// for the session and remote refetches are never reapplied.
package configsync

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/nult2003/marketing-intelligence/internal/domain"
	"github.com/nult2003/marketing-intelligence/internal/observability"
	"github.com/nult2003/marketing-intelligence/internal/storage"
)

// Lifecycle of the local copy. Hydration state is explicit, not inferred
// from an empty keyword slice.
type Lifecycle int

const (
	Uninitialized Lifecycle = iota
	Hydrated
)

// Edit errors.
var (
	// ErrNotHydrated is returned when an edit arrives before hydration.
	ErrNotHydrated = errors.New("config not hydrated yet")

	// ErrEmptyKeyword is returned for an add with an empty keyword.
	ErrEmptyKeyword = errors.New("keyword is empty")

	// ErrDuplicateKeyword is returned for an add whose keyword is already
	// present (case-sensitive equality).
	ErrDuplicateKeyword = errors.New("keyword already present")

	// ErrKeywordNotFound is returned for a remove with no exact match.
	ErrKeywordNotFound = errors.New("keyword not found")

	// ErrIntervalOutOfRange is returned for an interval outside 15-1440.
	ErrIntervalOutOfRange = errors.New("scraping interval out of range")

	// ErrUnknownToken is returned by Confirm/Reject for a token that does
	// not belong to a pending edit.
	ErrUnknownToken = errors.New("unknown edit token")
)

// pendingEdit records one optimistic mutation: its correlation token and the
// inverse that undoes precisely this edit on persistence failure.
type pendingEdit struct {
	token  string
	revert func()
}

// Reconciler owns the session-local config copy and its lifecycle. All
// mutations go through AddKeyword/RemoveKeyword/SetInterval; views never
// write here directly.
type Reconciler struct {
	store  storage.ConfigStore
	logger *log.Logger

	mu      sync.Mutex
	state   Lifecycle
	config  domain.AdminConfig
	pending map[string]*pendingEdit
}

// New creates a reconciler in the Uninitialized state.
func New(store storage.ConfigStore, logger *log.Logger) *Reconciler {
	if logger == nil {
		logger = log.Default()
	}
	return &Reconciler{
		store:   store,
		logger:  logger,
		pending: make(map[string]*pendingEdit),
	}
}

// State returns the current lifecycle state.
func (r *Reconciler) State() Lifecycle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Snapshot returns a copy of the local config.
func (r *Reconciler) Snapshot() domain.AdminConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.config.Clone()
}

// Hydrate copies the remote config into local state exactly once. Any call
// after the first is a no-op and reports false: once local edits may have
// happened, remote data must not clobber them.
func (r *Reconciler) Hydrate(remote domain.AdminConfig) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != Uninitialized {
		return false
	}
	r.config = remote.Clone()
	r.state = Hydrated
	return true
}

// HydrateFromStore fetches the remote config and hydrates from it. A missing
// remote config hydrates with defaults from the original deployment. Fetch
// failures are transient: state stays Uninitialized so a later call can
// retry.
func (r *Reconciler) HydrateFromStore(ctx context.Context) error {
	if r.State() != Uninitialized {
		return nil
	}
	cfg, err := r.store.Get(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			r.Hydrate(domain.AdminConfig{
				SearchKeywords:          []string{"Electric Vehicle", "Lithium market"},
				ScrapingIntervalMinutes: 60,
			})
			return nil
		}
		return fmt.Errorf("%w: %v", domain.ErrTransientFetch, err)
	}
	r.Hydrate(*cfg)
	return nil
}

// AddKeyword appends a keyword. Rejects empty and duplicate keywords
// (case-sensitive equality) before touching any state. The edit applies
// locally first, then persists the full {keywords, interval} pair; on
// persistence failure exactly this edit is reverted.
func (r *Reconciler) AddKeyword(ctx context.Context, kw string) error {
	if strings.TrimSpace(kw) == "" {
		return ErrEmptyKeyword
	}

	r.mu.Lock()
	if r.state != Hydrated {
		r.mu.Unlock()
		return ErrNotHydrated
	}
	if r.config.HasKeyword(kw) {
		r.mu.Unlock()
		return ErrDuplicateKeyword
	}
	r.config.SearchKeywords = append(r.config.SearchKeywords, kw)
	token := r.trackLocked(func() {
		r.removeExactLocked(kw)
	})
	r.mu.Unlock()

	return r.persist(ctx, token)
}

// RemoveKeyword removes by exact match. Removing the last keyword is
// permitted and leaves the sequence empty.
func (r *Reconciler) RemoveKeyword(ctx context.Context, kw string) error {
	r.mu.Lock()
	if r.state != Hydrated {
		r.mu.Unlock()
		return ErrNotHydrated
	}
	idx := -1
	for i, k := range r.config.SearchKeywords {
		if k == kw {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return ErrKeywordNotFound
	}
	r.config.SearchKeywords = append(r.config.SearchKeywords[:idx], r.config.SearchKeywords[idx+1:]...)
	token := r.trackLocked(func() {
		// Reinsert at the original position.
		kws := r.config.SearchKeywords
		at := idx
		if at > len(kws) {
			at = len(kws)
		}
		kws = append(kws[:at], append([]string{kw}, kws[at:]...)...)
		r.config.SearchKeywords = kws
	})
	r.mu.Unlock()

	return r.persist(ctx, token)
}

// SetInterval updates the scraping interval. Independent of keyword edits
// but persists the same full pair.
func (r *Reconciler) SetInterval(ctx context.Context, minutes int) error {
	if minutes < domain.MinScrapingIntervalMinutes || minutes > domain.MaxScrapingIntervalMinutes {
		return fmt.Errorf("%w: %d", ErrIntervalOutOfRange, minutes)
	}

	r.mu.Lock()
	if r.state != Hydrated {
		r.mu.Unlock()
		return ErrNotHydrated
	}
	previous := r.config.ScrapingIntervalMinutes
	r.config.ScrapingIntervalMinutes = minutes
	token := r.trackLocked(func() {
		r.config.ScrapingIntervalMinutes = previous
	})
	r.mu.Unlock()

	return r.persist(ctx, token)
}

// trackLocked registers a pending edit and returns its correlation token.
// Callers must hold r.mu; the revert closure runs under r.mu too.
func (r *Reconciler) trackLocked(revert func()) string {
	token := uuid.NewString()
	r.pending[token] = &pendingEdit{token: token, revert: revert}
	return token
}

// persist pushes the full current config to the remote store and settles the
// pending edit: Confirm on success, Reject (targeted revert) on failure.
func (r *Reconciler) persist(ctx context.Context, token string) error {
	if err := r.store.Replace(ctx, r.Snapshot()); err != nil {
		observability.RecordConfigPersist("error")
		if rejectErr := r.Reject(token); rejectErr != nil {
			r.logger.Printf("reject edit %s: %v", token, rejectErr)
		}
		return fmt.Errorf("%w: %v", domain.ErrMutationFailed, err)
	}
	observability.RecordConfigPersist("success")
	return r.Confirm(token)
}

// Confirm settles a pending edit after successful persistence.
func (r *Reconciler) Confirm(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pending[token]; !ok {
		return ErrUnknownToken
	}
	delete(r.pending, token)
	return nil
}

// Reject reverts precisely the edit identified by token, leaving every other
// local change intact.
func (r *Reconciler) Reject(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	edit, ok := r.pending[token]
	if !ok {
		return ErrUnknownToken
	}
	delete(r.pending, token)
	edit.revert()
	return nil
}

// removeExactLocked drops the first exact match. Callers must hold r.mu.
func (r *Reconciler) removeExactLocked(kw string) {
	for i, k := range r.config.SearchKeywords {
		if k == kw {
			r.config.SearchKeywords = append(r.config.SearchKeywords[:i], r.config.SearchKeywords[i+1:]...)
			return
		}
	}
}
