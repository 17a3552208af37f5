package ingestion

import "sync"

// LatestGuard implements last-request-wins per logical fetch key. A caller
// takes a ticket with Begin before starting a fetch; when the fetch
// resolves, Accept reports whether the result is still current or has been
// superseded by a newer request for the same key. Superseded results are
// discarded by the caller; the transport itself is never cancelled
// mid-flight.
type LatestGuard struct {
	mu  sync.Mutex
	seq map[string]uint64
}

// NewLatestGuard creates an empty guard.
func NewLatestGuard() *LatestGuard {
	return &LatestGuard{seq: make(map[string]uint64)}
}

// Begin registers a new request for key and returns its ticket.
func (g *LatestGuard) Begin(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq[key]++
	return g.seq[key]
}

// Accept reports whether ticket is still the newest request for key.
func (g *LatestGuard) Accept(key string, ticket uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq[key] == ticket
}
