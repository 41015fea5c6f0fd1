package transfer

import "sync"

// Registry parks a payload for its destination window until that window
// claims it. A payload can be claimed exactly once, which is what keeps a
// tab from materializing in two windows when events race. Keyed by
// destination window ID.
type Registry struct {
	mu      sync.Mutex
	pending map[string]Payload
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{pending: make(map[string]Payload)}
}

// Deposit parks a payload for the destination window, replacing any
// earlier unclaimed payload for the same destination.
func (r *Registry) Deposit(destID string, p Payload) {
	r.mu.Lock()
	r.pending[destID] = p
	r.mu.Unlock()
}

// Claim hands the payload to the destination window and removes it. The
// second claim for the same destination comes back empty.
func (r *Registry) Claim(destID string) (Payload, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pending[destID]
	if ok {
		delete(r.pending, destID)
	}
	return p, ok
}

// Clear drops an unclaimed payload, used when the destination window is
// destroyed before it could claim.
func (r *Registry) Clear(destID string) {
	r.mu.Lock()
	delete(r.pending, destID)
	r.mu.Unlock()
}

// PendingFor reports whether an unclaimed payload is parked for the
// destination.
func (r *Registry) PendingFor(destID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pending[destID]
	return ok
}
