// internal/domain/cart/registry.go
package cart

import "sync"

// Registry maps storefront session IDs to their cart stores. Carts live in
// memory for the duration of a session and are not persisted across restarts.
type Registry struct {
	mu     sync.Mutex
	stores map[string]*Store
}

// NewRegistry creates an empty cart registry
func NewRegistry() *Registry {
	return &Registry{
		stores: make(map[string]*Store),
	}
}

// Get returns the cart store for a session, creating it on first use
func (r *Registry) Get(sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, ok := r.stores[sessionID]
	if !ok {
		store = NewStore()
		r.stores[sessionID] = store
	}
	return store
}

// Drop discards the cart for a session
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, sessionID)
}

// Len returns the number of active session carts
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}
