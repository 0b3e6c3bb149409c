package registry

import (
	"sync/atomic"
)

// Holder owns the registry currently in use. Reloads build a complete new
// registry and swap it in, so readers see either the old or the new one.
type Holder struct {
	current atomic.Pointer[Registry]
}

func NewHolder(r *Registry) *Holder {
	h := &Holder{}
	h.current.Store(r)
	return h
}

// Load returns the current registry.
func (h *Holder) Load() *Registry {
	return h.current.Load()
}

// Swap publishes r and returns the registry it replaces.
func (h *Holder) Swap(r *Registry) *Registry {
	return h.current.Swap(r)
}
