package grab

import "sync"

// Registry tracks every live grabber so that object-wide operations can
// reach all of them. Grabbables hold no reference back to their grabber,
// so releasing an object from "whoever holds it" is a broadcast over the
// registry rather than a callback on the object.
type Registry struct {
	mu       sync.RWMutex
	grabbers map[*Grabber]struct{}
}

// NewRegistry creates an empty grabber registry.
func NewRegistry() *Registry {
	return &Registry{grabbers: make(map[*Grabber]struct{})}
}

// Add registers a grabber. Adding twice is a no-op.
func (r *Registry) Add(g *Grabber) {
	if g == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grabbers[g] = struct{}{}
}

// Remove unregisters a grabber. Removing an unknown grabber is a no-op.
func (r *Registry) Remove(g *Grabber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.grabbers, g)
}

// Grabbers returns a snapshot of the registered grabbers.
func (r *Registry) Grabbers() []*Grabber {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Grabber, 0, len(r.grabbers))
	for g := range r.grabbers {
		out = append(out, g)
	}
	return out
}

// ForceRelease releases the object from whichever grabber holds it.
// Idempotent: releasing an object nobody holds does nothing.
func (r *Registry) ForceRelease(obj *Grabbable) {
	for _, g := range r.Grabbers() {
		g.ForceRelease(obj)
	}
}

// ForceUntouch removes the object from every grabber's candidate set.
func (r *Registry) ForceUntouch(obj *Grabbable) {
	for _, g := range r.Grabbers() {
		g.ForceUntouch(obj)
	}
}
