package realtime

import "sync"

// Registry holds one Broadcaster per game, mirroring the bus.Registry
// keyed-by-gameId pattern so the realtime stream is per-game rather than
// process-global (spec.md §9).
type Registry struct {
	mu          sync.Mutex
	broadcasters map[string]*Broadcaster
	newBroadcaster func() *Broadcaster
}

// NewRegistry constructs an empty Registry. newBroadcaster builds a fresh
// Broadcaster for a game that doesn't have one yet.
func NewRegistry(newBroadcaster func() *Broadcaster) *Registry {
	return &Registry{broadcasters: make(map[string]*Broadcaster), newBroadcaster: newBroadcaster}
}

// BroadcasterFor returns the Broadcaster for gameID, creating one on
// first use.
func (r *Registry) BroadcasterFor(gameID string) *Broadcaster {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.broadcasters[gameID]
	if !ok {
		b = r.newBroadcaster()
		r.broadcasters[gameID] = b
	}
	return b
}

// Remove drops a game's Broadcaster once its GameBus is stopped.
func (r *Registry) Remove(gameID string) {
	r.mu.Lock()
	delete(r.broadcasters, gameID)
	r.mu.Unlock()
}
