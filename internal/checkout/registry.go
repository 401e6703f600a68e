package checkout

import (
	"sync"
	"time"
)

// Registry holds checkout attempts for the lifetime of the process. Settled
// attempts stay around so clients can poll their final state.
type Registry struct {
	mu       sync.RWMutex
	attempts map[string]*Attempt
}

func NewRegistry() *Registry {
	return &Registry{attempts: make(map[string]*Attempt)}
}

func (r *Registry) Put(a *Attempt) {
	r.mu.Lock()
	r.attempts[a.ID] = a
	r.mu.Unlock()
}

func (r *Registry) Get(id string) *Attempt {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.attempts[id]
}

// Stuck returns attempts that have been waiting on the gateway longer than
// the given window, oldest first not guaranteed.
func (r *Registry) Stuck(olderThan time.Duration) []*Attempt {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Attempt
	for _, a := range r.attempts {
		if a.CurrentStatus() == StatusAwaitingGateway && time.Since(a.StartedAt) > olderThan {
			out = append(out, a)
		}
	}
	return out
}
