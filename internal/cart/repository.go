package cart

import (
	"context"
	"sync"
)

// Repository persists cart lines per user between requests. Lines live for
// the shopping session only; nothing here outlasts a checkout.
type Repository interface {
	Lines(ctx context.Context, userID int) ([]Line, error)
	Save(ctx context.Context, userID int, lines []Line) error
	Clear(ctx context.Context, userID int) error
}

// InMemoryRepository is the default backing store and the one tests use.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[int][]Line
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[int][]Line)}
}

func (r *InMemoryRepository) Lines(ctx context.Context, userID int) ([]Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lines := r.carts[userID]
	out := make([]Line, len(lines))
	copy(out, lines)
	return out, nil
}

func (r *InMemoryRepository) Save(ctx context.Context, userID int, lines []Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]Line, len(lines))
	copy(stored, lines)
	r.carts[userID] = stored
	return nil
}

func (r *InMemoryRepository) Clear(ctx context.Context, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}
