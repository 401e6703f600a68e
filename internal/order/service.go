package order

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotFound       = errors.New("order not found")
	ErrNotCancellable = errors.New("order can no longer be cancelled")
)

// Backend is the slice of the marketplace client this cache needs.
type Backend interface {
	ListMine(ctx context.Context, bearer string) ([]Order, error)
	Cancel(ctx context.Context, bearer string, orderID int64) error
}

// Service holds each signed-in user's own orders for display. The cache is a
// plain view: it is only ever replaced wholesale by a fresh fetch, never
// edited in place.
type Service struct {
	backend Backend

	mu     sync.RWMutex
	orders map[int][]Order
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend, orders: make(map[int][]Order)}
}

func (s *Service) Orders(ctx context.Context, userID int, bearer string) ([]Order, error) {
	s.mu.RLock()
	cached, ok := s.orders[userID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}
	return s.Refresh(ctx, userID, bearer)
}

func (s *Service) Refresh(ctx context.Context, userID int, bearer string) ([]Order, error) {
	fetched, err := s.backend.ListMine(ctx, bearer)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.orders[userID] = fetched
	s.mu.Unlock()
	return fetched, nil
}

// Cancel refuses orders already in a terminal state, issues the status
// change upstream and re-fetches the whole list on success.
func (s *Service) Cancel(ctx context.Context, userID int, bearer string, orderID int64) ([]Order, error) {
	orders, err := s.Orders(ctx, userID, bearer)
	if err != nil {
		return nil, err
	}

	var target *Order
	for i := range orders {
		if orders[i].ID == orderID {
			target = &orders[i]
			break
		}
	}
	if target == nil {
		return nil, ErrNotFound
	}
	if target.Status.Terminal() {
		return nil, ErrNotCancellable
	}

	if err := s.backend.Cancel(ctx, bearer, orderID); err != nil {
		return nil, err
	}
	return s.Refresh(ctx, userID, bearer)
}

// Invalidate drops a user's cached view so the next read re-fetches.
func (s *Service) Invalidate(userID int) {
	s.mu.Lock()
	delete(s.orders, userID)
	s.mu.Unlock()
}
