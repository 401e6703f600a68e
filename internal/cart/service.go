package cart

import (
	"context"

	"github.com/agriverse/storefront-gateway/internal/catalog"
)

// Service loads a user's lines, applies a Store mutation and writes the
// result back. The Store holds the invariants; the service just moves state
// in and out of the repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Add(ctx context.Context, userID int, p catalog.Product) ([]Line, error) {
	store, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	store.AddLine(p.ID, p.Name, p.Price)
	if err := s.repo.Save(ctx, userID, store.Lines()); err != nil {
		return nil, err
	}
	return store.Lines(), nil
}

// Remove decrements the line for productID. Removing something absent is a
// no-op and still returns the current cart.
func (s *Service) Remove(ctx context.Context, userID int, productID int64) ([]Line, error) {
	store, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	store.RemoveLine(productID)
	if err := s.repo.Save(ctx, userID, store.Lines()); err != nil {
		return nil, err
	}
	return store.Lines(), nil
}

func (s *Service) Get(ctx context.Context, userID int) (*Store, error) {
	return s.load(ctx, userID)
}

func (s *Service) Clear(ctx context.Context, userID int) error {
	return s.repo.Clear(ctx, userID)
}

func (s *Service) load(ctx context.Context, userID int) (*Store, error) {
	lines, err := s.repo.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NewStore(lines), nil
}
