package catalog

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

var ErrNotFound = errors.New("product not found")

// Source is where the catalog lists come from; the HTTP client in
// production, a stub in tests.
type Source interface {
	Products(ctx context.Context) ([]Product, error)
	Categories(ctx context.Context) ([]Category, error)
}

// Service holds the last-fetched product and category lists and refreshes
// them read-through when the TTL lapses. A TTL of zero never expires, which
// matches the no-invalidation behavior the storefront started with.
type Service struct {
	source Source
	ttl    time.Duration

	mu            sync.RWMutex
	products      []Product
	categories    []Category
	productsAt    time.Time
	categoriesAt  time.Time
}

func NewService(source Source, ttl time.Duration) *Service {
	return &Service{source: source, ttl: ttl}
}

// Products returns the cached product list narrowed by the two composable
// filters: a case-insensitive substring match on name or description, and a
// category id equality check. Both must match when both are set.
func (s *Service) Products(ctx context.Context, search string, categoryID int64) ([]Product, error) {
	all, err := s.allProducts(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(search)
	out := make([]Product, 0, len(all))
	for _, p := range all {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		if categoryID != 0 && p.CategoryID != categoryID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (Product, error) {
	all, err := s.allProducts(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	s.mu.RLock()
	if s.categories != nil && !s.stale(s.categoriesAt) {
		out := s.categories
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	cats, err := s.source.Categories(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.categories = cats
	s.categoriesAt = time.Now()
	s.mu.Unlock()
	return cats, nil
}

func (s *Service) allProducts(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	if s.products != nil && !s.stale(s.productsAt) {
		out := s.products
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	prods, err := s.source.Products(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.products = prods
	s.productsAt = time.Now()
	s.mu.Unlock()
	return prods, nil
}

func (s *Service) stale(fetchedAt time.Time) bool {
	return s.ttl > 0 && time.Since(fetchedAt) > s.ttl
}
