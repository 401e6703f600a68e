package catalog

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubSource struct {
	products      []Product
	categories    []Category
	productCalls  int
	categoryCalls int
	err           error
}

func (s *stubSource) Products(ctx context.Context) ([]Product, error) {
	s.productCalls++
	return s.products, s.err
}

func (s *stubSource) Categories(ctx context.Context) ([]Category, error) {
	s.categoryCalls++
	return s.categories, s.err
}

func seedProducts() []Product {
	return []Product{
		{ID: 1, Name: "Seeds Pack", Description: "High yield wheat seeds", Price: 100, Stock: 10, CategoryID: 1},
		{ID: 2, Name: "Fertilizer Mix", Description: "NPK blend", Price: 50, Stock: 5, CategoryID: 2},
		{ID: 3, Name: "Sprayer", Description: "Handheld seed sprayer", Price: 250, Stock: 0, CategoryID: 2},
	}
}

func TestProducts_SearchFilter(t *testing.T) {
	svc := NewService(&stubSource{products: seedProducts()}, 0)

	got, err := svc.Products(context.Background(), "seed", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches for 'seed', got %d", len(got))
	}
	for _, p := range got {
		if p.Name == "Fertilizer Mix" {
			t.Fatal("'seed' must not match Fertilizer Mix")
		}
	}
}

func TestProducts_SearchAndCategoryCompose(t *testing.T) {
	svc := NewService(&stubSource{products: seedProducts()}, 0)

	// "seed" matches products 1 and 3, category 2 matches 2 and 3;
	// the AND of both leaves only the sprayer.
	got, err := svc.Products(context.Background(), "seed", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("expected only product 3, got %+v", got)
	}
}

func TestProducts_CachedUntilTTL(t *testing.T) {
	src := &stubSource{products: seedProducts()}
	svc := NewService(src, time.Hour)

	for i := 0; i < 3; i++ {
		if _, err := svc.Products(context.Background(), "", 0); err != nil {
			t.Fatal(err)
		}
	}
	if src.productCalls != 1 {
		t.Fatalf("expected a single upstream fetch, got %d", src.productCalls)
	}
}

func TestProducts_UpstreamErrorPropagates(t *testing.T) {
	src := &stubSource{err: errors.New("boom")}
	svc := NewService(src, 0)

	if _, err := svc.Products(context.Background(), "", 0); err == nil {
		t.Fatal("expected error from empty cache with failing source")
	}
}

func TestGetProduct(t *testing.T) {
	svc := NewService(&stubSource{products: seedProducts()}, 0)

	p, err := svc.GetProduct(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Fertilizer Mix" {
		t.Fatalf("unexpected product %+v", p)
	}

	if _, err := svc.GetProduct(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCategories_CachedIndependently(t *testing.T) {
	src := &stubSource{categories: []Category{{ID: 1, Name: "Seeds"}}}
	svc := NewService(src, time.Hour)

	if _, err := svc.Categories(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Categories(context.Background()); err != nil {
		t.Fatal(err)
	}
	if src.categoryCalls != 1 {
		t.Fatalf("expected a single category fetch, got %d", src.categoryCalls)
	}
	if src.productCalls != 0 {
		t.Fatalf("category fetch must not touch products, got %d calls", src.productCalls)
	}
}
