package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/dokonbot/dokonbot/internal/domain/catalog"
)

// ProductRepository keeps products in memory. Name uniqueness is enforced
// here; order of insertion is preserved for ListAll.
type ProductRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Product
	byName  map[string]string
	ordered []string
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		byID:   make(map[string]*domain.Product),
		byName: make(map[string]string),
	}
}

func (r *ProductRepository) Insert(ctx context.Context, product *domain.Product) error {
	_ = ctx
	if product == nil || product.ID == "" {
		return fmt.Errorf("product repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[product.Name]; exists {
		return fmt.Errorf("product repository: name %q already exists", product.Name)
	}

	r.byID[product.ID] = product.Clone()
	r.byName[product.Name] = product.ID
	r.ordered = append(r.ordered, product.ID)
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	_ = ctx
	if product == nil || product.ID == "" {
		return fmt.Errorf("product repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[product.ID]; !exists {
		return domain.ErrNotFound
	}

	r.byID[product.ID] = product.Clone()
	return nil
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return product.Clone(), nil
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]*domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Product, 0, len(r.ordered))
	for _, id := range r.ordered {
		out = append(out, r.byID[id].Clone())
	}
	return out, nil
}
