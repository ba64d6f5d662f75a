package catalog

import "context"

type Repository interface {
	Insert(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	FindByName(ctx context.Context, name string) (*Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	// ListAll returns products in insertion order.
	ListAll(ctx context.Context) ([]*Product, error)
}
