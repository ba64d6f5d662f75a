package ledger

import "context"

type Repository interface {
	Insert(ctx context.Context, a *Assignment) error
	// ListBySeller returns the seller's assignments in insertion order.
	ListBySeller(ctx context.Context, sellerID string) ([]*Assignment, error)
}
