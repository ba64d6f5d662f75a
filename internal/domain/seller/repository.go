package seller

import "context"

type Repository interface {
	// Insert rejects duplicate phone numbers and duplicate passwords
	// atomically with ErrPhoneTaken / ErrPasswordTaken.
	Insert(ctx context.Context, s *Seller) error
	Update(ctx context.Context, s *Seller) error
	FindByID(ctx context.Context, id string) (*Seller, error)
	FindByPassword(ctx context.Context, password string) (*Seller, error)
	FindByActor(ctx context.Context, actorID string) (*Seller, error)
	// ListAll returns sellers in insertion order.
	ListAll(ctx context.Context) ([]*Seller, error)
}
