package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/dokonbot/dokonbot/internal/domain/seller"
)

// SellerRepository keeps sellers in memory. Phone and password uniqueness is
// checked atomically inside Insert so a commit can never leave a partial row.
type SellerRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Seller
	ordered []string
}

func NewSellerRepository() *SellerRepository {
	return &SellerRepository{
		byID: make(map[string]*domain.Seller),
	}
}

func (r *SellerRepository) Insert(ctx context.Context, s *domain.Seller) error {
	_ = ctx
	if s == nil || s.ID == "" {
		return fmt.Errorf("seller repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.Phone == s.Phone {
			return domain.ErrPhoneTaken
		}
		if existing.Password == s.Password {
			return domain.ErrPasswordTaken
		}
	}

	r.byID[s.ID] = s.Clone()
	r.ordered = append(r.ordered, s.ID)
	return nil
}

func (r *SellerRepository) Update(ctx context.Context, s *domain.Seller) error {
	_ = ctx
	if s == nil || s.ID == "" {
		return fmt.Errorf("seller repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[s.ID]; !exists {
		return domain.ErrNotFound
	}

	r.byID[s.ID] = s.Clone()
	return nil
}

func (r *SellerRepository) FindByID(ctx context.Context, id string) (*domain.Seller, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.Clone(), nil
}

func (r *SellerRepository) FindByPassword(ctx context.Context, password string) (*domain.Seller, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.byID {
		if s.Password == password {
			return s.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *SellerRepository) FindByActor(ctx context.Context, actorID string) (*domain.Seller, error) {
	_ = ctx
	if actorID == "" {
		return nil, domain.ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.byID {
		if s.ActorID == actorID {
			return s.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *SellerRepository) ListAll(ctx context.Context) ([]*domain.Seller, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Seller, 0, len(r.ordered))
	for _, id := range r.ordered {
		out = append(out, r.byID[id].Clone())
	}
	return out, nil
}
