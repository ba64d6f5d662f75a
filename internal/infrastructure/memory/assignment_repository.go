package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/dokonbot/dokonbot/internal/domain/ledger"
)

// AssignmentRepository keeps assignments in memory, append-only. Per-seller
// listing preserves insertion order; assignments are never edited or deleted.
type AssignmentRepository struct {
	mu       sync.RWMutex
	bySeller map[string][]*domain.Assignment
}

func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{
		bySeller: make(map[string][]*domain.Assignment),
	}
}

func (r *AssignmentRepository) Insert(ctx context.Context, a *domain.Assignment) error {
	_ = ctx
	if a == nil || a.ID == "" {
		return fmt.Errorf("assignment repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.bySeller[a.SellerID] = append(r.bySeller[a.SellerID], a.Clone())
	return nil
}

func (r *AssignmentRepository) ListBySeller(ctx context.Context, sellerID string) ([]*domain.Assignment, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.bySeller[sellerID]
	out := make([]*domain.Assignment, 0, len(rows))
	for _, a := range rows {
		out = append(out, a.Clone())
	}
	return out, nil
}
