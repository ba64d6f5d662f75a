package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	domain "github.com/dokonbot/dokonbot/internal/domain/ledger"
)

type AssignmentRepository struct {
	db *sql.DB
}

func (r *AssignmentRepository) Insert(ctx context.Context, a *domain.Assignment) error {
	if a == nil || a.ID == "" {
		return fmt.Errorf("assignment repository: id is required")
	}

	seq, err := nextSeq(r.db, "assignments")
	if err != nil {
		return fmt.Errorf("assignment repository: seq: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO assignments (id, seller_id, product_id, quantity, unit_price, seq, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.SellerID, a.ProductID, a.Quantity, a.UnitPrice, seq, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("assignment repository: insert: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) ListBySeller(ctx context.Context, sellerID string) ([]*domain.Assignment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, seller_id, product_id, quantity, unit_price, created_at
		 FROM assignments WHERE seller_id = ? ORDER BY seq`, sellerID)
	if err != nil {
		return nil, fmt.Errorf("assignment repository: list: %w", err)
	}
	defer rows.Close()

	var out []*domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(&a.ID, &a.SellerID, &a.ProductID, &a.Quantity, &a.UnitPrice, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("assignment repository: scan: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
