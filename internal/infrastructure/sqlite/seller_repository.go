package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	domain "github.com/dokonbot/dokonbot/internal/domain/seller"
)

type SellerRepository struct {
	db *sql.DB
}

const sellerColumns = `id, name, neighborhood, phone, password, actor_id, created_at, updated_at`

func (r *SellerRepository) Insert(ctx context.Context, s *domain.Seller) error {
	if s == nil || s.ID == "" {
		return fmt.Errorf("seller repository: id is required")
	}

	seq, err := nextSeq(r.db, "sellers")
	if err != nil {
		return fmt.Errorf("seller repository: seq: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO sellers (id, name, neighborhood, phone, password, actor_id, seq, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.Neighborhood, s.Phone, s.Password, s.ActorID, seq, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err) && strings.Contains(err.Error(), "sellers.phone"):
			return domain.ErrPhoneTaken
		case isUniqueViolation(err):
			return domain.ErrPasswordTaken
		default:
			return fmt.Errorf("seller repository: insert: %w", err)
		}
	}
	return nil
}

func (r *SellerRepository) Update(ctx context.Context, s *domain.Seller) error {
	if s == nil || s.ID == "" {
		return fmt.Errorf("seller repository: id is required")
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE sellers SET name = ?, neighborhood = ?, phone = ?, password = ?, actor_id = ?, updated_at = ?
		 WHERE id = ?`,
		s.Name, s.Neighborhood, s.Phone, s.Password, s.ActorID, s.UpdatedAt, s.ID)
	if err != nil {
		return fmt.Errorf("seller repository: update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SellerRepository) FindByID(ctx context.Context, id string) (*domain.Seller, error) {
	return r.findOne(ctx, `SELECT `+sellerColumns+` FROM sellers WHERE id = ?`, id)
}

func (r *SellerRepository) FindByPassword(ctx context.Context, password string) (*domain.Seller, error) {
	return r.findOne(ctx, `SELECT `+sellerColumns+` FROM sellers WHERE password = ?`, password)
}

func (r *SellerRepository) FindByActor(ctx context.Context, actorID string) (*domain.Seller, error) {
	if actorID == "" {
		return nil, domain.ErrNotFound
	}
	return r.findOne(ctx, `SELECT `+sellerColumns+` FROM sellers WHERE actor_id = ?`, actorID)
}

func (r *SellerRepository) findOne(ctx context.Context, query string, arg any) (*domain.Seller, error) {
	var s domain.Seller
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&s.ID, &s.Name, &s.Neighborhood, &s.Phone, &s.Password, &s.ActorID, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("seller repository: query: %w", err)
	}
	return &s, nil
}

func (r *SellerRepository) ListAll(ctx context.Context) ([]*domain.Seller, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sellerColumns+` FROM sellers ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("seller repository: list: %w", err)
	}
	defer rows.Close()

	var out []*domain.Seller
	for rows.Next() {
		var s domain.Seller
		if err := rows.Scan(&s.ID, &s.Name, &s.Neighborhood, &s.Phone, &s.Password, &s.ActorID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("seller repository: scan: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
