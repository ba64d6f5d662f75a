package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	domain "github.com/dokonbot/dokonbot/internal/domain/catalog"
)

type ProductRepository struct {
	db *sql.DB
}

func (r *ProductRepository) Insert(ctx context.Context, product *domain.Product) error {
	if product == nil || product.ID == "" {
		return fmt.Errorf("product repository: id is required")
	}

	seq, err := nextSeq(r.db, "products")
	if err != nil {
		return fmt.Errorf("product repository: seq: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO products (id, name, price, seq, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		product.ID, product.Name, product.Price, seq, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("product repository: name %q already exists", product.Name)
		}
		return fmt.Errorf("product repository: insert: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if product == nil || product.ID == "" {
		return fmt.Errorf("product repository: id is required")
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = ?, price = ?, updated_at = ? WHERE id = ?`,
		product.Name, product.Price, product.UpdatedAt, product.ID)
	if err != nil {
		return fmt.Errorf("product repository: update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	return r.findOne(ctx, `SELECT id, name, price, created_at, updated_at FROM products WHERE name = ?`, name)
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.findOne(ctx, `SELECT id, name, price, created_at, updated_at FROM products WHERE id = ?`, id)
}

func (r *ProductRepository) findOne(ctx context.Context, query string, arg any) (*domain.Product, error) {
	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&p.ID, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("product repository: query: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, price, created_at, updated_at FROM products ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("product repository: list: %w", err)
	}
	defer rows.Close()

	var out []*domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("product repository: scan: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
