package catalog

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("catalog: product not found")
	ErrInvalidName  = errors.New("catalog: name is required")
	ErrInvalidPrice = errors.New("catalog: price must be greater than zero")
)

// Product is a named good with a unit price in the smallest currency unit.
// Names are unique with exact, case-sensitive matching.
type Product struct {
	ID        string
	Name      string
	Price     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(id, name string, price int64) (*Product, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	now := time.Now().UTC()
	return &Product{
		ID:        id,
		Name:      name,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetPrice overwrites the unit price in place. Last write wins; no history.
func (p *Product) SetPrice(price int64) error {
	if price <= 0 {
		return ErrInvalidPrice
	}
	p.Price = price
	p.touch()
	return nil
}

func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now().UTC()
}
