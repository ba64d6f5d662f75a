package ledger

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("ledger: assignment not found")
	ErrInvalidQuantity = errors.New("ledger: quantity must be greater than zero")
	ErrInvalidPrice    = errors.New("ledger: unit price must be greater than zero")
)

// Assignment records stock handed to a seller. UnitPrice is a snapshot of the
// product's price at assignment time; later catalog edits never change it.
// Assignments are immutable once created.
type Assignment struct {
	ID        string
	SellerID  string
	ProductID string
	Quantity  int64
	UnitPrice int64
	CreatedAt time.Time
}

func New(id, sellerID, productID string, quantity, unitPrice int64) (*Assignment, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if unitPrice <= 0 {
		return nil, ErrInvalidPrice
	}

	return &Assignment{
		ID:        id,
		SellerID:  sellerID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (a *Assignment) Subtotal() int64 { return a.Quantity * a.UnitPrice }

func (a *Assignment) Clone() *Assignment {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

// LineItem is one assignment projected for display. Repeated assignments of
// the same product stay separate lines; nothing is aggregated.
type LineItem struct {
	ProductName string
	Quantity    int64
	UnitPrice   int64
	Subtotal    int64
}
