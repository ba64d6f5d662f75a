package export

import (
	"context"
	"time"
)

// RowNote is the fixed annotation written into the sheet's seventh column.
const RowNote = "recorded by dokonbot"

// Row is one mirrored ledger entry. Column order matches the external sheet:
// timestamp, seller, product, quantity, unit price, total, note.
type Row struct {
	Timestamp   time.Time `json:"timestamp"`
	SellerName  string    `json:"seller"`
	ProductName string    `json:"product"`
	Quantity    int64     `json:"quantity"`
	UnitPrice   int64     `json:"unit_price"`
	TotalCost   int64     `json:"total"`
	Note        string    `json:"note"`
}

// Exporter appends one row to the external target. Implementations degrade
// to a log record on failure; errors returned here are logged by the worker
// and never reach any actor.
type Exporter interface {
	Append(ctx context.Context, row Row) error
}
