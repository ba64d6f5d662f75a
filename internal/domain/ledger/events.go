package ledger

import "time"

// AssignmentRecordedEvent is emitted after an assignment commit. The export
// worker mirrors it to the external sheet; delivery is best-effort and must
// never block or fail the commit.
type AssignmentRecordedEvent struct {
	AssignmentID string
	SellerName   string
	ProductName  string
	Quantity     int64
	UnitPrice    int64
	TotalCost    int64
	OccurredAt   time.Time
}

func (AssignmentRecordedEvent) EventName() string { return "ledger.assignment_recorded" }

func NewAssignmentRecordedEvent(a *Assignment, sellerName, productName string) AssignmentRecordedEvent {
	return AssignmentRecordedEvent{
		AssignmentID: a.ID,
		SellerName:   sellerName,
		ProductName:  productName,
		Quantity:     a.Quantity,
		UnitPrice:    a.UnitPrice,
		TotalCost:    a.Subtotal(),
		OccurredAt:   a.CreatedAt,
	}
}
