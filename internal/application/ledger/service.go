package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"

	domcatalog "github.com/dokonbot/dokonbot/internal/domain/catalog"
	domain "github.com/dokonbot/dokonbot/internal/domain/ledger"
	domoutbox "github.com/dokonbot/dokonbot/internal/domain/outbox"
	domseller "github.com/dokonbot/dokonbot/internal/domain/seller"
	"github.com/dokonbot/dokonbot/internal/infrastructure/id"
	"github.com/dokonbot/dokonbot/internal/pkg/logging"
	"go.uber.org/zap"
)

type Service struct {
	repo        domain.Repository
	products    domcatalog.Repository
	sellers     domseller.Repository
	idGenerator id.Generator
	publisher   domoutbox.Publisher
}

func NewService(
	repo domain.Repository,
	products domcatalog.Repository,
	sellers domseller.Repository,
	idGen id.Generator,
	publisher domoutbox.Publisher,
) *Service {
	return &Service{
		repo:        repo,
		products:    products,
		sellers:     sellers,
		idGenerator: idGen,
		publisher:   publisher,
	}
}

// Assign records stock handed to a seller, snapshotting the product's
// current price. Later catalog edits never change past assignments. On
// success an AssignmentRecorded event is published for the export worker;
// publish failure is logged and never fails the commit.
func (s *Service) Assign(ctx context.Context, sellerID, productID string, quantity int64) (*domain.Assignment, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "ledger_service"))

	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	sel, err := s.sellers.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	assignment, err := domain.New(s.idGenerator.NewID(), sel.ID, product.ID, quantity, product.Price)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, assignment); err != nil {
		logger.Error("assignment_insert_failed",
			zap.String("seller_id", sel.ID),
			zap.String("product_id", product.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("ledger: insert: %w", err)
	}

	logger.Info("assignment_recorded",
		zap.String("assignment_id", assignment.ID),
		zap.String("seller_id", sel.ID),
		zap.String("product_id", product.ID),
		zap.Int64("quantity", assignment.Quantity),
		zap.Int64("unit_price", assignment.UnitPrice),
	)

	event := domain.NewAssignmentRecordedEvent(assignment, sel.Name, product.Name)
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Warn("assignment_event_publish_failed",
			zap.String("assignment_id", assignment.ID),
			zap.Error(err),
		)
	}
	return assignment, nil
}

// SellerLineItems projects a seller's assignments into display rows, one per
// assignment in insertion order, plus the derived total debt. Debt is always
// recomputed from the rows, never stored.
func (s *Service) SellerLineItems(ctx context.Context, sellerID string) ([]domain.LineItem, int64, error) {
	if _, err := s.sellers.FindByID(ctx, sellerID); err != nil {
		return nil, 0, err
	}

	assignments, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, 0, fmt.Errorf("ledger: list: %w", err)
	}

	items := make([]domain.LineItem, 0, len(assignments))
	var total int64
	for _, a := range assignments {
		name, err := s.productName(ctx, a.ProductID)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, domain.LineItem{
			ProductName: name,
			Quantity:    a.Quantity,
			UnitPrice:   a.UnitPrice,
			Subtotal:    a.Subtotal(),
		})
		total += a.Subtotal()
	}
	return items, total, nil
}

// DebtSummary is one row of the all-sellers debt report.
type DebtSummary struct {
	SellerID     string
	SellerName   string
	Neighborhood string
	TotalDebt    int64
}

// AllSellersDebtSummary lists every seller with their derived total debt,
// sorted by name.
func (s *Service) AllSellersDebtSummary(ctx context.Context) ([]DebtSummary, error) {
	sellers, err := s.sellers.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger: list sellers: %w", err)
	}

	out := make([]DebtSummary, 0, len(sellers))
	for _, sel := range sellers {
		assignments, err := s.repo.ListBySeller(ctx, sel.ID)
		if err != nil {
			return nil, fmt.Errorf("ledger: list: %w", err)
		}
		var total int64
		for _, a := range assignments {
			total += a.Subtotal()
		}
		out = append(out, DebtSummary{
			SellerID:     sel.ID,
			SellerName:   sel.Name,
			Neighborhood: sel.Neighborhood,
			TotalDebt:    total,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SellerName < out[j].SellerName })
	return out, nil
}

// ListAllSellers returns all sellers sorted alphabetically by name.
func (s *Service) ListAllSellers(ctx context.Context) ([]*domseller.Seller, error) {
	sellers, err := s.sellers.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger: list sellers: %w", err)
	}
	sort.Slice(sellers, func(i, j int) bool { return sellers[i].Name < sellers[j].Name })
	return sellers, nil
}

// SellerPassword pairs a seller name with their access password for the
// admin password report.
type SellerPassword struct {
	SellerName string
	Password   string
}

func (s *Service) AllSellerPasswords(ctx context.Context) ([]SellerPassword, error) {
	sellers, err := s.sellers.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger: list sellers: %w", err)
	}
	out := make([]SellerPassword, 0, len(sellers))
	for _, sel := range sellers {
		out = append(out, SellerPassword{SellerName: sel.Name, Password: sel.Password})
	}
	return out, nil
}

func (s *Service) productName(ctx context.Context, productID string) (string, error) {
	product, err := s.products.FindByID(ctx, productID)
	if errors.Is(err, domcatalog.ErrNotFound) {
		// Products are never deleted in scope; a missing row here means
		// storage corruption, not user error.
		return "", fmt.Errorf("ledger: product %s: %w", productID, err)
	}
	if err != nil {
		return "", fmt.Errorf("ledger: product lookup: %w", err)
	}
	return product.Name, nil
}

// FindSeller resolves a seller by id for callers that need the row before
// starting a workflow or rendering a view.
func (s *Service) FindSeller(ctx context.Context, sellerID string) (*domseller.Seller, error) {
	return s.sellers.FindByID(ctx, sellerID)
}
