package ledger_test

import (
	"context"
	"sync"
	"testing"

	appcatalog "github.com/dokonbot/dokonbot/internal/application/catalog"
	appidentity "github.com/dokonbot/dokonbot/internal/application/identity"
	appledger "github.com/dokonbot/dokonbot/internal/application/ledger"
	domledger "github.com/dokonbot/dokonbot/internal/domain/ledger"
	domoutbox "github.com/dokonbot/dokonbot/internal/domain/outbox"
	domseller "github.com/dokonbot/dokonbot/internal/domain/seller"
	"github.com/dokonbot/dokonbot/internal/infrastructure/id"
	"github.com/dokonbot/dokonbot/internal/infrastructure/memory"
	"github.com/stretchr/testify/require"
)

// capturePublisher records published events synchronously for assertions.
type capturePublisher struct {
	mu     sync.Mutex
	events []domoutbox.Event
}

func (p *capturePublisher) Publish(_ context.Context, e domoutbox.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *capturePublisher) all() []domoutbox.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domoutbox.Event(nil), p.events...)
}

type fixture struct {
	catalog   *appcatalog.Service
	identity  *appidentity.Service
	ledger    *appledger.Service
	publisher *capturePublisher
}

func newFixture() *fixture {
	products := memory.NewProductRepository()
	sellers := memory.NewSellerRepository()
	assignments := memory.NewAssignmentRepository()
	idGen := id.NewUUIDGenerator()
	publisher := &capturePublisher{}

	return &fixture{
		catalog:   appcatalog.NewService(products, idGen),
		identity:  appidentity.NewService(sellers, idGen, "admin"),
		ledger:    appledger.NewService(assignments, products, sellers, idGen, publisher),
		publisher: publisher,
	}
}

func TestSellerWithoutAssignments(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	sel, err := f.identity.CreateSeller(ctx, "Olim", "Chilonzor", "901234567", "sezam42")
	require.NoError(t, err)

	items, total, err := f.ledger.SellerLineItems(ctx, sel.ID)
	require.NoError(t, err)
	require.Empty(t, items)
	require.Zero(t, total)
}

func TestAssignSnapshotsPrice(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	sel, err := f.identity.CreateSeller(ctx, "Olim", "Chilonzor", "901234567", "sezam42")
	require.NoError(t, err)
	product, _, err := f.catalog.GetOrCreate(ctx, "Shakar", 7500)
	require.NoError(t, err)

	a, err := f.ledger.Assign(ctx, sel.ID, product.ID, 3)
	require.NoError(t, err)
	require.Equal(t, int64(7500), a.UnitPrice)
	require.Equal(t, int64(22500), a.Subtotal())

	// A later catalog price change never touches recorded debt.
	_, err = f.catalog.UpdatePrice(ctx, product.ID, 9000)
	require.NoError(t, err)

	items, total, err := f.ledger.SellerLineItems(ctx, sel.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, int64(22500), items[0].Subtotal)
	require.Equal(t, int64(22500), total)
}

func TestLineItemsStaySeparateAndOrdered(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	sel, err := f.identity.CreateSeller(ctx, "Olim", "Chilonzor", "901234567", "sezam42")
	require.NoError(t, err)
	shakar, _, err := f.catalog.GetOrCreate(ctx, "Shakar", 7000)
	require.NoError(t, err)
	un, _, err := f.catalog.GetOrCreate(ctx, "Un", 5000)
	require.NoError(t, err)

	_, err = f.ledger.Assign(ctx, sel.ID, shakar.ID, 2)
	require.NoError(t, err)
	_, err = f.ledger.Assign(ctx, sel.ID, un.ID, 1)
	require.NoError(t, err)
	_, err = f.ledger.Assign(ctx, sel.ID, shakar.ID, 4)
	require.NoError(t, err)

	items, total, err := f.ledger.SellerLineItems(ctx, sel.ID)
	require.NoError(t, err)
	require.Len(t, items, 3, "repeated products are not aggregated")
	require.Equal(t, "Shakar", items[0].ProductName)
	require.Equal(t, "Un", items[1].ProductName)
	require.Equal(t, "Shakar", items[2].ProductName)
	require.Equal(t, int64(2*7000+1*5000+4*7000), total)
}

func TestAssignValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	sel, err := f.identity.CreateSeller(ctx, "Olim", "Chilonzor", "901234567", "sezam42")
	require.NoError(t, err)
	product, _, err := f.catalog.GetOrCreate(ctx, "Shakar", 7000)
	require.NoError(t, err)

	_, err = f.ledger.Assign(ctx, sel.ID, product.ID, 0)
	require.ErrorIs(t, err, domledger.ErrInvalidQuantity)

	_, err = f.ledger.Assign(ctx, "missing", product.ID, 1)
	require.ErrorIs(t, err, domseller.ErrNotFound)
}

func TestAssignPublishesEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	sel, err := f.identity.CreateSeller(ctx, "Olim", "Chilonzor", "901234567", "sezam42")
	require.NoError(t, err)
	product, _, err := f.catalog.GetOrCreate(ctx, "Shakar", 7500)
	require.NoError(t, err)

	a, err := f.ledger.Assign(ctx, sel.ID, product.ID, 3)
	require.NoError(t, err)

	events := f.publisher.all()
	require.Len(t, events, 1)
	evt, ok := events[0].(domledger.AssignmentRecordedEvent)
	require.True(t, ok)
	require.Equal(t, a.ID, evt.AssignmentID)
	require.Equal(t, "Olim", evt.SellerName)
	require.Equal(t, "Shakar", evt.ProductName)
	require.Equal(t, int64(22500), evt.TotalCost)
}

func TestDebtSummaryAndSellersSortedByName(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	zuhra, err := f.identity.CreateSeller(ctx, "Zuhra", "Sergeli", "902222222", "parol2")
	require.NoError(t, err)
	_, err = f.identity.CreateSeller(ctx, "Anvar", "Chilonzor", "901111111", "parol1")
	require.NoError(t, err)

	product, _, err := f.catalog.GetOrCreate(ctx, "Shakar", 1000)
	require.NoError(t, err)
	_, err = f.ledger.Assign(ctx, zuhra.ID, product.ID, 5)
	require.NoError(t, err)

	summary, err := f.ledger.AllSellersDebtSummary(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	require.Equal(t, "Anvar", summary[0].SellerName)
	require.Zero(t, summary[0].TotalDebt)
	require.Equal(t, "Zuhra", summary[1].SellerName)
	require.Equal(t, int64(5000), summary[1].TotalDebt)

	sellers, err := f.ledger.ListAllSellers(ctx)
	require.NoError(t, err)
	require.Equal(t, "Anvar", sellers[0].Name)
	require.Equal(t, "Zuhra", sellers[1].Name)

	passwords, err := f.ledger.AllSellerPasswords(ctx)
	require.NoError(t, err)
	require.Len(t, passwords, 2)
}
