package memory_test

import (
	"context"
	"testing"

	domcatalog "github.com/dokonbot/dokonbot/internal/domain/catalog"
	domledger "github.com/dokonbot/dokonbot/internal/domain/ledger"
	domseller "github.com/dokonbot/dokonbot/internal/domain/seller"
	"github.com/dokonbot/dokonbot/internal/infrastructure/memory"
	"github.com/stretchr/testify/require"
)

func mustProduct(t *testing.T, id, name string, price int64) *domcatalog.Product {
	t.Helper()
	p, err := domcatalog.New(id, name, price)
	require.NoError(t, err)
	return p
}

func mustSeller(t *testing.T, id, name, phone, password string) *domseller.Seller {
	t.Helper()
	s, err := domseller.New(id, name, "Chilonzor", phone, password)
	require.NoError(t, err)
	return s
}

func TestProductRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()

	require.NoError(t, repo.Insert(ctx, mustProduct(t, "p1", "Shakar", 7000)))
	require.NoError(t, repo.Insert(ctx, mustProduct(t, "p2", "Guruch", 12500)))

	got, err := repo.FindByName(ctx, "Shakar")
	require.NoError(t, err)
	require.Equal(t, "p1", got.ID)

	_, err = repo.FindByName(ctx, "shakar")
	require.ErrorIs(t, err, domcatalog.ErrNotFound, "name lookup is exact")

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "Shakar", all[0].Name, "insertion order preserved")
	require.Equal(t, "Guruch", all[1].Name)
}

func TestProductRepositoryIsolatesStoredState(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	p := mustProduct(t, "p1", "Shakar", 7000)
	require.NoError(t, repo.Insert(ctx, p))

	// Mutating the caller's copy must not reach the store.
	p.Price = 1

	got, err := repo.FindByID(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, int64(7000), got.Price)

	got.Price = 2
	again, err := repo.FindByID(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, int64(7000), again.Price)
}

func TestSellerRepositoryUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSellerRepository()

	require.NoError(t, repo.Insert(ctx, mustSeller(t, "s1", "Olim", "901234567", "sezam42")))

	err := repo.Insert(ctx, mustSeller(t, "s2", "Karim", "901234567", "boshqa1"))
	require.ErrorIs(t, err, domseller.ErrPhoneTaken)

	err = repo.Insert(ctx, mustSeller(t, "s3", "Karim", "909999999", "sezam42"))
	require.ErrorIs(t, err, domseller.ErrPasswordTaken)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "rejected inserts leave no partial rows")
}

func TestSellerRepositoryLookups(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSellerRepository()
	sel := mustSeller(t, "s1", "Olim", "901234567", "sezam42")
	require.NoError(t, repo.Insert(ctx, sel))

	byPassword, err := repo.FindByPassword(ctx, "sezam42")
	require.NoError(t, err)
	require.Equal(t, "s1", byPassword.ID)

	_, err = repo.FindByActor(ctx, "actor-1")
	require.ErrorIs(t, err, domseller.ErrNotFound)

	require.NoError(t, sel.Bind("actor-1"))
	require.NoError(t, repo.Update(ctx, sel))

	byActor, err := repo.FindByActor(ctx, "actor-1")
	require.NoError(t, err)
	require.Equal(t, "s1", byActor.ID)

	_, err = repo.FindByActor(ctx, "")
	require.ErrorIs(t, err, domseller.ErrNotFound, "empty actor id never matches")
}

func TestSellerRepositoryUpdateMissing(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSellerRepository()
	err := repo.Update(ctx, mustSeller(t, "ghost", "Olim", "901234567", "sezam42"))
	require.ErrorIs(t, err, domseller.ErrNotFound)
}

func TestAssignmentRepositoryListBySeller(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAssignmentRepository()

	a1, err := domledger.New("a1", "s1", "p1", 3, 7500)
	require.NoError(t, err)
	a2, err := domledger.New("a2", "s1", "p2", 2, 12500)
	require.NoError(t, err)
	other, err := domledger.New("a3", "s2", "p1", 1, 7500)
	require.NoError(t, err)

	require.NoError(t, repo.Insert(ctx, a1))
	require.NoError(t, repo.Insert(ctx, a2))
	require.NoError(t, repo.Insert(ctx, other))

	got, err := repo.ListBySeller(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "a1", got[0].ID, "insertion order preserved")
	require.Equal(t, "a2", got[1].ID)

	empty, err := repo.ListBySeller(ctx, "nobody")
	require.NoError(t, err)
	require.Empty(t, empty)
}
