package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	domcatalog "github.com/dokonbot/dokonbot/internal/domain/catalog"
	domledger "github.com/dokonbot/dokonbot/internal/domain/ledger"
	domseller "github.com/dokonbot/dokonbot/internal/domain/seller"
	"github.com/dokonbot/dokonbot/internal/infrastructure/sqlite"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "dokonbot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteProductRepository(t *testing.T) {
	ctx := context.Background()
	repo := openStore(t).Products()

	p1, err := domcatalog.New("p1", "Shakar", 7000)
	require.NoError(t, err)
	require.NoError(t, repo.Insert(ctx, p1))
	p2, err := domcatalog.New("p2", "Guruch", 12500)
	require.NoError(t, err)
	require.NoError(t, repo.Insert(ctx, p2))

	got, err := repo.FindByName(ctx, "Shakar")
	require.NoError(t, err)
	require.Equal(t, "p1", got.ID)
	require.Equal(t, int64(7000), got.Price)

	_, err = repo.FindByName(ctx, "Tuz")
	require.ErrorIs(t, err, domcatalog.ErrNotFound)

	got.Price = 7500
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.FindByID(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, int64(7500), got.Price)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "Shakar", all[0].Name, "insertion order survives the round trip")
}

func TestSQLiteSellerUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := openStore(t).Sellers()

	s1, err := domseller.New("s1", "Olim", "Chilonzor", "901234567", "sezam42")
	require.NoError(t, err)
	require.NoError(t, repo.Insert(ctx, s1))

	dupPhone, err := domseller.New("s2", "Karim", "Sergeli", "901234567", "boshqa1")
	require.NoError(t, err)
	require.ErrorIs(t, repo.Insert(ctx, dupPhone), domseller.ErrPhoneTaken)

	dupPassword, err := domseller.New("s3", "Karim", "Sergeli", "909999999", "sezam42")
	require.NoError(t, err)
	require.ErrorIs(t, repo.Insert(ctx, dupPassword), domseller.ErrPasswordTaken)
}

func TestSQLiteSellerBindPersists(t *testing.T) {
	ctx := context.Background()
	repo := openStore(t).Sellers()

	sel, err := domseller.New("s1", "Olim", "Chilonzor", "901234567", "sezam42")
	require.NoError(t, err)
	require.NoError(t, repo.Insert(ctx, sel))

	require.NoError(t, sel.Bind("actor-1"))
	require.NoError(t, repo.Update(ctx, sel))

	got, err := repo.FindByActor(ctx, "actor-1")
	require.NoError(t, err)
	require.Equal(t, "s1", got.ID)

	byPassword, err := repo.FindByPassword(ctx, "sezam42")
	require.NoError(t, err)
	require.Equal(t, "actor-1", byPassword.ActorID)
}

func TestSQLiteAssignmentsOrdered(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	sel, err := domseller.New("s1", "Olim", "Chilonzor", "901234567", "sezam42")
	require.NoError(t, err)
	require.NoError(t, store.Sellers().Insert(ctx, sel))
	p, err := domcatalog.New("p1", "Shakar", 7500)
	require.NoError(t, err)
	require.NoError(t, store.Products().Insert(ctx, p))

	a1, err := domledger.New("a1", "s1", "p1", 3, 7500)
	require.NoError(t, err)
	require.NoError(t, store.Assignments().Insert(ctx, a1))
	a2, err := domledger.New("a2", "s1", "p1", 2, 9000)
	require.NoError(t, err)
	require.NoError(t, store.Assignments().Insert(ctx, a2))

	got, err := store.Assignments().ListBySeller(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "a1", got[0].ID)
	require.Equal(t, int64(7500), got[0].UnitPrice)
	require.Equal(t, "a2", got[1].ID)
	require.Equal(t, int64(9000), got[1].UnitPrice)
}
