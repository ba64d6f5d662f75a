package catalog_test

import (
	"context"
	"testing"

	appcatalog "github.com/dokonbot/dokonbot/internal/application/catalog"
	domain "github.com/dokonbot/dokonbot/internal/domain/catalog"
	"github.com/dokonbot/dokonbot/internal/infrastructure/id"
	"github.com/dokonbot/dokonbot/internal/infrastructure/memory"
	"github.com/stretchr/testify/require"
)

func newService() *appcatalog.Service {
	return appcatalog.NewService(memory.NewProductRepository(), id.NewUUIDGenerator())
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	first, created, err := svc.GetOrCreate(ctx, "Shakar", 7000)
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, int64(7000), first.Price)

	// Second call with a different price returns the existing row untouched;
	// overwriting is the caller's decision.
	second, created, err := svc.GetOrCreate(ctx, "Shakar", 7500)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, int64(7000), second.Price)

	updated, err := svc.UpdatePrice(ctx, second.ID, 7500)
	require.NoError(t, err)
	require.Equal(t, first.ID, updated.ID)
	require.Equal(t, int64(7500), updated.Price)
}

func TestGetOrCreateIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	a, created, err := svc.GetOrCreate(ctx, "Shakar", 7000)
	require.NoError(t, err)
	require.True(t, created)

	b, created, err := svc.GetOrCreate(ctx, "shakar", 8000)
	require.NoError(t, err)
	require.True(t, created, "names match exactly, case matters")
	require.NotEqual(t, a.ID, b.ID)
}

func TestGetOrCreateRejectsBadPrice(t *testing.T) {
	_, _, err := newService().GetOrCreate(context.Background(), "Shakar", 0)
	require.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestListAllKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	for _, name := range []string{"Un", "Shakar", "Guruch"} {
		_, _, err := svc.GetOrCreate(ctx, name, 1000)
		require.NoError(t, err)
	}

	products, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	require.Equal(t, "Un", products[0].Name)
	require.Equal(t, "Shakar", products[1].Name)
	require.Equal(t, "Guruch", products[2].Name)
}

func TestFindByNameMissing(t *testing.T) {
	_, err := newService().FindByName(context.Background(), "Yo'q")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
