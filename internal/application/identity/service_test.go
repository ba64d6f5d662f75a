package identity_test

import (
	"context"
	"testing"

	appidentity "github.com/dokonbot/dokonbot/internal/application/identity"
	domain "github.com/dokonbot/dokonbot/internal/domain/seller"
	"github.com/dokonbot/dokonbot/internal/infrastructure/id"
	"github.com/dokonbot/dokonbot/internal/infrastructure/memory"
	"github.com/stretchr/testify/require"
)

const adminActor = "admin-actor"

func newService() *appidentity.Service {
	return appidentity.NewService(memory.NewSellerRepository(), id.NewUUIDGenerator(), adminActor)
}

func TestClassifyAdmin(t *testing.T) {
	ident, err := newService().Classify(context.Background(), adminActor)
	require.NoError(t, err)
	require.Equal(t, appidentity.RoleAdministrator, ident.Role)
}

func TestClassifyUnknownActor(t *testing.T) {
	ident, err := newService().Classify(context.Background(), "stranger")
	require.NoError(t, err)
	require.Equal(t, appidentity.RoleUnauthenticated, ident.Role)
	require.Nil(t, ident.Seller)
}

func TestLoginBindsOnce(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	created, err := svc.CreateSeller(ctx, "Olim", "Chilonzor", "901234567", "sezam42")
	require.NoError(t, err)

	// Unknown password fails for everybody, and classify stays unauthenticated.
	_, err = svc.Login(ctx, "wrong", "actor-x")
	require.ErrorIs(t, err, domain.ErrNotFound)
	ident, err := svc.Classify(ctx, "actor-x")
	require.NoError(t, err)
	require.Equal(t, appidentity.RoleUnauthenticated, ident.Role)

	// First successful login binds permanently.
	bound, err := svc.Login(ctx, "sezam42", "actor-x")
	require.NoError(t, err)
	require.Equal(t, created.ID, bound.ID)

	// Repeat from the same actor succeeds, any other actor is rejected.
	again, err := svc.Login(ctx, "sezam42", "actor-x")
	require.NoError(t, err)
	require.Equal(t, created.ID, again.ID)

	_, err = svc.Login(ctx, "sezam42", "actor-y")
	require.ErrorIs(t, err, domain.ErrPasswordBound)

	ident, err = svc.Classify(ctx, "actor-x")
	require.NoError(t, err)
	require.Equal(t, appidentity.RoleSeller, ident.Role)
	require.Equal(t, created.ID, ident.Seller.ID)
}

func TestCreateSellerRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.CreateSeller(ctx, "Olim", "Chilonzor", "901234567", "sezam42")
	require.NoError(t, err)

	_, err = svc.CreateSeller(ctx, "Karim", "Yunusobod", "901234567", "boshqa1")
	require.ErrorIs(t, err, domain.ErrPhoneTaken)

	_, err = svc.CreateSeller(ctx, "Karim", "Yunusobod", "909999999", "sezam42")
	require.ErrorIs(t, err, domain.ErrPasswordTaken)
}

func TestCreateSellerValidation(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.CreateSeller(ctx, "Olim", "Chilonzor", "90 12 34", "sezam42")
	require.ErrorIs(t, err, domain.ErrInvalidPhone)

	_, err = svc.CreateSeller(ctx, "Olim", "Chilonzor", "901234567", "abc")
	require.ErrorIs(t, err, domain.ErrPasswordTooWeak)
}
