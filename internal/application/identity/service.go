package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/dokonbot/dokonbot/internal/domain/seller"
	"github.com/dokonbot/dokonbot/internal/infrastructure/id"
	"github.com/dokonbot/dokonbot/internal/pkg/logging"
	"go.uber.org/zap"
)

// Role classifies an actor for dispatch purposes.
type Role int

const (
	RoleUnauthenticated Role = iota
	RoleAdministrator
	RoleSeller
)

// Identity is the result of classifying an actor id. Seller is non-nil only
// for RoleSeller.
type Identity struct {
	Role   Role
	Seller *domain.Seller
}

type Service struct {
	repo         domain.Repository
	idGenerator  id.Generator
	adminActorID string
}

func NewService(repo domain.Repository, idGen id.Generator, adminActorID string) *Service {
	return &Service{repo: repo, idGenerator: idGen, adminActorID: adminActorID}
}

// CreateSeller registers a new seller. Phone and password uniqueness is
// enforced atomically by the repository; a rejected create leaves nothing
// behind.
func (s *Service) CreateSeller(ctx context.Context, name, neighborhood, phone, password string) (*domain.Seller, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "identity_service"))

	sel, err := domain.New(s.idGenerator.NewID(), strings.TrimSpace(name), strings.TrimSpace(neighborhood), phone, password)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, sel); err != nil {
		logger.Warn("seller_insert_rejected", zap.String("name", sel.Name), zap.Error(err))
		return nil, err
	}

	logger.Info("seller_created", zap.String("seller_id", sel.ID), zap.String("name", sel.Name))
	return sel, nil
}

// Classify resolves an actor to administrator, bound seller, or
// unauthenticated. There is a single configured admin; no role hierarchy.
func (s *Service) Classify(ctx context.Context, actorID string) (Identity, error) {
	if actorID != "" && actorID == s.adminActorID {
		return Identity{Role: RoleAdministrator}, nil
	}

	sel, err := s.repo.FindByActor(ctx, actorID)
	if errors.Is(err, domain.ErrNotFound) {
		return Identity{Role: RoleUnauthenticated}, nil
	}
	if err != nil {
		return Identity{}, fmt.Errorf("identity: classify: %w", err)
	}
	return Identity{Role: RoleSeller, Seller: sel}, nil
}

// Login matches the password against a seller row. On first login the row is
// bound to the actor permanently; repeat logins from the same actor succeed,
// any other actor gets ErrPasswordBound. No-match is ErrNotFound. Callers
// surface both failures with the same generic message; only logs differ.
func (s *Service) Login(ctx context.Context, password, actorID string) (*domain.Seller, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "identity_service"))

	sel, err := s.repo.FindByPassword(ctx, strings.TrimSpace(password))
	if errors.Is(err, domain.ErrNotFound) {
		logger.Info("login_rejected_unknown_password", zap.String("actor_id", actorID))
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("identity: login lookup: %w", err)
	}

	if sel.ActorID == actorID {
		return sel, nil
	}
	if sel.Bound() {
		logger.Warn("login_rejected_password_bound",
			zap.String("actor_id", actorID),
			zap.String("seller_id", sel.ID),
		)
		return nil, domain.ErrPasswordBound
	}

	if err := sel.Bind(actorID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, sel); err != nil {
		logger.Error("login_bind_persist_failed", zap.String("seller_id", sel.ID), zap.Error(err))
		return nil, fmt.Errorf("identity: persist binding: %w", err)
	}

	logger.Info("seller_bound", zap.String("seller_id", sel.ID), zap.String("actor_id", actorID))
	return sel, nil
}
