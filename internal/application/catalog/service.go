package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/dokonbot/dokonbot/internal/domain/catalog"
	"github.com/dokonbot/dokonbot/internal/infrastructure/id"
	"github.com/dokonbot/dokonbot/internal/pkg/logging"
	"go.uber.org/zap"
)

type Service struct {
	repo        domain.Repository
	idGenerator id.Generator
}

func NewService(repo domain.Repository, idGen id.Generator) *Service {
	return &Service{repo: repo, idGenerator: idGen}
}

// GetOrCreate returns the product with the given name, creating it when
// absent. Name matching is exact and case-sensitive. The caller decides what
// to do when an existing product's price differs from the supplied one.
func (s *Service) GetOrCreate(ctx context.Context, name string, price int64) (*domain.Product, bool, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "catalog_service"))

	name = strings.TrimSpace(name)
	existing, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("catalog: lookup: %w", err)
	}

	product, err := domain.New(s.idGenerator.NewID(), name, price)
	if err != nil {
		return nil, false, err
	}
	if err := s.repo.Insert(ctx, product); err != nil {
		logger.Error("product_insert_failed", zap.String("name", name), zap.Error(err))
		return nil, false, fmt.Errorf("catalog: insert: %w", err)
	}

	logger.Info("product_created", zap.String("product_id", product.ID), zap.String("name", product.Name), zap.Int64("price", product.Price))
	return product, true, nil
}

// UpdatePrice overwrites the stored price, last write wins.
func (s *Service) UpdatePrice(ctx context.Context, productID string, price int64) (*domain.Product, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "catalog_service"))

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := product.SetPrice(price); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, product); err != nil {
		logger.Error("product_update_failed", zap.String("product_id", productID), zap.Error(err))
		return nil, fmt.Errorf("catalog: update: %w", err)
	}

	logger.Info("product_price_updated", zap.String("product_id", product.ID), zap.Int64("price", product.Price))
	return product, nil
}

func (s *Service) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	return s.repo.FindByName(ctx, strings.TrimSpace(name))
}

func (s *Service) ListAll(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.ListAll(ctx)
}
