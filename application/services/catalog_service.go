package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cupcake-backend/application/ports"
	"cupcake-backend/domain/catalog"
	pkgerrors "cupcake-backend/pkg/errors"
)

// CatalogService exposes the flavor catalog: public reads for the shop
// pages, admin-gated writes for catalog maintenance.
type CatalogService struct {
	catalogRepo ports.CatalogRepository
	buyers      ports.BuyerRepository
	logger      *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	catalogRepo ports.CatalogRepository,
	buyers ports.BuyerRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		buyers:      buyers,
		logger:      logger,
	}
}

// ListBottoms returns all bottom flavors.
func (s *CatalogService) ListBottoms(ctx context.Context) ([]catalog.Bottom, error) {
	return s.catalogRepo.ListBottoms(ctx)
}

// ListToppings returns all topping flavors.
func (s *CatalogService) ListToppings(ctx context.Context) ([]catalog.Topping, error) {
	return s.catalogRepo.ListToppings(ctx)
}

// GetBottom loads one bottom flavor.
func (s *CatalogService) GetBottom(ctx context.Context, id int64) (catalog.Bottom, error) {
	return s.catalogRepo.GetBottom(ctx, id)
}

// GetTopping loads one topping flavor.
func (s *CatalogService) GetTopping(ctx context.Context, id int64) (catalog.Topping, error) {
	return s.catalogRepo.GetTopping(ctx, id)
}

// CreateBottom adds a bottom flavor; the name must be unused.
func (s *CatalogService) CreateBottom(ctx context.Context, actorID int64, name string, price decimal.Decimal) (catalog.Bottom, error) {
	if err := requireAdmin(ctx, s.buyers, actorID); err != nil {
		return catalog.Bottom{}, err
	}
	name, err := validFlavor(name, price)
	if err != nil {
		return catalog.Bottom{}, err
	}

	b, err := s.catalogRepo.CreateBottom(ctx, name, price)
	if err != nil {
		return catalog.Bottom{}, err
	}
	s.logger.Info("bottom flavor created", zap.Int64("id", b.ID), zap.String("name", b.Name))
	return b, nil
}

// CreateTopping adds a topping flavor; the name must be unused.
func (s *CatalogService) CreateTopping(ctx context.Context, actorID int64, name string, price decimal.Decimal) (catalog.Topping, error) {
	if err := requireAdmin(ctx, s.buyers, actorID); err != nil {
		return catalog.Topping{}, err
	}
	name, err := validFlavor(name, price)
	if err != nil {
		return catalog.Topping{}, err
	}

	t, err := s.catalogRepo.CreateTopping(ctx, name, price)
	if err != nil {
		return catalog.Topping{}, err
	}
	s.logger.Info("topping flavor created", zap.Int64("id", t.ID), zap.String("name", t.Name))
	return t, nil
}

// UpdateBottom renames or reprices a bottom flavor. Orders already
// placed keep their frozen line prices.
func (s *CatalogService) UpdateBottom(ctx context.Context, actorID int64, b catalog.Bottom) error {
	if err := requireAdmin(ctx, s.buyers, actorID); err != nil {
		return err
	}
	name, err := validFlavor(b.Name, b.Price)
	if err != nil {
		return err
	}
	b.Name = name
	return s.catalogRepo.UpdateBottom(ctx, b)
}

// UpdateTopping renames or reprices a topping flavor.
func (s *CatalogService) UpdateTopping(ctx context.Context, actorID int64, t catalog.Topping) error {
	if err := requireAdmin(ctx, s.buyers, actorID); err != nil {
		return err
	}
	name, err := validFlavor(t.Name, t.Price)
	if err != nil {
		return err
	}
	t.Name = name
	return s.catalogRepo.UpdateTopping(ctx, t)
}

// DeleteBottom removes a bottom flavor.
func (s *CatalogService) DeleteBottom(ctx context.Context, actorID, id int64) error {
	if err := requireAdmin(ctx, s.buyers, actorID); err != nil {
		return err
	}
	return s.catalogRepo.DeleteBottom(ctx, id)
}

// DeleteTopping removes a topping flavor.
func (s *CatalogService) DeleteTopping(ctx context.Context, actorID, id int64) error {
	if err := requireAdmin(ctx, s.buyers, actorID); err != nil {
		return err
	}
	return s.catalogRepo.DeleteTopping(ctx, id)
}

func validFlavor(name string, price decimal.Decimal) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", pkgerrors.NewInvalidInputError("flavor name must not be empty")
	}
	if price.IsNegative() {
		return "", pkgerrors.NewInvalidInputError("flavor price must not be negative")
	}
	return name, nil
}
