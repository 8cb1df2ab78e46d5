//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"cupcake-backend/application/services"
	"cupcake-backend/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDB,
	ProvideSessionStore,
	ProvideDeliveryRules,
	ProvideCatalogRepository,
	ProvideBuyerRepository,
	ProvideOrderRepository,
	ProvideTxManager,
	services.NewCartService,
	services.NewCheckoutService,
	services.NewOrderService,
	services.NewIdentityService,
	services.NewCatalogService,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
