package di

import (
	"database/sql"

	"go.uber.org/zap"

	"cupcake-backend/application/ports"
	"cupcake-backend/application/services"
	"cupcake-backend/infrastructure/config"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	DB       *sql.DB
	Sessions ports.SessionStore

	Cart     *services.CartService
	Checkout *services.CheckoutService
	Orders   *services.OrderService
	Identity *services.IdentityService
	Catalog  *services.CatalogService
}

// Close releases the container's long-lived resources.
func (c *Container) Close() error {
	if closer, ok := c.Sessions.(interface{ Close() }); ok {
		closer.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
