package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"cupcake-backend/domain/buyer"
	"cupcake-backend/domain/catalog"
	"cupcake-backend/domain/order"
)

// CatalogRepository persists the flavor catalog. Name uniqueness is
// enforced by the store and surfaces as a Conflict error.
type CatalogRepository interface {
	ListBottoms(ctx context.Context) ([]catalog.Bottom, error)
	ListToppings(ctx context.Context) ([]catalog.Topping, error)
	GetBottom(ctx context.Context, id int64) (catalog.Bottom, error)
	GetTopping(ctx context.Context, id int64) (catalog.Topping, error)
	CreateBottom(ctx context.Context, name string, price decimal.Decimal) (catalog.Bottom, error)
	CreateTopping(ctx context.Context, name string, price decimal.Decimal) (catalog.Topping, error)
	UpdateBottom(ctx context.Context, b catalog.Bottom) error
	UpdateTopping(ctx context.Context, t catalog.Topping) error
	DeleteBottom(ctx context.Context, id int64) error
	DeleteTopping(ctx context.Context, id int64) error
}

// BuyerRepository persists buyer identities and owns the only two balance
// mutations in the system: the order-creation debit and the admin refund
// credit. DebitBalance re-checks the precondition on the row itself so a
// concurrent debit cannot pass on a stale read.
type BuyerRepository interface {
	GetByID(ctx context.Context, id int64) (buyer.Buyer, error)
	GetByEmail(ctx context.Context, email string) (buyer.Buyer, error)
	// GetCredentials returns the buyer together with the stored password
	// hash; used only by authentication.
	GetCredentials(ctx context.Context, email string) (buyer.Buyer, string, error)
	CreateRegistered(ctx context.Context, p buyer.Profile, passwordHash string) (buyer.Buyer, error)
	CreateGuest(ctx context.Context, p buyer.Profile) (buyer.Buyer, error)
	ListCustomers(ctx context.Context) ([]buyer.Buyer, error)
	// DebitBalance subtracts amount if and only if the current balance
	// covers it; returns a Validation error otherwise.
	DebitBalance(ctx context.Context, id int64, amount decimal.Decimal) error
	CreditBalance(ctx context.Context, id int64, amount decimal.Decimal) error
}

// OrderRepository persists orders and their lines. Create writes the
// header and every line through the runner bound to the calling context,
// so inside a transaction the whole write shares its fate.
type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	GetByID(ctx context.Context, id int64) (order.Order, error)
	ListAll(ctx context.Context) ([]order.Order, error)
	ListByPaid(ctx context.Context, paid bool) ([]order.Order, error)
	ListByBuyer(ctx context.Context, buyerID int64) ([]order.Order, error)
	SetPaid(ctx context.Context, id int64, paid bool) error
	Delete(ctx context.Context, id int64) error
}

// TxManager opens the single atomic unit of work. Everything fn performs
// through context-aware repositories commits together or not at all.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
