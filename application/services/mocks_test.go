package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"cupcake-backend/domain/buyer"
	"cupcake-backend/domain/catalog"
	"cupcake-backend/domain/checkout"
	"cupcake-backend/domain/order"
)

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListBottoms(ctx context.Context) ([]catalog.Bottom, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Bottom), args.Error(1)
}

func (m *MockCatalogRepository) ListToppings(ctx context.Context) ([]catalog.Topping, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Topping), args.Error(1)
}

func (m *MockCatalogRepository) GetBottom(ctx context.Context, id int64) (catalog.Bottom, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.Bottom), args.Error(1)
}

func (m *MockCatalogRepository) GetTopping(ctx context.Context, id int64) (catalog.Topping, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(catalog.Topping), args.Error(1)
}

func (m *MockCatalogRepository) CreateBottom(ctx context.Context, name string, price decimal.Decimal) (catalog.Bottom, error) {
	args := m.Called(ctx, name, price)
	return args.Get(0).(catalog.Bottom), args.Error(1)
}

func (m *MockCatalogRepository) CreateTopping(ctx context.Context, name string, price decimal.Decimal) (catalog.Topping, error) {
	args := m.Called(ctx, name, price)
	return args.Get(0).(catalog.Topping), args.Error(1)
}

func (m *MockCatalogRepository) UpdateBottom(ctx context.Context, b catalog.Bottom) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockCatalogRepository) UpdateTopping(ctx context.Context, t catalog.Topping) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockCatalogRepository) DeleteBottom(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalogRepository) DeleteTopping(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockBuyerRepository struct {
	mock.Mock
}

func (m *MockBuyerRepository) GetByID(ctx context.Context, id int64) (buyer.Buyer, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(buyer.Buyer), args.Error(1)
}

func (m *MockBuyerRepository) GetByEmail(ctx context.Context, email string) (buyer.Buyer, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(buyer.Buyer), args.Error(1)
}

func (m *MockBuyerRepository) GetCredentials(ctx context.Context, email string) (buyer.Buyer, string, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(buyer.Buyer), args.String(1), args.Error(2)
}

func (m *MockBuyerRepository) CreateRegistered(ctx context.Context, p buyer.Profile, passwordHash string) (buyer.Buyer, error) {
	args := m.Called(ctx, p, passwordHash)
	return args.Get(0).(buyer.Buyer), args.Error(1)
}

func (m *MockBuyerRepository) CreateGuest(ctx context.Context, p buyer.Profile) (buyer.Buyer, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(buyer.Buyer), args.Error(1)
}

func (m *MockBuyerRepository) ListCustomers(ctx context.Context) ([]buyer.Buyer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]buyer.Buyer), args.Error(1)
}

func (m *MockBuyerRepository) DebitBalance(ctx context.Context, id int64, amount decimal.Decimal) error {
	return m.Called(ctx, id, amount).Error(0)
}

func (m *MockBuyerRepository) CreditBalance(ctx context.Context, id int64, amount decimal.Decimal) error {
	return m.Called(ctx, id, amount).Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (order.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAll(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByPaid(ctx context.Context, paid bool) ([]order.Order, error) {
	args := m.Called(ctx, paid)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByBuyer(ctx context.Context, buyerID int64) ([]order.Order, error) {
	args := m.Called(ctx, buyerID)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) SetPaid(ctx context.Context, id int64, paid bool) error {
	return m.Called(ctx, id, paid).Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockTxManager invokes the unit of work inline and records whether the
// unit reported failure, standing in for a rolled-back transaction.
type MockTxManager struct {
	mock.Mock
	RolledBack bool
}

func (m *MockTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Called(ctx)
	if err := fn(ctx); err != nil {
		m.RolledBack = true
		return err
	}
	return nil
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Get(ctx context.Context, id string) (*checkout.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Session), args.Error(1)
}

func (m *MockSessionStore) Save(ctx context.Context, s *checkout.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
