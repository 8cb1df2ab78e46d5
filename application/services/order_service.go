package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cupcake-backend/application/ports"
	"cupcake-backend/domain/buyer"
	"cupcake-backend/domain/cart"
	"cupcake-backend/domain/catalog"
	"cupcake-backend/domain/order"
	pkgerrors "cupcake-backend/pkg/errors"
)

// OrderService owns the order-creation transaction and the admin order
// lifecycle. All multi-record writes go through the transaction manager
// so the order header, its lines and any balance mutation commit
// together or not at all.
type OrderService struct {
	orders ports.OrderRepository
	buyers ports.BuyerRepository
	tx     ports.TxManager
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orders ports.OrderRepository,
	buyers ports.BuyerRepository,
	tx ports.TxManager,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders: orders,
		buyers: buyers,
		tx:     tx,
		logger: logger,
	}
}

// CreateOrder persists an order for the given buyer. Each line is
// re-priced from its frozen cupcake composition rather than trusting the
// price carried in. When paying now, the buyer's balance is debited
// inside the same transaction; the debit re-checks the balance on the
// row itself, so a concurrent debit cannot slip past a stale read.
func (s *OrderService) CreateOrder(
	ctx context.Context,
	b buyer.Buyer,
	lines []cart.OrderLine,
	pickupAt time.Time,
	payNow bool,
	deliveryPrice decimal.Decimal,
) (order.Order, error) {
	if len(lines) == 0 {
		return order.Order{}, pkgerrors.NewInvalidInputError("cannot create an order without lines")
	}

	priced := make([]cart.OrderLine, len(lines))
	for i, line := range lines {
		priced[i] = line
		priced[i].Cupcake = catalog.NewCupcake(line.Cupcake.Bottom, line.Cupcake.Topping)
	}

	o := order.Order{
		Buyer:         b.Snapshot(),
		OrderDate:     time.Now(),
		PickupDate:    pickupAt,
		Paid:          payNow,
		Lines:         priced,
		DeliveryPrice: deliveryPrice,
		TotalPrice:    order.TotalOf(priced, deliveryPrice),
	}

	if payNow {
		if !b.CanPayNow() {
			return order.Order{}, pkgerrors.NewValidationError("guest accounts cannot pay from a balance, choose pay at pickup")
		}
		if b.Balance.LessThan(o.TotalPrice) {
			shortfall := o.TotalPrice.Sub(b.Balance)
			return order.Order{}, pkgerrors.NewValidationError(fmt.Sprintf(
				"your balance of %s does not cover the order total of %s, you are %s short",
				b.Balance.StringFixed(2), o.TotalPrice.StringFixed(2), shortfall.StringFixed(2)))
		}
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.orders.Create(ctx, &o); err != nil {
			return err
		}
		if payNow {
			return s.buyers.DebitBalance(ctx, b.ID, o.TotalPrice)
		}
		return nil
	})
	if err != nil {
		return order.Order{}, err
	}

	s.logger.Info("order created",
		zap.Int64("orderID", o.ID),
		zap.Int64("buyerID", b.ID),
		zap.String("total", o.TotalPrice.StringFixed(2)),
		zap.Bool("paid", o.Paid),
	)
	return o, nil
}

// GetOrder loads a single order. A non-admin caller can only read their
// own orders.
func (s *OrderService) GetOrder(ctx context.Context, actorID, orderID int64) (order.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return order.Order{}, err
	}
	if o.Buyer.ID != actorID {
		if err := requireAdmin(ctx, s.buyers, actorID); err != nil {
			return order.Order{}, err
		}
	}
	return o, nil
}

// SetPaymentStatus flips the paid flag on an existing order.
func (s *OrderService) SetPaymentStatus(ctx context.Context, actorID, orderID int64, paid bool) error {
	if err := requireAdmin(ctx, s.buyers, actorID); err != nil {
		return err
	}
	if err := s.orders.SetPaid(ctx, orderID, paid); err != nil {
		return err
	}

	s.logger.Info("order payment status changed",
		zap.Int64("orderID", orderID),
		zap.Bool("paid", paid),
	)
	return nil
}

// DeleteOrder removes an order and its lines. When refund is requested
// and the order was paid, the buyer's balance is credited by the stored
// total before the row goes away, inside the same transaction. Deleting
// an unpaid order with refund set changes no balance.
func (s *OrderService) DeleteOrder(ctx context.Context, actorID, orderID int64, refund bool) error {
	if err := requireAdmin(ctx, s.buyers, actorID); err != nil {
		return err
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if refund && o.Paid {
			if err := s.buyers.CreditBalance(ctx, o.Buyer.ID, o.TotalPrice); err != nil {
				return err
			}
		}
		return s.orders.Delete(ctx, orderID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("order deleted",
		zap.Int64("orderID", orderID),
		zap.Bool("refund", refund),
	)
	return nil
}

// ListAll returns every order, most recent first.
func (s *OrderService) ListAll(ctx context.Context, actorID int64) ([]order.Order, error) {
	if err := requireAdmin(ctx, s.buyers, actorID); err != nil {
		return nil, err
	}
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	order.SortByDateDesc(orders)
	return orders, nil
}

// ListByStatus returns the orders matching the paid flag, most recent
// first.
func (s *OrderService) ListByStatus(ctx context.Context, actorID int64, paid bool) ([]order.Order, error) {
	if err := requireAdmin(ctx, s.buyers, actorID); err != nil {
		return nil, err
	}
	orders, err := s.orders.ListByPaid(ctx, paid)
	if err != nil {
		return nil, err
	}
	order.SortByDateDesc(orders)
	return orders, nil
}

// ListForBuyer returns a buyer's own orders, most recent first.
func (s *OrderService) ListForBuyer(ctx context.Context, buyerID int64) ([]order.Order, error) {
	orders, err := s.orders.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	order.SortByDateDesc(orders)
	return orders, nil
}

// TotalRevenue sums the totals of all paid orders.
func (s *OrderService) TotalRevenue(ctx context.Context, actorID int64) (decimal.Decimal, error) {
	paid, err := s.paidOrders(ctx, actorID)
	if err != nil {
		return decimal.Zero, err
	}
	return sumTotals(paid), nil
}

// MonthlyRevenue sums the totals of paid orders placed in the given
// month.
func (s *OrderService) MonthlyRevenue(ctx context.Context, actorID int64, year int, month time.Month) (decimal.Decimal, error) {
	paid, err := s.paidOrders(ctx, actorID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, o := range paid {
		if o.OrderDate.Year() == year && o.OrderDate.Month() == month {
			total = total.Add(o.TotalPrice)
		}
	}
	return total, nil
}

// AverageOrderValue is total revenue divided by the number of paid
// orders, zero when there are none.
func (s *OrderService) AverageOrderValue(ctx context.Context, actorID int64) (decimal.Decimal, error) {
	paid, err := s.paidOrders(ctx, actorID)
	if err != nil {
		return decimal.Zero, err
	}
	if len(paid) == 0 {
		return decimal.Zero, nil
	}
	return sumTotals(paid).DivRound(decimal.NewFromInt(int64(len(paid))), 2), nil
}

func (s *OrderService) paidOrders(ctx context.Context, actorID int64) ([]order.Order, error) {
	if err := requireAdmin(ctx, s.buyers, actorID); err != nil {
		return nil, err
	}
	return s.orders.ListByPaid(ctx, true)
}

func sumTotals(orders []order.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.TotalPrice)
	}
	return total
}
