package order

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"cupcake-backend/domain/buyer"
	"cupcake-backend/domain/cart"
)

// Order is the persisted aggregate produced by checkout. TotalPrice is the
// sum of line prices plus the delivery price at creation time; it is stored,
// not recomputed, so later catalog or delivery-fee changes never alter a
// historical order. Orders are created only by the transaction manager and
// mutated only by the admin operations.
type Order struct {
	ID            int64            `json:"id"`
	Buyer         buyer.Snapshot   `json:"buyer"`
	OrderDate     time.Time        `json:"orderDate"`
	PickupDate    time.Time        `json:"pickupDate"`
	Paid          bool             `json:"paid"`
	Lines         []cart.OrderLine `json:"lines"`
	DeliveryPrice decimal.Decimal  `json:"deliveryPrice"`
	TotalPrice    decimal.Decimal  `json:"totalPrice"`
}

// TotalOf computes an order total from its lines and delivery price.
// Line prices are derived from the frozen cupcake compositions, never
// taken from client input.
func TotalOf(lines []cart.OrderLine, deliveryPrice decimal.Decimal) decimal.Decimal {
	total := deliveryPrice
	for _, line := range lines {
		total = total.Add(line.LinePrice())
	}
	return total
}

// SortByDateDesc orders most recent first. The display layer depends on
// this ordering; list queries apply it before returning.
func SortByDateDesc(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
}
