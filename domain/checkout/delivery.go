package checkout

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "cupcake-backend/pkg/errors"
)

// DeliveryMethod selects how the order reaches the buyer.
type DeliveryMethod string

const (
	MethodDelivery DeliveryMethod = "delivery"
	MethodPickup   DeliveryMethod = "pickup"
)

// Business-hours windows. The store is closed on Mondays; weekends run
// longer hours than weekdays.
var (
	weekendOpen  = clock(10, 0)
	weekendClose = clock(17, 30)
	weekdayOpen  = clock(12, 30)
	weekdayClose = clock(17, 0)
)

func clock(h, m int) time.Duration {
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
}

// DeliveryRules is the pure collaborator consulted by the checkout
// workflow: it prices a delivery method and validates pickup slots
// against the store calendar. It holds no mutable state.
type DeliveryRules struct {
	deliveryFee decimal.Decimal
}

// NewDeliveryRules builds the rule set with the configured delivery
// surcharge. Pickup is always free.
func NewDeliveryRules(deliveryFee decimal.Decimal) *DeliveryRules {
	return &DeliveryRules{deliveryFee: deliveryFee}
}

// ParseMethod validates a form-supplied delivery method.
func ParseMethod(s string) (DeliveryMethod, error) {
	switch DeliveryMethod(s) {
	case MethodDelivery:
		return MethodDelivery, nil
	case MethodPickup:
		return MethodPickup, nil
	default:
		return "", pkgerrors.NewInvalidInputError(fmt.Sprintf("unknown delivery method %q", s))
	}
}

// PriceFor returns the surcharge for the chosen method.
func (r *DeliveryRules) PriceFor(method DeliveryMethod) decimal.Decimal {
	if method == MethodDelivery {
		return r.deliveryFee
	}
	return decimal.Zero
}

// ValidateSlot checks a requested pickup/delivery moment against the
// store calendar: not on the closed weekday, not in the past, and inside
// the business-hours window for that day.
func (r *DeliveryRules) ValidateSlot(at time.Time, now time.Time) error {
	if at.Weekday() == time.Monday {
		return pkgerrors.NewValidationError("the store is closed on Mondays")
	}

	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, at.Location())
	if day.Before(today) {
		return pkgerrors.NewValidationError("the pickup date cannot be in the past")
	}

	opens, closes := weekdayOpen, weekdayClose
	if at.Weekday() == time.Saturday || at.Weekday() == time.Sunday {
		opens, closes = weekendOpen, weekendClose
	}

	tod := clock(at.Hour(), at.Minute())
	if tod < opens || tod > closes {
		return pkgerrors.NewValidationError(fmt.Sprintf(
			"the store is open %s-%s on that day, you chose %02d:%02d",
			fmtClock(opens), fmtClock(closes), at.Hour(), at.Minute()))
	}

	return nil
}

func fmtClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

// StoreAddress is the pickup location used as the contact address when
// the buyer collects the order in person.
type StoreAddress struct {
	Street  string
	ZipCode int
	City    string
}

// DefaultStoreAddress is the bakery's physical location.
var DefaultStoreAddress = StoreAddress{
	Street:  "Olsker Hovedgade 12",
	ZipCode: 3770,
	City:    "Allinge",
}
