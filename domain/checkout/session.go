package checkout

import (
	"time"

	"github.com/shopspring/decimal"

	"cupcake-backend/domain/buyer"
	"cupcake-backend/domain/cart"
	"cupcake-backend/domain/order"
)

// Stage names the position of a checkout session in the workflow.
// Transitions are strictly ordered: Delivery -> Contact -> Payment ->
// Confirmed. Re-entering an earlier stage is allowed and overwrites the
// later fields; an abandoned session simply expires with no trace.
type Stage string

const (
	StageDelivery  Stage = "delivery"
	StageContact   Stage = "contact"
	StagePayment   Stage = "payment"
	StageConfirmed Stage = "confirmed"
)

// Session is the transient, session-keyed state accumulated across the
// checkout workflow. Nothing here is durable: it lives in the session
// store under the visitor's session id and is gone when that expires.
// Fields past the cart are only meaningful once the stage that sets them
// has been passed; the guard methods make the ordering explicit.
type Session struct {
	ID      string             `json:"id"`
	Stage   Stage              `json:"stage"`
	BuyerID int64              `json:"buyerId,omitempty"` // authenticated visitor, 0 for anonymous
	Cart    *cart.ShoppingCart `json:"cart"`

	// Set by the delivery step.
	DeliveryMethod DeliveryMethod  `json:"deliveryMethod,omitempty"`
	PickupAt       time.Time       `json:"pickupAt,omitempty"`
	DeliveryPrice  decimal.Decimal `json:"deliveryPrice"`

	// Set by the contact step.
	CheckoutBuyer *buyer.Buyer `json:"checkoutBuyer,omitempty"`

	// Set on successful payment, for the confirmation view.
	CompletedOrder *order.Order `json:"completedOrder,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSession creates a fresh session with an empty cart, positioned
// before the workflow (the delivery step is its first transition).
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Stage:     StageDelivery,
		Cart:      cart.New(),
		UpdatedAt: now,
	}
}

// Touch refreshes the activity timestamp; the session store derives its
// TTL from each write.
func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now
}

// CanEnterContact reports whether the delivery step has completed.
func (s *Session) CanEnterContact() bool {
	return s.DeliveryMethod != "" && !s.PickupAt.IsZero()
}

// CanEnterPayment reports whether a buyer identity has been resolved and
// the cart still holds something to pay for.
func (s *Session) CanEnterPayment() bool {
	return s.CheckoutBuyer != nil && s.Cart != nil && !s.Cart.IsEmpty()
}

// OrderTotal is the running total shown from the delivery step onward:
// cart total plus the chosen delivery price.
func (s *Session) OrderTotal() decimal.Decimal {
	if s.Cart == nil {
		return s.DeliveryPrice
	}
	return s.Cart.TotalPrice().Add(s.DeliveryPrice)
}

// ResetDelivery drops everything the delivery step and later steps wrote,
// for a visitor stepping back in the workflow.
func (s *Session) ResetDelivery() {
	s.Stage = StageDelivery
	s.DeliveryMethod = ""
	s.PickupAt = time.Time{}
	s.DeliveryPrice = decimal.Zero
	s.CheckoutBuyer = nil
	s.CompletedOrder = nil
}
