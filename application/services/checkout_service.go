package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cupcake-backend/application/ports"
	"cupcake-backend/domain/buyer"
	"cupcake-backend/domain/checkout"
	"cupcake-backend/domain/order"
	pkgerrors "cupcake-backend/pkg/errors"
)

// CheckoutService drives the four-step checkout workflow over a session:
// delivery choice, contact details, payment, confirmation. Each step
// validates its guard before touching session state, so the steps cannot
// run out of order no matter what the web layer sends.
type CheckoutService struct {
	rules    *checkout.DeliveryRules
	identity *IdentityService
	orders   *OrderService
	sessions ports.SessionStore
	logger   *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	rules *checkout.DeliveryRules,
	identity *IdentityService,
	orders *OrderService,
	sessions ports.SessionStore,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		rules:    rules,
		identity: identity,
		orders:   orders,
		sessions: sessions,
		logger:   logger,
	}
}

// DeliveryInput is the form payload of the delivery step.
type DeliveryInput struct {
	Method     string `json:"method" validate:"required,oneof=delivery pickup"`
	PickupDate string `json:"pickupDate" validate:"required"` // 2006-01-02
	PickupTime string `json:"pickupTime" validate:"required"` // 15:04
}

// ContactInput is the form payload of the contact step, used when the
// visitor is not logged in. The address fields only matter for delivery;
// a pickup order carries the store's own address instead.
type ContactInput struct {
	FirstName string `json:"firstName" validate:"required,min=2"`
	LastName  string `json:"lastName" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Phone     int    `json:"phone" validate:"required"`
	Street    string `json:"street"`
	ZipCode   int    `json:"zipCode"`
	City      string `json:"city"`
}

// PaymentView is what the payment step displays before the buyer
// commits: the order total and, for registered buyers, the balance they
// would be left with.
type PaymentView struct {
	Total            decimal.Decimal  `json:"total"`
	CanPayNow        bool             `json:"canPayNow"`
	Balance          *decimal.Decimal `json:"balance,omitempty"`
	ProjectedBalance *decimal.Decimal `json:"projectedBalance,omitempty"`
}

// SubmitDelivery runs the delivery step: a non-empty cart, a known
// method and a slot inside business hours. On success the session
// carries the delivery price and moves to the contact step.
func (s *CheckoutService) SubmitDelivery(ctx context.Context, sess *checkout.Session, in DeliveryInput) error {
	if sess.Cart.IsEmpty() {
		return pkgerrors.NewValidationError("the cart is empty, add a cupcake before checking out")
	}

	method, err := checkout.ParseMethod(in.Method)
	if err != nil {
		return err
	}

	at, err := parseSlot(in.PickupDate, in.PickupTime)
	if err != nil {
		return err
	}
	if err := s.rules.ValidateSlot(at, time.Now()); err != nil {
		return err
	}

	sess.DeliveryMethod = method
	sess.PickupAt = at
	sess.DeliveryPrice = s.rules.PriceFor(method)
	sess.Stage = checkout.StageContact
	sess.Touch(time.Now())

	s.logger.Debug("delivery step completed",
		zap.String("sessionID", sess.ID),
		zap.String("method", string(method)),
		zap.Time("pickupAt", at),
	)
	return s.sessions.Save(ctx, sess)
}

// SubmitContact runs the contact step for an anonymous visitor: the
// contact details resolve to an existing account by email or a fresh
// guest record. On success the session moves to the payment step.
func (s *CheckoutService) SubmitContact(ctx context.Context, sess *checkout.Session, in ContactInput) error {
	if !sess.CanEnterContact() {
		return pkgerrors.NewValidationError("choose delivery before entering contact details")
	}

	p := buyer.Profile{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Street:    in.Street,
		ZipCode:   in.ZipCode,
		City:      in.City,
	}
	// A pickup order is collected at the store, so the store address
	// stands in for an address of the buyer's own.
	if sess.DeliveryMethod == checkout.MethodPickup {
		p.Street = checkout.DefaultStoreAddress.Street
		p.ZipCode = checkout.DefaultStoreAddress.ZipCode
		p.City = checkout.DefaultStoreAddress.City
	}

	b, err := s.identity.ResolveGuest(ctx, p)
	if err != nil {
		return err
	}

	return s.attachBuyer(ctx, sess, b)
}

// SubmitContactAsBuyer runs the contact step for a logged-in visitor,
// resolving their stored profile instead of asking for one.
func (s *CheckoutService) SubmitContactAsBuyer(ctx context.Context, sess *checkout.Session, buyerID int64) error {
	if !sess.CanEnterContact() {
		return pkgerrors.NewValidationError("choose delivery before entering contact details")
	}

	b, err := s.identity.GetBuyer(ctx, buyerID)
	if err != nil {
		return err
	}

	return s.attachBuyer(ctx, sess, b)
}

func (s *CheckoutService) attachBuyer(ctx context.Context, sess *checkout.Session, b buyer.Buyer) error {
	sess.CheckoutBuyer = &b
	sess.Stage = checkout.StagePayment
	sess.Touch(time.Now())

	s.logger.Debug("contact step completed",
		zap.String("sessionID", sess.ID),
		zap.Int64("buyerID", b.ID),
	)
	return s.sessions.Save(ctx, sess)
}

// Payment returns the projection shown on the payment step.
func (s *CheckoutService) Payment(sess *checkout.Session) (PaymentView, error) {
	if !sess.CanEnterPayment() {
		return PaymentView{}, pkgerrors.NewValidationError("complete the contact step before paying")
	}

	view := PaymentView{
		Total:     sess.OrderTotal(),
		CanPayNow: sess.CheckoutBuyer.CanPayNow(),
	}
	if view.CanPayNow {
		balance := sess.CheckoutBuyer.Balance
		projected := balance.Sub(view.Total)
		view.Balance = &balance
		view.ProjectedBalance = &projected
	}
	return view, nil
}

// SubmitPayment runs the payment step. Guests selecting pay-now and
// registered buyers short of balance are rejected and stay on this step;
// otherwise the order transaction runs, and on success the cart is
// cleared and the session moves to confirmation carrying the persisted
// order.
func (s *CheckoutService) SubmitPayment(ctx context.Context, sess *checkout.Session, payNow bool) (order.Order, error) {
	if !sess.CanEnterPayment() {
		return order.Order{}, pkgerrors.NewValidationError("complete the contact step before paying")
	}

	// Debit against the buyer's current balance, not the stale copy
	// written at the contact step.
	b, err := s.identity.GetBuyer(ctx, sess.CheckoutBuyer.ID)
	if err != nil {
		return order.Order{}, err
	}

	o, err := s.orders.CreateOrder(ctx, b, sess.Cart.Lines, sess.PickupAt, payNow, sess.DeliveryPrice)
	if err != nil {
		return order.Order{}, err
	}

	sess.Cart.Clear()
	sess.CompletedOrder = &o
	sess.Stage = checkout.StageConfirmed
	sess.Touch(time.Now())
	if err := s.sessions.Save(ctx, sess); err != nil {
		// The order is committed; a failed session write only costs the
		// confirmation view.
		s.logger.Warn("failed to save session after order creation",
			zap.String("sessionID", sess.ID),
			zap.Int64("orderID", o.ID),
			zap.Error(err),
		)
	}
	return o, nil
}

// Confirmation returns the completed order for the terminal step.
func (s *CheckoutService) Confirmation(sess *checkout.Session) (order.Order, error) {
	if sess.Stage != checkout.StageConfirmed || sess.CompletedOrder == nil {
		return order.Order{}, pkgerrors.NewValidationError("no completed order in this session")
	}
	return *sess.CompletedOrder, nil
}

// Restart steps the session back to the delivery stage, dropping
// everything the later steps wrote.
func (s *CheckoutService) Restart(ctx context.Context, sess *checkout.Session) error {
	sess.ResetDelivery()
	sess.Touch(time.Now())
	return s.sessions.Save(ctx, sess)
}

func parseSlot(date, tod string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, pkgerrors.NewInvalidInputError(fmt.Sprintf("invalid pickup date %q, expected YYYY-MM-DD", date))
	}
	t, err := time.Parse("15:04", tod)
	if err != nil {
		return time.Time{}, pkgerrors.NewInvalidInputError(fmt.Sprintf("invalid pickup time %q, expected HH:MM", tod))
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}
