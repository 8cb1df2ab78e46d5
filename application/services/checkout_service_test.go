package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cupcake-backend/domain/buyer"
	"cupcake-backend/domain/catalog"
	"cupcake-backend/domain/checkout"
	"cupcake-backend/domain/order"
	pkgerrors "cupcake-backend/pkg/errors"
)

type checkoutFixture struct {
	svc      *CheckoutService
	buyers   *MockBuyerRepository
	orders   *MockOrderRepository
	tx       *MockTxManager
	sessions *MockSessionStore
}

func newCheckoutFixture() *checkoutFixture {
	buyers := new(MockBuyerRepository)
	orders := new(MockOrderRepository)
	tx := new(MockTxManager)
	sessions := new(MockSessionStore)
	logger := zap.NewNop()

	identity := NewIdentityService(buyers, logger)
	orderSvc := NewOrderService(orders, buyers, tx, logger)
	rules := checkout.NewDeliveryRules(decimal.NewFromFloat(5))

	return &checkoutFixture{
		svc:      NewCheckoutService(rules, identity, orderSvc, sessions, logger),
		buyers:   buyers,
		orders:   orders,
		tx:       tx,
		sessions: sessions,
	}
}

func checkoutSessionWithCart(t *testing.T) *checkout.Session {
	t.Helper()
	sess := checkout.NewSession("sess-1", time.Now())
	cupcake := catalog.NewCupcake(
		catalog.Bottom{ID: 1, Name: "Vanilla", Price: decimal.NewFromFloat(3)},
		catalog.Topping{ID: 2, Name: "Chocolate", Price: decimal.NewFromFloat(2)},
	)
	require.NoError(t, sess.Cart.AddLine(cupcake, 2))
	return sess
}

// nextOpenDay returns an upcoming non-Monday date formatted for the
// delivery form, with a weekday-safe midday slot.
func nextOpenDay() (string, string) {
	day := time.Now().AddDate(0, 0, 1)
	for day.Weekday() == time.Monday {
		day = day.AddDate(0, 0, 1)
	}
	return day.Format("2006-01-02"), "13:00"
}

func TestSubmitDelivery_TransitionsToContact(t *testing.T) {
	// Arrange
	f := newCheckoutFixture()
	sess := checkoutSessionWithCart(t)
	f.sessions.On("Save", mock.Anything, sess).Return(nil)
	date, slot := nextOpenDay()

	// Act
	err := f.svc.SubmitDelivery(context.Background(), sess, DeliveryInput{
		Method:     "delivery",
		PickupDate: date,
		PickupTime: slot,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, checkout.StageContact, sess.Stage)
	assert.True(t, sess.DeliveryPrice.Equal(decimal.NewFromFloat(5)))
	assert.True(t, sess.OrderTotal().Equal(decimal.NewFromFloat(15)))
}

func TestSubmitDelivery_PickupIsFree(t *testing.T) {
	f := newCheckoutFixture()
	sess := checkoutSessionWithCart(t)
	f.sessions.On("Save", mock.Anything, sess).Return(nil)
	date, slot := nextOpenDay()

	err := f.svc.SubmitDelivery(context.Background(), sess, DeliveryInput{
		Method:     "pickup",
		PickupDate: date,
		PickupTime: slot,
	})

	require.NoError(t, err)
	assert.True(t, sess.DeliveryPrice.IsZero())
}

func TestSubmitDelivery_EmptyCartRejected(t *testing.T) {
	f := newCheckoutFixture()
	sess := checkout.NewSession("sess-1", time.Now())
	date, slot := nextOpenDay()

	err := f.svc.SubmitDelivery(context.Background(), sess, DeliveryInput{
		Method:     "pickup",
		PickupDate: date,
		PickupTime: slot,
	})

	assert.True(t, pkgerrors.IsValidation(err))
	assert.Equal(t, checkout.StageDelivery, sess.Stage)
}

func TestSubmitDelivery_MalformedDateRejected(t *testing.T) {
	f := newCheckoutFixture()
	sess := checkoutSessionWithCart(t)

	err := f.svc.SubmitDelivery(context.Background(), sess, DeliveryInput{
		Method:     "pickup",
		PickupDate: "next tuesday",
		PickupTime: "13:00",
	})

	assert.True(t, pkgerrors.IsInvalidInput(err))
}

func TestSubmitContact_GuardRequiresDeliveryStep(t *testing.T) {
	f := newCheckoutFixture()
	sess := checkoutSessionWithCart(t)

	err := f.svc.SubmitContact(context.Background(), sess, ContactInput{})

	assert.True(t, pkgerrors.IsValidation(err))
}

func TestSubmitContact_ResolvesGuestAndTransitions(t *testing.T) {
	// Arrange
	f := newCheckoutFixture()
	sess := checkoutSessionWithCart(t)
	sess.DeliveryMethod = checkout.MethodPickup
	sess.PickupAt = time.Now().Add(48 * time.Hour)
	guest := buyer.Buyer{ID: 5, Email: "guest@test.dk", IsGuest: true}

	f.buyers.On("GetByEmail", mock.Anything, "guest@test.dk").Return(guest, nil)
	f.sessions.On("Save", mock.Anything, sess).Return(nil)

	// Act
	err := f.svc.SubmitContact(context.Background(), sess, ContactInput{
		FirstName: "Gert", LastName: "Gæstesen", Email: "guest@test.dk",
		Phone: 12345678, Street: "Testvej 1", ZipCode: 2000, City: "Frederiksberg",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, checkout.StagePayment, sess.Stage)
	require.NotNil(t, sess.CheckoutBuyer)
	assert.Equal(t, int64(5), sess.CheckoutBuyer.ID)
}

func TestSubmitContact_PickupSubstitutesStoreAddress(t *testing.T) {
	// Arrange: a pickup checkout; the guest leaves the address fields empty.
	f := newCheckoutFixture()
	sess := checkoutSessionWithCart(t)
	sess.DeliveryMethod = checkout.MethodPickup
	sess.PickupAt = time.Now().Add(48 * time.Hour)

	var created buyer.Profile
	f.buyers.On("GetByEmail", mock.Anything, "guest@test.dk").
		Return(buyer.Buyer{}, pkgerrors.NewNotFoundError("no buyer with email guest@test.dk"))
	f.buyers.On("CreateGuest", mock.Anything, mock.AnythingOfType("buyer.Profile")).Run(func(args mock.Arguments) {
		created = args.Get(1).(buyer.Profile)
	}).Return(buyer.Buyer{ID: 7, Email: "guest@test.dk", IsGuest: true}, nil)
	f.sessions.On("Save", mock.Anything, sess).Return(nil)

	// Act
	err := f.svc.SubmitContact(context.Background(), sess, ContactInput{
		FirstName: "Gert", LastName: "Gæstesen", Email: "guest@test.dk", Phone: 12345678,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, checkout.DefaultStoreAddress.Street, created.Street)
	assert.Equal(t, checkout.DefaultStoreAddress.ZipCode, created.ZipCode)
	assert.Equal(t, checkout.DefaultStoreAddress.City, created.City)
	assert.Equal(t, checkout.StagePayment, sess.Stage)
}

func TestSubmitContact_DeliveryStillRequiresAddress(t *testing.T) {
	f := newCheckoutFixture()
	sess := checkoutSessionWithCart(t)
	sess.Stage = checkout.StageContact
	sess.DeliveryMethod = checkout.MethodDelivery
	sess.PickupAt = time.Now().Add(48 * time.Hour)

	err := f.svc.SubmitContact(context.Background(), sess, ContactInput{
		FirstName: "Gert", LastName: "Gæstesen", Email: "guest@test.dk", Phone: 12345678,
	})

	assert.True(t, pkgerrors.IsInvalidInput(err))
	assert.Equal(t, checkout.StageContact, sess.Stage)
}

func TestPayment_ShowsProjectedBalanceForRegisteredBuyer(t *testing.T) {
	f := newCheckoutFixture()
	sess := checkoutSessionWithCart(t)
	sess.DeliveryPrice = decimal.NewFromFloat(5)
	b := registeredBuyer(20)
	sess.CheckoutBuyer = &b

	view, err := f.svc.Payment(sess)

	require.NoError(t, err)
	assert.True(t, view.CanPayNow)
	assert.True(t, view.Total.Equal(decimal.NewFromFloat(15)))
	require.NotNil(t, view.ProjectedBalance)
	assert.True(t, view.ProjectedBalance.Equal(decimal.NewFromFloat(5)))
}

func TestPayment_GuestHasNoBalanceProjection(t *testing.T) {
	f := newCheckoutFixture()
	sess := checkoutSessionWithCart(t)
	sess.CheckoutBuyer = &buyer.Buyer{ID: 5, IsGuest: true}

	view, err := f.svc.Payment(sess)

	require.NoError(t, err)
	assert.False(t, view.CanPayNow)
	assert.Nil(t, view.Balance)
	assert.Nil(t, view.ProjectedBalance)
}

func TestSubmitPayment_PayNowCompletesCheckout(t *testing.T) {
	// Arrange: registered buyer, balance 20, order total 15.
	f := newCheckoutFixture()
	sess := checkoutSessionWithCart(t)
	sess.DeliveryMethod = checkout.MethodDelivery
	sess.PickupAt = time.Now().Add(48 * time.Hour)
	sess.DeliveryPrice = decimal.NewFromFloat(5)
	b := registeredBuyer(20)
	sess.CheckoutBuyer = &b

	f.buyers.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	f.tx.On("WithinTx", mock.Anything).Return()
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).Run(func(args mock.Arguments) {
		args.Get(1).(*order.Order).ID = 42
	}).Return(nil)
	f.buyers.On("DebitBalance", mock.Anything, int64(1), decimal.NewFromFloat(15)).Return(nil)
	f.sessions.On("Save", mock.Anything, sess).Return(nil)

	// Act
	o, err := f.svc.SubmitPayment(context.Background(), sess, true)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(42), o.ID)
	assert.True(t, o.Paid)
	assert.True(t, o.TotalPrice.Equal(decimal.NewFromFloat(15)))
	assert.Equal(t, checkout.StageConfirmed, sess.Stage)
	assert.True(t, sess.Cart.IsEmpty(), "cart is cleared after the order commits")
	require.NotNil(t, sess.CompletedOrder)
}

func TestSubmitPayment_GuestPayNowStaysOnPayment(t *testing.T) {
	f := newCheckoutFixture()
	sess := checkoutSessionWithCart(t)
	guest := buyer.Buyer{ID: 5, IsGuest: true}
	sess.CheckoutBuyer = &guest

	f.buyers.On("GetByID", mock.Anything, int64(5)).Return(guest, nil)

	_, err := f.svc.SubmitPayment(context.Background(), sess, true)

	assert.True(t, pkgerrors.IsValidation(err))
	assert.False(t, sess.Cart.IsEmpty(), "failed payment leaves the cart for retry")
	assert.NotEqual(t, checkout.StageConfirmed, sess.Stage)
}

func TestSubmitPayment_UsesFreshBalance(t *testing.T) {
	// The balance read at the contact step may be stale; payment must
	// consult the current one.
	f := newCheckoutFixture()
	sess := checkoutSessionWithCart(t)
	sess.DeliveryPrice = decimal.NewFromFloat(5)
	stale := registeredBuyer(100)
	sess.CheckoutBuyer = &stale

	f.buyers.On("GetByID", mock.Anything, int64(1)).Return(registeredBuyer(10), nil)

	_, err := f.svc.SubmitPayment(context.Background(), sess, true)

	assert.True(t, pkgerrors.IsValidation(err))
}

func TestConfirmation_RequiresCompletedOrder(t *testing.T) {
	f := newCheckoutFixture()
	sess := checkoutSessionWithCart(t)

	_, err := f.svc.Confirmation(sess)
	assert.True(t, pkgerrors.IsValidation(err))

	sess.Stage = checkout.StageConfirmed
	sess.CompletedOrder = &order.Order{ID: 42}

	o, err := f.svc.Confirmation(sess)
	require.NoError(t, err)
	assert.Equal(t, int64(42), o.ID)
}

func TestRestart_StepsBackToDelivery(t *testing.T) {
	f := newCheckoutFixture()
	sess := checkoutSessionWithCart(t)
	sess.Stage = checkout.StagePayment
	sess.DeliveryMethod = checkout.MethodDelivery
	b := registeredBuyer(20)
	sess.CheckoutBuyer = &b
	f.sessions.On("Save", mock.Anything, sess).Return(nil)

	require.NoError(t, f.svc.Restart(context.Background(), sess))

	assert.Equal(t, checkout.StageDelivery, sess.Stage)
	assert.Nil(t, sess.CheckoutBuyer)
}
