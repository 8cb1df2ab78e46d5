package checkout

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "cupcake-backend/pkg/errors"
)

// now is a Wednesday morning.
var testNow = time.Date(2026, time.August, 26, 9, 0, 0, 0, time.UTC)

func rules() *DeliveryRules {
	return NewDeliveryRules(decimal.NewFromFloat(25))
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("delivery")
	require.NoError(t, err)
	assert.Equal(t, MethodDelivery, m)

	m, err = ParseMethod("pickup")
	require.NoError(t, err)
	assert.Equal(t, MethodPickup, m)

	_, err = ParseMethod("teleport")
	assert.True(t, pkgerrors.IsInvalidInput(err))
}

func TestPriceFor(t *testing.T) {
	r := rules()

	assert.True(t, r.PriceFor(MethodDelivery).Equal(decimal.NewFromFloat(25)))
	assert.True(t, r.PriceFor(MethodPickup).IsZero())
}

func TestValidateSlot_ClosedOnMonday(t *testing.T) {
	monday := time.Date(2026, time.August, 31, 13, 0, 0, 0, time.UTC)

	err := rules().ValidateSlot(monday, testNow)

	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Contains(t, err.Error(), "closed on Mondays")
}

func TestValidateSlot_PastDateRejected(t *testing.T) {
	yesterday := time.Date(2026, time.August, 25, 13, 0, 0, 0, time.UTC)

	err := rules().ValidateSlot(yesterday, testNow)

	assert.True(t, pkgerrors.IsValidation(err))
}

func TestValidateSlot_SameDayAllowed(t *testing.T) {
	today := time.Date(2026, time.August, 26, 13, 0, 0, 0, time.UTC)

	assert.NoError(t, rules().ValidateSlot(today, testNow))
}

func TestValidateSlot_WeekdayWindow(t *testing.T) {
	r := rules()
	wednesday := func(h, m int) time.Time {
		return time.Date(2026, time.August, 26, h, m, 0, 0, time.UTC)
	}

	assert.Error(t, r.ValidateSlot(wednesday(12, 0), testNow))
	assert.NoError(t, r.ValidateSlot(wednesday(12, 30), testNow))
	assert.NoError(t, r.ValidateSlot(wednesday(17, 0), testNow))
	assert.Error(t, r.ValidateSlot(wednesday(17, 30), testNow))
}

func TestValidateSlot_WeekendWindow(t *testing.T) {
	r := rules()
	saturday := func(h, m int) time.Time {
		return time.Date(2026, time.August, 29, h, m, 0, 0, time.UTC)
	}

	assert.Error(t, r.ValidateSlot(saturday(9, 59), testNow))
	assert.NoError(t, r.ValidateSlot(saturday(10, 0), testNow))
	assert.NoError(t, r.ValidateSlot(saturday(17, 30), testNow))
	assert.Error(t, r.ValidateSlot(saturday(18, 0), testNow))
}

func TestValidateSlot_WindowMessageNamesHours(t *testing.T) {
	err := rules().ValidateSlot(time.Date(2026, time.August, 26, 9, 0, 0, 0, time.UTC), testNow)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "12:30-17:00")
	assert.Contains(t, err.Error(), "09:00")
}
