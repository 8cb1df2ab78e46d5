package buyer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	pkgerrors "cupcake-backend/pkg/errors"
)

func validProfile() Profile {
	return Profile{
		FirstName: "Hans",
		LastName:  "Hansen",
		Email:     "hans@test.dk",
		Phone:     12345678,
		Street:    "Testvej 1",
		ZipCode:   2000,
		City:      "Frederiksberg",
	}
}

func TestValidateProfile_Valid(t *testing.T) {
	assert.NoError(t, ValidateProfile(validProfile()))
}

func TestValidateProfile_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"short first name", func(p *Profile) { p.FirstName = "H" }},
		{"short last name", func(p *Profile) { p.LastName = " J " }},
		{"empty street", func(p *Profile) { p.Street = "  " }},
		{"zip too low", func(p *Profile) { p.ZipCode = 999 }},
		{"zip too high", func(p *Profile) { p.ZipCode = 10000 }},
		{"short city", func(p *Profile) { p.City = "A" }},
		{"phone too short", func(p *Profile) { p.Phone = 1234567 }},
		{"phone too long", func(p *Profile) { p.Phone = 123456789 }},
		{"bad email", func(p *Profile) { p.Email = "not-an-email" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)

			err := ValidateProfile(p)

			assert.True(t, pkgerrors.IsInvalidInput(err))
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Password1"))

	assert.Error(t, ValidatePassword("Pass1"), "too short")
	assert.Error(t, ValidatePassword("password1"), "no uppercase")
	assert.Error(t, ValidatePassword("Passwords"), "no digit")
}

func TestCanPayNow(t *testing.T) {
	registered := Buyer{Balance: decimal.NewFromFloat(20)}
	guest := Buyer{IsGuest: true}

	assert.True(t, registered.CanPayNow())
	assert.False(t, guest.CanPayNow())
}

func TestSnapshot_CopiesIdentityFields(t *testing.T) {
	b := Buyer{ID: 7, FirstName: "Hans", LastName: "Hansen", Email: "hans@test.dk", Balance: decimal.NewFromFloat(20)}

	s := b.Snapshot()

	assert.Equal(t, int64(7), s.ID)
	assert.Equal(t, "Hans", s.FirstName)
	assert.Equal(t, "Hansen", s.LastName)
	assert.Equal(t, "hans@test.dk", s.Email)
}
