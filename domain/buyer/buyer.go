package buyer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "cupcake-backend/pkg/errors"
)

// Buyer is a purchaser identity: a registered customer, a guest resolved
// during checkout, or a staff account with the admin flag set. Guests carry
// no usable balance and can only pay at pickup.
type Buyer struct {
	ID        int64           `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email"`
	Phone     int             `json:"phone"`
	Street    string          `json:"street"`
	ZipCode   int             `json:"zipCode"`
	City      string          `json:"city"`
	Balance   decimal.Decimal `json:"balance"`
	IsGuest   bool            `json:"isGuest"`
	IsAdmin   bool            `json:"isAdmin"`
}

// Snapshot is the slice of buyer identity frozen into a persisted order.
type Snapshot struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Snapshot returns the identity fields an order keeps a copy of.
func (b Buyer) Snapshot() Snapshot {
	return Snapshot{
		ID:        b.ID,
		FirstName: b.FirstName,
		LastName:  b.LastName,
		Email:     b.Email,
	}
}

// CanPayNow reports whether this buyer holds a debitable account balance.
func (b Buyer) CanPayNow() bool {
	return !b.IsGuest
}

// Profile is the contact information collected during checkout or
// registration, before it is resolved into a Buyer.
type Profile struct {
	FirstName string
	LastName  string
	Email     string
	Phone     int
	Street    string
	ZipCode   int
	City      string
}

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// ValidateProfile enforces the store's contact rules: names and city at
// least two characters, a Danish four-digit zip code, an eight-digit phone
// number, a non-empty street and a well-formed email.
func ValidateProfile(p Profile) error {
	if len(strings.TrimSpace(p.FirstName)) < 2 || len(strings.TrimSpace(p.LastName)) < 2 {
		return pkgerrors.NewInvalidInputError("first and last name must be at least 2 characters")
	}
	if strings.TrimSpace(p.Street) == "" {
		return pkgerrors.NewInvalidInputError("street must not be empty")
	}
	if p.ZipCode < 1000 || p.ZipCode > 9999 {
		return pkgerrors.NewInvalidInputError("zip code must be between 1000 and 9999")
	}
	if len(strings.TrimSpace(p.City)) < 2 {
		return pkgerrors.NewInvalidInputError("city must be at least 2 characters")
	}
	if p.Phone < 10000000 || p.Phone > 99999999 {
		return pkgerrors.NewInvalidInputError("phone number must be 8 digits")
	}
	if !emailPattern.MatchString(p.Email) {
		return pkgerrors.NewInvalidInputError("email address is not valid")
	}
	return nil
}

// ValidatePassword enforces the registration password policy: at least
// eight characters, one uppercase letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return pkgerrors.NewInvalidInputError("password must be at least 8 characters")
	}
	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper {
		return pkgerrors.NewInvalidInputError("password must contain an uppercase letter")
	}
	if !hasDigit {
		return pkgerrors.NewInvalidInputError("password must contain a digit")
	}
	return nil
}
