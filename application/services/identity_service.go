package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"cupcake-backend/application/ports"
	"cupcake-backend/domain/buyer"
	pkgerrors "cupcake-backend/pkg/errors"
)

// IdentityService owns buyer accounts: registration, login, guest
// resolution during checkout, and the admin-facing customer views.
type IdentityService struct {
	buyers ports.BuyerRepository
	logger *zap.Logger
}

// NewIdentityService creates a new identity service
func NewIdentityService(buyers ports.BuyerRepository, logger *zap.Logger) *IdentityService {
	return &IdentityService{
		buyers: buyers,
		logger: logger,
	}
}

// Authenticate verifies an email/password pair and returns the buyer on
// success. A missing account and a wrong password produce the same
// Unauthorized error so the response leaks nothing about which it was.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (buyer.Buyer, error) {
	b, hash, err := s.buyers.GetCredentials(ctx, normalizeEmail(email))
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return buyer.Buyer{}, pkgerrors.NewUnauthorizedError("wrong email or password")
		}
		return buyer.Buyer{}, err
	}
	if hash == "" {
		// Guest accounts have no password and cannot log in.
		return buyer.Buyer{}, pkgerrors.NewUnauthorizedError("wrong email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return buyer.Buyer{}, pkgerrors.NewUnauthorizedError("wrong email or password")
	}

	s.logger.Info("buyer authenticated", zap.Int64("buyerID", b.ID))
	return b, nil
}

// Register creates a registered buyer account. The email must be unused,
// the two password fields must match and the password must satisfy the
// store policy.
func (s *IdentityService) Register(ctx context.Context, p buyer.Profile, password, passwordRepeat string) (buyer.Buyer, error) {
	p.Email = normalizeEmail(p.Email)
	if err := buyer.ValidateProfile(p); err != nil {
		return buyer.Buyer{}, err
	}
	if password != passwordRepeat {
		return buyer.Buyer{}, pkgerrors.NewInvalidInputError("the two passwords do not match")
	}
	if err := buyer.ValidatePassword(password); err != nil {
		return buyer.Buyer{}, err
	}

	if _, err := s.buyers.GetByEmail(ctx, p.Email); err == nil {
		return buyer.Buyer{}, pkgerrors.NewConflictError("an account with that email already exists")
	} else if !pkgerrors.IsNotFound(err) {
		return buyer.Buyer{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return buyer.Buyer{}, pkgerrors.NewInternalError("failed to hash password", err)
	}

	b, err := s.buyers.CreateRegistered(ctx, p, string(hash))
	if err != nil {
		return buyer.Buyer{}, err
	}

	s.logger.Info("buyer registered", zap.Int64("buyerID", b.ID), zap.String("email", b.Email))
	return b, nil
}

// ResolveGuest returns the buyer to attach to a checkout for a visitor
// who filled in contact details instead of logging in. An existing
// account with the same email is reused as-is; otherwise a guest record
// is created. Repeating checkout with the same email therefore never
// produces duplicate buyers.
func (s *IdentityService) ResolveGuest(ctx context.Context, p buyer.Profile) (buyer.Buyer, error) {
	p.Email = normalizeEmail(p.Email)
	if err := buyer.ValidateProfile(p); err != nil {
		return buyer.Buyer{}, err
	}

	existing, err := s.buyers.GetByEmail(ctx, p.Email)
	if err == nil {
		return existing, nil
	}
	if !pkgerrors.IsNotFound(err) {
		return buyer.Buyer{}, err
	}

	b, err := s.buyers.CreateGuest(ctx, p)
	if err != nil {
		return buyer.Buyer{}, err
	}

	s.logger.Info("guest buyer created", zap.Int64("buyerID", b.ID))
	return b, nil
}

// GetBuyer loads a buyer by id.
func (s *IdentityService) GetBuyer(ctx context.Context, id int64) (buyer.Buyer, error) {
	return s.buyers.GetByID(ctx, id)
}

// ListCustomers returns every non-admin buyer, for the admin customer
// overview.
func (s *IdentityService) ListCustomers(ctx context.Context, actorID int64) ([]buyer.Buyer, error) {
	if err := requireAdmin(ctx, s.buyers, actorID); err != nil {
		return nil, err
	}
	return s.buyers.ListCustomers(ctx)
}

// SearchCustomers filters the customer list by a case-insensitive match
// on name or email.
func (s *IdentityService) SearchCustomers(ctx context.Context, actorID int64, query string) ([]buyer.Buyer, error) {
	customers, err := s.ListCustomers(ctx, actorID)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return customers, nil
	}

	matched := make([]buyer.Buyer, 0, len(customers))
	for _, c := range customers {
		name := strings.ToLower(c.FirstName + " " + c.LastName)
		if strings.Contains(name, q) || strings.Contains(strings.ToLower(c.Email), q) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// AddBalance credits a registered customer's account. Guests cannot hold
// a balance.
func (s *IdentityService) AddBalance(ctx context.Context, actorID, buyerID int64, amount decimal.Decimal) (buyer.Buyer, error) {
	if err := requireAdmin(ctx, s.buyers, actorID); err != nil {
		return buyer.Buyer{}, err
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return buyer.Buyer{}, pkgerrors.NewInvalidInputError("amount must be positive")
	}

	target, err := s.buyers.GetByID(ctx, buyerID)
	if err != nil {
		return buyer.Buyer{}, err
	}
	if target.IsGuest {
		return buyer.Buyer{}, pkgerrors.NewValidationError("guest accounts cannot hold a balance")
	}

	if err := s.buyers.CreditBalance(ctx, buyerID, amount); err != nil {
		return buyer.Buyer{}, err
	}

	s.logger.Info("balance credited",
		zap.Int64("buyerID", buyerID),
		zap.String("amount", amount.String()),
	)
	return s.buyers.GetByID(ctx, buyerID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
