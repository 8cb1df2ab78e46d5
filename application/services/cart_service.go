package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cupcake-backend/application/ports"
	"cupcake-backend/domain/catalog"
	"cupcake-backend/domain/checkout"
)

// CartService mutates the session-scoped shopping cart. Flavors are
// resolved through the catalog before anything touches the cart, so the
// cart only ever holds fully priced cupcakes.
type CartService struct {
	catalogRepo ports.CatalogRepository
	sessions    ports.SessionStore
	logger      *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(
	catalogRepo ports.CatalogRepository,
	sessions ports.SessionStore,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		catalogRepo: catalogRepo,
		sessions:    sessions,
		logger:      logger,
	}
}

// AddLine composes a cupcake from the two flavor ids and merges it into
// the cart: an existing (bottom, topping) line grows by quantity, a new
// composition appends at the end.
func (s *CartService) AddLine(ctx context.Context, sess *checkout.Session, bottomID, toppingID int64, quantity int) error {
	bottom, err := s.catalogRepo.GetBottom(ctx, bottomID)
	if err != nil {
		return err
	}
	topping, err := s.catalogRepo.GetTopping(ctx, toppingID)
	if err != nil {
		return err
	}

	cupcake := catalog.NewCupcake(bottom, topping)
	if err := sess.Cart.AddLine(cupcake, quantity); err != nil {
		return err
	}

	s.logger.Debug("cart line added",
		zap.String("sessionID", sess.ID),
		zap.Int64("bottomID", bottomID),
		zap.Int64("toppingID", toppingID),
		zap.Int("quantity", quantity),
	)

	return s.save(ctx, sess)
}

// RemoveLine drops the line at the given position.
func (s *CartService) RemoveLine(ctx context.Context, sess *checkout.Session, index int) error {
	if err := sess.Cart.RemoveLine(index); err != nil {
		return err
	}
	return s.save(ctx, sess)
}

// IncrementLine raises a line's quantity by one.
func (s *CartService) IncrementLine(ctx context.Context, sess *checkout.Session, index int) error {
	if err := sess.Cart.IncrementLine(index); err != nil {
		return err
	}
	return s.save(ctx, sess)
}

// DecrementLine lowers a line's quantity by one, removing the line when
// it was at one.
func (s *CartService) DecrementLine(ctx context.Context, sess *checkout.Session, index int) error {
	if err := sess.Cart.DecrementLine(index); err != nil {
		return err
	}
	return s.save(ctx, sess)
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, sess *checkout.Session) error {
	sess.Cart.Clear()
	return s.save(ctx, sess)
}

func (s *CartService) save(ctx context.Context, sess *checkout.Session) error {
	sess.Touch(time.Now())
	return s.sessions.Save(ctx, sess)
}
