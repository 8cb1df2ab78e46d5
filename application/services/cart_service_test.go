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

	"cupcake-backend/domain/catalog"
	"cupcake-backend/domain/checkout"
	pkgerrors "cupcake-backend/pkg/errors"
)

func newCartFixture() (*CartService, *MockCatalogRepository, *MockSessionStore) {
	catalogRepo := new(MockCatalogRepository)
	sessions := new(MockSessionStore)
	return NewCartService(catalogRepo, sessions, zap.NewNop()), catalogRepo, sessions
}

func TestCartAddLine_ResolvesFlavorsAndSaves(t *testing.T) {
	// Arrange
	svc, catalogRepo, sessions := newCartFixture()
	sess := checkout.NewSession("sess-1", time.Now())

	catalogRepo.On("GetBottom", mock.Anything, int64(1)).
		Return(catalog.Bottom{ID: 1, Name: "Vanilla", Price: decimal.NewFromFloat(3)}, nil)
	catalogRepo.On("GetTopping", mock.Anything, int64(2)).
		Return(catalog.Topping{ID: 2, Name: "Chocolate", Price: decimal.NewFromFloat(2)}, nil)
	sessions.On("Save", mock.Anything, sess).Return(nil)

	// Act
	err := svc.AddLine(context.Background(), sess, 1, 2, 2)

	// Assert
	require.NoError(t, err)
	require.Len(t, sess.Cart.Lines, 1)
	assert.True(t, sess.Cart.Lines[0].Cupcake.Price.Equal(decimal.NewFromFloat(5)))
	assert.True(t, sess.Cart.TotalPrice().Equal(decimal.NewFromFloat(10)))
	sessions.AssertExpectations(t)
}

func TestCartAddLine_UnknownFlavorNotFound(t *testing.T) {
	svc, catalogRepo, _ := newCartFixture()
	sess := checkout.NewSession("sess-1", time.Now())

	catalogRepo.On("GetBottom", mock.Anything, int64(404)).
		Return(catalog.Bottom{}, pkgerrors.NewNotFoundError("bottom flavor 404 not found"))

	err := svc.AddLine(context.Background(), sess, 404, 2, 1)

	assert.True(t, pkgerrors.IsNotFound(err))
	assert.True(t, sess.Cart.IsEmpty())
}

func TestCartDecrementLine_RemovesLastItemAndSaves(t *testing.T) {
	svc, _, sessions := newCartFixture()
	sess := checkout.NewSession("sess-1", time.Now())
	cupcake := catalog.NewCupcake(
		catalog.Bottom{ID: 1, Price: decimal.NewFromFloat(3)},
		catalog.Topping{ID: 2, Price: decimal.NewFromFloat(2)},
	)
	require.NoError(t, sess.Cart.AddLine(cupcake, 1))
	sessions.On("Save", mock.Anything, sess).Return(nil)

	err := svc.DecrementLine(context.Background(), sess, 0)

	require.NoError(t, err)
	assert.True(t, sess.Cart.IsEmpty())
}

func TestCartRemoveLine_BadIndexDoesNotSave(t *testing.T) {
	svc, _, sessions := newCartFixture()
	sess := checkout.NewSession("sess-1", time.Now())

	err := svc.RemoveLine(context.Background(), sess, 3)

	assert.True(t, pkgerrors.IsInvalidInput(err))
	sessions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCartClear_SavesEmptyCart(t *testing.T) {
	svc, _, sessions := newCartFixture()
	sess := checkout.NewSession("sess-1", time.Now())
	cupcake := catalog.NewCupcake(
		catalog.Bottom{ID: 1, Price: decimal.NewFromFloat(3)},
		catalog.Topping{ID: 2, Price: decimal.NewFromFloat(2)},
	)
	require.NoError(t, sess.Cart.AddLine(cupcake, 4))
	sessions.On("Save", mock.Anything, sess).Return(nil)

	require.NoError(t, svc.Clear(context.Background(), sess))

	assert.True(t, sess.Cart.IsEmpty())
}
