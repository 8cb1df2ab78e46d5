package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cupcake-backend/domain/catalog"
	pkgerrors "cupcake-backend/pkg/errors"
)

func vanillaChocolate() catalog.Cupcake {
	return catalog.NewCupcake(
		catalog.Bottom{ID: 1, Name: "Vanilla", Price: decimal.NewFromFloat(3)},
		catalog.Topping{ID: 2, Name: "Chocolate", Price: decimal.NewFromFloat(2)},
	)
}

func nutmegBlueberry() catalog.Cupcake {
	return catalog.NewCupcake(
		catalog.Bottom{ID: 3, Name: "Nutmeg", Price: decimal.NewFromFloat(5)},
		catalog.Topping{ID: 4, Name: "Blueberry", Price: decimal.NewFromFloat(5)},
	)
}

func TestAddLine_MergesSameComposition(t *testing.T) {
	// Arrange
	c := New()
	require.NoError(t, c.AddLine(vanillaChocolate(), 2))
	require.NoError(t, c.AddLine(nutmegBlueberry(), 1))

	// Act
	err := c.AddLine(vanillaChocolate(), 3)

	// Assert
	require.NoError(t, err)
	assert.Len(t, c.Lines, 2)
	assert.Equal(t, 5, c.Lines[0].Quantity)
	assert.Equal(t, 1, c.Lines[1].Quantity)
}

func TestAddLine_PreservesLineOrder(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(vanillaChocolate(), 1))
	require.NoError(t, c.AddLine(nutmegBlueberry(), 1))

	require.NoError(t, c.AddLine(nutmegBlueberry(), 1))

	assert.Equal(t, int64(1), c.Lines[0].Cupcake.Bottom.ID)
	assert.Equal(t, int64(3), c.Lines[1].Cupcake.Bottom.ID)
}

func TestAddLine_RejectsNonPositiveQuantity(t *testing.T) {
	c := New()

	for _, qty := range []int{0, -1} {
		err := c.AddLine(vanillaChocolate(), qty)
		assert.True(t, pkgerrors.IsInvalidInput(err))
	}
	assert.True(t, c.IsEmpty())
}

func TestRemoveLine_OutOfRange(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(vanillaChocolate(), 1))

	assert.True(t, pkgerrors.IsInvalidInput(c.RemoveLine(-1)))
	assert.True(t, pkgerrors.IsInvalidInput(c.RemoveLine(1)))
	assert.Len(t, c.Lines, 1)
}

func TestDecrementLine_RemovesAtQuantityOne(t *testing.T) {
	// Arrange
	c := New()
	require.NoError(t, c.AddLine(vanillaChocolate(), 2))
	require.NoError(t, c.AddLine(nutmegBlueberry(), 1))

	// Act
	err := c.DecrementLine(1)

	// Assert
	require.NoError(t, err)
	assert.Len(t, c.Lines, 1)
	assert.Equal(t, int64(1), c.Lines[0].Cupcake.Bottom.ID)
}

func TestDecrementLine_LowersQuantity(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(vanillaChocolate(), 3))

	require.NoError(t, c.DecrementLine(0))

	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestIncrementLine(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(vanillaChocolate(), 1))

	require.NoError(t, c.IncrementLine(0))

	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestTotalPrice_SumsLinePrices(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(vanillaChocolate(), 2)) // 2 x 5.00
	require.NoError(t, c.AddLine(nutmegBlueberry(), 1))  // 1 x 10.00

	assert.True(t, c.TotalPrice().Equal(decimal.NewFromFloat(20)))
	assert.Equal(t, 3, c.TotalQuantity())
}

func TestTotalPrice_EmptyCartIsZero(t *testing.T) {
	c := New()

	assert.True(t, c.TotalPrice().IsZero())
	assert.Equal(t, 0, c.TotalQuantity())
}

func TestTotalPrice_RecomputedAfterMutation(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(vanillaChocolate(), 2))
	require.NoError(t, c.DecrementLine(0))

	assert.True(t, c.TotalPrice().Equal(decimal.NewFromFloat(5)))
}

func TestClear_Idempotent(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(vanillaChocolate(), 2))

	c.Clear()
	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.True(t, c.TotalPrice().IsZero())
}

func TestLinePrice_PinnedAgainstCatalogChange(t *testing.T) {
	// Arrange
	bottom := catalog.Bottom{ID: 1, Name: "Vanilla", Price: decimal.NewFromFloat(3)}
	topping := catalog.Topping{ID: 2, Name: "Chocolate", Price: decimal.NewFromFloat(2)}
	c := New()
	require.NoError(t, c.AddLine(catalog.NewCupcake(bottom, topping), 2))

	// Act: a later catalog reprice must not touch the existing line.
	bottom.Price = decimal.NewFromFloat(99)

	// Assert
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromFloat(10)))
}
