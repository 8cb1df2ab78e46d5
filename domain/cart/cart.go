package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"cupcake-backend/domain/catalog"
	pkgerrors "cupcake-backend/pkg/errors"
)

// OrderLine is a quantity of identical cupcakes within a cart or order.
// ID is assigned on persistence and stays 0 while the line is in a cart.
type OrderLine struct {
	ID       int64           `json:"id"`
	Cupcake  catalog.Cupcake `json:"cupcake"`
	Quantity int             `json:"quantity"`
}

// LinePrice returns quantity x the cupcake's frozen price.
func (l OrderLine) LinePrice() decimal.Decimal {
	return l.Cupcake.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ShoppingCart is a mutable aggregate owned exclusively by one session.
// It holds at most one line per distinct (bottom, topping) composition;
// adding an existing composition increases that line's quantity.
type ShoppingCart struct {
	Lines []OrderLine `json:"lines"`
}

// New returns an empty cart.
func New() *ShoppingCart {
	return &ShoppingCart{Lines: []OrderLine{}}
}

// AddLine merges the cupcake into an existing line with the same
// composition, or appends a new line at the end. Line order is preserved.
func (c *ShoppingCart) AddLine(cupcake catalog.Cupcake, quantity int) error {
	if quantity < 1 {
		return pkgerrors.NewInvalidInputError("quantity must be a positive integer")
	}

	for i := range c.Lines {
		if c.Lines[i].Cupcake.SameComposition(cupcake) {
			c.Lines[i].Quantity += quantity
			return nil
		}
	}

	c.Lines = append(c.Lines, OrderLine{Cupcake: cupcake, Quantity: quantity})
	return nil
}

// RemoveLine removes the line at the given position.
func (c *ShoppingCart) RemoveLine(index int) error {
	if index < 0 || index >= len(c.Lines) {
		return pkgerrors.NewInvalidInputError(fmt.Sprintf("no cart line at position %d", index))
	}
	c.Lines = append(c.Lines[:index], c.Lines[index+1:]...)
	return nil
}

// IncrementLine raises the quantity of the line at index by one.
func (c *ShoppingCart) IncrementLine(index int) error {
	if index < 0 || index >= len(c.Lines) {
		return pkgerrors.NewInvalidInputError(fmt.Sprintf("no cart line at position %d", index))
	}
	c.Lines[index].Quantity++
	return nil
}

// DecrementLine lowers the quantity of the line at index by one.
// A line at quantity 1 is removed entirely; quantities never reach zero.
func (c *ShoppingCart) DecrementLine(index int) error {
	if index < 0 || index >= len(c.Lines) {
		return pkgerrors.NewInvalidInputError(fmt.Sprintf("no cart line at position %d", index))
	}
	if c.Lines[index].Quantity <= 1 {
		return c.RemoveLine(index)
	}
	c.Lines[index].Quantity--
	return nil
}

// TotalPrice folds over the current lines; nothing is cached.
func (c *ShoppingCart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.LinePrice())
	}
	return total
}

// TotalQuantity returns the number of cupcakes across all lines.
func (c *ShoppingCart) TotalQuantity() int {
	var total int
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *ShoppingCart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clear empties the cart. Idempotent.
func (c *ShoppingCart) Clear() {
	c.Lines = []OrderLine{}
}
