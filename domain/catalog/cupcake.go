package catalog

import "github.com/shopspring/decimal"

// Cupcake is a priced composition of one bottom and one topping. The price
// is computed once at construction and never recomputed: a later catalog
// price change does not retroactively change cupcakes already placed in a
// cart or order.
type Cupcake struct {
	Bottom  Bottom          `json:"bottom"`
	Topping Topping         `json:"topping"`
	Price   decimal.Decimal `json:"price"`
}

// NewCupcake composes a cupcake and pins its price at composition time.
func NewCupcake(bottom Bottom, topping Topping) Cupcake {
	return Cupcake{
		Bottom:  bottom,
		Topping: topping,
		Price:   bottom.Price.Add(topping.Price),
	}
}

// SameComposition reports whether two cupcakes share the same
// (bottom, topping) pair. Prices are deliberately not compared: a cart
// line is identified by composition, not by what it cost when added.
func (c Cupcake) SameComposition(other Cupcake) bool {
	return c.Bottom.ID == other.Bottom.ID && c.Topping.ID == other.Topping.ID
}
