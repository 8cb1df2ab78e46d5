package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Bottom is an immutable catalog entry for a cupcake base flavor.
// Identity is the id; the flavor name is unique across bottoms.
type Bottom struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Topping is an immutable catalog entry for a cupcake topping flavor.
type Topping struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Slug returns a lowercase ascii identifier derived from the flavor name,
// used by the storefront for image file names.
func (b Bottom) Slug() string {
	return slugify(b.Name)
}

// Slug returns a lowercase ascii identifier derived from the flavor name.
func (t Topping) Slug() string {
	return slugify(t.Name)
}

var slugReplacer = strings.NewReplacer(
	"å", "aa",
	"æ", "ae",
	"ø", "oe",
	" ", "",
	"/", "",
)

func slugify(name string) string {
	s := slugReplacer.Replace(strings.ToLower(name))
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
