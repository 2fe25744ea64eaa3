package cart

import (
	"github.com/shopspring/decimal"

	"github.com/craftvine/craftvine-backend/pkg/db/models"
)

// TotalCents computes the cart total from its lines: quantity times unit
// price, summed, rounded half away from zero to whole cents. Lines whose
// product is not loaded contribute nothing; the read path always preloads
// products, so a nil product means the row was deleted out from under the
// cart and pricing it would be a guess.
func TotalCents(items []models.CartItem) int64 {
	sum := decimal.Zero
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		line := item.Quantity.Mul(decimal.NewFromInt(int64(item.Product.PriceCents)))
		sum = sum.Add(line)
	}
	return sum.Round(0).IntPart()
}
