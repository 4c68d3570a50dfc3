package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrNegativeQuantity = errors.New("cart line quantity must not be negative")

// CartLine is one product row of the cart captured at checkout time
type CartLine struct {
	CartItemID  int64           `json:"cart_item_id,omitempty"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int32           `json:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity))
}

// ComputeTotal sums unit price times quantity over all lines. An empty list totals zero.
func ComputeTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// NormalizeLines drops lines with zero quantity and rejects negative ones.
// The input slice is not modified.
func NormalizeLines(lines []CartLine) ([]CartLine, error) {
	out := make([]CartLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 0 {
			return nil, fmt.Errorf("product %d: %w", line.ProductID, ErrNegativeQuantity)
		}
		if line.Quantity == 0 {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}
