// Package pricing derives cart and order totals. Amounts are summed as exact
// decimals and rounded to 2 places only at the end; nothing here is ever
// persisted as a source of truth.
package pricing

import (
	"github.com/shopspring/decimal"

	"verdora/internal/domain"
)

// VATRate is the Italian standard rate applied to every order.
var VATRate = decimal.RequireFromString("0.22")

type Item struct {
	Price    float64
	Quantity int
}

type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Subtotal is the unrounded sum of price * quantity over the items.
func Subtotal(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		sum = sum.Add(line)
	}
	return sum
}

// Compute derives subtotal, tax and total, rounding each once after all
// arithmetic is done.
func Compute(items []Item) Totals {
	sub := Subtotal(items)
	tax := sub.Mul(VATRate)
	return Totals{
		Subtotal: sub.Round(2),
		Tax:      tax.Round(2),
		Total:    sub.Add(tax).Round(2),
	}
}

func FromCartLines(lines []domain.CartLine) []Item {
	out := make([]Item, 0, len(lines))
	for _, l := range lines {
		out = append(out, Item{Price: l.Price, Quantity: l.Quantity})
	}
	return out
}

func FromOrderLines(lines []domain.OrderLine) []Item {
	out := make([]Item, 0, len(lines))
	for _, l := range lines {
		out = append(out, Item{Price: l.Price, Quantity: l.Quantity})
	}
	return out
}

// Format renders an amount the way the shop displays prices.
func Format(d decimal.Decimal) string {
	return "€ " + d.StringFixed(2)
}
