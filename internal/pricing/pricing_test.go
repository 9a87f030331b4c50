package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"verdora/internal/domain"
	"verdora/internal/pricing"
)

func TestComputeEndToEnd(t *testing.T) {
	// product A 10.00 x2, product B 5.50 x1
	items := []pricing.Item{
		{Price: 10.00, Quantity: 2},
		{Price: 5.50, Quantity: 1},
	}
	tot := pricing.Compute(items)

	if got := tot.Subtotal.StringFixed(2); got != "25.50" {
		t.Fatalf("subtotal: want 25.50, got %s", got)
	}
	if got := tot.Tax.StringFixed(2); got != "5.61" {
		t.Fatalf("tax: want 5.61, got %s", got)
	}
	if got := tot.Total.StringFixed(2); got != "31.11" {
		t.Fatalf("total: want 31.11, got %s", got)
	}
}

// Rounding must happen once at the end, not per line: summing rounded lines
// gives a different (wrong) result for half-cent prices.
func TestSubtotalRoundsOnce(t *testing.T) {
	items := []pricing.Item{
		{Price: 1.115, Quantity: 1},
		{Price: 1.115, Quantity: 1},
	}

	sub := pricing.Subtotal(items)
	if got := sub.Round(2).StringFixed(2); got != "2.23" {
		t.Fatalf("sum-then-round: want 2.23, got %s", got)
	}

	// rounding each line first would yield 1.12 + 1.12 = 2.24
	perLine := decimal.NewFromFloat(1.115).Round(2).Mul(decimal.NewFromInt(2))
	if perLine.StringFixed(2) == sub.Round(2).StringFixed(2) {
		t.Fatal("expected per-line rounding to diverge from sum-then-round")
	}
}

func TestComputeEmpty(t *testing.T) {
	tot := pricing.Compute(nil)
	if !tot.Subtotal.IsZero() || !tot.Tax.IsZero() || !tot.Total.IsZero() {
		t.Fatalf("empty cart should be all zeros, got %+v", tot)
	}
}

func TestFromCartLines(t *testing.T) {
	lines := []domain.CartLine{
		{ID: "l1", ProductID: "p1", Price: 3.90, Quantity: 4},
	}
	items := pricing.FromCartLines(lines)
	if len(items) != 1 || items[0].Price != 3.90 || items[0].Quantity != 4 {
		t.Fatalf("bad items: %+v", items)
	}
	if got := pricing.Compute(items).Subtotal.StringFixed(2); got != "15.60" {
		t.Fatalf("subtotal: want 15.60, got %s", got)
	}
}

func TestFormat(t *testing.T) {
	if got := pricing.Format(decimal.NewFromFloat(12.5)); got != "€ 12.50" {
		t.Fatalf("format: got %q", got)
	}
}
