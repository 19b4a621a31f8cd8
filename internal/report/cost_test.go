package report

import (
	"testing"

	"github.com/shopspring/decimal"
)

func defaultCosts(t *testing.T) CostTable {
	t.Helper()
	return CostTable{
		CostMultiplier:   decimal.RequireFromString("1.03"),
		WeightMultiplier: decimal.RequireFromString("9.8"),
	}
}

func TestCost_AppliesMultiplierAndCommaSeparator(t *testing.T) {
	costs := defaultCosts(t)

	got := costs.Cost(decimal.RequireFromString("100.00"))
	if got != "103,00" {
		t.Fatalf("expected 103,00, got %q", got)
	}
}

func TestCost_RoundsHalfAwayFromZero(t *testing.T) {
	costs := defaultCosts(t)

	// 12.50 * 1.03 = 12.875 -> 12.88
	got := costs.Cost(decimal.RequireFromString("12.50"))
	if got != "12,88" {
		t.Fatalf("expected 12,88, got %q", got)
	}
}

func TestCostWithWeight_AddsPerKgSurcharge(t *testing.T) {
	costs := defaultCosts(t)

	weight := decimal.NullDecimal{Decimal: decimal.RequireFromString("10.000"), Valid: true}
	got := costs.CostWithWeight(decimal.RequireFromString("100.00"), weight)
	// 100*1.03 + 10*9.8 = 103 + 98 = 201
	if got != "201,00" {
		t.Fatalf("expected 201,00, got %q", got)
	}
}

func TestCostWithWeight_MissingWeightContributesNothing(t *testing.T) {
	costs := defaultCosts(t)

	got := costs.CostWithWeight(decimal.RequireFromString("100.00"), decimal.NullDecimal{})
	if got != "103,00" {
		t.Fatalf("expected 103,00, got %q", got)
	}
}

func TestComma_OnlyFirstPeriod(t *testing.T) {
	if got := Comma("1234.56"); got != "1234,56" {
		t.Fatalf("expected 1234,56, got %q", got)
	}
}
