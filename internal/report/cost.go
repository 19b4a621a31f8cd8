package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// All report rounding is decimal round-half-away-from-zero, which matches the
// integer-cent rule round(x*100)/100 for the positive amounts that occur here.

// CostTable holds the markup constants applied when computing landed cost.
type CostTable struct {
	CostMultiplier   decimal.Decimal // applied to every price
	WeightMultiplier decimal.Decimal // per-kg surcharge for the weight-adjusted cost
}

// Cost renders the landed cost for a price: price times the cost multiplier,
// rounded to cents, with a comma decimal separator.
func (t CostTable) Cost(price decimal.Decimal) string {
	return Comma(price.Mul(t.CostMultiplier).Round(2).StringFixed(2))
}

// CostWithWeight renders the weight-adjusted landed cost: the plain landed
// cost plus weight times the per-kg surcharge. A missing weight contributes
// nothing.
func (t CostTable) CostWithWeight(price decimal.Decimal, weight decimal.NullDecimal) string {
	total := price.Mul(t.CostMultiplier)
	if weight.Valid {
		total = total.Add(weight.Decimal.Mul(t.WeightMultiplier))
	}
	return Comma(total.Round(2).StringFixed(2))
}

// Comma swaps the period decimal separator for a comma. It is applied only to
// strings already known to be numeric renderings, never to free text.
func Comma(numeric string) string {
	return strings.Replace(numeric, ".", ",", 1)
}
