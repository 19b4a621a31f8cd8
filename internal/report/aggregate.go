// Package report turns quotations and web-service offers into delimited,
// locale-formatted report lines. Aggregation of offer groups lives here too.
package report

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/partsdesk/pricedb/pkg/raonline"
)

// AggregatedOffer collapses every retained offer of one part-number query
// into a single averaged row. Price fields average over the whole group;
// weight fields average only over the members that actually carry a value.
// All remaining fields copy verbatim from the first member.
type AggregatedOffer struct {
	First                  raonline.PartInfoItem
	Price                  decimal.Decimal
	PriceIncludingShipment decimal.Decimal
	Weight                 decimal.NullDecimal
	WeightWithPackaging    decimal.NullDecimal
}

// Aggregate builds the averaged row for a non-empty offer group.
//
// Price and PriceIncludingShipment divide by the full group size; an offer
// that lacked a shipment-inclusive price contributes zero to the sum, which
// deliberately drags the mean down. Weights divide only by the count of
// members with a value, and stay at their zero default when no member has
// one. Money rounds to 2 places, weights to 3, half away from zero.
func Aggregate(offers []raonline.PartInfoItem) AggregatedOffer {
	agg := AggregatedOffer{First: offers[0]}
	size := decimal.NewFromInt(int64(len(offers)))

	var (
		price, shipPrice   decimal.Decimal
		weightSum, packSum decimal.Decimal
		weightCnt, packCnt int64
	)
	for _, o := range offers {
		price = price.Add(o.Price)
		shipPrice = shipPrice.Add(o.PriceIncludingShipment)
		if o.Weight.Valid {
			weightSum = weightSum.Add(o.Weight.Decimal)
			weightCnt++
		}
		if o.WeightWithPackaging.Valid {
			packSum = packSum.Add(o.WeightWithPackaging.Decimal)
			packCnt++
		}
	}

	agg.Price = price.Div(size).Round(2)
	agg.PriceIncludingShipment = shipPrice.Div(size).Round(2)
	if weightCnt > 0 {
		agg.Weight = decimal.NullDecimal{
			Decimal: weightSum.Div(decimal.NewFromInt(weightCnt)).Round(3),
			Valid:   true,
		}
	}
	if packCnt > 0 {
		agg.WeightWithPackaging = decimal.NullDecimal{
			Decimal: packSum.Div(decimal.NewFromInt(packCnt)).Round(3),
			Valid:   true,
		}
	}
	return agg
}

// GroupRow renders an aggregated offer as one report row in the grouped field
// order. Averaged fields use their own rendering; everything else comes from
// the first group member.
func (a AggregatedOffer) GroupRow() string {
	fields := reportFields(true)
	values := make([]string, 0, len(fields))
	for _, f := range fields {
		switch f {
		case "Price":
			values = append(values, Comma(a.Price.StringFixed(2)))
		case "PriceIncludingShipment":
			values = append(values, Comma(a.PriceIncludingShipment.StringFixed(2)))
		case "Weight":
			values = append(values, groupWeightField(a.Weight))
		case "WeightWithPackaging":
			values = append(values, groupWeightField(a.WeightWithPackaging))
		default:
			values = append(values, offerField(a.First, f))
		}
	}
	return strings.Join(values, Delimiter)
}

// groupWeightField renders an averaged weight, or the literal zero default
// when no group member carried the field.
func groupWeightField(d decimal.NullDecimal) string {
	if !d.Valid {
		return "0"
	}
	return Comma(d.Decimal.StringFixed(3))
}
