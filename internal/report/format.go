package report

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/partsdesk/pricedb/pkg/raonline"
)

// Delimiter separates fields in report output.
const Delimiter = ";"

const timestampLayout = "2006-01-02 15:04:05"

// offerFields is the canonical field order of a web-service offer row.
var offerFields = []string{
	"PartNumber",
	"Description",
	"ManufacturerShortName",
	"Price",
	"PriceIncludingShipment",
	"Weight",
	"WeightWithPackaging",
	"AverageSupplyTimeCorrected",
	"UpdateDate",
	"IsWeightChecked",
	"Available",
	"AvailabilityTS",
	"SupplierOnlineCode",
}

// groupedExcluded are the internal/noisy fields dropped from grouped output.
var groupedExcluded = map[string]bool{
	"AverageSupplyTimeCorrected": true,
	"UpdateDate":                 true,
	"IsWeightChecked":            true,
	"Available":                  true,
	"AvailabilityTS":             true,
	"SupplierOnlineCode":         true,
}

// reportFields returns the field names emitted for the given mode.
func reportFields(group bool) []string {
	if !group {
		return offerFields
	}
	fields := make([]string, 0, len(offerFields))
	for _, f := range offerFields {
		if !groupedExcluded[f] {
			fields = append(fields, f)
		}
	}
	return fields
}

// OfferHeader renders the report header line for the given mode.
func OfferHeader(group bool) string {
	return strings.Join(reportFields(group), Delimiter)
}

// OfferRow renders a single ungrouped offer as one report row. Numeric fields
// use a comma decimal separator; text fields are emitted verbatim.
func OfferRow(o raonline.PartInfoItem) string {
	values := make([]string, 0, len(offerFields))
	for _, f := range offerFields {
		values = append(values, offerField(o, f))
	}
	return strings.Join(values, Delimiter)
}

func offerField(o raonline.PartInfoItem, name string) string {
	switch name {
	case "PartNumber":
		return o.PartNumber
	case "Description":
		return o.Description
	case "ManufacturerShortName":
		return o.ManufacturerShortName
	case "Price":
		return Comma(o.Price.StringFixed(2))
	case "PriceIncludingShipment":
		return Comma(o.PriceIncludingShipment.StringFixed(2))
	case "Weight":
		return nullDecimalField(o.Weight)
	case "WeightWithPackaging":
		return nullDecimalField(o.WeightWithPackaging)
	case "AverageSupplyTimeCorrected":
		return Comma(o.AverageSupplyTimeCorrected.String())
	case "UpdateDate":
		return o.UpdateDate.Format(timestampLayout)
	case "IsWeightChecked":
		return boolField(o.IsWeightChecked)
	case "Available":
		return boolField(o.Available)
	case "AvailabilityTS":
		return timeField(o.AvailabilityTS)
	case "SupplierOnlineCode":
		return o.SupplierOnlineCode
	}
	return ""
}

func nullDecimalField(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return Comma(d.Decimal.String())
}

func boolField(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func timeField(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampLayout)
}
