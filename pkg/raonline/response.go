package raonline

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// wireTime is the timestamp layout used by the web service.
const wireTime = "2006-01-02 15:04:05"

// PartInfoResponse wraps the offer list returned for one lookup.
type PartInfoResponse struct {
	Items []RawPartInfoItem `json:"items"`
}

// RawPartInfoItem is an offer record exactly as the web service returns it.
// Fields the service may omit are pointers so that validate can tell a
// missing field from a zero value.
type RawPartInfoItem struct {
	PartNumber                 *string          `json:"PartNumber"`
	Description                string           `json:"Description"`
	ManufacturerShortName      *string          `json:"ManufacturerShortName"`
	Price                      *decimal.Decimal `json:"Price"`
	PriceIncludingShipment     *decimal.Decimal `json:"PriceIncludingShipment"`
	Weight                     *decimal.Decimal `json:"Weight"`
	WeightWithPackaging        *decimal.Decimal `json:"WeightWithPackaging"`
	AverageSupplyTimeCorrected *decimal.Decimal `json:"AverageSupplyTimeCorrected"`
	UpdateDate                 *string          `json:"UpdateDate"`
	IsWeightChecked            bool             `json:"IsWeightChecked"`
	Available                  bool             `json:"Available"`
	AvailabilityTS             *string          `json:"AvailabilityTS"`
	SupplierOnlineCode         *string          `json:"SupplierOnlineCode"`
}

// PartInfoItem is a validated offer record. Optional numeric fields that were
// absent on the wire carry their zero value with Valid unset.
type PartInfoItem struct {
	PartNumber                 string
	Description                string
	ManufacturerShortName      string
	Price                      decimal.Decimal
	PriceIncludingShipment     decimal.Decimal
	Weight                     decimal.NullDecimal
	WeightWithPackaging        decimal.NullDecimal
	AverageSupplyTimeCorrected decimal.Decimal
	UpdateDate                 time.Time
	IsWeightChecked            bool
	Available                  bool
	AvailabilityTS             time.Time
	SupplierOnlineCode         string
}

// WarehouseTitle derives the identity string used by title allow-list
// filtering: "RA-{manufacturer short name}-{online code}".
func (i PartInfoItem) WarehouseTitle() string {
	return fmt.Sprintf("RA-%s-%s", i.ManufacturerShortName, i.SupplierOnlineCode)
}

// validate converts a wire record to a PartInfoItem. A record missing any
// required field is rejected as a whole; optional fields default to zero.
func (r RawPartInfoItem) validate() (*PartInfoItem, error) {
	if r.PartNumber == nil {
		return nil, fmt.Errorf("missing PartNumber")
	}
	if r.ManufacturerShortName == nil {
		return nil, fmt.Errorf("missing ManufacturerShortName")
	}
	if r.SupplierOnlineCode == nil {
		return nil, fmt.Errorf("missing SupplierOnlineCode")
	}
	if r.Price == nil {
		return nil, fmt.Errorf("missing Price")
	}
	if r.UpdateDate == nil {
		return nil, fmt.Errorf("missing UpdateDate")
	}
	updated, err := time.Parse(wireTime, *r.UpdateDate)
	if err != nil {
		return nil, fmt.Errorf("invalid UpdateDate %q: %w", *r.UpdateDate, err)
	}

	item := &PartInfoItem{
		PartNumber:            *r.PartNumber,
		Description:           r.Description,
		ManufacturerShortName: *r.ManufacturerShortName,
		Price:                 *r.Price,
		UpdateDate:            updated,
		IsWeightChecked:       r.IsWeightChecked,
		Available:             r.Available,
		SupplierOnlineCode:    *r.SupplierOnlineCode,
	}
	if r.PriceIncludingShipment != nil {
		item.PriceIncludingShipment = *r.PriceIncludingShipment
	}
	if r.Weight != nil {
		item.Weight = decimal.NullDecimal{Decimal: *r.Weight, Valid: true}
	}
	if r.WeightWithPackaging != nil {
		item.WeightWithPackaging = decimal.NullDecimal{Decimal: *r.WeightWithPackaging, Valid: true}
	}
	if r.AverageSupplyTimeCorrected != nil {
		item.AverageSupplyTimeCorrected = *r.AverageSupplyTimeCorrected
	}
	if r.AvailabilityTS != nil {
		ts, err := time.Parse(wireTime, *r.AvailabilityTS)
		if err != nil {
			return nil, fmt.Errorf("invalid AvailabilityTS %q: %w", *r.AvailabilityTS, err)
		}
		item.AvailabilityTS = ts
	}
	return item, nil
}
