package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRecord is one quoted price for one part number from one supplier.
// At most one row exists per (supplier, part number) pair; the full-replace
// import maintains that invariant. Money and weight fields are fixed-point
// decimals so that cent-level arithmetic never drifts.
type PriceRecord struct {
	ID             int                 `db:"id"`
	SupplierID     int                 `db:"supplier_id"`
	PartNumber     string              `db:"part_number"`
	Description    *string             `db:"description"`
	DescriptionExt *string             `db:"description_ext"`
	Price          decimal.Decimal     `db:"price"`
	PriceDate      time.Time           `db:"price_date"`
	Origin         *string             `db:"origin"`
	Weight         decimal.NullDecimal `db:"weight"`
	WeightVolume   decimal.NullDecimal `db:"weight_volume"`
	Length         decimal.NullDecimal `db:"length"`
	Width          decimal.NullDecimal `db:"width"`
	Height         decimal.NullDecimal `db:"height"`
	Reserved       *string             `db:"reserved"`
}

// Quotation is a PriceRecord joined with its supplier title, as returned by
// cheapest-quote lookups.
type Quotation struct {
	PriceRecord
	SupplierTitle string `db:"supplier_title"`
}
