// Package importer loads supplier price lists from spreadsheet files into the
// record store, replacing any prior rows of the same supplier.
package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/partsdesk/pricedb/internal/models"
	"github.com/partsdesk/pricedb/internal/repository"
	"github.com/partsdesk/pricedb/internal/utils"
)

// dateFormats are the quotation date layouts accepted in price lists.
var dateFormats = []string{"2006-01-02", "02.01.2006", "2006-01-02 15:04:05", "01-02-06"}

// Importer maps spreadsheet columns to price record fields and bulk-loads the
// rows tagged with their supplier.
type Importer struct {
	suppliers *repository.SupplierRepository
	prices    *repository.PriceRepository
}

// New constructs an Importer.
func New(suppliers *repository.SupplierRepository, prices *repository.PriceRepository) *Importer {
	return &Importer{suppliers: suppliers, prices: prices}
}

// Import reads a supplier price list and replaces the supplier's stored
// records with its rows. The supplier is resolved or created first, so a file
// that later fails validation still leaves the supplier row behind. A file
// with any unrecognized column mutates no price records at all.
func (im *Importer) Import(ctx context.Context, supplierTitle, path string) error {
	supplier, err := im.suppliers.GetOrCreate(ctx, supplierTitle)
	if err != nil {
		return fmt.Errorf("resolve supplier %q: %w", supplierTitle, err)
	}

	start := time.Now()
	log.Info().Str("file", path).Msg("reading price list")
	sh, err := readSheet(path)
	if err != nil {
		return err
	}
	log.Info().
		Int("rows", len(sh.Rows)).
		Dur("elapsed", time.Since(start)).
		Msg("read completed")

	fields, err := resolveHeader(sh.Header)
	if err != nil {
		return err
	}

	records, err := parseRows(sh, fields)
	if err != nil {
		return err
	}

	start = time.Now()
	if err := im.prices.ReplaceForSupplier(ctx, supplier.ID, records); err != nil {
		return err
	}
	log.Info().
		Str("supplier", supplier.Title).
		Int("records", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("price list stored")
	return nil
}

// requiredFields must all appear in the header for a file to be importable.
// Rows without them would store as zero-priced undated records and shadow
// every genuine quotation in cheapest-price lookups.
var requiredFields = []string{"partnumber", "price", "date"}

// resolveHeader renames external labels to internal field names. Every
// unrecognized or missing label is collected before rejecting, so the
// operator sees the full list in one error.
func resolveHeader(header []string) ([]string, error) {
	fields := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	var unknown []string
	for i, label := range header {
		field, ok := fieldByLabel(label)
		if !ok {
			unknown = append(unknown, label)
			continue
		}
		fields[i] = field
		seen[field] = true
	}
	if len(unknown) > 0 {
		return nil, &utils.UnknownColumnError{Columns: unknown}
	}
	var missing []string
	for _, field := range requiredFields {
		if !seen[field] {
			label, _ := labelByField(field)
			missing = append(missing, label)
		}
	}
	if len(missing) > 0 {
		return nil, &utils.MissingColumnError{Columns: missing}
	}
	return fields, nil
}

func parseRows(sh *sheet, fields []string) ([]models.PriceRecord, error) {
	records := make([]models.PriceRecord, 0, len(sh.Rows))
	for n, row := range sh.Rows {
		if isEmptyRow(row) {
			continue
		}
		rec, err := parseRow(row, fields)
		if err != nil {
			// Data rows start right below the header row.
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		records = append(records, *rec)
	}
	return records, nil
}

func parseRow(row []string, fields []string) (*models.PriceRecord, error) {
	var rec models.PriceRecord
	for i, field := range fields {
		v := cell(row, i)
		var err error
		switch field {
		case "partnumber":
			rec.PartNumber = v
		case "description":
			rec.Description = optString(v)
		case "description_ext":
			rec.DescriptionExt = optString(v)
		case "price":
			if v == "" {
				return nil, fmt.Errorf("missing price")
			}
			if rec.Price, err = decimal.NewFromString(v); err != nil {
				return nil, fmt.Errorf("invalid price %q: %w", v, err)
			}
			rec.Price = rec.Price.Round(2)
		case "date":
			if rec.PriceDate, err = parseDate(v); err != nil {
				return nil, err
			}
		case "origin":
			rec.Origin = optString(v)
		case "weight":
			if rec.Weight, err = optDecimal(v, 3); err != nil {
				return nil, fmt.Errorf("invalid weight %q: %w", v, err)
			}
		case "weight_volume":
			if rec.WeightVolume, err = optDecimal(v, 3); err != nil {
				return nil, fmt.Errorf("invalid volumetric weight %q: %w", v, err)
			}
		case "length":
			if rec.Length, err = optDecimal(v, 1); err != nil {
				return nil, fmt.Errorf("invalid length %q: %w", v, err)
			}
		case "width":
			if rec.Width, err = optDecimal(v, 1); err != nil {
				return nil, fmt.Errorf("invalid width %q: %w", v, err)
			}
		case "height":
			if rec.Height, err = optDecimal(v, 1); err != nil {
				return nil, fmt.Errorf("invalid height %q: %w", v, err)
			}
		case "reserved":
			rec.Reserved = optString(v)
		}
	}
	if rec.PartNumber == "" {
		return nil, fmt.Errorf("missing part number")
	}
	return &rec, nil
}

func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, fmt.Errorf("missing price date")
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid price date %q", v)
}

func optString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func optDecimal(v string, places int32) (decimal.NullDecimal, error) {
	if v == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: d.Round(places), Valid: true}, nil
}
