package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/partsdesk/pricedb/internal/models"
	"github.com/partsdesk/pricedb/internal/utils"
)

// DefaultInsertBatchSize is the number of rows bundled into one INSERT during
// bulk import when the caller does not override it.
const DefaultInsertBatchSize = 100

// PriceRepository handles data access for price records.
type PriceRepository struct {
	db        *sqlx.DB
	batchSize int
}

// NewPriceRepository creates a new PriceRepository with the default batch size.
func NewPriceRepository(db *sqlx.DB) *PriceRepository {
	return &PriceRepository{db: db, batchSize: DefaultInsertBatchSize}
}

// SetBatchSize overrides the bulk insert chunk size. Values below 1 are ignored.
func (r *PriceRepository) SetBatchSize(n int) *PriceRepository {
	if n >= 1 {
		r.batchSize = n
	}
	return r
}

// ReplaceForSupplier removes every price record of the supplier and stores the
// new batch in its place. The purge and the insert each run in their own
// transaction, so a failure mid-insert rolls the whole insert back and never
// leaves a partial mixture of old and new rows.
func (r *PriceRepository) ReplaceForSupplier(ctx context.Context, supplierID int, records []models.PriceRecord) error {
	if err := r.deleteForSupplier(ctx, supplierID); err != nil {
		return fmt.Errorf("purge old records: %w", err)
	}
	if err := r.insertBatch(ctx, supplierID, records); err != nil {
		return fmt.Errorf("store new records: %w", err)
	}
	return nil
}

func (r *PriceRepository) deleteForSupplier(ctx context.Context, supplierID int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	q := r.db.Rebind(`DELETE FROM price_records WHERE supplier_id = ?`)
	if _, err := tx.ExecContext(ctx, q, supplierID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PriceRepository) insertBatch(ctx context.Context, supplierID int, records []models.PriceRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const q = `INSERT INTO price_records
        (supplier_id, part_number, description, description_ext, price, price_date,
         origin, weight, weight_volume, length, width, height, reserved)
        VALUES (:supplier_id, :part_number, :description, :description_ext, :price, :price_date,
                :origin, :weight, :weight_volume, :length, :width, :height, :reserved)`

	for start := 0; start < len(records); start += r.batchSize {
		end := start + r.batchSize
		if end > len(records) {
			end = len(records)
		}
		chunk := records[start:end]
		for i := range chunk {
			chunk[i].SupplierID = supplierID
		}
		if _, err := tx.NamedExecContext(ctx, q, chunk); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// CountForSupplier returns the number of price records stored for a supplier.
func (r *PriceRepository) CountForSupplier(ctx context.Context, supplierID int) (int, error) {
	q := r.db.Rebind(`SELECT COUNT(1) FROM price_records WHERE supplier_id = ?`)
	var n int
	if err := r.db.GetContext(ctx, &n, q, supplierID); err != nil {
		return 0, err
	}
	return n, nil
}

// CheapestByPartNumber returns the lowest-priced quotation for the part number
// across all suppliers. Price ties break on row id, which keeps the result
// deterministic. Returns ErrNoQuotation when no supplier quotes the part.
func (r *PriceRepository) CheapestByPartNumber(ctx context.Context, partNumber string) (*models.Quotation, error) {
	q := r.db.Rebind(`
        SELECT p.id, p.supplier_id, p.part_number, p.description, p.description_ext,
               p.price, p.price_date, p.origin, p.weight, p.weight_volume,
               p.length, p.width, p.height, p.reserved,
               s.title AS supplier_title
        FROM price_records p
        JOIN suppliers s ON s.id = p.supplier_id
        WHERE p.part_number = ?
        ORDER BY p.price ASC, p.id ASC
        LIMIT 1`)

	var quote models.Quotation
	if err := r.db.GetContext(ctx, &quote, q, partNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNoQuotation
		}
		return nil, err
	}
	return &quote, nil
}
