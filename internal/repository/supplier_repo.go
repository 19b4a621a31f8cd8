package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/partsdesk/pricedb/internal/models"
	"github.com/partsdesk/pricedb/internal/utils"
)

// SupplierRepository handles data access for suppliers.
type SupplierRepository struct {
	db *sqlx.DB
}

// NewSupplierRepository creates a new SupplierRepository.
func NewSupplierRepository(db *sqlx.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

// GetByTitle returns the supplier with the given title. The title is
// normalized to its canonical uppercased form before lookup.
func (r *SupplierRepository) GetByTitle(ctx context.Context, title string) (*models.Supplier, error) {
	q := r.db.Rebind(`SELECT id, title, created_at FROM suppliers WHERE title = ? LIMIT 1`)

	var s models.Supplier
	if err := r.db.GetContext(ctx, &s, q, models.NormalizeSupplierTitle(title)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrSupplierNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Create inserts a supplier with the canonical form of the given title and
// returns the stored row.
func (r *SupplierRepository) Create(ctx context.Context, title string) (*models.Supplier, error) {
	canonical := models.NormalizeSupplierTitle(title)
	q := r.db.Rebind(`INSERT INTO suppliers (title) VALUES (?)`)
	if _, err := r.db.ExecContext(ctx, q, canonical); err != nil {
		return nil, err
	}
	return r.GetByTitle(ctx, canonical)
}

// GetOrCreate resolves a supplier by title, creating it when absent. Creation
// persists regardless of what the caller does afterwards; a failed import
// still leaves the supplier row behind.
func (r *SupplierRepository) GetOrCreate(ctx context.Context, title string) (*models.Supplier, error) {
	s, err := r.GetByTitle(ctx, title)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, utils.ErrSupplierNotFound) {
		return nil, err
	}
	return r.Create(ctx, title)
}
