package models

import (
	"strings"
	"time"
)

// Supplier is a distinct price-list source. Identity is the uppercased title;
// the uniqueness constraint lives on the title column.
type Supplier struct {
	ID        int       `db:"id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
}

// NormalizeSupplierTitle maps a user-supplied supplier title to its canonical
// stored form.
func NormalizeSupplierTitle(title string) string {
	return strings.ToUpper(strings.TrimSpace(title))
}
