package report

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/partsdesk/pricedb/internal/config"
	"github.com/partsdesk/pricedb/internal/database"
	"github.com/partsdesk/pricedb/internal/models"
	"github.com/partsdesk/pricedb/internal/repository"
)

func openTestStore(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Connect(&config.DatabaseConfig{
		URL: "sqlite://" + filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("connect store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate store: %v", err)
	}
	return db
}

func seedSupplier(t *testing.T, db *sqlx.DB, title string, records ...models.PriceRecord) {
	t.Helper()
	ctx := context.Background()
	supplier, err := repository.NewSupplierRepository(db).GetOrCreate(ctx, title)
	if err != nil {
		t.Fatalf("seed supplier %s: %v", title, err)
	}
	if err := repository.NewPriceRepository(db).ReplaceForSupplier(ctx, supplier.ID, records); err != nil {
		t.Fatalf("seed records for %s: %v", title, err)
	}
}

func quote(partNumber, price string, weight *string) models.PriceRecord {
	rec := models.PriceRecord{
		PartNumber: partNumber,
		Price:      decimal.RequireFromString(price),
		PriceDate:  time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	if weight != nil {
		rec.Weight = decimal.NullDecimal{Decimal: decimal.RequireFromString(*weight), Valid: true}
	}
	return rec
}

func strPtr(s string) *string { return &s }

func TestQueryFromStore_PicksCheapestAcrossSuppliers(t *testing.T) {
	db := openTestStore(t)
	seedSupplier(t, db, "pricey", quote("49PN100", "200.00", nil))
	seedSupplier(t, db, "cheap", quote("49PN100", "100.00", strPtr("10.000")))

	dir := t.TempDir()
	queryPath := writeLines(t, dir, "query.txt", "49-PN-100", "MISSING-PART")
	outPath := filepath.Join(dir, "out.csv")

	engine := NewEngine(repository.NewPriceRepository(db), defaultCosts(t))
	if err := engine.QueryFromStore(context.Background(), queryPath, outPath); err != nil {
		t.Fatalf("QueryFromStore error: %v", err)
	}

	lines := readReport(t, outPath)
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines: %v", len(lines), lines)
	}
	if lines[0] != "Part number;Cost, $;W/Delivery;Date;Supplier" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "49-PN-100;103,00;201,00;2026-05-01;CHEAP" {
		t.Fatalf("unexpected report row %q", lines[1])
	}
}

func TestQueryFromStore_NoMatchProducesNoRow(t *testing.T) {
	db := openTestStore(t)
	seedSupplier(t, db, "cheap", quote("OTHER", "10.00", nil))

	dir := t.TempDir()
	queryPath := writeLines(t, dir, "query.txt", "49PN100")
	outPath := filepath.Join(dir, "out.csv")

	engine := NewEngine(repository.NewPriceRepository(db), defaultCosts(t))
	if err := engine.QueryFromStore(context.Background(), queryPath, outPath); err != nil {
		t.Fatalf("QueryFromStore error: %v", err)
	}

	lines := readReport(t, outPath)
	if len(lines) != 1 {
		t.Fatalf("expected header only, got %d lines: %v", len(lines), lines)
	}
}

func TestQueryFromStore_TieBreaksDeterministically(t *testing.T) {
	db := openTestStore(t)
	seedSupplier(t, db, "first", quote("49PN100", "100.00", nil))
	seedSupplier(t, db, "second", quote("49PN100", "100.00", nil))

	dir := t.TempDir()
	queryPath := writeLines(t, dir, "query.txt", "49PN100")
	outPath := filepath.Join(dir, "out.csv")

	engine := NewEngine(repository.NewPriceRepository(db), defaultCosts(t))
	if err := engine.QueryFromStore(context.Background(), queryPath, outPath); err != nil {
		t.Fatalf("QueryFromStore error: %v", err)
	}

	lines := readReport(t, outPath)
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	// Lowest row id wins on a price tie; FIRST was inserted before SECOND.
	if want := "49PN100;103,00;103,00;2026-05-01;FIRST"; lines[1] != want {
		t.Fatalf("expected %q, got %q", want, lines[1])
	}
}
