package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // SQLite driver (cgo-free)

	appconfig "github.com/partsdesk/pricedb/internal/config"
)

//go:embed migrations/sqlite migrations/postgres
var migrationFS embed.FS

// Connect opens the record store described by the configured URL and pings it
// before returning. Supported schemes are sqlite:// (a local database file)
// and postgres://. The returned *sqlx.DB is the single store handle for the
// process; callers own its lifecycle and must Close it on exit.
func Connect(cfg *appconfig.DatabaseConfig) (*sqlx.DB, error) {
	if cfg == nil {
		return nil, errors.New("nil database config")
	}

	driver, dsn, err := splitURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}

	// A single-operator CLI needs exactly one connection; this also keeps
	// SQLite from tripping over its own write lock.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s store: %w", driver, err)
	}
	return db, nil
}

// Migrate applies the embedded schema migrations for the dialect matching the
// connected driver. It is safe to call on every start; an up-to-date schema is
// not an error.
func Migrate(db *sqlx.DB) error {
	var (
		dialect string
		drv     migratedb.Driver
		err     error
	)

	switch db.DriverName() {
	case "sqlite":
		dialect = "sqlite"
		drv, err = migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	case "postgres":
		dialect = "postgres"
		drv, err = migratepg.WithInstance(db.DB, &migratepg.Config{})
	default:
		return fmt.Errorf("no migrations for driver %q", db.DriverName())
	}
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	sub, err := fs.Sub(migrationFS, "migrations/"+dialect)
	if err != nil {
		return fmt.Errorf("could not open migration set: %w", err)
	}
	src, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("could not create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, dialect, drv)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

// splitURL resolves a store URL into an sql driver name and its DSN.
func splitURL(u string) (driver, dsn string, err error) {
	switch {
	case strings.HasPrefix(u, "sqlite://"):
		dsn = strings.TrimPrefix(u, "sqlite://")
		// Store timestamps in SQLite's own text format so they scan back
		// into time.Time.
		if !strings.Contains(dsn, "?") {
			dsn += "?_time_format=sqlite"
		}
		return "sqlite", dsn, nil
	case strings.HasPrefix(u, "postgres://"), strings.HasPrefix(u, "postgresql://"):
		return "postgres", u, nil
	default:
		return "", "", fmt.Errorf("unsupported store URL %q (want sqlite:// or postgres://)", u)
	}
}
