// internal/database/migrate.go
//
// Embedded schema migrations (golang-migrate).
//
// The full schema, seven active tables and their seven archive shadows,
// ships inside the binary, so a fresh database is ready after one call to
// Migrate during bootstrap.  ErrNoChange is not an error: an up-to-date
// schema is the normal steady state.
//
// Each migration file carries several statements, and the mysql driver
// sends a whole file as one Exec, so the connection DSN must set
// multiStatements=true (the shipped conf/global.yaml template does).

package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate brings the schema to the latest version.
func Migrate(db *sqlx.DB) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("read migration files: %w", err)
	}

	driver, err := migratemysql.WithInstance(db.DB, &migratemysql.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "mysql", driver)
	if err != nil {
		return fmt.Errorf("migrate instance: %w", err)
	}
	// Closing m would close the shared db handle; the caller owns it.

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
