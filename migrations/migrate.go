// Package migrations embeds the SQL schema of the bundle store and applies it
// with goose. The schema is written to run unchanged on SQLite and PostgreSQL.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Supported goose dialects.
const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "pgx"
)

var errNilDB = errors.New("migration error: db is nil")

// Migrate applies every pending migration for the given dialect.
func Migrate(db *sql.DB, dialect string) error {
	if db == nil {
		return errNilDB
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
