package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-bundle-keeper/internal/config"
	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/migrations"
)

// DB wraps the cursor database together with its dialect.
type DB struct {
	*sql.DB
	dialect            string
	placeholder        sq.PlaceholderFormat
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NewConnect opens the database selected by cfg.Driver.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return NewConnectSQLite(ctx, cfg, log)
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// Migrate brings the schema up to date.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Dialect returns the goose dialect of the connection.
func (db *DB) Dialect() string {
	return db.dialect
}

// Classify reports whether a failed operation on db may be retried.
func (db *DB) Classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return NonRetryable
	}
	return db.errorClassificator.Classify(err)
}

// fail wraps err in sentinel. A failure the database itself reports as
// permanent is marked with ErrNonRetryable as well; connection and context
// errors never are.
func (db *DB) fail(sentinel, err error) error {
	if db != nil && isDriverError(err) && db.Classify(err) == NonRetryable {
		return fmt.Errorf("%w: %w: %w", sentinel, ErrNonRetryable, err)
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

func isDriverError(err error) bool {
	var (
		pgErr     *pgconn.PgError
		sqliteErr sqlite3.Error
	)
	return errors.As(err, &pgErr) || errors.As(err, &sqliteErr)
}

func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.placeholder)
}

// InTx runs fn inside one transaction. fn must only use the repositories it
// is given; the transaction is rolled back when fn returns an error.
func (db *DB) InTx(ctx context.Context, fn func(repos Repositories) error) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "DB.InTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = fn(newRepositories(db, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Err(rbErr).Str("func", "DB.InTx").Msg("failed to roll back transaction")
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "DB.InTx").Msg("failed to commit transaction")
		return db.fail(ErrCommitingTransaction, err)
	}
	return nil
}
