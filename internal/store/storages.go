package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-bundle-keeper/internal/config"
	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
)

// Storages is the persistence layer of one node.
type Storages struct {
	Repositories

	DB    *DB
	Files *FileStorage
	ADUs  ADUStore
}

// NewStorages connects the database, applies migrations and opens the data
// dir. maxADUSize is the largest payload RecordProduced accepts.
func NewStorages(ctx context.Context, cfg config.Storage, maxADUSize int64, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("failed to migrate database")
		_ = db.Close()
		return nil, err
	}

	files, err := NewFileStorage(cfg.Files.DataDir)
	if err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("failed to open data dir")
		_ = db.Close()
		return nil, err
	}

	return NewStoragesFrom(db, files, maxADUSize), nil
}

// NewStoragesFrom assembles storages from an open database and data dir.
func NewStoragesFrom(db *DB, files *FileStorage, maxADUSize int64) *Storages {
	repos := NewRepositories(db)
	return &Storages{
		Repositories: repos,
		DB:           db,
		Files:        files,
		ADUs:         NewADUStore(repos.Metadata, files, maxADUSize),
	}
}

// InTx runs fn with repositories bound to one transaction.
func (s *Storages) InTx(ctx context.Context, fn func(repos Repositories) error) error {
	return s.DB.InTx(ctx, fn)
}

// Close releases the data dir lock and closes the database.
func (s *Storages) Close() error {
	var errs []error
	if err := s.Files.Close(); err != nil {
		errs = append(errs, fmt.Errorf("unlock data dir: %w", err))
	}
	if err := s.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}
	return errors.Join(errs...)
}
