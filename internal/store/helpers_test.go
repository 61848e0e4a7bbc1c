package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bundle-keeper/internal/config"
	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
)

// newSQLiteStorages opens migrated storages in a temp dir.
func newSQLiteStorages(t *testing.T, maxADUSize int64) *Storages {
	t.Helper()

	dir := t.TempDir()
	st, err := NewStorages(context.Background(), config.Storage{
		DB:    config.DB{Driver: config.DriverSQLite, DSN: filepath.Join(dir, "node.db")},
		Files: config.Files{DataDir: filepath.Join(dir, "data")},
	}, maxADUSize, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return st
}
