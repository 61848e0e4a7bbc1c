package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

// metadataRepository is the SQL implementation of [MetadataRepository].
type metadataRepository struct {
	sqlRepository
}

func (m *metadataRepository) Ensure(ctx context.Context, peerID, appID string) error {
	query, args, err := buildEnsureMetadataQuery(m.sb, peerID, appID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = m.exec(ctx, query, args); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "metadataRepository.Ensure").
			Str("peer_id", peerID).
			Str("app_id", appID).
			Msg("failed to create metadata row")
		return err
	}
	return nil
}

func (m *metadataRepository) Get(ctx context.Context, peerID, appID string) (models.Metadata, error) {
	query, args, err := buildGetMetadataQuery(m.sb, peerID, appID)
	if err != nil {
		return models.Metadata{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	meta, err := scanMetadata(m.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Metadata{}, fmt.Errorf("%w: %s/%s", ErrMetadataNotFound, peerID, appID)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "metadataRepository.Get").
			Str("peer_id", peerID).
			Str("app_id", appID).
			Msg("failed to get metadata")
		return models.Metadata{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return meta, nil
}

func (m *metadataRepository) List(ctx context.Context, peerID string) ([]models.Metadata, error) {
	query, args, err := buildListMetadataQuery(m.sb, peerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := m.q.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "metadataRepository.List").
			Str("peer_id", peerID).
			Msg("failed to list metadata")
		return nil, m.fail(ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := make([]models.Metadata, 0, 8)
	for rows.Next() {
		meta, scanErr := scanMetadata(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		result = append(result, meta)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return result, nil
}

func (m *metadataRepository) ListPeers(ctx context.Context) ([]string, error) {
	query, args, err := buildListMetadataPeersQuery(m.sb)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return m.queryStrings(ctx, query, args)
}

func (m *metadataRepository) AdvanceAdded(ctx context.Context, peerID, appID string, from, to int64) error {
	return m.advanceExact(ctx, "last_added", peerID, appID, from, to)
}

func (m *metadataRepository) AdvanceReceived(ctx context.Context, peerID, appID string, from, to int64) error {
	return m.advanceExact(ctx, "last_received", peerID, appID, from, to)
}

func (m *metadataRepository) AdvanceSent(ctx context.Context, peerID, appID string, upto int64) error {
	return m.advanceCapped(ctx, "last_sent", "last_added", peerID, appID, upto)
}

func (m *metadataRepository) AdvanceProcessed(ctx context.Context, peerID, appID string, upto int64) error {
	return m.advanceCapped(ctx, "last_processed", "last_received", peerID, appID, upto)
}

func (m *metadataRepository) AdvanceDeleted(ctx context.Context, peerID, appID string, upto int64) error {
	return m.advanceCapped(ctx, "last_deleted", "last_sent", peerID, appID, upto)
}

func (m *metadataRepository) advanceExact(ctx context.Context, column, peerID, appID string, from, to int64) error {
	if to < from {
		return fmt.Errorf("%w: %s cannot move back from %d to %d", ErrCursorConflict, column, from, to)
	}

	query, args, err := buildAdvanceExactQuery(m.sb, column, peerID, appID, from, to)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	n, err := m.exec(ctx, query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "metadataRepository.advanceExact").
			Str("column", column).
			Str("peer_id", peerID).
			Str("app_id", appID).
			Msg("failed to advance cursor")
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s of %s/%s is no longer %d", ErrCursorConflict, column, peerID, appID, from)
	}
	return nil
}

func (m *metadataRepository) advanceCapped(ctx context.Context, column, capColumn, peerID, appID string, upto int64) error {
	query, args, err := buildAdvanceCappedQuery(m.sb, column, capColumn, peerID, appID, upto)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = m.exec(ctx, query, args); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "metadataRepository.advanceCapped").
			Str("column", column).
			Str("peer_id", peerID).
			Str("app_id", appID).
			Int64("upto", upto).
			Msg("failed to advance cursor")
		return err
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMetadata(row rowScanner) (models.Metadata, error) {
	var meta models.Metadata
	err := row.Scan(
		&meta.PeerID,
		&meta.AppID,
		&meta.LastAdded,
		&meta.LastSent,
		&meta.LastReceived,
		&meta.LastProcessed,
		&meta.LastDeleted,
	)
	return meta, err
}

func (r sqlRepository) queryStrings(ctx context.Context, query string, args []any) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, r.fail(ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := make([]string, 0, 8)
	for rows.Next() {
		var s string
		if err = rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		result = append(result, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return result, nil
}
