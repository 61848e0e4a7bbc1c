package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

// sentBundleRepository is the SQL implementation of [SentBundleRepository].
// A bundle row and its per-app ranges are written together; callers that
// need atomicity with cursor updates run Create inside [DB.InTx].
type sentBundleRepository struct {
	sqlRepository
}

func (s *sentBundleRepository) Create(ctx context.Context, bundle models.SentBundle) error {
	log := logger.FromContext(ctx)

	var ackedAt any
	if bundle.AckedAt != nil {
		ackedAt = bundle.AckedAt.UTC()
	}

	query, args, err := buildInsertSentBundleQuery(s.sb, bundle.BundleID, bundle.PeerID, bundle.Size, bundle.Path, bundle.CreatedAt.UTC(), ackedAt, bundle.AckOnly)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = s.exec(ctx, query, args); err != nil {
		log.Err(err).
			Str("func", "sentBundleRepository.Create").
			Str("bundle_id", bundle.BundleID).
			Msg("failed to insert sent bundle")
		return err
	}

	if len(bundle.Ranges) == 0 {
		return nil
	}

	query, args, err = buildInsertSentRangesQuery(s.sb, bundle.BundleID, bundle.Ranges)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = s.exec(ctx, query, args); err != nil {
		log.Err(err).
			Str("func", "sentBundleRepository.Create").
			Str("bundle_id", bundle.BundleID).
			Int("ranges", len(bundle.Ranges)).
			Msg("failed to insert sent bundle ranges")
		return err
	}
	return nil
}

func (s *sentBundleRepository) Get(ctx context.Context, bundleID string) (models.SentBundle, error) {
	query, args, err := buildGetSentBundleQuery(s.sb, bundleID)
	if err != nil {
		return models.SentBundle{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	b, err := scanSentBundle(s.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SentBundle{}, fmt.Errorf("%w: %s", ErrBundleNotFound, bundleID)
	}
	if err != nil {
		return models.SentBundle{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	bundles := []models.SentBundle{b}
	if err = s.loadRanges(ctx, bundles); err != nil {
		return models.SentBundle{}, err
	}
	return bundles[0], nil
}

func (s *sentBundleRepository) ListOutstanding(ctx context.Context, peerID string) ([]models.SentBundle, error) {
	query, args, err := buildListOutstandingQuery(s.sb, peerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return s.list(ctx, "sentBundleRepository.ListOutstanding", peerID, query, args)
}

func (s *sentBundleRepository) ListAckedUnpurged(ctx context.Context, peerID string) ([]models.SentBundle, error) {
	query, args, err := buildListAckedUnpurgedQuery(s.sb, peerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return s.list(ctx, "sentBundleRepository.ListAckedUnpurged", peerID, query, args)
}

func (s *sentBundleRepository) ListAckOnlyBefore(ctx context.Context, peerID string, before time.Time) ([]models.SentBundle, error) {
	query, args, err := buildListAckOnlyBeforeQuery(s.sb, peerID, before.UTC())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return s.list(ctx, "sentBundleRepository.ListAckOnlyBefore", peerID, query, args)
}

func (s *sentBundleRepository) MarkAcked(ctx context.Context, peerID, bundleID string, at time.Time) (bool, error) {
	query, args, err := buildMarkSentAckedQuery(s.sb, peerID, bundleID, at.UTC())
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	n, err := s.exec(ctx, query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sentBundleRepository.MarkAcked").
			Str("bundle_id", bundleID).
			Msg("failed to mark bundle acknowledged")
		return false, err
	}
	return n > 0, nil
}

func (s *sentBundleRepository) MarkPurged(ctx context.Context, bundleIDs []string) error {
	if len(bundleIDs) == 0 {
		return nil
	}

	query, args, err := buildMarkPurgedQuery(s.sb, bundleIDs)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.exec(ctx, query, args); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sentBundleRepository.MarkPurged").
			Int("count", len(bundleIDs)).
			Msg("failed to mark bundles purged")
		return err
	}
	return nil
}

func (s *sentBundleRepository) list(ctx context.Context, fn, peerID, query string, args []any) ([]models.SentBundle, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", fn).
			Str("peer_id", peerID).
			Msg("failed to list sent bundles")
		return nil, s.fail(ErrExecutingQuery, err)
	}

	result := make([]models.SentBundle, 0, 4)
	for rows.Next() {
		b, scanErr := scanSentBundle(rows)
		if scanErr != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		result = append(result, b)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	// close before the next query, sqlite runs on one connection
	rows.Close()

	if err = s.loadRanges(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// loadRanges fills Ranges of every bundle with one query.
func (s *sentBundleRepository) loadRanges(ctx context.Context, bundles []models.SentBundle) error {
	if len(bundles) == 0 {
		return nil
	}

	ids := make([]string, len(bundles))
	index := make(map[string]int, len(bundles))
	for i, b := range bundles {
		ids[i] = b.BundleID
		index[b.BundleID] = i
	}

	query, args, err := buildListSentRangesQuery(s.sb, ids)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return s.fail(ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id string
			r  models.ADURange
		)
		if err = rows.Scan(&id, &r.AppID, &r.FirstSeq, &r.LastSeq); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if i, ok := index[id]; ok {
			bundles[i].Ranges = append(bundles[i].Ranges, r)
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return nil
}

func scanSentBundle(row rowScanner) (models.SentBundle, error) {
	var (
		b       models.SentBundle
		ackedAt sql.NullTime
	)
	err := row.Scan(
		&b.BundleID,
		&b.PeerID,
		&b.Size,
		&b.Path,
		&b.CreatedAt,
		&ackedAt,
		&b.Purged,
		&b.AckOnly,
	)
	if ackedAt.Valid {
		t := ackedAt.Time
		b.AckedAt = &t
	}
	return b, err
}
