package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

// receivedBundleRepository is the SQL implementation of
// [ReceivedBundleRepository].
type receivedBundleRepository struct {
	sqlRepository
}

func (r *receivedBundleRepository) Exists(ctx context.Context, bundleID string) (bool, error) {
	query, args, err := buildReceivedExistsQuery(r.sb, bundleID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = r.q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "receivedBundleRepository.Exists").
			Str("bundle_id", bundleID).
			Msg("failed to check received bundle")
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return count > 0, nil
}

func (r *receivedBundleRepository) Create(ctx context.Context, bundle models.ReceivedBundle) error {
	var ackedIn any
	if bundle.AckedIn != "" {
		ackedIn = bundle.AckedIn
	}

	query, args, err := buildInsertReceivedQuery(r.sb, bundle.BundleID, bundle.PeerID, bundle.Size, bundle.ReceivedAt.UTC(), ackedIn)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	n, err := r.exec(ctx, query, args)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "receivedBundleRepository.Create").
			Str("bundle_id", bundle.BundleID).
			Msg("failed to record received bundle")
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrBundleAlreadyReceived, bundle.BundleID)
	}
	return nil
}

func (r *receivedBundleRepository) ListUnacked(ctx context.Context, peerID string) ([]models.ReceivedBundle, error) {
	query, args, err := buildListUnackedReceivedQuery(r.sb, peerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "receivedBundleRepository.ListUnacked").
			Str("peer_id", peerID).
			Msg("failed to list unacknowledged bundles")
		return nil, r.fail(ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := make([]models.ReceivedBundle, 0, 4)
	for rows.Next() {
		var (
			b       models.ReceivedBundle
			ackedIn sql.NullString
		)
		if err = rows.Scan(&b.BundleID, &b.PeerID, &b.Size, &b.ReceivedAt, &ackedIn); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		b.AckedIn = ackedIn.String
		result = append(result, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return result, nil
}

func (r *receivedBundleRepository) MarkAcked(ctx context.Context, bundleIDs []string, ackedIn string) error {
	if len(bundleIDs) == 0 {
		return nil
	}

	query, args, err := buildMarkReceivedAckedQuery(r.sb, bundleIDs, ackedIn)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.exec(ctx, query, args); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "receivedBundleRepository.MarkAcked").
			Str("acked_in", ackedIn).
			Msg("failed to mark acknowledgements sent")
		return err
	}
	return nil
}

func (r *receivedBundleRepository) ResetAck(ctx context.Context, bundleID string) error {
	query, args, err := buildResetReceivedAckQuery(r.sb, bundleID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.exec(ctx, query, args); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "receivedBundleRepository.ResetAck").
			Str("bundle_id", bundleID).
			Msg("failed to reset acknowledgement")
		return err
	}
	return nil
}
