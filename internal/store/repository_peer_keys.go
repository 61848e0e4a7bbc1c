package store

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

// peerKeyRepository is the SQL implementation of [PeerKeyRepository]. Keys
// are stored as base64 text so the same schema works on every driver.
type peerKeyRepository struct {
	sqlRepository
}

func (p *peerKeyRepository) Save(ctx context.Context, keys models.PeerKeys) error {
	updatedAt := keys.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	query, args, err := buildSavePeerKeysQuery(p.sb, []any{
		keys.PeerID,
		string(keys.Role),
		encodeKey(keys.IdentityKey),
		encodeKey(keys.SigningKey),
		encodeKey(keys.SignedPreKey),
		encodeKey(keys.SignedPreKeySig),
		updatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = p.exec(ctx, query, args); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "peerKeyRepository.Save").
			Str("peer_id", keys.PeerID).
			Msg("failed to save peer keys")
		return err
	}
	return nil
}

func (p *peerKeyRepository) Get(ctx context.Context, peerID string) (models.PeerKeys, error) {
	query, args, err := buildGetPeerKeysQuery(p.sb, peerID)
	if err != nil {
		return models.PeerKeys{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	keys, err := scanPeerKeys(p.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.PeerKeys{}, fmt.Errorf("%w: %s", ErrPeerKeysNotFound, peerID)
	}
	if err != nil {
		return models.PeerKeys{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return keys, nil
}

func (p *peerKeyRepository) List(ctx context.Context) ([]models.PeerKeys, error) {
	query, args, err := buildListPeerKeysQuery(p.sb)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := p.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, p.fail(ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := make([]models.PeerKeys, 0, 8)
	for rows.Next() {
		keys, scanErr := scanPeerKeys(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		result = append(result, keys)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return result, nil
}

func scanPeerKeys(row rowScanner) (models.PeerKeys, error) {
	var (
		keys                                  models.PeerKeys
		role, ik, signing, preKey, preKeySign string
	)
	if err := row.Scan(&keys.PeerID, &role, &ik, &signing, &preKey, &preKeySign, &keys.UpdatedAt); err != nil {
		return models.PeerKeys{}, err
	}
	keys.Role = models.Role(role)

	var err error
	if keys.IdentityKey, err = decodeKey(ik); err != nil {
		return models.PeerKeys{}, err
	}
	if keys.SigningKey, err = decodeKey(signing); err != nil {
		return models.PeerKeys{}, err
	}
	if keys.SignedPreKey, err = decodeKey(preKey); err != nil {
		return models.PeerKeys{}, err
	}
	if keys.SignedPreKeySig, err = decodeKey(preKeySign); err != nil {
		return models.PeerKeys{}, err
	}
	return keys, nil
}

func encodeKey(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func decodeKey(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode key: %w", err)
	}
	return b, nil
}
