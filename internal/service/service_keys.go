package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-bundle-keeper/internal/crypto"
	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/internal/store"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

type keyService struct {
	repo   store.PeerKeyRepository
	engine crypto.Engine

	now func() time.Time
}

// NewKeyService returns a KeyService that stores peer keys in repo and
// reports the own keys of engine.
func NewKeyService(repo store.PeerKeyRepository, engine crypto.Engine) KeyService {
	return &keyService{repo: repo, engine: engine, now: time.Now}
}

func (k *keyService) Own() models.PeerKeys {
	return k.engine.PublicKeys()
}

func (k *keyService) PeerKeys(ctx context.Context, peerID string) (models.PeerKeys, error) {
	keys, err := k.repo.Get(ctx, peerID)
	if errors.Is(err, store.ErrPeerKeysNotFound) {
		return models.PeerKeys{}, fmt.Errorf("%w: %s", ErrUnknownPeer, peerID)
	}
	if err != nil {
		return models.PeerKeys{}, err
	}
	return keys, nil
}

func (k *keyService) Peers(ctx context.Context) ([]string, error) {
	all, err := k.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(all))
	for _, keys := range all {
		ids = append(ids, keys.PeerID)
	}
	return ids, nil
}

func (k *keyService) Learn(ctx context.Context, keys models.PeerKeys) error {
	if err := crypto.VerifyPeerKeys(keys); err != nil {
		return err
	}
	if keys.PeerID == k.engine.PeerID() {
		return fmt.Errorf("%w: own keys", ErrInvalidDataProvided)
	}

	keys.UpdatedAt = k.now().UTC()
	if err := k.repo.Save(ctx, keys); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*keyService.Learn").
			Str("peer_id", keys.PeerID).
			Msg("failed to save peer keys")
		return err
	}
	return nil
}

func (k *keyService) Import(ctx context.Context, path string) (models.PeerKeys, error) {
	keys, err := crypto.ReadPublicKeys(path)
	if err != nil {
		return models.PeerKeys{}, fmt.Errorf("read %s: %w", path, err)
	}
	if err = k.Learn(ctx, keys); err != nil {
		return models.PeerKeys{}, err
	}

	logger.FromContext(ctx).Info().
		Str("func", "*keyService.Import").
		Str("peer_id", keys.PeerID).
		Str("role", string(keys.Role)).
		Msg("peer keys imported")
	return keys, nil
}
