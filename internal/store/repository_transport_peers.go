package store

import (
	"context"
	"fmt"
	"time"
)

// transportPeerRepository is the SQL implementation of
// [TransportPeerRepository].
type transportPeerRepository struct {
	sqlRepository
}

func (t *transportPeerRepository) Touch(ctx context.Context, transportID, peerID string, at time.Time) error {
	query, args, err := buildTouchTransportPeerQuery(t.sb, transportID, peerID, at.UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	_, err = t.exec(ctx, query, args)
	return err
}

func (t *transportPeerRepository) ListPeers(ctx context.Context, transportID string) ([]string, error) {
	query, args, err := buildListTransportPeersQuery(t.sb, transportID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return t.queryStrings(ctx, query, args)
}
