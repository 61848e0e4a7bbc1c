package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-bundle-keeper/internal/bundle"
	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/internal/metrics"
	"github.com/MKhiriev/go-bundle-keeper/internal/store"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

type aduService struct {
	adus    store.ADUStore
	metrics *metrics.Metrics
}

// NewADUService returns the ADU intake of a node.
func NewADUService(adus store.ADUStore, m *metrics.Metrics) ADUService {
	return &aduService{adus: adus, metrics: m}
}

func (a *aduService) Produce(ctx context.Context, peerID, appID string, payload []byte) (models.ADU, error) {
	if peerID == "" {
		return models.ADU{}, fmt.Errorf("%w: empty peer id", ErrInvalidDataProvided)
	}
	if !bundle.ValidAppID(appID) {
		return models.ADU{}, fmt.Errorf("%w: app id %q", ErrInvalidDataProvided, appID)
	}

	adu, err := a.adus.RecordProduced(ctx, peerID, appID, payload)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*aduService.Produce").
			Str("peer_id", peerID).
			Str("app_id", appID).
			Msg("failed to record produced adu")
		return models.ADU{}, err
	}

	a.metrics.ADUProduced(appID)
	return adu, nil
}

func (a *aduService) Metadata(ctx context.Context, peerID string) ([]models.Metadata, error) {
	return a.adus.ListMetadata(ctx, peerID)
}

func (a *aduService) Peers(ctx context.Context) ([]string, error) {
	return a.adus.ListPeers(ctx)
}
