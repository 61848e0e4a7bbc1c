package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/internal/store"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

type inventoryService struct {
	repo    store.TransportPeerRepository
	bundles BundleService

	now func() time.Time
}

// NewInventoryService returns an InventoryService that learns transport
// reachability in repo and asks bundles for what each client should get.
func NewInventoryService(repo store.TransportPeerRepository, bundles BundleService) InventoryService {
	return &inventoryService{repo: repo, bundles: bundles, now: time.Now}
}

func (i *inventoryService) Touch(ctx context.Context, transportID, peerID string) error {
	if transportID == "" || peerID == "" {
		return nil
	}
	return i.repo.Touch(ctx, transportID, peerID, i.now().UTC())
}

// Inventory runs a send cycle for every client the transport has carried
// bundles for. Bundles of those cycles the transport lacks are to be
// downloaded; everything else it holds is to be deleted.
func (i *inventoryService) Inventory(ctx context.Context, transportID string, present []string) (models.InventoryResponse, error) {
	log := logger.FromContext(ctx)

	peers, err := i.repo.ListPeers(ctx, transportID)
	if err != nil {
		return models.InventoryResponse{}, err
	}

	has := make(map[string]struct{}, len(present))
	for _, id := range present {
		has[id] = struct{}{}
	}

	resp := models.InventoryResponse{ToDownload: []string{}, ToDelete: []string{}}
	wanted := make(map[string]struct{})
	for _, peerID := range peers {
		dto, err := i.bundles.Send(ctx, peerID)
		if err != nil {
			// one broken client must not starve the others
			log.Err(err).
				Str("func", "*inventoryService.Inventory").
				Str("transport_id", transportID).
				Str("peer_id", peerID).
				Msg("failed to prepare bundles for client")
			continue
		}
		for _, b := range dto.Bundles {
			wanted[b.ID] = struct{}{}
			if _, ok := has[b.ID]; !ok {
				resp.ToDownload = append(resp.ToDownload, b.ID)
			}
		}
	}

	for _, id := range present {
		if _, ok := wanted[id]; !ok {
			resp.ToDelete = append(resp.ToDelete, id)
		}
	}
	return resp, nil
}
