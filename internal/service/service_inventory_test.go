package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-bundle-keeper/internal/mock"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

func TestInventoryService_Inventory(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockTransportPeerRepository(ctrl)
	bundles := mock.NewMockBundleService(ctrl)
	svc := NewInventoryService(repo, bundles)
	ctx := context.Background()

	repo.EXPECT().ListPeers(ctx, "usb-1").Return([]string{"alice", "broken", "bob"}, nil)
	bundles.EXPECT().Send(ctx, "alice").Return(models.BundleTransferDTO{
		DeletionSet: []string{"old"},
		Bundles:     []models.Bundle{{ID: "a1"}, {ID: "a2"}},
	}, nil)
	bundles.EXPECT().Send(ctx, "broken").Return(models.BundleTransferDTO{}, errors.New("no keys"))
	bundles.EXPECT().Send(ctx, "bob").Return(models.BundleTransferDTO{
		Bundles: []models.Bundle{{ID: "b1"}},
	}, nil)

	resp, err := svc.Inventory(ctx, "usb-1", []string{"a1", "old", "stray"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a2", "b1"}, resp.ToDownload)
	assert.Equal(t, []string{"old", "stray"}, resp.ToDelete)
}

func TestInventoryService_Inventory_UnknownTransport(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockTransportPeerRepository(ctrl)
	svc := NewInventoryService(repo, mock.NewMockBundleService(ctrl))
	ctx := context.Background()

	repo.EXPECT().ListPeers(ctx, "new").Return(nil, nil)

	resp, err := svc.Inventory(ctx, "new", []string{"x"})
	require.NoError(t, err)
	assert.Empty(t, resp.ToDownload)
	assert.Equal(t, []string{"x"}, resp.ToDelete)
}

func TestInventoryService_Touch(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockTransportPeerRepository(ctrl)
	svc := NewInventoryService(repo, mock.NewMockBundleService(ctrl))
	ctx := context.Background()

	repo.EXPECT().Touch(ctx, "usb-1", "alice", gomock.Any()).Return(nil)
	require.NoError(t, svc.Touch(ctx, "usb-1", "alice"))

	// anonymous uploads are not tracked
	require.NoError(t, svc.Touch(ctx, "", "alice"))
}
