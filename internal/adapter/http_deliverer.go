package adapter

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-bundle-keeper/internal/utils"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

// HTTPDeliverer posts ADU payloads to application adapters. The stream
// position travels in headers so an adapter can dedup replays after a crash.
type HTTPDeliverer struct {
	client *utils.HTTPClient
}

// NewHTTPDeliverer returns an HTTPDeliverer whose requests time out after
// timeout.
func NewHTTPDeliverer(timeout time.Duration) *HTTPDeliverer {
	return &HTTPDeliverer{client: utils.NewHTTPClient(timeout)}
}

// Deliver posts adu to address.
func (d *HTTPDeliverer) Deliver(ctx context.Context, address string, adu models.ADU) error {
	if address == "" {
		return ErrEmptyAddress
	}

	resp, err := d.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetHeader(models.HeaderPeerID, adu.PeerID).
		SetHeader(models.HeaderAppID, adu.AppID).
		SetHeader(models.HeaderADUSeq, strconv.FormatInt(adu.Seq, 10)).
		SetBody(adu.Payload).
		Post(address)
	if err != nil {
		return fmt.Errorf("%w: deliver adu: %w", ErrTransport, err)
	}
	return mapHTTPError(resp)
}
