package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-bundle-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// BundleService runs the send and receive cycles of one node. Both hold the
// peer's lock for their whole duration.
type BundleService interface {
	// Send collects the outstanding bundles for peer and, while the bundle
	// window has room and there is something new to say, builds one more.
	// DeletionSet holds only bundles the peer acknowledged.
	Send(ctx context.Context, peerID string) (models.BundleTransferDTO, error)

	// Receive applies the bundle file at path. A bundle already applied is a
	// no-op: the result is marked Duplicate and the error is nil.
	Receive(ctx context.Context, path string) (models.ReceiveResult, error)

	// Locate returns the file of an own bundle that is still kept.
	// Returns store.ErrBundleNotFound otherwise.
	Locate(ctx context.Context, bundleID string) (string, error)
}

// ADUService accepts ADUs from local applications and reports cursors.
type ADUService interface {
	Produce(ctx context.Context, peerID, appID string, payload []byte) (models.ADU, error)
	Metadata(ctx context.Context, peerID string) ([]models.Metadata, error)
	Peers(ctx context.Context) ([]string, error)
}

// RouterService hands received ADUs to their application adapters in
// sequence order.
type RouterService interface {
	// DeliverPending delivers every unprocessed ADU from peer and returns how
	// many were delivered.
	DeliverPending(ctx context.Context, peerID string) (int, error)
	// DeliverAll runs DeliverPending for every known peer.
	DeliverAll(ctx context.Context) (int, error)
}

// RouteResolver maps an app id to its adapter address.
type RouteResolver interface {
	Resolve(ctx context.Context, appID string) (string, error)
}

// RouteService is the route table as the admin surfaces see it.
type RouteService interface {
	RouteResolver

	SaveRoute(ctx context.Context, route models.Route) (models.Route, error)
	ListRoutes(ctx context.Context) ([]models.Route, error)
	DeleteRoute(ctx context.Context, appID string) error
}

// Deliverer hands one ADU to the application adapter at address.
type Deliverer interface {
	Deliver(ctx context.Context, address string, adu models.ADU) error
}

// KeyService holds the public keys of peers.
type KeyService interface {
	// Own returns the keys this node publishes.
	Own() models.PeerKeys
	PeerKeys(ctx context.Context, peerID string) (models.PeerKeys, error)
	// Peers lists the ids of all peers with known keys.
	Peers(ctx context.Context) ([]string, error)
	// Learn verifies and stores keys, replacing earlier ones for the peer.
	Learn(ctx context.Context, keys models.PeerKeys) error
	// Import learns the keys from a published key file.
	Import(ctx context.Context, path string) (models.PeerKeys, error)
}

// InventoryService reconciles the bundle storage of a transport with the
// server's view.
type InventoryService interface {
	// Touch records that transportID carried bundles of peerID.
	Touch(ctx context.Context, transportID, peerID string) error
	Inventory(ctx context.Context, transportID string, present []string) (models.InventoryResponse, error)
}

// AuthService issues and checks admin tokens.
type AuthService interface {
	CreateToken(ctx context.Context, subject string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService describes the running node.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	NodeInfo(ctx context.Context) models.NodeInfo
}

// Job runs periodic work in the background until stopped.
type Job interface {
	// Start launches the job, stopping a previous run first.
	Start(ctx context.Context, interval time.Duration)
	// Stop cancels the job and waits for it to exit.
	Stop()
}
