package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-bundle-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ErrorClassificator decides whether a driver error is worth retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// MetadataRepository persists the per-(peer, app) cursors. Every advance is
// guarded in SQL so that counters never move backwards.
type MetadataRepository interface {
	// Ensure creates a zeroed row for the stream if it does not exist.
	Ensure(ctx context.Context, peerID, appID string) error
	Get(ctx context.Context, peerID, appID string) (models.Metadata, error)
	List(ctx context.Context, peerID string) ([]models.Metadata, error)
	ListPeers(ctx context.Context) ([]string, error)

	// AdvanceAdded moves LastAdded from exactly from to to.
	AdvanceAdded(ctx context.Context, peerID, appID string, from, to int64) error
	// AdvanceReceived moves LastReceived from exactly from to to.
	AdvanceReceived(ctx context.Context, peerID, appID string, from, to int64) error
	// AdvanceSent raises LastSent to upto when upto is ahead and not past
	// LastAdded. Otherwise it is a no-op.
	AdvanceSent(ctx context.Context, peerID, appID string, upto int64) error
	// AdvanceProcessed raises LastProcessed to upto when upto is ahead and not
	// past LastReceived.
	AdvanceProcessed(ctx context.Context, peerID, appID string, upto int64) error
	// AdvanceDeleted raises LastDeleted to upto when upto is ahead and not
	// past LastSent.
	AdvanceDeleted(ctx context.Context, peerID, appID string, upto int64) error
}

// SentBundleRepository is the ledger of bundles this node produced.
type SentBundleRepository interface {
	Create(ctx context.Context, bundle models.SentBundle) error
	Get(ctx context.Context, bundleID string) (models.SentBundle, error)
	// ListOutstanding returns unacknowledged, unpurged bundles for peer,
	// oldest first. Acknowledgement-only bundles are never outstanding.
	ListOutstanding(ctx context.Context, peerID string) ([]models.SentBundle, error)
	// ListAckedUnpurged returns acknowledged bundles whose files still exist.
	ListAckedUnpurged(ctx context.Context, peerID string) ([]models.SentBundle, error)
	// ListAckOnlyBefore returns unpurged acknowledgement-only bundles created
	// before the given time.
	ListAckOnlyBefore(ctx context.Context, peerID string, before time.Time) ([]models.SentBundle, error)
	// MarkAcked records the acknowledgement. It reports false when the
	// bundle is unknown for peer or was already acknowledged.
	MarkAcked(ctx context.Context, peerID, bundleID string, at time.Time) (bool, error)
	MarkPurged(ctx context.Context, bundleIDs []string) error
}

// ReceivedBundleRepository is the dedup table of applied bundles.
type ReceivedBundleRepository interface {
	Exists(ctx context.Context, bundleID string) (bool, error)
	// Create returns ErrBundleAlreadyReceived when the id is known.
	Create(ctx context.Context, bundle models.ReceivedBundle) error
	// ListUnacked returns bundles from peer not yet acknowledged back.
	ListUnacked(ctx context.Context, peerID string) ([]models.ReceivedBundle, error)
	MarkAcked(ctx context.Context, bundleIDs []string, ackedIn string) error
	// ResetAck queues the acknowledgement of a bundle again, after the peer
	// retransmitted it and so evidently missed the first one.
	ResetAck(ctx context.Context, bundleID string) error
}

// PeerKeyRepository stores the public key material of known peers.
type PeerKeyRepository interface {
	Save(ctx context.Context, keys models.PeerKeys) error
	Get(ctx context.Context, peerID string) (models.PeerKeys, error)
	List(ctx context.Context) ([]models.PeerKeys, error)
}

// RouteRepository stores the app id to adapter address table.
type RouteRepository interface {
	Save(ctx context.Context, route models.Route) error
	Get(ctx context.Context, appID string) (models.Route, error)
	List(ctx context.Context) ([]models.Route, error)
	Delete(ctx context.Context, appID string) error
}

// TransportPeerRepository remembers which peers a carrier has served.
type TransportPeerRepository interface {
	Touch(ctx context.Context, transportID, peerID string, at time.Time) error
	ListPeers(ctx context.Context, transportID string) ([]string, error)
}

// ADUStore owns ADU payload bytes and the cursors that describe them.
type ADUStore interface {
	// RecordProduced assigns the next sequence number for (peer, app) and
	// stores the payload. The ADU becomes visible only once both the file
	// and the counter are written.
	RecordProduced(ctx context.Context, peerID, appID string, payload []byte) (models.ADU, error)
	// PendingForSend lists produced ADUs in (LastSent, LastAdded] without
	// payloads.
	PendingForSend(ctx context.Context, peerID, appID string) ([]models.ADU, error)
	// LoadPayload reads the payload of a produced ADU.
	LoadPayload(ctx context.Context, adu models.ADU) ([]byte, error)
	MarkSent(ctx context.Context, peerID, appID string, upto int64) error

	// ApplyReceived stores a received run and advances LastReceived. It
	// returns the number of newly applied ADUs.
	ApplyReceived(ctx context.Context, peerID, appID string, adus []models.ADU) (int, error)
	// NextUnprocessed returns the oldest received ADU not yet handed to its
	// application, with its payload.
	NextUnprocessed(ctx context.Context, peerID, appID string) (models.ADU, bool, error)
	MarkProcessed(ctx context.Context, peerID, appID string, seq int64) error

	// DeleteUpTo prunes produced payloads with seq <= upto.
	DeleteUpTo(ctx context.Context, peerID, appID string, upto int64) error

	Metadata(ctx context.Context, peerID, appID string) (models.Metadata, error)
	ListMetadata(ctx context.Context, peerID string) ([]models.Metadata, error)
	ListPeers(ctx context.Context) ([]string, error)
}

// BundleFiles stores framed bundle files.
type BundleFiles interface {
	// WriteBundle atomically creates the file for id from write.
	WriteBundle(id string, write func(w io.Writer) error) (string, error)
	BundlePath(id string) string
	RemoveBundle(id string) error
}
