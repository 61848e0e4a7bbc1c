// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the side of the exchange a node plays.
type Role string

const (
	RoleClient Role = "client"
	RoleServer Role = "server"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleServer
}

// EncryptionHeader carries the public key material the recipient needs to
// re-derive the per-bundle key from its own private keys.
//
// Client headers carry the identity keys and a fresh base key. Server headers
// additionally carry the published signed pre-key and its signature; there the
// base key is the per-bundle ratchet key. All keys are raw bytes: X25519 for
// IdentityKey, BaseKey and SignedPreKey, Ed25519 for SigningKey.
type EncryptionHeader struct {
	Role        Role   `json:"role"`
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`

	IdentityKey     []byte `json:"identity_key"`
	SigningKey      []byte `json:"signing_key"`
	BaseKey         []byte `json:"base_key"`
	SignedPreKey    []byte `json:"signed_pre_key,omitempty"`
	SignedPreKeySig []byte `json:"signed_pre_key_sig,omitempty"`
}

// Bundle is one encrypted, signed transfer unit.
type Bundle struct {
	// ID is the content hash of Payload.
	ID string `json:"bundle_id"`

	Header EncryptionHeader `json:"header"`

	// Payload is the ciphertext. It may be nil when the bundle was read
	// header-only from Source.
	Payload []byte `json:"-"`

	Signature []byte `json:"signature"`

	// Size is the ciphertext length in bytes.
	Size int64 `json:"size"`

	// Source is the path of the container file on disk.
	Source string `json:"source,omitempty"`
}

// Acknowledgement confirms that the peer durably stored one bundle.
type Acknowledgement struct {
	BundleID string `json:"bundle_id"`
	Size     int64  `json:"size"`
}

// BundlePayload is the plaintext carried inside a bundle.
type BundlePayload struct {
	Acks []Acknowledgement `json:"acks"`
	ADUs []ADU             `json:"-"`
}

// BundleTransferDTO is the result of one send cycle.
type BundleTransferDTO struct {
	// DeletionSet lists bundle ids acknowledged by the peer whose local files
	// can be purged.
	DeletionSet []string `json:"deletion_set"`

	// Bundles lists the bundles to hand to the transport, oldest first.
	Bundles []Bundle `json:"bundles"`
}

// ReceiveResult describes the outcome of one received bundle.
type ReceiveResult struct {
	BundleID  string `json:"bundle_id"`
	PeerID    string `json:"peer_id"`
	Duplicate bool   `json:"duplicate"`

	// AckedBundles lists own bundles the peer acknowledged in this bundle.
	AckedBundles []string `json:"acked_bundles,omitempty"`

	// Applied counts newly applied ADUs per app.
	Applied map[string]int `json:"applied,omitempty"`
}

// SentBundle is the ledger record of a bundle this side produced.
type SentBundle struct {
	BundleID  string     `json:"bundle_id"`
	PeerID    string     `json:"peer_id"`
	Size      int64      `json:"size"`
	Path      string     `json:"path"`
	Ranges    []ADURange `json:"ranges"`
	CreatedAt time.Time  `json:"created_at"`
	AckedAt   *time.Time `json:"acked_at,omitempty"`
	Purged    bool       `json:"purged"`
	// AckOnly marks a bundle without ADUs. It is never retransmitted and
	// never acknowledged; its file is retired locally by age.
	AckOnly bool `json:"ack_only"`
}

// ADURange is the span of one app stream covered by a sent bundle.
type ADURange struct {
	AppID    string `json:"app_id"`
	FirstSeq int64  `json:"first_seq"`
	LastSeq  int64  `json:"last_seq"`
}

// ReceivedBundle is the dedup record of a bundle this side applied.
type ReceivedBundle struct {
	BundleID   string    `json:"bundle_id"`
	PeerID     string    `json:"peer_id"`
	Size       int64     `json:"size"`
	ReceivedAt time.Time `json:"received_at"`
	// AckedIn is the id of the own bundle that carried the acknowledgement.
	AckedIn string `json:"acked_in,omitempty"`
}

// AckNotRequired marks a received bundle that needs no acknowledgement, such
// as one that only carried acknowledgements itself.
const AckNotRequired = "-"
