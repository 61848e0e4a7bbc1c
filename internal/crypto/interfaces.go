package crypto

import "github.com/MKhiriev/go-bundle-keeper/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/engine_mock.go -package=mock

// Engine seals and opens bundle payloads for one node.
//
// Every bundle gets its own keys, agreed from the sender's identity and a
// fresh base key against the recipient's published keys. No session state is
// kept: the header alone lets the recipient re-derive the keys.
//
//	secret = DH(IK_s, PK_r) || DH(BK_s, IK_r)
//	keys   = HKDF(secret, salt = BK_s)
//	ct     = HMAC(mac, gcm) || gcm,  gcm = AES-GCM(enc, plaintext, aad = header)
//	sig    = Ed25519(SK_s, ct)
type Engine interface {
	// PeerID returns this node's id.
	PeerID() string

	// PublicKeys returns the key material this node publishes to peers.
	PublicKeys() models.PeerKeys

	// Seal encrypts plaintext for peer and signs the result.
	// Returns ErrKeyMaterialMissing if peer lacks usable keys.
	Seal(plaintext []byte, peer models.PeerKeys) (Sealed, error)

	// Open verifies the signature first and fails closed; only a verified
	// bundle addressed to this node is decrypted.
	Open(header models.EncryptionHeader, ciphertext, signature []byte) ([]byte, error)
}

// Sealed is the output of [Engine.Seal].
type Sealed struct {
	Header     models.EncryptionHeader
	Ciphertext []byte
	Signature  []byte
}
