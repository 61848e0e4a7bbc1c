// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/ed25519"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/MKhiriev/go-bundle-keeper/models"
)

// Identity is the long-term key material of one node.
//
// Every node has an X25519 identity key and an Ed25519 signing key. A server
// additionally holds a signed pre-key that clients agree against; the
// signature over it is made with the signing key.
type Identity struct {
	Role models.Role

	IdentityKey KeyPair

	SigningPublic  ed25519.PublicKey
	SigningPrivate ed25519.PrivateKey

	// SignedPreKey is nil for clients.
	SignedPreKey    *KeyPair
	SignedPreKeySig []byte
}

// GenerateIdentity creates a fresh identity for role.
func GenerateIdentity(role models.Role) (*Identity, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	ik, err := NewX25519KeyPair()
	if err != nil {
		return nil, fmt.Errorf("identity key: %w", err)
	}

	signPub, signPriv, err := NewEd25519KeyPair()
	if err != nil {
		return nil, fmt.Errorf("signing key: %w", err)
	}

	id := &Identity{
		Role:           role,
		IdentityKey:    ik,
		SigningPublic:  signPub,
		SigningPrivate: signPriv,
	}

	if role == models.RoleServer {
		spk, err := NewX25519KeyPair()
		if err != nil {
			return nil, fmt.Errorf("signed pre-key: %w", err)
		}
		id.SignedPreKey = &spk
		id.SignedPreKeySig = Sign(signPriv, spk.Public)
	}

	return id, nil
}

// PeerID returns the id other nodes know this identity by.
func (id *Identity) PeerID() string {
	return PeerID(id.IdentityKey.Public)
}

// PublicKeys returns the material a peer needs to send to this identity.
func (id *Identity) PublicKeys() models.PeerKeys {
	keys := models.PeerKeys{
		PeerID:      id.PeerID(),
		Role:        id.Role,
		IdentityKey: id.IdentityKey.Public,
		SigningKey:  id.SigningPublic,
		UpdatedAt:   time.Now().UTC(),
	}
	if id.SignedPreKey != nil {
		keys.SignedPreKey = id.SignedPreKey.Public
		keys.SignedPreKeySig = id.SignedPreKeySig
	}
	return keys
}

// preKeyPrivate returns the private half of the key this node publishes in
// the pre-key slot. Clients have no signed pre-key, so the identity key is used.
func (id *Identity) preKeyPrivate() []byte {
	if id.SignedPreKey != nil {
		return id.SignedPreKey.Private
	}
	return id.IdentityKey.Private
}

func (id *Identity) validate() error {
	if !id.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, id.Role)
	}
	if len(id.IdentityKey.Private) != KeySize || len(id.IdentityKey.Public) != KeySize {
		return fmt.Errorf("%w: identity key", ErrKeyMaterialMissing)
	}
	if len(id.SigningPrivate) != ed25519.PrivateKeySize || len(id.SigningPublic) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: signing key", ErrKeyMaterialMissing)
	}
	if id.Role == models.RoleServer && id.SignedPreKey == nil {
		return fmt.Errorf("%w: server identity without signed pre-key", ErrKeyMaterialMissing)
	}
	return nil
}

// PeerID is the unpadded base64url SHA-1 of an identity public key.
func PeerID(identityPub []byte) string {
	sum := sha1.Sum(identityPub)
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// VerifyPeerKeys checks that published key material is self-consistent: the
// peer id matches the identity key and a signed pre-key, when present, is
// signed by the signing key.
func VerifyPeerKeys(keys models.PeerKeys) error {
	if len(keys.IdentityKey) != KeySize || len(keys.SigningKey) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: peer %q", ErrKeyMaterialMissing, keys.PeerID)
	}
	if keys.PeerID != PeerID(keys.IdentityKey) {
		return fmt.Errorf("%w: peer id does not match identity key", ErrSignatureVerificationFailed)
	}
	if keys.Role == models.RoleServer && len(keys.SignedPreKey) == 0 {
		return fmt.Errorf("%w: server keys without signed pre-key", ErrKeyMaterialMissing)
	}
	if len(keys.SignedPreKey) != 0 {
		if len(keys.SignedPreKey) != KeySize {
			return fmt.Errorf("%w: signed pre-key", ErrKeyMaterialMissing)
		}
		if !Verify(keys.SigningKey, keys.SignedPreKey, keys.SignedPreKeySig) {
			return fmt.Errorf("%w: signed pre-key", ErrSignatureVerificationFailed)
		}
	}
	return nil
}

// SecurityContext is the explicit state the engine works with: which node it
// is and which side of the exchange it plays.
type SecurityContext struct {
	Role     models.Role
	Identity *Identity
}

// NewSecurityContext wraps id after checking that its material is complete.
func NewSecurityContext(id *Identity) (SecurityContext, error) {
	if id == nil {
		return SecurityContext{}, fmt.Errorf("%w: nil identity", ErrKeyMaterialMissing)
	}
	if err := id.validate(); err != nil {
		return SecurityContext{}, err
	}
	return SecurityContext{Role: id.Role, Identity: id}, nil
}
