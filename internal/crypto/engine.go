// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-bundle-keeper/models"
)

// engine is the private implementation of [Engine].
type engine struct {
	sc     SecurityContext
	peerID string
}

// NewEngine returns an [Engine] bound to sc.
func NewEngine(sc SecurityContext) Engine {
	return &engine{sc: sc, peerID: sc.Identity.PeerID()}
}

func (e *engine) PeerID() string {
	return e.peerID
}

func (e *engine) PublicKeys() models.PeerKeys {
	return e.sc.Identity.PublicKeys()
}

// Seal implements [Engine].
func (e *engine) Seal(plaintext []byte, peer models.PeerKeys) (Sealed, error) {
	if len(peer.IdentityKey) != KeySize || len(peer.PreKey()) != KeySize {
		return Sealed{}, fmt.Errorf("%w: recipient %q", ErrKeyMaterialMissing, peer.PeerID)
	}

	base, err := NewX25519KeyPair()
	if err != nil {
		return Sealed{}, fmt.Errorf("base key: %w", err)
	}

	id := e.sc.Identity
	secret, err := DeriveSendSecret(id.IdentityKey.Private, base.Private, peer.PreKey(), peer.IdentityKey)
	if err != nil {
		return Sealed{}, err
	}

	header := models.EncryptionHeader{
		Role:        e.sc.Role,
		SenderID:    e.peerID,
		RecipientID: PeerID(peer.IdentityKey),
		IdentityKey: id.IdentityKey.Public,
		SigningKey:  id.SigningPublic,
		BaseKey:     base.Public,
	}
	if e.sc.Role == models.RoleServer && id.SignedPreKey != nil {
		header.SignedPreKey = id.SignedPreKey.Public
		header.SignedPreKeySig = id.SignedPreKeySig
	}

	keys, err := DeriveBundleKeys(secret, header.BaseKey)
	if err != nil {
		return Sealed{}, err
	}

	aad, err := headerAAD(header)
	if err != nil {
		return Sealed{}, err
	}

	ct, err := aeadEncrypt(keys.EncryptionKey, plaintext, aad)
	if err != nil {
		return Sealed{}, fmt.Errorf("encrypt: %w", err)
	}

	tagged := tag(keys.MACKey, ct)

	return Sealed{
		Header:     header,
		Ciphertext: tagged,
		Signature:  Sign(id.SigningPrivate, tagged),
	}, nil
}

// Open implements [Engine].
func (e *engine) Open(header models.EncryptionHeader, ciphertext, signature []byte) ([]byte, error) {
	if err := verifyHeader(header, ciphertext, signature); err != nil {
		return nil, err
	}

	if header.RecipientID != e.peerID {
		return nil, fmt.Errorf("%w: %q", ErrWrongRecipient, header.RecipientID)
	}

	if len(header.BaseKey) != KeySize {
		return nil, fmt.Errorf("%w: base key", ErrKeyMaterialMissing)
	}

	id := e.sc.Identity
	secret, err := DeriveReceiveSecret(id.preKeyPrivate(), id.IdentityKey.Private, header.IdentityKey, header.BaseKey)
	if err != nil {
		return nil, err
	}

	keys, err := DeriveBundleKeys(secret, header.BaseKey)
	if err != nil {
		return nil, err
	}

	ct, err := untag(keys.MACKey, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	aad, err := headerAAD(header)
	if err != nil {
		return nil, err
	}

	plain, err := aeadDecrypt(keys.EncryptionKey, ct, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	return plain, nil
}

// verifyHeader checks the signature and the binding between the sender id and
// the keys carried in the header.
func verifyHeader(header models.EncryptionHeader, ciphertext, signature []byte) error {
	if len(header.IdentityKey) != KeySize {
		return fmt.Errorf("%w: sender identity key", ErrSignatureVerificationFailed)
	}
	if header.SenderID != PeerID(header.IdentityKey) {
		return fmt.Errorf("%w: sender id does not match identity key", ErrSignatureVerificationFailed)
	}
	if !Verify(header.SigningKey, ciphertext, signature) {
		return fmt.Errorf("%w: bundle signature", ErrSignatureVerificationFailed)
	}
	if header.Role == models.RoleServer && !Verify(header.SigningKey, header.SignedPreKey, header.SignedPreKeySig) {
		return fmt.Errorf("%w: signed pre-key", ErrSignatureVerificationFailed)
	}
	return nil
}

// VerifyHeader checks a header and signature without decrypting. It lets
// intermediaries that hold no keys reject forged bundles.
func VerifyHeader(header models.EncryptionHeader, ciphertext, signature []byte) error {
	return verifyHeader(header, ciphertext, signature)
}

// SenderKeys extracts the public key material a verified header carries.
func SenderKeys(header models.EncryptionHeader) models.PeerKeys {
	return models.PeerKeys{
		PeerID:          header.SenderID,
		Role:            header.Role,
		IdentityKey:     header.IdentityKey,
		SigningKey:      header.SigningKey,
		SignedPreKey:    header.SignedPreKey,
		SignedPreKeySig: header.SignedPreKeySig,
	}
}

// headerAAD is the associated data binding the header to the ciphertext.
// encoding/json writes struct fields in declaration order, so the encoding is
// stable for equal headers. Only the fields known to this version are bound;
// unknown container header fields are neither authenticated nor used.
func headerAAD(header models.EncryptionHeader) ([]byte, error) {
	aad, err := json.Marshal(header)
	if err != nil {
		return nil, fmt.Errorf("encode header: %w", err)
	}
	return aad, nil
}
