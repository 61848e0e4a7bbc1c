package crypto

import "errors"

var (
	// ErrSignatureVerificationFailed is returned when a bundle signature, the
	// sender id binding or a signed pre-key signature does not verify.
	ErrSignatureVerificationFailed = errors.New("signature verification failed")

	// ErrKeyMaterialMissing is returned when a key needed for agreement is
	// absent or has the wrong length.
	ErrKeyMaterialMissing = errors.New("key material missing")

	// ErrDecryptionFailed is returned when the MAC or the AEAD tag of a
	// bundle does not verify.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrWrongRecipient is returned when a bundle is addressed to another node.
	ErrWrongRecipient = errors.New("bundle addressed to another recipient")

	ErrInvalidRole      = errors.New("invalid role")
	ErrIdentityNotFound = errors.New("identity not found")
)
