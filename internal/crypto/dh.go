package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"
)

// KeySize is the length of X25519 private and public keys.
const KeySize = curve25519.ScalarSize

// KeyPair is an X25519 key pair.
type KeyPair struct {
	Private []byte
	Public  []byte
}

// NewX25519KeyPair generates a fresh X25519 key pair.
func NewX25519KeyPair() (KeyPair, error) {
	priv := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, priv); err != nil {
		return KeyPair{}, fmt.Errorf("failed to generate private key: %w", err)
	}

	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return KeyPair{}, fmt.Errorf("failed to derive public key: %w", err)
	}

	return KeyPair{Private: priv, Public: pub}, nil
}

// X25519SharedSecret performs the scalar multiplication priv * pub.
func X25519SharedSecret(priv, pub []byte) ([]byte, error) {
	if len(priv) != KeySize || len(pub) != KeySize {
		return nil, fmt.Errorf("%w: x25519 keys must be %d bytes", ErrKeyMaterialMissing, KeySize)
	}

	secret, err := curve25519.X25519(priv, pub)
	if err != nil {
		// low-order point
		return nil, fmt.Errorf("%w: %w", ErrKeyMaterialMissing, err)
	}
	return secret, nil
}
