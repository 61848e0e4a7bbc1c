package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	encryptionKeySize = 32
	macKeySize        = 32
)

var bundleKeysInfo = []byte("go-bundle-keeper/bundle-keys/v1")

// BundleKeys are the symmetric keys of one bundle. They are never persisted.
type BundleKeys struct {
	EncryptionKey []byte
	MACKey        []byte
}

// DeriveBundleKeys expands the agreed secret into the encryption and MAC keys
// of one bundle. keyID salts the expansion so that each bundle gets its own
// keys even when the long-term keys repeat.
func DeriveBundleKeys(secret, keyID []byte) (BundleKeys, error) {
	if len(secret) == 0 {
		return BundleKeys{}, fmt.Errorf("%w: empty secret", ErrKeyMaterialMissing)
	}

	buf := make([]byte, encryptionKeySize+macKeySize)
	r := hkdf.New(sha256.New, secret, keyID, bundleKeysInfo)
	if _, err := io.ReadFull(r, buf); err != nil {
		return BundleKeys{}, fmt.Errorf("hkdf expand: %w", err)
	}

	return BundleKeys{
		EncryptionKey: buf[:encryptionKeySize],
		MACKey:        buf[encryptionKeySize:],
	}, nil
}
