package crypto

import (
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-bundle-keeper/models"
)

const (
	// IdentityFileName holds private material and is written with mode 0600.
	IdentityFileName = "identity.json"
	// PublicKeysFileName holds the material published to peers.
	PublicKeysFileName = "public_keys.json"
)

type identityFile struct {
	Role                models.Role `json:"role"`
	IdentityPrivate     []byte      `json:"identity_private"`
	IdentityPublic      []byte      `json:"identity_public"`
	SigningSeed         []byte      `json:"signing_seed"`
	SignedPreKeyPrivate []byte      `json:"signed_pre_key_private,omitempty"`
	SignedPreKeyPublic  []byte      `json:"signed_pre_key_public,omitempty"`
	SignedPreKeySig     []byte      `json:"signed_pre_key_sig,omitempty"`
}

// SaveIdentity writes id to dir/identity.json and its public part to
// dir/public_keys.json.
func SaveIdentity(dir string, id *Identity) error {
	if err := id.validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create key dir: %w", err)
	}

	f := identityFile{
		Role:            id.Role,
		IdentityPrivate: id.IdentityKey.Private,
		IdentityPublic:  id.IdentityKey.Public,
		SigningSeed:     id.SigningPrivate.Seed(),
	}
	if id.SignedPreKey != nil {
		f.SignedPreKeyPrivate = id.SignedPreKey.Private
		f.SignedPreKeyPublic = id.SignedPreKey.Public
		f.SignedPreKeySig = id.SignedPreKeySig
	}

	if err := writeJSON(filepath.Join(dir, IdentityFileName), f, 0o600); err != nil {
		return err
	}
	return WritePublicKeys(filepath.Join(dir, PublicKeysFileName), id.PublicKeys())
}

// LoadIdentity reads dir/identity.json. It returns ErrIdentityNotFound when
// the file does not exist.
func LoadIdentity(dir string) (*Identity, error) {
	data, err := os.ReadFile(filepath.Join(dir, IdentityFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrIdentityNotFound, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("read identity: %w", err)
	}

	var f identityFile
	if err = json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	if len(f.SigningSeed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: signing seed", ErrKeyMaterialMissing)
	}

	signPriv := ed25519.NewKeyFromSeed(f.SigningSeed)
	id := &Identity{
		Role:           f.Role,
		IdentityKey:    KeyPair{Private: f.IdentityPrivate, Public: f.IdentityPublic},
		SigningPrivate: signPriv,
		SigningPublic:  signPriv.Public().(ed25519.PublicKey),
	}
	if len(f.SignedPreKeyPrivate) != 0 {
		id.SignedPreKey = &KeyPair{Private: f.SignedPreKeyPrivate, Public: f.SignedPreKeyPublic}
		id.SignedPreKeySig = f.SignedPreKeySig
	}

	if err = id.validate(); err != nil {
		return nil, err
	}
	return id, nil
}

// LoadOrCreateIdentity loads the identity in dir or generates and saves a new
// one for role. An existing identity of another role is an error.
func LoadOrCreateIdentity(dir string, role models.Role) (*Identity, error) {
	id, err := LoadIdentity(dir)
	switch {
	case err == nil:
		if id.Role != role {
			return nil, fmt.Errorf("%w: key dir holds a %s identity, want %s", ErrInvalidRole, id.Role, role)
		}
		return id, nil
	case !errors.Is(err, ErrIdentityNotFound):
		return nil, err
	}

	id, err = GenerateIdentity(role)
	if err != nil {
		return nil, err
	}
	if err = SaveIdentity(dir, id); err != nil {
		return nil, err
	}
	return id, nil
}

// WritePublicKeys writes published key material to path.
func WritePublicKeys(path string, keys models.PeerKeys) error {
	return writeJSON(path, keys, 0o644)
}

// ReadPublicKeys reads and verifies published key material.
func ReadPublicKeys(path string) (models.PeerKeys, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.PeerKeys{}, fmt.Errorf("read public keys: %w", err)
	}

	var keys models.PeerKeys
	if err = json.Unmarshal(data, &keys); err != nil {
		return models.PeerKeys{}, fmt.Errorf("decode public keys: %w", err)
	}
	if err = VerifyPeerKeys(keys); err != nil {
		return models.PeerKeys{}, err
	}
	return keys, nil
}

func writeJSON(path string, v any, perm os.FileMode) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
