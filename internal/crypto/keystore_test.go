package crypto

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bundle-keeper/models"
)

func TestSaveLoadIdentity(t *testing.T) {
	for _, role := range []models.Role{models.RoleClient, models.RoleServer} {
		t.Run(string(role), func(t *testing.T) {
			dir := t.TempDir()

			id, err := GenerateIdentity(role)
			require.NoError(t, err)
			require.NoError(t, SaveIdentity(dir, id))

			info, err := os.Stat(filepath.Join(dir, IdentityFileName))
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

			loaded, err := LoadIdentity(dir)
			require.NoError(t, err)
			assert.Equal(t, id.PeerID(), loaded.PeerID())
			assert.Equal(t, id.SigningPrivate, loaded.SigningPrivate)
			assert.Equal(t, id.SignedPreKey, loaded.SignedPreKey)

			pub, err := ReadPublicKeys(filepath.Join(dir, PublicKeysFileName))
			require.NoError(t, err)
			assert.Equal(t, id.PeerID(), pub.PeerID)
			assert.Equal(t, role, pub.Role)
		})
	}
}

func TestLoadIdentity_NotFound(t *testing.T) {
	_, err := LoadIdentity(t.TempDir())
	assert.ErrorIs(t, err, ErrIdentityNotFound)
}

func TestLoadOrCreateIdentity(t *testing.T) {
	dir := t.TempDir()

	first, err := LoadOrCreateIdentity(dir, models.RoleServer)
	require.NoError(t, err)

	second, err := LoadOrCreateIdentity(dir, models.RoleServer)
	require.NoError(t, err)
	assert.Equal(t, first.PeerID(), second.PeerID())

	_, err = LoadOrCreateIdentity(dir, models.RoleClient)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestReadPublicKeys_Rejects(t *testing.T) {
	id, err := GenerateIdentity(models.RoleServer)
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(k *models.PeerKeys)
		wantErr error
	}{
		{name: "wrong peer id", mutate: func(k *models.PeerKeys) { k.PeerID = "x" }, wantErr: ErrSignatureVerificationFailed},
		{name: "forged pre-key", mutate: func(k *models.PeerKeys) { k.SignedPreKey[3] ^= 1 }, wantErr: ErrSignatureVerificationFailed},
		{name: "server without pre-key", mutate: func(k *models.PeerKeys) { k.SignedPreKey = nil }, wantErr: ErrKeyMaterialMissing},
		{name: "short identity key", mutate: func(k *models.PeerKeys) { k.IdentityKey = k.IdentityKey[:8] }, wantErr: ErrKeyMaterialMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := id.PublicKeys()
			keys.SignedPreKey = append([]byte(nil), keys.SignedPreKey...)
			tt.mutate(&keys)

			path := filepath.Join(t.TempDir(), "keys.json")
			require.NoError(t, WritePublicKeys(path, keys))

			_, err := ReadPublicKeys(path)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPeerID_Stable(t *testing.T) {
	id, err := GenerateIdentity(models.RoleClient)
	require.NoError(t, err)

	assert.Equal(t, PeerID(id.IdentityKey.Public), id.PeerID())
	assert.Len(t, id.PeerID(), 27)
	assert.NotContains(t, id.PeerID(), "=")
}

func TestGenerateIdentity_InvalidRole(t *testing.T) {
	_, err := GenerateIdentity(models.Role("relay"))
	assert.ErrorIs(t, err, ErrInvalidRole)
}
