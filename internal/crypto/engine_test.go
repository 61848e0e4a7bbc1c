package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bundle-keeper/models"
)

func newTestEngine(t *testing.T, role models.Role) Engine {
	t.Helper()

	id, err := GenerateIdentity(role)
	require.NoError(t, err)

	sc, err := NewSecurityContext(id)
	require.NoError(t, err)

	return NewEngine(sc)
}

func TestEngine_RoundTrip(t *testing.T) {
	client := newTestEngine(t, models.RoleClient)
	server := newTestEngine(t, models.RoleServer)

	tests := []struct {
		name      string
		from, to  Engine
		plaintext []byte
	}{
		{name: "client to server", from: client, to: server, plaintext: []byte("mail #1")},
		{name: "server to client", from: server, to: client, plaintext: []byte("reply #1")},
		{name: "empty payload", from: client, to: server, plaintext: []byte{}},
		{name: "large payload", from: server, to: client, plaintext: bytes.Repeat([]byte{0x5a}, 1<<16)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := tt.from.Seal(tt.plaintext, tt.to.PublicKeys())
			require.NoError(t, err)

			assert.Equal(t, tt.from.PeerID(), sealed.Header.SenderID)
			assert.Equal(t, tt.to.PeerID(), sealed.Header.RecipientID)

			plain, err := tt.to.Open(sealed.Header, sealed.Ciphertext, sealed.Signature)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, plain)
		})
	}
}

func TestEngine_Seal_FreshBaseKeyPerBundle(t *testing.T) {
	client := newTestEngine(t, models.RoleClient)
	server := newTestEngine(t, models.RoleServer)

	a, err := client.Seal([]byte("same"), server.PublicKeys())
	require.NoError(t, err)
	b, err := client.Seal([]byte("same"), server.PublicKeys())
	require.NoError(t, err)

	assert.NotEqual(t, a.Header.BaseKey, b.Header.BaseKey)
	assert.NotEqual(t, a.Ciphertext, b.Ciphertext)
}

func TestEngine_Seal_HeaderByRole(t *testing.T) {
	client := newTestEngine(t, models.RoleClient)
	server := newTestEngine(t, models.RoleServer)

	fromClient, err := client.Seal([]byte("x"), server.PublicKeys())
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, fromClient.Header.Role)
	assert.Empty(t, fromClient.Header.SignedPreKey)

	fromServer, err := server.Seal([]byte("x"), client.PublicKeys())
	require.NoError(t, err)
	assert.Equal(t, models.RoleServer, fromServer.Header.Role)
	assert.Len(t, fromServer.Header.SignedPreKey, KeySize)
	assert.NotEmpty(t, fromServer.Header.SignedPreKeySig)
}

func TestEngine_Seal_MissingKeyMaterial(t *testing.T) {
	client := newTestEngine(t, models.RoleClient)

	_, err := client.Seal([]byte("x"), models.PeerKeys{PeerID: "nobody"})
	assert.ErrorIs(t, err, ErrKeyMaterialMissing)
}

func TestEngine_Open_Tampered(t *testing.T) {
	client := newTestEngine(t, models.RoleClient)
	server := newTestEngine(t, models.RoleServer)
	other := newTestEngine(t, models.RoleClient)

	tests := []struct {
		name    string
		mutate  func(s *Sealed)
		wantErr error
	}{
		{
			name:    "flipped ciphertext bit",
			mutate:  func(s *Sealed) { s.Ciphertext[len(s.Ciphertext)-1] ^= 0x01 },
			wantErr: ErrSignatureVerificationFailed,
		},
		{
			name:    "flipped signature bit",
			mutate:  func(s *Sealed) { s.Signature[0] ^= 0x80 },
			wantErr: ErrSignatureVerificationFailed,
		},
		{
			name:    "truncated signature",
			mutate:  func(s *Sealed) { s.Signature = s.Signature[:10] },
			wantErr: ErrSignatureVerificationFailed,
		},
		{
			name:    "spoofed sender id",
			mutate:  func(s *Sealed) { s.Header.SenderID = other.PeerID() },
			wantErr: ErrSignatureVerificationFailed,
		},
		{
			name: "re-signed with another signing key",
			mutate: func(s *Sealed) {
				pub, priv, err := NewEd25519KeyPair()
				require.NoError(t, err)
				s.Header.SigningKey = pub
				s.Signature = Sign(priv, s.Ciphertext)
			},
			wantErr: ErrDecryptionFailed,
		},
		{
			name: "swapped base key",
			mutate: func(s *Sealed) {
				kp, err := NewX25519KeyPair()
				require.NoError(t, err)
				s.Header.BaseKey = kp.Public
			},
			wantErr: ErrDecryptionFailed,
		},
		{
			name:    "readdressed",
			mutate:  func(s *Sealed) { s.Header.RecipientID = other.PeerID() },
			wantErr: ErrWrongRecipient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := client.Seal([]byte("mail #2"), server.PublicKeys())
			require.NoError(t, err)

			tt.mutate(&sealed)

			plain, err := server.Open(sealed.Header, sealed.Ciphertext, sealed.Signature)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, plain)
		})
	}
}

func TestEngine_Open_WrongRecipient(t *testing.T) {
	server := newTestEngine(t, models.RoleServer)
	alice := newTestEngine(t, models.RoleClient)
	bob := newTestEngine(t, models.RoleClient)

	sealed, err := server.Seal([]byte("for alice"), alice.PublicKeys())
	require.NoError(t, err)

	_, err = bob.Open(sealed.Header, sealed.Ciphertext, sealed.Signature)
	assert.ErrorIs(t, err, ErrWrongRecipient)
}

func TestEngine_Open_ForgedServerPreKey(t *testing.T) {
	server := newTestEngine(t, models.RoleServer)
	client := newTestEngine(t, models.RoleClient)

	sealed, err := server.Seal([]byte("x"), client.PublicKeys())
	require.NoError(t, err)

	sealed.Header.SignedPreKeySig[0] ^= 0xff

	_, err = client.Open(sealed.Header, sealed.Ciphertext, sealed.Signature)
	assert.ErrorIs(t, err, ErrSignatureVerificationFailed)
}

func TestVerifyHeader(t *testing.T) {
	client := newTestEngine(t, models.RoleClient)
	server := newTestEngine(t, models.RoleServer)

	sealed, err := client.Seal([]byte("x"), server.PublicKeys())
	require.NoError(t, err)

	require.NoError(t, VerifyHeader(sealed.Header, sealed.Ciphertext, sealed.Signature))

	sealed.Ciphertext[0] ^= 0x01
	assert.ErrorIs(t, VerifyHeader(sealed.Header, sealed.Ciphertext, sealed.Signature), ErrSignatureVerificationFailed)
}

func TestSenderKeys(t *testing.T) {
	server := newTestEngine(t, models.RoleServer)
	client := newTestEngine(t, models.RoleClient)

	sealed, err := server.Seal([]byte("x"), client.PublicKeys())
	require.NoError(t, err)

	keys := SenderKeys(sealed.Header)
	require.NoError(t, VerifyPeerKeys(keys))

	want := server.PublicKeys()
	assert.Equal(t, want.PeerID, keys.PeerID)
	assert.Equal(t, want.IdentityKey, keys.IdentityKey)
	assert.Equal(t, want.SignedPreKey, keys.SignedPreKey)
}
