package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-bundle-keeper/internal/crypto"
	"github.com/MKhiriev/go-bundle-keeper/internal/mock"
	"github.com/MKhiriev/go-bundle-keeper/internal/store"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

func publishedKeys(t *testing.T, role models.Role) models.PeerKeys {
	t.Helper()
	id, err := crypto.GenerateIdentity(role)
	require.NoError(t, err)
	return id.PublicKeys()
}

func newTestKeyService(t *testing.T) (KeyService, *mock.MockPeerKeyRepository, *mock.MockEngine) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockPeerKeyRepository(ctrl)
	engine := mock.NewMockEngine(ctrl)
	engine.EXPECT().PeerID().Return("self").AnyTimes()
	return NewKeyService(repo, engine), repo, engine
}

func TestKeyService_PeerKeys(t *testing.T) {
	svc, repo, _ := newTestKeyService(t)
	ctx := context.Background()
	keys := models.PeerKeys{PeerID: "p1"}

	repo.EXPECT().Get(ctx, "p1").Return(keys, nil)
	got, err := svc.PeerKeys(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, keys, got)

	repo.EXPECT().Get(ctx, "p2").Return(models.PeerKeys{}, store.ErrPeerKeysNotFound)
	_, err = svc.PeerKeys(ctx, "p2")
	assert.ErrorIs(t, err, ErrUnknownPeer)
}

func TestKeyService_Peers(t *testing.T) {
	svc, repo, _ := newTestKeyService(t)
	ctx := context.Background()

	repo.EXPECT().List(ctx).Return([]models.PeerKeys{{PeerID: "a"}, {PeerID: "b"}}, nil)
	ids, err := svc.Peers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestKeyService_Learn(t *testing.T) {
	svc, repo, _ := newTestKeyService(t)
	ctx := context.Background()
	keys := publishedKeys(t, models.RoleServer)

	repo.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, k models.PeerKeys) error {
		assert.Equal(t, keys.PeerID, k.PeerID)
		assert.False(t, k.UpdatedAt.IsZero())
		return nil
	})
	require.NoError(t, svc.Learn(ctx, keys))
}

func TestKeyService_Learn_Rejects(t *testing.T) {
	svc, repo, _ := newTestKeyService(t)
	ctx := context.Background()

	forged := publishedKeys(t, models.RoleClient)
	forged.PeerID = "someone-else"
	assert.ErrorIs(t, svc.Learn(ctx, forged), crypto.ErrSignatureVerificationFailed)

	boom := errors.New("disk full")
	valid := publishedKeys(t, models.RoleClient)
	repo.EXPECT().Save(ctx, gomock.Any()).Return(boom)
	assert.ErrorIs(t, svc.Learn(ctx, valid), boom)
}

func TestKeyService_Learn_OwnKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockPeerKeyRepository(ctrl)
	engine := mock.NewMockEngine(ctrl)

	own := publishedKeys(t, models.RoleClient)
	engine.EXPECT().PeerID().Return(own.PeerID)

	err := NewKeyService(repo, engine).Learn(context.Background(), own)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestKeyService_Import(t *testing.T) {
	svc, repo, _ := newTestKeyService(t)
	ctx := context.Background()

	keys := publishedKeys(t, models.RoleServer)
	path := filepath.Join(t.TempDir(), "server.pub.json")
	require.NoError(t, crypto.WritePublicKeys(path, keys))

	repo.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	got, err := svc.Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, keys.PeerID, got.PeerID)

	_, err = svc.Import(ctx, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestKeyService_Own(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mock.NewMockEngine(ctrl)
	keys := models.PeerKeys{PeerID: "self"}
	engine.EXPECT().PublicKeys().Return(keys)

	assert.Equal(t, keys, NewKeyService(mock.NewMockPeerKeyRepository(ctrl), engine).Own())
}
