// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-bundle-keeper/internal/bundle"
	"github.com/MKhiriev/go-bundle-keeper/internal/config"
	"github.com/MKhiriev/go-bundle-keeper/internal/crypto"
	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/internal/store"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

// testNode is a complete node on a temp dir with a real engine and SQLite.
type testNode struct {
	engine  crypto.Engine
	st      *store.Storages
	keys    KeyService
	adus    ADUService
	bundles BundleService
}

func newTestNode(t *testing.T, role models.Role, w config.Window) *testNode {
	t.Helper()

	id, err := crypto.GenerateIdentity(role)
	require.NoError(t, err)
	sc, err := crypto.NewSecurityContext(id)
	require.NoError(t, err)
	engine := crypto.NewEngine(sc)

	dir := t.TempDir()
	st, err := store.NewStorages(context.Background(), config.Storage{
		DB:    config.DB{Driver: config.DriverSQLite, DSN: filepath.Join(dir, "node.db")},
		Files: config.Files{DataDir: filepath.Join(dir, "data")},
	}, 0, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	keys := NewKeyService(st.PeerKeys, engine)
	return &testNode{
		engine:  engine,
		st:      st,
		keys:    keys,
		adus:    NewADUService(st.ADUs, nil),
		bundles: NewBundleService(st, engine, keys, nil, w, nil),
	}
}

func (n *testNode) id() string { return n.engine.PeerID() }

// newPair returns a client that already knows the server's published keys.
func newPair(t *testing.T, w config.Window) (client, server *testNode) {
	t.Helper()
	client = newTestNode(t, models.RoleClient, w)
	server = newTestNode(t, models.RoleServer, w)
	require.NoError(t, client.keys.Learn(context.Background(), server.engine.PublicKeys()))
	return client, server
}

func (n *testNode) produce(t *testing.T, peer *testNode, appID string, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		_, err := n.adus.Produce(context.Background(), peer.id(), appID, []byte(fmt.Sprintf("%s-%d", appID, i+1)))
		require.NoError(t, err)
	}
}

func (n *testNode) meta(t *testing.T, peer *testNode, appID string) models.Metadata {
	t.Helper()
	m, err := n.st.ADUs.Metadata(context.Background(), peer.id(), appID)
	require.NoError(t, err)
	return m
}

func (n *testNode) send(t *testing.T, peer *testNode) models.BundleTransferDTO {
	t.Helper()
	dto, err := n.bundles.Send(context.Background(), peer.id())
	require.NoError(t, err)
	return dto
}

func bundleIDs(bundles []models.Bundle) []string {
	ids := make([]string, 0, len(bundles))
	for _, b := range bundles {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestBundleService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client, server := newPair(t, config.Window{})

	client.produce(t, server, "mail", 5)

	dto := client.send(t, server)
	require.Len(t, dto.Bundles, 1)
	assert.Empty(t, dto.DeletionSet)
	b1 := dto.Bundles[0]
	assert.Nil(t, b1.Payload)
	assert.Equal(t, int64(5), client.meta(t, server, "mail").LastSent)

	res, err := server.bundles.Receive(ctx, b1.Source)
	require.NoError(t, err)
	assert.Equal(t, b1.ID, res.BundleID)
	assert.Equal(t, client.id(), res.PeerID)
	assert.False(t, res.Duplicate)
	assert.Equal(t, map[string]int{"mail": 5}, res.Applied)

	got := server.meta(t, client, "mail")
	assert.Equal(t, int64(5), got.LastReceived)
	assert.Equal(t, int64(0), got.LastProcessed)

	adu, ok, err := server.st.ADUs.NextUnprocessed(ctx, client.id(), "mail")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1), adu.Seq)
	assert.Equal(t, "mail-1", string(adu.Payload))

	// the server learned the client's keys from the header and acknowledges
	reply := server.send(t, client)
	require.Len(t, reply.Bundles, 1)
	ack := reply.Bundles[0]

	res, err = client.bundles.Receive(ctx, ack.Source)
	require.NoError(t, err)
	assert.Equal(t, []string{b1.ID}, res.AckedBundles)
	assert.Empty(t, res.Applied)
	assert.Equal(t, int64(5), client.meta(t, server, "mail").LastDeleted)

	// acknowledged bundle is purged, nothing new to say
	dto = client.send(t, server)
	assert.Equal(t, []string{b1.ID}, dto.DeletionSet)
	assert.Empty(t, dto.Bundles)
	_, err = os.Stat(b1.Source)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// the acknowledgement-only bundle is neither retransmitted nor deleted
	reply = server.send(t, client)
	assert.Empty(t, reply.DeletionSet)
	assert.Empty(t, reply.Bundles)
	_, err = os.Stat(ack.Source)
	assert.NoError(t, err)
}

func TestBundleService_Send_AckOnlyBundleOutlivesCycles(t *testing.T) {
	ctx := context.Background()
	client, server := newPair(t, config.Window{})

	client.produce(t, server, "mail", 1)
	b1 := client.send(t, server).Bundles[0]
	_, err := server.bundles.Receive(ctx, b1.Source)
	require.NoError(t, err)

	first := server.send(t, client)
	require.Len(t, first.Bundles, 1)
	ack := first.Bundles[0]

	// the client has not received the acknowledgement yet
	for i := 0; i < 2; i++ {
		dto := server.send(t, client)
		assert.Empty(t, dto.DeletionSet)
		assert.Empty(t, dto.Bundles)
	}
	_, err = os.Stat(ack.Source)
	require.NoError(t, err)

	path, err := server.bundles.Locate(ctx, ack.ID)
	require.NoError(t, err)
	assert.Equal(t, ack.Source, path)

	res, err := client.bundles.Receive(ctx, ack.Source)
	require.NoError(t, err)
	assert.Equal(t, []string{b1.ID}, res.AckedBundles)
}

func TestBundleService_Send_RetiresOldAckOnlyBundles(t *testing.T) {
	ctx := context.Background()
	client, server := newPair(t, config.Window{})

	client.produce(t, server, "mail", 1)
	b1 := client.send(t, server).Bundles[0]
	_, err := server.bundles.Receive(ctx, b1.Source)
	require.NoError(t, err)
	ack := server.send(t, client).Bundles[0]

	svc := server.bundles.(*bundleService)
	svc.now = func() time.Time { return time.Now().Add(ackOnlyRetention + time.Hour) }

	dto := server.send(t, client)
	assert.Empty(t, dto.DeletionSet)
	assert.Empty(t, dto.Bundles)

	_, err = os.Stat(ack.Source)
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = server.bundles.Locate(ctx, ack.ID)
	assert.ErrorIs(t, err, store.ErrBundleNotFound)
}

func TestBundleService_Send_DeletionSetHoldsOnlyAcknowledged(t *testing.T) {
	ctx := context.Background()
	client, server := newPair(t, config.Window{MaxCount: 1})

	client.produce(t, server, "mail", 2)
	b1 := client.send(t, server).Bundles[0]
	dto := client.send(t, server)
	require.Len(t, dto.Bundles, 2)
	b2 := dto.Bundles[1]

	_, err := server.bundles.Receive(ctx, b1.Source)
	require.NoError(t, err)
	ack := server.send(t, client).Bundles[0]
	_, err = client.bundles.Receive(ctx, ack.Source)
	require.NoError(t, err)

	dto = client.send(t, server)
	assert.Equal(t, []string{b1.ID}, dto.DeletionSet)
	assert.Equal(t, []string{b2.ID}, bundleIDs(dto.Bundles))
}

func TestBundleService_Send_BuildFailureKeepsDeletionSet(t *testing.T) {
	ctx := context.Background()
	client, server := newPair(t, config.Window{})

	client.produce(t, server, "mail", 1)
	b1 := client.send(t, server).Bundles[0]
	_, err := server.bundles.Receive(ctx, b1.Source)
	require.NoError(t, err)
	ack := server.send(t, client).Bundles[0]
	_, err = client.bundles.Receive(ctx, ack.Source)
	require.NoError(t, err)

	// the next ADU payload is unreadable, so no bundle can be built
	client.produce(t, server, "mail", 1)
	payload, err := client.st.Files.ADUPath(store.Outbound, server.id(), "mail", 2)
	require.NoError(t, err)
	data, err := os.ReadFile(payload)
	require.NoError(t, err)
	require.NoError(t, os.Remove(payload))

	_, err = client.bundles.Send(ctx, server.id())
	require.Error(t, err)

	acked, err := client.st.SentBundles.ListAckedUnpurged(ctx, server.id())
	require.NoError(t, err)
	assert.Len(t, acked, 1)

	require.NoError(t, os.WriteFile(payload, data, 0o644))
	dto := client.send(t, server)
	assert.Equal(t, []string{b1.ID}, dto.DeletionSet)
	assert.Len(t, dto.Bundles, 1)
}

func TestBundleService_Receive_Duplicate(t *testing.T) {
	ctx := context.Background()
	client, server := newPair(t, config.Window{})

	client.produce(t, server, "mail", 2)
	b1 := client.send(t, server).Bundles[0]

	_, err := server.bundles.Receive(ctx, b1.Source)
	require.NoError(t, err)
	before := server.meta(t, client, "mail")

	res, err := server.bundles.Receive(ctx, b1.Source)
	require.NoError(t, err)
	assert.True(t, res.Duplicate)
	assert.Equal(t, b1.ID, res.BundleID)
	assert.Empty(t, res.Applied)
	assert.Equal(t, before, server.meta(t, client, "mail"))
}

func TestBundleService_LostAcknowledgementIsRequeued(t *testing.T) {
	ctx := context.Background()
	client, server := newPair(t, config.Window{})

	client.produce(t, server, "mail", 1)
	b1 := client.send(t, server).Bundles[0]

	_, err := server.bundles.Receive(ctx, b1.Source)
	require.NoError(t, err)

	// first acknowledgement is lost on the way
	lost := server.send(t, client)
	require.Len(t, lost.Bundles, 1)

	// the client retransmits; the server acknowledges again
	retry := client.send(t, server)
	require.Equal(t, []string{b1.ID}, bundleIDs(retry.Bundles))
	dup, err := server.bundles.Receive(ctx, retry.Bundles[0].Source)
	require.NoError(t, err)
	require.True(t, dup.Duplicate)

	again := server.send(t, client)
	require.Len(t, again.Bundles, 1)
	assert.NotEqual(t, lost.Bundles[0].ID, again.Bundles[0].ID)

	res, err := client.bundles.Receive(ctx, again.Bundles[0].Source)
	require.NoError(t, err)
	assert.Equal(t, []string{b1.ID}, res.AckedBundles)
}

func TestBundleService_Send_Retransmits(t *testing.T) {
	client, server := newPair(t, config.Window{})

	client.produce(t, server, "mail", 3)
	first := client.send(t, server)
	require.Len(t, first.Bundles, 1)

	// no acknowledgement yet and nothing new: the same bundle again
	second := client.send(t, server)
	assert.Equal(t, bundleIDs(first.Bundles), bundleIDs(second.Bundles))

	// new ADUs go into a new bundle behind the outstanding one
	client.produce(t, server, "mail", 1)
	third := client.send(t, server)
	require.Len(t, third.Bundles, 2)
	assert.Equal(t, first.Bundles[0].ID, third.Bundles[0].ID)
	assert.Equal(t, int64(4), client.meta(t, server, "mail").LastSent)
}

func TestBundleService_Send_WindowFull(t *testing.T) {
	client, server := newPair(t, config.Window{MaxCount: 2, MaxBundlesInFlight: 1})

	client.produce(t, server, "mail", 3)

	dto := client.send(t, server)
	require.Len(t, dto.Bundles, 1)
	assert.Equal(t, int64(2), client.meta(t, server, "mail").LastSent)

	dto = client.send(t, server)
	require.Len(t, dto.Bundles, 1)
	assert.Equal(t, int64(2), client.meta(t, server, "mail").LastSent)
}

func TestBundleService_Send_SplitsByWindow(t *testing.T) {
	client, server := newPair(t, config.Window{MaxCount: 2})

	client.produce(t, server, "chat", 1)
	client.produce(t, server, "mail", 3)

	// chat/1 and mail/1 fill the first window in app id order
	client.send(t, server)
	assert.Equal(t, int64(1), client.meta(t, server, "chat").LastSent)
	assert.Equal(t, int64(1), client.meta(t, server, "mail").LastSent)

	client.send(t, server)
	assert.Equal(t, int64(3), client.meta(t, server, "mail").LastSent)
}

func TestBundleService_Receive_GapWaitsForRetransmission(t *testing.T) {
	ctx := context.Background()
	client, server := newPair(t, config.Window{MaxCount: 2})

	client.produce(t, server, "mail", 3)
	first := client.send(t, server)
	dto := client.send(t, server)
	require.Len(t, dto.Bundles, 2)
	b1, b2 := first.Bundles[0], dto.Bundles[1]

	_, err := server.bundles.Receive(ctx, b2.Source)
	require.ErrorIs(t, err, store.ErrSequenceGap)
	assert.Equal(t, ClassTransient, Classify(err))

	seen, err := server.st.ReceivedBundles.Exists(ctx, b2.ID)
	require.NoError(t, err)
	assert.False(t, seen)
	assert.Equal(t, int64(0), server.meta(t, client, "mail").LastReceived)

	_, err = server.bundles.Receive(ctx, b1.Source)
	require.NoError(t, err)
	res, err := server.bundles.Receive(ctx, b2.Source)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"mail": 1}, res.Applied)
	assert.Equal(t, int64(3), server.meta(t, client, "mail").LastReceived)
}

func TestBundleService_Receive_Tampered(t *testing.T) {
	ctx := context.Background()
	client, server := newPair(t, config.Window{})

	client.produce(t, server, "mail", 2)
	orig := client.send(t, server).Bundles[0]

	b, _, err := bundle.ReadFile(orig.Source)
	require.NoError(t, err)
	b.Payload[len(b.Payload)-1] ^= 0xff
	forged := bundle.New(b.Header, b.Payload, b.Signature)

	path := filepath.Join(t.TempDir(), bundle.FileName(forged.ID))
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, bundle.Write(f, forged))
	require.NoError(t, f.Close())

	_, err = server.bundles.Receive(ctx, path)
	require.Error(t, err)
	assert.Equal(t, ClassIntegrity, Classify(err))

	metas, err := server.adus.Metadata(ctx, client.id())
	require.NoError(t, err)
	assert.Empty(t, metas)

	seen, err := server.st.ReceivedBundles.Exists(ctx, forged.ID)
	require.NoError(t, err)
	assert.False(t, seen)

	// the untouched original still applies
	_, err = server.bundles.Receive(ctx, orig.Source)
	require.NoError(t, err)
}

func TestBundleService_Receive_NotForMe(t *testing.T) {
	ctx := context.Background()
	client, server := newPair(t, config.Window{})
	other := newTestNode(t, models.RoleServer, config.Window{})

	client.produce(t, server, "mail", 1)
	b1 := client.send(t, server).Bundles[0]

	_, err := other.bundles.Receive(ctx, b1.Source)
	require.Error(t, err)
	assert.Equal(t, ClassIntegrity, Classify(err))
}

func TestBundleService_Receive_Malformed(t *testing.T) {
	server := newTestNode(t, models.RoleServer, config.Window{})

	path := filepath.Join(t.TempDir(), "junk.bundle")
	require.NoError(t, os.WriteFile(path, []byte("junk"), 0o644))

	_, err := server.bundles.Receive(context.Background(), path)
	require.ErrorIs(t, err, bundle.ErrMalformedBundle)
	assert.Equal(t, ClassIntegrity, Classify(err))
}

func TestBundleService_Send_UnknownPeer(t *testing.T) {
	client := newTestNode(t, models.RoleClient, config.Window{})

	_, err := client.bundles.Send(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrUnknownPeer)
	assert.Equal(t, ClassConfiguration, Classify(err))
}

func TestBundleService_Send_NothingToSay(t *testing.T) {
	client, server := newPair(t, config.Window{})

	dto := client.send(t, server)
	assert.Empty(t, dto.Bundles)
	assert.Empty(t, dto.DeletionSet)
}

func TestBundleService_Send_OutstandingFileGone(t *testing.T) {
	client, server := newPair(t, config.Window{})

	client.produce(t, server, "mail", 1)
	b1 := client.send(t, server).Bundles[0]
	require.NoError(t, os.Remove(b1.Source))

	dto := client.send(t, server)
	assert.Empty(t, dto.Bundles)
}

func TestBundleService_Locate(t *testing.T) {
	ctx := context.Background()
	client, server := newPair(t, config.Window{})

	client.produce(t, server, "mail", 1)
	b1 := client.send(t, server).Bundles[0]

	path, err := client.bundles.Locate(ctx, b1.ID)
	require.NoError(t, err)
	assert.Equal(t, b1.Source, path)

	_, err = client.bundles.Locate(ctx, "unknown")
	assert.ErrorIs(t, err, store.ErrBundleNotFound)

	require.NoError(t, os.Remove(b1.Source))
	_, err = client.bundles.Locate(ctx, b1.ID)
	assert.ErrorIs(t, err, store.ErrBundleNotFound)
}
