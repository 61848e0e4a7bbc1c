// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/internal/utils"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

// aduStore implements [ADUStore] on top of the metadata repository and the
// payload files.
//
// Ordering rule: payload files are written before the counter that makes
// them visible, and deleted only after the counter that hides them. A crash
// in between leaves at most an orphan file, which the next write of the same
// sequence number replaces.
type aduStore struct {
	meta       MetadataRepository
	files      *FileStorage
	maxADUSize int64

	// streams serializes writers of one (peer, app) stream
	streams utils.KeyedMutex
}

// NewADUStore builds an [ADUStore]. maxADUSize bounds produced payloads; zero
// disables the check.
func NewADUStore(meta MetadataRepository, files *FileStorage, maxADUSize int64) ADUStore {
	return &aduStore{
		meta:       meta,
		files:      files,
		maxADUSize: maxADUSize,
	}
}

func (a *aduStore) RecordProduced(ctx context.Context, peerID, appID string, payload []byte) (models.ADU, error) {
	log := logger.FromContext(ctx)

	if a.maxADUSize > 0 && int64(len(payload)) > a.maxADUSize {
		return models.ADU{}, fmt.Errorf("%w: %d bytes, limit %d", ErrADUTooLarge, len(payload), a.maxADUSize)
	}

	unlock := a.streams.Lock(streamKey(peerID, appID))
	defer unlock()

	meta, err := a.ensure(ctx, peerID, appID)
	if err != nil {
		return models.ADU{}, wrapStage(err, peerID, appID, "record produced")
	}

	seq := meta.LastAdded + 1
	if err = a.files.WriteADU(Outbound, peerID, appID, seq, payload); err != nil {
		log.Err(err).
			Str("func", "aduStore.RecordProduced").
			Str("peer_id", peerID).
			Str("app_id", appID).
			Int64("seq", seq).
			Msg("failed to write payload file")
		return models.ADU{}, wrapStage(err, peerID, appID, "record produced")
	}

	if err = a.meta.AdvanceAdded(ctx, peerID, appID, meta.LastAdded, seq); err != nil {
		return models.ADU{}, wrapStage(err, peerID, appID, "record produced")
	}

	return models.ADU{
		PeerID: peerID,
		AppID:  appID,
		Seq:    seq,
		Size:   int64(len(payload)),
	}, nil
}

func (a *aduStore) PendingForSend(ctx context.Context, peerID, appID string) ([]models.ADU, error) {
	meta, err := a.Metadata(ctx, peerID, appID)
	if err != nil {
		return nil, err
	}

	pending := make([]models.ADU, 0, meta.LastAdded-meta.LastSent)
	for seq := meta.LastSent + 1; seq <= meta.LastAdded; seq++ {
		size, err := a.files.StatADU(Outbound, peerID, appID, seq)
		if err != nil {
			return nil, wrapStage(err, peerID, appID, "pending for send")
		}
		pending = append(pending, models.ADU{PeerID: peerID, AppID: appID, Seq: seq, Size: size})
	}
	return pending, nil
}

func (a *aduStore) LoadPayload(_ context.Context, adu models.ADU) ([]byte, error) {
	data, err := a.files.ReadADU(Outbound, adu.PeerID, adu.AppID, adu.Seq)
	if err != nil {
		return nil, wrapStage(err, adu.PeerID, adu.AppID, "load payload")
	}
	return data, nil
}

func (a *aduStore) MarkSent(ctx context.Context, peerID, appID string, upto int64) error {
	if err := a.meta.AdvanceSent(ctx, peerID, appID, upto); err != nil {
		return wrapStage(err, peerID, appID, "mark sent")
	}
	return nil
}

func (a *aduStore) ApplyReceived(ctx context.Context, peerID, appID string, adus []models.ADU) (int, error) {
	unlock := a.streams.Lock(streamKey(peerID, appID))
	defer unlock()

	meta, err := a.ensure(ctx, peerID, appID)
	if err != nil {
		return 0, wrapStage(err, peerID, appID, "apply received")
	}

	run := newRun(adus, meta.LastReceived)
	if len(run) == 0 {
		return 0, nil
	}

	if run[0].Seq != meta.LastReceived+1 {
		return 0, fmt.Errorf("%w: %s/%s expects %d, run starts at %d",
			ErrSequenceGap, peerID, appID, meta.LastReceived+1, run[0].Seq)
	}
	for i := 1; i < len(run); i++ {
		if run[i].Seq != run[i-1].Seq+1 {
			return 0, fmt.Errorf("%w: %s/%s missing %d", ErrSequenceGap, peerID, appID, run[i-1].Seq+1)
		}
	}

	for _, adu := range run {
		if err = a.files.WriteADU(Inbound, peerID, appID, adu.Seq, adu.Payload); err != nil {
			return 0, wrapStage(err, peerID, appID, "apply received")
		}
	}

	last := run[len(run)-1].Seq
	if err = a.meta.AdvanceReceived(ctx, peerID, appID, meta.LastReceived, last); err != nil {
		return 0, wrapStage(err, peerID, appID, "apply received")
	}

	logger.FromContext(ctx).Debug().
		Str("func", "aduStore.ApplyReceived").
		Str("peer_id", peerID).
		Str("app_id", appID).
		Int64("last_received", last).
		Int("applied", len(run)).
		Msg("received adus applied")

	return len(run), nil
}

// newRun sorts adus and drops sequence numbers already received or repeated.
func newRun(adus []models.ADU, lastReceived int64) []models.ADU {
	sorted := slices.Clone(adus)
	slices.SortFunc(sorted, func(x, y models.ADU) int { return cmp.Compare(x.Seq, y.Seq) })

	run := sorted[:0]
	for _, adu := range sorted {
		if adu.Seq <= lastReceived {
			continue
		}
		if len(run) > 0 && run[len(run)-1].Seq == adu.Seq {
			continue
		}
		run = append(run, adu)
	}
	return run
}

func (a *aduStore) NextUnprocessed(ctx context.Context, peerID, appID string) (models.ADU, bool, error) {
	meta, err := a.Metadata(ctx, peerID, appID)
	if errors.Is(err, ErrMetadataNotFound) {
		return models.ADU{}, false, nil
	}
	if err != nil {
		return models.ADU{}, false, err
	}
	if meta.LastProcessed >= meta.LastReceived {
		return models.ADU{}, false, nil
	}

	seq := meta.LastProcessed + 1
	data, err := a.files.ReadADU(Inbound, peerID, appID, seq)
	if err != nil {
		return models.ADU{}, false, wrapStage(err, peerID, appID, "next unprocessed")
	}

	return models.ADU{
		PeerID:  peerID,
		AppID:   appID,
		Seq:     seq,
		Size:    int64(len(data)),
		Payload: data,
	}, true, nil
}

func (a *aduStore) MarkProcessed(ctx context.Context, peerID, appID string, seq int64) error {
	meta, err := a.Metadata(ctx, peerID, appID)
	if err != nil {
		return err
	}
	if seq <= meta.LastProcessed {
		return nil
	}
	if seq > meta.LastReceived {
		return fmt.Errorf("%w: %s/%s processed %d past received %d", ErrCursorConflict, peerID, appID, seq, meta.LastReceived)
	}

	if err = a.meta.AdvanceProcessed(ctx, peerID, appID, seq); err != nil {
		return wrapStage(err, peerID, appID, "mark processed")
	}

	for s := meta.LastProcessed + 1; s <= seq; s++ {
		if err = a.files.RemoveADU(Inbound, peerID, appID, s); err != nil {
			// the cursor already hides the file, a leftover is harmless
			logger.FromContext(ctx).Warn().Err(err).
				Str("func", "aduStore.MarkProcessed").
				Str("peer_id", peerID).
				Str("app_id", appID).
				Int64("seq", s).
				Msg("failed to remove processed payload")
		}
	}
	return nil
}

func (a *aduStore) DeleteUpTo(ctx context.Context, peerID, appID string, upto int64) error {
	meta, err := a.Metadata(ctx, peerID, appID)
	if err != nil {
		return err
	}

	upto = min(upto, meta.LastSent)
	if upto <= meta.LastDeleted {
		return nil
	}

	for seq := meta.LastDeleted + 1; seq <= upto; seq++ {
		if err = a.files.RemoveADU(Outbound, peerID, appID, seq); err != nil {
			return wrapStage(err, peerID, appID, "delete up to")
		}
	}

	if err = a.meta.AdvanceDeleted(ctx, peerID, appID, upto); err != nil {
		return wrapStage(err, peerID, appID, "delete up to")
	}
	return nil
}

func (a *aduStore) Metadata(ctx context.Context, peerID, appID string) (models.Metadata, error) {
	meta, err := a.meta.Get(ctx, peerID, appID)
	if err != nil {
		return models.Metadata{}, wrapStage(err, peerID, appID, "metadata")
	}
	return meta, nil
}

func (a *aduStore) ListMetadata(ctx context.Context, peerID string) ([]models.Metadata, error) {
	return a.meta.List(ctx, peerID)
}

func (a *aduStore) ListPeers(ctx context.Context) ([]string, error) {
	return a.meta.ListPeers(ctx)
}

func (a *aduStore) ensure(ctx context.Context, peerID, appID string) (models.Metadata, error) {
	if err := validSegment(appID); err != nil {
		return models.Metadata{}, err
	}
	if err := a.meta.Ensure(ctx, peerID, appID); err != nil {
		return models.Metadata{}, err
	}
	return a.meta.Get(ctx, peerID, appID)
}

func streamKey(peerID, appID string) string {
	return peerID + "/" + appID
}

// wrapStage adds the stream and the failing step to err.
func wrapStage(err error, peerID, appID, stage string) error {
	return fmt.Errorf("%s %s/%s: %w", stage, peerID, appID, err)
}
