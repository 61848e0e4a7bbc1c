// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"time"

	"github.com/MKhiriev/go-bundle-keeper/internal/bundle"
	"github.com/MKhiriev/go-bundle-keeper/internal/config"
	"github.com/MKhiriev/go-bundle-keeper/internal/crypto"
	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
	"github.com/MKhiriev/go-bundle-keeper/internal/metrics"
	"github.com/MKhiriev/go-bundle-keeper/internal/store"
	"github.com/MKhiriev/go-bundle-keeper/internal/utils"
	"github.com/MKhiriev/go-bundle-keeper/internal/window"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

// bundleService implements the send and receive cycles.
//
// Write order on send: bundle file, then ledger row, acknowledgement marks and
// LastSent in one transaction. On receive: acknowledgements, ADU payloads and
// cursors, then the dedup row. A crash at any point either leaves an orphan
// file or makes the next retransmission re-apply what is missing.
// ackOnlyRetention is how long an acknowledgement-only bundle file is kept for
// download after it was built.
const ackOnlyRetention = 72 * time.Hour

type bundleService struct {
	storages *store.Storages
	files    store.BundleFiles
	engine   crypto.Engine
	keys     KeyService
	router   RouterService
	window   config.Window
	metrics  *metrics.Metrics

	peerLocks utils.KeyedMutex

	now func() time.Time
}

// NewBundleService builds a BundleService. router may be nil, in which case
// received ADUs wait for the delivery job. m may be nil.
func NewBundleService(
	storages *store.Storages,
	engine crypto.Engine,
	keys KeyService,
	router RouterService,
	windowCfg config.Window,
	m *metrics.Metrics,
) BundleService {
	if windowCfg.MaxBytes <= 0 {
		windowCfg.MaxBytes = config.DefaultWindowMaxBytes
	}
	if windowCfg.MaxCount <= 0 {
		windowCfg.MaxCount = config.DefaultWindowMaxCount
	}
	if windowCfg.MaxBundlesInFlight <= 0 {
		windowCfg.MaxBundlesInFlight = config.DefaultMaxBundlesInFlight
	}

	return &bundleService{
		storages: storages,
		files:    storages.Files,
		engine:   engine,
		keys:     keys,
		router:   router,
		window:   windowCfg,
		metrics:  m,
		now:      time.Now,
	}
}

// Send implements [BundleService].
func (s *bundleService) Send(ctx context.Context, peerID string) (models.BundleTransferDTO, error) {
	ctx = logger.WithPeer(ctx, peerID)
	log := logger.FromContext(ctx)

	unlock := s.peerLocks.Lock(peerID)
	defer unlock()

	peerKeys, err := s.keys.PeerKeys(ctx, peerID)
	if err != nil {
		log.Err(err).Str("func", "*bundleService.Send").Msg("no keys for peer")
		return models.BundleTransferDTO{}, err
	}

	if err = s.retireAckOnly(ctx, peerID); err != nil {
		return models.BundleTransferDTO{}, err
	}

	acked, err := s.storages.SentBundles.ListAckedUnpurged(ctx, peerID)
	if err != nil {
		return models.BundleTransferDTO{}, fmt.Errorf("list acknowledged bundles: %w", err)
	}

	outstanding, err := s.outstanding(ctx, peerID)
	if err != nil {
		return models.BundleTransferDTO{}, err
	}
	s.metrics.BundlesRetransmitted(len(outstanding))
	s.metrics.InFlight(peerID, len(outstanding))

	dto := models.BundleTransferDTO{
		DeletionSet: []string{},
		Bundles:     outstanding,
	}

	if len(outstanding) >= s.window.MaxBundlesInFlight {
		log.Debug().
			Str("func", "*bundleService.Send").
			Int("in_flight", len(outstanding)).
			Msg("bundle window is full, retransmitting only")
	} else {
		b, built, err := s.build(ctx, peerKeys)
		if err != nil {
			// acknowledged bundles stay unpurged for the next cycle
			log.Err(err).Str("func", "*bundleService.Send").Msg("failed to build bundle")
			return models.BundleTransferDTO{}, err
		}
		if built {
			dto.Bundles = append(dto.Bundles, b)
		}
	}

	// The reply already holds a recorded bundle, so a purge failure only
	// defers the deletion set to the next cycle.
	if dto.DeletionSet, err = s.purge(ctx, acked); err != nil {
		log.Warn().Err(err).Str("func", "*bundleService.Send").Msg("acknowledged bundles are purged next cycle")
		dto.DeletionSet = []string{}
	}
	return dto, nil
}

func (s *bundleService) Locate(ctx context.Context, bundleID string) (string, error) {
	sent, err := s.storages.SentBundles.Get(ctx, bundleID)
	if err != nil {
		return "", err
	}
	if sent.Purged {
		return "", fmt.Errorf("%w: %s was purged", store.ErrBundleNotFound, bundleID)
	}
	if _, err = bundle.Stat(sent.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s file is gone", store.ErrBundleNotFound, bundleID)
		}
		return "", err
	}
	return sent.Path, nil
}

// outstanding returns the unacknowledged bundles whose files still exist,
// oldest first.
func (s *bundleService) outstanding(ctx context.Context, peerID string) ([]models.Bundle, error) {
	sent, err := s.storages.SentBundles.ListOutstanding(ctx, peerID)
	if err != nil {
		return nil, fmt.Errorf("list outstanding bundles: %w", err)
	}

	bundles := make([]models.Bundle, 0, len(sent))
	for _, sb := range sent {
		b, err := bundle.Stat(sb.Path)
		if errors.Is(err, fs.ErrNotExist) {
			logger.FromContext(ctx).Warn().
				Str("func", "*bundleService.outstanding").
				Str("bundle_id", sb.BundleID).
				Msg("outstanding bundle file is gone")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("stat bundle %s: %w", sb.BundleID, err)
		}
		bundles = append(bundles, b)
	}
	return bundles, nil
}

// purge removes the files of the given bundles and marks them purged. It
// returns their ids.
func (s *bundleService) purge(ctx context.Context, sent []models.SentBundle) ([]string, error) {
	ids := make([]string, 0, len(sent))
	if len(sent) == 0 {
		return ids, nil
	}

	for _, sb := range sent {
		if err := bundle.Remove(sb.Path); err != nil {
			return nil, fmt.Errorf("%w: remove bundle %s: %w", store.ErrFileStorage, sb.BundleID, err)
		}
		ids = append(ids, sb.BundleID)
	}

	if err := s.storages.SentBundles.MarkPurged(ctx, ids); err != nil {
		return nil, fmt.Errorf("mark bundles purged: %w", err)
	}
	return ids, nil
}

// retireAckOnly drops local acknowledgement-only bundles older than
// ackOnlyRetention. Their ids never enter a deletion set: the peer does not
// acknowledge them, and copies already handed to a transport stay there.
func (s *bundleService) retireAckOnly(ctx context.Context, peerID string) error {
	old, err := s.storages.SentBundles.ListAckOnlyBefore(ctx, peerID, s.now().Add(-ackOnlyRetention))
	if err != nil {
		return fmt.Errorf("list acknowledgement-only bundles: %w", err)
	}
	ids, err := s.purge(ctx, old)
	if err != nil {
		return err
	}
	if len(ids) > 0 {
		logger.FromContext(ctx).Debug().
			Str("func", "*bundleService.retireAckOnly").
			Int("count", len(ids)).
			Msg("acknowledgement-only bundles retired")
	}
	return nil
}

// build assembles, seals and records one new bundle. It reports false when
// there is neither a new ADU nor an acknowledgement to send.
func (s *bundleService) build(ctx context.Context, peerKeys models.PeerKeys) (models.Bundle, bool, error) {
	log := logger.FromContext(ctx)
	peerID := peerKeys.PeerID

	unacked, err := s.storages.ReceivedBundles.ListUnacked(ctx, peerID)
	if err != nil {
		return models.Bundle{}, false, fmt.Errorf("list unacknowledged bundles: %w", err)
	}

	adus, ranges, err := s.selectADUs(ctx, peerID)
	if err != nil {
		return models.Bundle{}, false, err
	}

	if len(adus) == 0 && len(unacked) == 0 {
		return models.Bundle{}, false, nil
	}

	acks := make([]models.Acknowledgement, 0, len(unacked))
	ackIDs := make([]string, 0, len(unacked))
	for _, rb := range unacked {
		acks = append(acks, models.Acknowledgement{BundleID: rb.BundleID, Size: rb.Size})
		ackIDs = append(ackIDs, rb.BundleID)
	}

	plain, err := bundle.EncodePayload(models.BundlePayload{Acks: acks, ADUs: adus})
	if err != nil {
		return models.Bundle{}, false, err
	}

	sealed, err := s.engine.Seal(plain, peerKeys)
	if err != nil {
		return models.Bundle{}, false, fmt.Errorf("seal bundle: %w", err)
	}

	b := bundle.New(sealed.Header, sealed.Ciphertext, sealed.Signature)
	path, err := s.files.WriteBundle(b.ID, func(w io.Writer) error {
		return bundle.Write(w, b)
	})
	if err != nil {
		return models.Bundle{}, false, err
	}
	b.Source = path

	sent := models.SentBundle{
		BundleID:  b.ID,
		PeerID:    peerID,
		Size:      b.Size,
		Path:      path,
		Ranges:    ranges,
		CreatedAt: s.now().UTC(),
		AckOnly:   len(adus) == 0,
	}

	err = s.storages.InTx(ctx, func(repos store.Repositories) error {
		if err := repos.SentBundles.Create(ctx, sent); err != nil {
			return err
		}
		if err := repos.ReceivedBundles.MarkAcked(ctx, ackIDs, b.ID); err != nil {
			return err
		}
		for _, r := range ranges {
			if err := repos.Metadata.AdvanceSent(ctx, peerID, r.AppID, r.LastSeq); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if rmErr := s.files.RemoveBundle(b.ID); rmErr != nil {
			log.Warn().Err(rmErr).
				Str("func", "*bundleService.build").
				Str("bundle_id", b.ID).
				Msg("failed to remove unrecorded bundle file")
		}
		return models.Bundle{}, false, fmt.Errorf("record sent bundle: %w", err)
	}

	s.metrics.BundleSent(b.Size)
	log.Info().
		Str("func", "*bundleService.build").
		Str("bundle_id", b.ID).
		Int("adus", len(adus)).
		Int("acks", len(acks)).
		Int64("size", b.Size).
		Msg("bundle built")

	b.Payload = nil
	return b, true, nil
}

// selectADUs fills one bundle window from the pending streams of peer, in
// app id order, and loads the selected payloads.
func (s *bundleService) selectADUs(ctx context.Context, peerID string) ([]models.ADU, []models.ADURange, error) {
	metas, err := s.storages.ADUs.ListMetadata(ctx, peerID)
	if err != nil {
		return nil, nil, fmt.Errorf("list streams: %w", err)
	}
	slices.SortFunc(metas, func(a, b models.Metadata) int { return cmp.Compare(a.AppID, b.AppID) })

	budget, err := window.NewBudget(s.window.MaxBytes, s.window.MaxCount)
	if err != nil {
		return nil, nil, err
	}

	var (
		adus   []models.ADU
		ranges []models.ADURange
	)
	for _, meta := range metas {
		if budget.Exhausted() {
			break
		}
		if !meta.HasPendingSend() {
			continue
		}

		pending, err := s.storages.ADUs.PendingForSend(ctx, peerID, meta.AppID)
		if err != nil {
			return nil, nil, err
		}

		taken, err := budget.Take(pending, s.window.MaxBytes)
		if err != nil {
			return nil, nil, fmt.Errorf("select %s/%s: %w", peerID, meta.AppID, err)
		}
		if len(taken) == 0 {
			continue
		}

		for i := range taken {
			if taken[i].Payload, err = s.storages.ADUs.LoadPayload(ctx, taken[i]); err != nil {
				return nil, nil, err
			}
		}

		adus = append(adus, taken...)
		ranges = append(ranges, models.ADURange{
			AppID:    meta.AppID,
			FirstSeq: taken[0].Seq,
			LastSeq:  taken[len(taken)-1].Seq,
		})
	}
	return adus, ranges, nil
}

// Receive implements [BundleService].
func (s *bundleService) Receive(ctx context.Context, path string) (models.ReceiveResult, error) {
	log := logger.FromContext(ctx)

	b, _, err := bundle.ReadFile(path)
	if err != nil {
		s.metrics.BundleReceived(metrics.OutcomeRejected)
		log.Err(err).Str("func", "*bundleService.Receive").Str("path", path).Msg("failed to read bundle")
		return models.ReceiveResult{}, err
	}
	if err = crypto.VerifyHeader(b.Header, b.Payload, b.Signature); err != nil {
		s.metrics.BundleReceived(metrics.OutcomeRejected)
		log.Err(err).Str("func", "*bundleService.Receive").Str("bundle_id", b.ID).Msg("bundle failed verification")
		return models.ReceiveResult{}, err
	}

	peerID := b.Header.SenderID
	ctx = logger.WithPeer(ctx, peerID)
	log = logger.FromContext(ctx)

	unlock := s.peerLocks.Lock(peerID)
	defer unlock()

	result := models.ReceiveResult{BundleID: b.ID, PeerID: peerID}

	seen, err := s.storages.ReceivedBundles.Exists(ctx, b.ID)
	if err != nil {
		s.metrics.BundleReceived(metrics.OutcomeFailed)
		return result, fmt.Errorf("check received bundle: %w", err)
	}
	if seen {
		return s.duplicate(ctx, result)
	}

	plain, err := s.engine.Open(b.Header, b.Payload, b.Signature)
	if err != nil {
		s.metrics.BundleReceived(metrics.OutcomeRejected)
		log.Err(err).Str("func", "*bundleService.Receive").Str("bundle_id", b.ID).Msg("failed to open bundle")
		return result, err
	}

	payload, err := bundle.DecodePayload(plain)
	if err != nil {
		s.metrics.BundleReceived(metrics.OutcomeRejected)
		log.Err(err).Str("func", "*bundleService.Receive").Str("bundle_id", b.ID).Msg("failed to decode payload")
		return result, err
	}

	if err = s.keys.Learn(ctx, crypto.SenderKeys(b.Header)); err != nil {
		s.metrics.BundleReceived(metrics.OutcomeFailed)
		return result, fmt.Errorf("learn sender keys: %w", err)
	}

	if result.AckedBundles, err = s.applyAcks(ctx, peerID, payload.Acks); err != nil {
		s.metrics.BundleReceived(metrics.OutcomeFailed)
		return result, err
	}

	result.Applied, err = s.applyADUs(ctx, peerID, payload.ADUs)
	if errors.Is(err, store.ErrSequenceGap) {
		// not recorded: a retransmission has to fill the gap
		s.metrics.BundleReceived(metrics.OutcomeGap)
		log.Warn().Err(err).Str("func", "*bundleService.Receive").Str("bundle_id", b.ID).Msg("bundle left a gap")
		s.dispatch(ctx, peerID)
		return result, fmt.Errorf("bundle %s from %s: %w", b.ID, peerID, err)
	}
	if err != nil {
		s.metrics.BundleReceived(metrics.OutcomeFailed)
		return result, fmt.Errorf("bundle %s: %w", b.ID, err)
	}

	rb := models.ReceivedBundle{
		BundleID:   b.ID,
		PeerID:     peerID,
		Size:       b.Size,
		ReceivedAt: s.now().UTC(),
	}
	if len(payload.ADUs) == 0 {
		rb.AckedIn = models.AckNotRequired
	}
	if err = s.storages.ReceivedBundles.Create(ctx, rb); err != nil {
		if errors.Is(err, store.ErrBundleAlreadyReceived) {
			return s.duplicate(ctx, result)
		}
		s.metrics.BundleReceived(metrics.OutcomeFailed)
		return result, fmt.Errorf("record received bundle: %w", err)
	}

	s.metrics.BundleReceived(metrics.OutcomeApplied)
	log.Info().
		Str("func", "*bundleService.Receive").
		Str("bundle_id", b.ID).
		Int("acks", len(result.AckedBundles)).
		Int("adus", len(payload.ADUs)).
		Msg("bundle applied")

	s.dispatch(ctx, peerID)
	return result, nil
}

// duplicate queues the acknowledgement of a known bundle again: the peer
// retransmitted it, so the earlier acknowledgement has not reached it yet.
// A duplicate is a successful no-op.
func (s *bundleService) duplicate(ctx context.Context, result models.ReceiveResult) (models.ReceiveResult, error) {
	s.metrics.BundleReceived(metrics.OutcomeDuplicate)
	result.Duplicate = true

	if err := s.storages.ReceivedBundles.ResetAck(ctx, result.BundleID); err != nil {
		return result, fmt.Errorf("requeue acknowledgement: %w", err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "*bundleService.duplicate").
		Str("bundle_id", result.BundleID).
		Msg("duplicate bundle ignored")
	return result, nil
}

// applyAcks marks own bundles acknowledged and prunes the ADU payloads they
// carried. Unknown and already acknowledged ids are skipped.
func (s *bundleService) applyAcks(ctx context.Context, peerID string, acks []models.Acknowledgement) ([]string, error) {
	var acked []string
	for _, ack := range acks {
		ok, err := s.storages.SentBundles.MarkAcked(ctx, peerID, ack.BundleID, s.now().UTC())
		if err != nil {
			return acked, fmt.Errorf("mark %s acknowledged: %w", ack.BundleID, err)
		}
		if !ok {
			continue
		}

		sent, err := s.storages.SentBundles.Get(ctx, ack.BundleID)
		if err != nil {
			return acked, fmt.Errorf("load acknowledged bundle %s: %w", ack.BundleID, err)
		}
		for _, r := range sent.Ranges {
			if err = s.storages.ADUs.DeleteUpTo(ctx, peerID, r.AppID, r.LastSeq); err != nil {
				return acked, err
			}
		}
		acked = append(acked, ack.BundleID)
	}

	s.metrics.AcksApplied(len(acked))
	return acked, nil
}

// applyADUs stores the ADU runs per app. A sequence gap in one app does not
// stop the others; the gaps are joined into the returned error. Any other
// failure stops at once and is returned alone.
func (s *bundleService) applyADUs(ctx context.Context, peerID string, adus []models.ADU) (map[string]int, error) {
	runs := make(map[string][]models.ADU)
	for _, adu := range adus {
		adu.PeerID = peerID
		runs[adu.AppID] = append(runs[adu.AppID], adu)
	}

	appIDs := make([]string, 0, len(runs))
	for appID := range runs {
		appIDs = append(appIDs, appID)
	}
	slices.Sort(appIDs)

	var (
		applied = make(map[string]int, len(runs))
		gaps    []error
	)
	for _, appID := range appIDs {
		n, err := s.storages.ADUs.ApplyReceived(ctx, peerID, appID, runs[appID])
		if errors.Is(err, store.ErrSequenceGap) {
			gaps = append(gaps, err)
			continue
		}
		if err != nil {
			return applied, err
		}
		if n > 0 {
			applied[appID] = n
			s.metrics.ADUsApplied(appID, n)
		}
	}
	return applied, errors.Join(gaps...)
}

// dispatch hands new ADUs to their routes. Failures only delay delivery.
func (s *bundleService) dispatch(ctx context.Context, peerID string) {
	if s.router == nil {
		return
	}
	if _, err := s.router.DeliverPending(ctx, peerID); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "*bundleService.dispatch").
			Msg("adus stay queued for delivery")
	}
}
