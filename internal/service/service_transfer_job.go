package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-bundle-keeper/internal/adapter"
	"github.com/MKhiriev/go-bundle-keeper/internal/bundle"
	"github.com/MKhiriev/go-bundle-keeper/internal/config"
	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
)

// TransferJob moves bundles between this node and its transport.
//
// One run drains a polling round through Receive, sends to every known peer
// and finally delivers pending ADUs to their routes.
type TransferJob struct {
	bundles   BundleService
	keys      KeyService
	router    RouterService
	transport adapter.Transport

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTransferJob creates a TransferJob. The job is idle until Start is called.
// With a nil transport only the delivery step runs.
func NewTransferJob(bundles BundleService, keys KeyService, router RouterService, transport adapter.Transport) *TransferJob {
	return &TransferJob{bundles: bundles, keys: keys, router: router, transport: transport}
}

// Start implements [Job]. A non-positive interval falls back to
// config.DefaultTransferInterval.
func (j *TransferJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = config.DefaultTransferInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.RunOnce(jobCtx); err != nil {
					logger.FromContext(jobCtx).Warn().Err(err).
						Str("func", "*TransferJob.Start").
						Msg("transfer cycle finished with errors")
				}
			}
		}
	}()
}

// Stop implements [Job]. Safe to call when the job is not running.
func (j *TransferJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// RunOnce runs a single transfer cycle.
func (j *TransferJob) RunOnce(ctx context.Context) error {
	var errs []error

	if j.transport != nil {
		if err := j.receiveRound(ctx); err != nil {
			errs = append(errs, err)
		}
		if err := j.sendAll(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if j.router != nil {
		if _, err := j.router.DeliverAll(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// receiveRound feeds every file of one polling round to Receive. Files whose
// outcome is final are removed; the rest stay for the next round.
func (j *TransferJob) receiveRound(ctx context.Context) error {
	log := logger.FromContext(ctx)

	var errs []error
	for {
		path, ok, err := j.transport.Poll(ctx)
		if err != nil {
			return errors.Join(append(errs, err)...)
		}
		if !ok {
			break
		}

		_, err = j.bundles.Receive(ctx, path)
		class := Classify(err)
		switch class {
		case ClassNone, ClassDuplicate, ClassIntegrity, ClassPermanent:
			if rmErr := bundle.Remove(path); rmErr != nil {
				errs = append(errs, rmErr)
			}
		}

		if !IsSuccess(err) {
			log.Warn().Err(err).
				Str("func", "*TransferJob.receiveRound").
				Str("path", path).
				Stringer("class", class).
				Msg("bundle not applied")
			if class == ClassTransient || class == ClassPermanent {
				errs = append(errs, err)
			}
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return errors.Join(errs...)
}

// sendAll runs Send for every peer with known keys and hands the result to
// the transport.
func (j *TransferJob) sendAll(ctx context.Context) error {
	peers, err := j.keys.Peers(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, peerID := range peers {
		dto, err := j.bundles.Send(ctx, peerID)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		for _, b := range dto.Bundles {
			if err = j.transport.Deliver(ctx, b.Source); err != nil {
				errs = append(errs, err)
			}
		}

		if purger, ok := j.transport.(adapter.Purger); ok && len(dto.DeletionSet) > 0 {
			if err = purger.Purge(ctx, peerID, dto.DeletionSet); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
