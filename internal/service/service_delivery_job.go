package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-bundle-keeper/internal/config"
	"github.com/MKhiriev/go-bundle-keeper/internal/logger"
)

type deliveryJob struct {
	router RouterService

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDeliveryJob creates a Job that retries ADU delivery to app routes on a
// ticker. Receive dispatches right away; this job picks up what failed then.
func NewDeliveryJob(router RouterService) Job {
	return &deliveryJob{router: router}
}

func (j *deliveryJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = config.DefaultDeliveryInterval
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
				n, err := j.router.DeliverAll(jobCtx)
				if err != nil {
					logger.FromContext(jobCtx).Warn().Err(err).
						Str("func", "*deliveryJob.Start").
						Int("delivered", n).
						Msg("delivery finished with errors")
				}
			}
		}
	}()
}

func (j *deliveryJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
