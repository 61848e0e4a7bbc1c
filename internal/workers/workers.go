package workers

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-bundle-keeper/internal/service"
)

type Workers struct {
	workers []Worker
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Add appends w. Nil workers are ignored.
func (w *Workers) Add(worker Worker) {
	if worker != nil {
		w.workers = append(w.workers, worker)
	}
}

// Run starts every worker and waits for all of them. The first failure
// cancels the others and is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(gctx)
		})
	}
	return g.Wait()
}

// FromJob runs a periodic job for as long as ctx lives.
func FromJob(job service.Job, interval time.Duration) Worker {
	return WorkerFunc(func(ctx context.Context) error {
		job.Start(ctx, interval)
		<-ctx.Done()
		job.Stop()
		return nil
	})
}
