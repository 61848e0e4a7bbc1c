// Package workers runs the long-lived parts of a node side by side and stops
// all of them when one fails or the context ends.
package workers

import "context"

// Worker is a long-running part of a node. Run blocks until ctx is done or
// the worker fails.
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a function to [Worker].
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
