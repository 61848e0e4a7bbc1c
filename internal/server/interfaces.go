package server

import "context"

// Server is a transport server with a context-bound lifecycle.
type Server interface {
	// Run serves requests until ctx is cancelled or the listener fails.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown(ctx context.Context) error
}
