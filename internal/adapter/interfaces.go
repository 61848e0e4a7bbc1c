// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter moves bundle files between nodes and hands ADUs to
// application adapters.
//
// The primary abstraction is [Transport], which decouples the transfer job
// from the carrier. Two carriers ship with the package: [DirTransport] for
// directories on carried media and [HTTPTransport] for a client talking to
// the bundle server. [HTTPDeliverer] posts received ADUs to the address an
// app id is routed to.
//
// HTTP status codes are mapped to the sentinel values in errors.go by
// mapHTTPError so that callers can use [errors.Is] regardless of carrier.
package adapter

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/transport_mock.go -package=mock

// Transport carries bundle files to and from peers.
type Transport interface {
	// Deliver hands the bundle file at path to the carrier. Delivering the
	// same bundle twice is harmless.
	Deliver(ctx context.Context, path string) error

	// Poll returns the next received bundle file of the current round. When
	// the round is exhausted it reports false and the next call starts a new
	// round. The caller removes a returned file once it is handled; a file
	// left in place comes back in a later round.
	Poll(ctx context.Context) (path string, ok bool, err error)
}

// Purger is implemented by transports that store bundles for a peer and can
// drop the ones the peer no longer needs.
type Purger interface {
	Purge(ctx context.Context, peerID string, bundleIDs []string) error
}
