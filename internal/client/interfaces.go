// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client is a runnable client node.
type Client interface {
	// Run starts the node and blocks until ctx is done or it fails.
	Run(ctx context.Context) error
}

var _ Client = (*App)(nil)
