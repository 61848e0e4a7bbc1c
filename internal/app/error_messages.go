// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the message strings written into HTTP error bodies so
// that handlers word the same failure the same way.
package app

const (
	// MsgInvalidDataProvided answers a body that cannot be decoded or misses
	// required fields.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError hides the cause of a server-side failure.
	MsgInternalServerError = "internal server error"

	// MsgBundleTooLarge answers an upload above the body limit.
	MsgBundleTooLarge = "bundle is too large"

	// MsgADUTooLarge answers an ADU above the body limit.
	MsgADUTooLarge = "adu is too large"

	MsgInvalidGzipData = "invalid gzip data"
)
