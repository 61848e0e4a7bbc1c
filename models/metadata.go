// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Metadata is the cursor set kept per (PeerID, AppID).
//
// Every counter is non-decreasing. LastProcessed never exceeds LastReceived
// and LastSent never exceeds LastAdded.
type Metadata struct {
	PeerID string `json:"peer_id"`
	AppID  string `json:"app_id"`

	// LastAdded is the highest sequence produced locally for the peer.
	LastAdded int64 `json:"last_added"`
	// LastSent is the highest sequence included in a transmitted bundle.
	LastSent int64 `json:"last_sent"`
	// LastReceived is the highest contiguous sequence received from the peer.
	LastReceived int64 `json:"last_received"`
	// LastProcessed is the highest received sequence handed to the local app.
	LastProcessed int64 `json:"last_processed"`
	// LastDeleted is the highest produced sequence whose payload was pruned
	// after the peer acknowledged it.
	LastDeleted int64 `json:"last_deleted"`
}

// HasPendingSend reports whether produced ADUs wait for transmission.
func (m Metadata) HasPendingSend() bool {
	return m.LastSent < m.LastAdded
}

// HasUnprocessed reports whether received ADUs wait for delivery.
func (m Metadata) HasUnprocessed() bool {
	return m.LastProcessed < m.LastReceived
}
