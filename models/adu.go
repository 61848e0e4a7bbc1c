// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// ADU is one immutable Application Data Unit moved between peers.
//
// Identity is the pair (AppID, Seq); Seq is assigned by the producing side and
// grows by one per (PeerID, AppID) stream. The record is metadata plus a
// pointer to the payload file, Payload is only filled when the bytes were
// loaded explicitly.
type ADU struct {
	// PeerID is the remote side of the stream: the destination for produced
	// ADUs and the origin for received ones.
	PeerID string `json:"peer_id"`

	// AppID names the logical application the ADU belongs to.
	AppID string `json:"app_id"`

	// Seq is the sequence number of the ADU inside its (PeerID, AppID) stream.
	Seq int64 `json:"seq"`

	// Size is the payload length in bytes.
	Size int64 `json:"size"`

	// Payload holds the raw bytes when loaded. Nil otherwise.
	Payload []byte `json:"-"`
}

// Key returns the identity of the ADU inside a peer stream.
func (a ADU) Key() string {
	return fmt.Sprintf("%s/%d", a.AppID, a.Seq)
}
