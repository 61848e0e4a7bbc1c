// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// PeerKeys is the public key material known for a peer.
type PeerKeys struct {
	PeerID          string    `json:"peer_id"`
	Role            Role      `json:"role"`
	IdentityKey     []byte    `json:"identity_key"`
	SigningKey      []byte    `json:"signing_key"`
	SignedPreKey    []byte    `json:"signed_pre_key,omitempty"`
	SignedPreKeySig []byte    `json:"signed_pre_key_sig,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PreKey returns the key the sender agrees against in the pre-key slot.
// Clients publish no signed pre-key, so their identity key stands in.
func (k PeerKeys) PreKey() []byte {
	if len(k.SignedPreKey) != 0 {
		return k.SignedPreKey
	}
	return k.IdentityKey
}

// NodeInfo describes a running node.
type NodeInfo struct {
	Version string `json:"version"`
	Role    Role   `json:"role"`
	PeerID  string `json:"peer_id"`
}
