// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bundle

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-bundle-keeper/models"
)

// FormatVersion is the container format this package writes.
const FormatVersion = 1

// Header is the content of header.json.
//
// Fields this version does not know are kept in Extra and written back
// unchanged, so a newer peer's header survives a round trip through an older
// node.
type Header struct {
	BundleID      string                  `json:"bundle_id"`
	Version       int                     `json:"version"`
	Encryption    models.EncryptionHeader `json:"encryption"`
	Signature     []byte                  `json:"signature"`
	PayloadSize   int64                   `json:"payload_size"`
	PayloadDigest string                  `json:"payload_digest"`

	Extra map[string]json.RawMessage `json:"-"`
}

// headerFields has the same fields as Header without its methods.
type headerFields Header

var knownHeaderFields = []string{
	"bundle_id", "version", "encryption", "signature", "payload_size", "payload_digest",
}

// MarshalJSON writes the known fields followed by Extra.
func (h Header) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(headerFields(h))
	if err != nil {
		return nil, err
	}
	if len(h.Extra) == 0 {
		return known, nil
	}

	merged := make(map[string]json.RawMessage, len(h.Extra)+len(knownHeaderFields))
	for k, v := range h.Extra {
		merged[k] = v
	}
	if err = json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	return json.Marshal(merged)
}

// UnmarshalJSON reads the known fields and collects the rest into Extra.
func (h *Header) UnmarshalJSON(data []byte) error {
	var fields headerFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, k := range knownHeaderFields {
		delete(all, k)
	}
	if len(all) == 0 {
		all = nil
	}

	*h = Header(fields)
	h.Extra = all
	return nil
}

// validate accepts any version from 1 up. A newer writer may only add
// fields, which land in Extra.
func (h Header) validate() error {
	if h.Version < FormatVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if h.BundleID == "" {
		return fmt.Errorf("%w: empty bundle id", ErrMalformedBundle)
	}
	if h.PayloadSize < 0 {
		return fmt.Errorf("%w: negative payload size", ErrMalformedBundle)
	}
	if len(h.Signature) == 0 {
		return fmt.Errorf("%w: missing signature", ErrMalformedBundle)
	}
	if !h.Encryption.Role.Valid() {
		return fmt.Errorf("%w: sender role %q", ErrMalformedBundle, h.Encryption.Role)
	}
	if h.Encryption.SenderID == "" || h.Encryption.RecipientID == "" {
		return fmt.Errorf("%w: missing sender or recipient", ErrMalformedBundle)
	}
	return nil
}
