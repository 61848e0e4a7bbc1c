// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package window bounds how much unacknowledged data goes into one bundle.
//
// Selection is a pure function of the pending ADUs and the configured limits;
// nothing is remembered between calls.
package window

import (
	"fmt"

	"github.com/MKhiriev/go-bundle-keeper/models"
)

// Select returns the longest prefix of pending whose total size does not
// exceed maxBytes and whose length does not exceed maxCount. pending must be
// in sequence order.
func Select(pending []models.ADU, maxBytes int64, maxCount int) ([]models.ADU, error) {
	if maxBytes <= 0 || maxCount <= 0 {
		return nil, fmt.Errorf("%w: max bytes %d, max count %d", ErrInvalidWindowLength, maxBytes, maxCount)
	}

	if len(pending) > 0 && pending[0].Size > maxBytes {
		head := pending[0]
		return nil, fmt.Errorf("%w: adu %s is %d bytes, window is %d", ErrWindowBufferOverflow, head.Key(), head.Size, maxBytes)
	}

	var total int64
	n := 0
	for _, adu := range pending {
		if n == maxCount || total+adu.Size > maxBytes {
			break
		}
		total += adu.Size
		n++
	}

	return pending[:n:n], nil
}

// Budget spreads the byte and count limits of one bundle across several app
// streams, consuming what each Take returns.
type Budget struct {
	bytes int64
	count int
}

// NewBudget creates a Budget for one bundle.
func NewBudget(maxBytes int64, maxCount int) (*Budget, error) {
	if maxBytes <= 0 || maxCount <= 0 {
		return nil, fmt.Errorf("%w: max bytes %d, max count %d", ErrInvalidWindowLength, maxBytes, maxCount)
	}
	return &Budget{bytes: maxBytes, count: maxCount}, nil
}

// Exhausted reports whether nothing more fits.
func (b *Budget) Exhausted() bool {
	return b.bytes <= 0 || b.count <= 0
}

// Take selects a prefix of pending against the remaining budget and charges
// it. A head ADU that only fails the remaining budget yields an empty prefix;
// one that exceeds the full byte limit yields ErrWindowBufferOverflow.
func (b *Budget) Take(pending []models.ADU, fullMaxBytes int64) ([]models.ADU, error) {
	if len(pending) > 0 && pending[0].Size > fullMaxBytes {
		return Select(pending, fullMaxBytes, 1)
	}
	if b.Exhausted() || len(pending) == 0 || pending[0].Size > b.bytes {
		return nil, nil
	}

	selected, err := Select(pending, b.bytes, b.count)
	if err != nil {
		return nil, err
	}

	for _, adu := range selected {
		b.bytes -= adu.Size
	}
	b.count -= len(selected)

	return selected, nil
}
