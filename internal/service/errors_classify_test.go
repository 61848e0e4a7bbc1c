package service

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-bundle-keeper/internal/bundle"
	"github.com/MKhiriev/go-bundle-keeper/internal/crypto"
	"github.com/MKhiriev/go-bundle-keeper/internal/store"
	"github.com/MKhiriev/go-bundle-keeper/internal/window"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{name: "nil", err: nil, want: ClassNone},
		{name: "duplicate", err: fmt.Errorf("%w: b1", store.ErrBundleAlreadyReceived), want: ClassDuplicate},
		{name: "already received", err: store.ErrBundleAlreadyReceived, want: ClassDuplicate},
		{name: "signature", err: fmt.Errorf("x: %w", crypto.ErrSignatureVerificationFailed), want: ClassIntegrity},
		{name: "decryption", err: crypto.ErrDecryptionFailed, want: ClassIntegrity},
		{name: "wrong recipient", err: crypto.ErrWrongRecipient, want: ClassIntegrity},
		{name: "malformed", err: bundle.ErrMalformedBundle, want: ClassIntegrity},
		{name: "version", err: bundle.ErrUnsupportedVersion, want: ClassIntegrity},
		{name: "overflow", err: window.ErrWindowBufferOverflow, want: ClassConfiguration},
		{name: "key material", err: crypto.ErrKeyMaterialMissing, want: ClassConfiguration},
		{name: "unroutable", err: ErrUnroutableAppID, want: ClassConfiguration},
		{name: "unknown peer", err: ErrUnknownPeer, want: ClassConfiguration},
		{name: "gap", err: store.ErrSequenceGap, want: ClassTransient},
		{name: "missing file", err: fs.ErrNotExist, want: ClassTransient},
		{name: "anything else", err: errors.New("connection reset"), want: ClassTransient},
		{name: "non-retryable storage", err: fmt.Errorf("%w: %w: x", store.ErrExecutingStatement, store.ErrNonRetryable), want: ClassPermanent},
		{name: "retryable storage", err: fmt.Errorf("%w: busy", store.ErrExecutingStatement), want: ClassTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestIsSuccess(t *testing.T) {
	assert.True(t, IsSuccess(nil))
	assert.True(t, IsSuccess(store.ErrBundleAlreadyReceived))
	assert.False(t, IsSuccess(crypto.ErrDecryptionFailed))
	assert.False(t, IsSuccess(errors.New("x")))
}

func TestErrorClass_String(t *testing.T) {
	assert.Equal(t, "integrity", ClassIntegrity.String())
	assert.Equal(t, "permanent", ClassPermanent.String())
	assert.Equal(t, "unknown", ErrorClass(42).String())
}
