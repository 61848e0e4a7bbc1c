package service

import (
	"errors"

	"github.com/MKhiriev/go-bundle-keeper/internal/bundle"
	"github.com/MKhiriev/go-bundle-keeper/internal/crypto"
	"github.com/MKhiriev/go-bundle-keeper/internal/store"
	"github.com/MKhiriev/go-bundle-keeper/internal/window"
)

// ErrorClass tells a caller what to do with a failed operation.
type ErrorClass int

const (
	// ClassNone is the class of a nil error.
	ClassNone ErrorClass = iota
	// ClassTransient errors leave cursors untouched; retry later.
	ClassTransient
	// ClassIntegrity errors mean the bundle is bad and must be discarded.
	ClassIntegrity
	// ClassConfiguration errors are raised before any mutation and will not
	// heal by retrying.
	ClassConfiguration
	// ClassDuplicate errors report a successful no-op.
	ClassDuplicate
	// ClassPermanent errors come from a storage failure that repeats on every
	// attempt. The input is dropped; a bundle is retransmitted by its sender.
	ClassPermanent
)

func (c ErrorClass) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassTransient:
		return "transient"
	case ClassIntegrity:
		return "integrity"
	case ClassConfiguration:
		return "configuration"
	case ClassDuplicate:
		return "duplicate"
	case ClassPermanent:
		return "permanent"
	default:
		return "unknown"
	}
}

var (
	integrityErrors = []error{
		crypto.ErrSignatureVerificationFailed,
		crypto.ErrDecryptionFailed,
		crypto.ErrWrongRecipient,
		bundle.ErrMalformedBundle,
		bundle.ErrUnsupportedVersion,
	}
	configurationErrors = []error{
		window.ErrInvalidWindowLength,
		window.ErrWindowBufferOverflow,
		crypto.ErrKeyMaterialMissing,
		crypto.ErrInvalidRole,
		ErrUnroutableAppID,
		ErrUnknownPeer,
		ErrInvalidRoute,
		store.ErrADUTooLarge,
		store.ErrInvalidPathSegment,
		store.ErrUnknownDriver,
	}
	duplicateErrors = []error{
		store.ErrBundleAlreadyReceived,
	}
)

// Classify maps err to the action its caller should take. Errors of no known
// kind, storage and transport failures included, are transient unless the
// database marked them non-retryable.
func Classify(err error) ErrorClass {
	switch {
	case err == nil:
		return ClassNone
	case isAny(err, duplicateErrors):
		return ClassDuplicate
	case isAny(err, integrityErrors):
		return ClassIntegrity
	case isAny(err, configurationErrors):
		return ClassConfiguration
	case errors.Is(err, store.ErrNonRetryable):
		return ClassPermanent
	default:
		return ClassTransient
	}
}

// IsSuccess reports whether err leaves the caller with nothing to do.
func IsSuccess(err error) bool {
	c := Classify(err)
	return c == ClassNone || c == ClassDuplicate
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
