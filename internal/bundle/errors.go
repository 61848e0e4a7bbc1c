package bundle

import "errors"

var (
	// ErrMalformedBundle is returned for any container or payload that cannot
	// be parsed. Such a bundle is discarded without touching any state.
	ErrMalformedBundle = errors.New("malformed bundle")

	ErrUnsupportedVersion = errors.New("unsupported bundle format version")
)
