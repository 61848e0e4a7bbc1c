package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrUnroutableAppID is returned when no route exists for an app id. The
	// ADU stays stored until a route is added.
	ErrUnroutableAppID = errors.New("no route for app id")

	// ErrUnknownPeer is returned when no public keys are known for a peer.
	ErrUnknownPeer = errors.New("peer is unknown")

	ErrInvalidRoute = errors.New("invalid route")

	// ErrVersionIsNotSpecified is returned when the node starts without a
	// version string.
	ErrVersionIsNotSpecified = errors.New("version is not specified")
)

// Admin token errors.
var (
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
