package crypto

import "fmt"

// DeriveSendSecret computes the sender side of the asynchronous agreement:
//
//	DH(ownIdentity, peerPreKey) || DH(ownBase, peerIdentity)
//
// The receiver obtains the same bytes with [DeriveReceiveSecret] without any
// message from the sender other than the bundle header.
func DeriveSendSecret(ownIdentityPriv, ownBasePriv, peerPreKeyPub, peerIdentityPub []byte) ([]byte, error) {
	dh1, err := X25519SharedSecret(ownIdentityPriv, peerPreKeyPub)
	if err != nil {
		return nil, fmt.Errorf("identity x pre-key: %w", err)
	}

	dh2, err := X25519SharedSecret(ownBasePriv, peerIdentityPub)
	if err != nil {
		return nil, fmt.Errorf("base x identity: %w", err)
	}

	return append(dh1, dh2...), nil
}

// DeriveReceiveSecret computes the receiver side of the agreement:
//
//	DH(ownPreKey, senderIdentity) || DH(ownIdentity, senderBase)
func DeriveReceiveSecret(ownPreKeyPriv, ownIdentityPriv, senderIdentityPub, senderBasePub []byte) ([]byte, error) {
	dh1, err := X25519SharedSecret(ownPreKeyPriv, senderIdentityPub)
	if err != nil {
		return nil, fmt.Errorf("pre-key x identity: %w", err)
	}

	dh2, err := X25519SharedSecret(ownIdentityPriv, senderBasePub)
	if err != nil {
		return nil, fmt.Errorf("identity x base: %w", err)
	}

	return append(dh1, dh2...), nil
}
