// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
)

// macSize is the length of the HMAC-SHA256 tag prefixed to every ciphertext.
const macSize = sha256.Size

var errCiphertextTooShort = errors.New("ciphertext too short")

// aeadEncrypt encrypts plaintext with AES-256-GCM and returns
// nonce || ciphertext. aad is authenticated but not encrypted.
func aeadEncrypt(key, plaintext, aad []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("rand.Read nonce: %w", err)
	}

	// gcm.Seal appends to nonce, giving nonce || ciphertext in one slice
	return gcm.Seal(nonce, nonce, plaintext, aad), nil
}

// aeadDecrypt reverses aeadEncrypt.
func aeadDecrypt(key, nonceAndCiphertext, aad []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}

	ns := gcm.NonceSize()
	if len(nonceAndCiphertext) < ns {
		return nil, errCiphertextTooShort
	}

	plain, err := gcm.Open(nil, nonceAndCiphertext[:ns], nonceAndCiphertext[ns:], aad)
	if err != nil {
		return nil, fmt.Errorf("aead open: %w", err)
	}
	return plain, nil
}

// tag prefixes ciphertext with HMAC-SHA256(macKey, ciphertext).
func tag(macKey, ciphertext []byte) []byte {
	m := hmac.New(sha256.New, macKey)
	m.Write(ciphertext)

	out := make([]byte, 0, macSize+len(ciphertext))
	out = m.Sum(out)
	return append(out, ciphertext...)
}

// untag checks the MAC prefix and returns the ciphertext behind it.
func untag(macKey, tagged []byte) ([]byte, error) {
	if len(tagged) < macSize {
		return nil, errCiphertextTooShort
	}

	mac, ciphertext := tagged[:macSize], tagged[macSize:]
	m := hmac.New(sha256.New, macKey)
	m.Write(ciphertext)
	if !hmac.Equal(mac, m.Sum(nil)) {
		return nil, errors.New("mac mismatch")
	}
	return ciphertext, nil
}
