// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Moltis Authors

package crypto

import (
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// KeySize is the key length of every supported cipher (256 bits).
	KeySize = chacha20poly1305.KeySize

	// NonceSize is the extended nonce length of XChaCha20-Poly1305
	// (192 bits). The extended nonce space makes uniformly random nonces
	// collision-safe over realistic key lifetimes.
	NonceSize = chacha20poly1305.NonceSizeX

	// TagSize is the Poly1305 authentication tag length (128 bits).
	TagSize = chacha20poly1305.Overhead

	// VersionXChaCha20Poly1305 is the envelope version byte of the default
	// cipher variant.
	VersionXChaCha20Poly1305 byte = 0x01
)

// xchachaCipher implements [Cipher] with XChaCha20-Poly1305 (RFC draft
// extended-nonce ChaCha20-Poly1305).
type xchachaCipher struct{}

// NewXChaChaCipher returns the default cipher variant (version 0x01).
func NewXChaChaCipher() Cipher {
	return xchachaCipher{}
}

// CipherForVersion selects the cipher implementation for an envelope
// version byte. Unknown versions yield ErrMalformedEnvelope: an envelope
// we cannot name a primitive for is indistinguishable from garbage.
func CipherForVersion(version byte) (Cipher, error) {
	switch version {
	case VersionXChaCha20Poly1305:
		return xchachaCipher{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown version 0x%02x", ErrMalformedEnvelope, version)
	}
}

// VersionTag implements [Cipher].
func (xchachaCipher) VersionTag() byte {
	return VersionXChaCha20Poly1305
}

// Encrypt implements [Cipher]. The key must be 32 bytes and the nonce
// 24 bytes; the returned slice is ciphertext with the 16-byte tag appended.
func (xchachaCipher) Encrypt(key, nonce, plaintext, aad []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce must be %d bytes", ErrCryptoFailure, NonceSize)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create aead: %w", err)
	}

	return aead.Seal(nil, nonce, plaintext, aad), nil
}

// Decrypt implements [Cipher]. Tag mismatch, a wrong key and structurally
// broken ciphertext all collapse into ErrCryptoFailure.
func (xchachaCipher) Decrypt(key, nonce, ctWithTag, aad []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}
	if len(nonce) != NonceSize || len(ctWithTag) < TagSize {
		return nil, ErrCryptoFailure
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create aead: %w", err)
	}

	plaintext, err := aead.Open(nil, nonce, ctWithTag, aad)
	if err != nil {
		return nil, ErrCryptoFailure
	}

	return plaintext, nil
}
