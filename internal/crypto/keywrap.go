package crypto

import (
	"fmt"
)

// Purpose strings bound into the wrapped-DEK envelopes as associated data.
// The binding stops a recovery wrapper from being substituted for a
// password wrapper and vice versa: the tag only verifies under the AAD the
// blob was sealed with.
const (
	AADPasswordWrap = "vault:dek:password"
	AADRecoveryWrap = "vault:dek:recovery"
)

// WrapDEK seals a 32-byte DEK under a 32-byte KEK with the given purpose
// AAD, using the default cipher and a fresh random nonce. The result is
// the base64 text form of the envelope.
func WrapDEK(dek, kek []byte, aad string) (string, error) {
	if len(dek) != KeySize {
		return "", fmt.Errorf("wrap dek: %w", ErrInvalidKeySize)
	}

	c := NewXChaChaCipher()

	nonce, err := NewNonce()
	if err != nil {
		return "", fmt.Errorf("wrap dek: %w", err)
	}

	ct, err := c.Encrypt(kek, nonce, dek, []byte(aad))
	if err != nil {
		return "", fmt.Errorf("wrap dek: %w", err)
	}

	env := Envelope{Version: c.VersionTag(), Nonce: nonce, Ciphertext: ct}
	return env.EncodeText(), nil
}

// UnwrapDEK opens a wrapped-DEK envelope with the KEK and purpose AAD and
// moves the 32-byte result straight into a [SecureDEK].
//
// Any failure — bad base64, short blob, unknown version, tag mismatch,
// wrong output length — is reported as ErrCryptoFailure so a caller probing
// the stored wrapper cannot tell a wrong key from a damaged blob.
func UnwrapDEK(encoded string, kek []byte, aad string) (*SecureDEK, error) {
	env, err := DecodeText(encoded)
	if err != nil {
		return nil, ErrCryptoFailure
	}

	c, err := CipherForVersion(env.Version)
	if err != nil {
		return nil, ErrCryptoFailure
	}

	dek, err := c.Decrypt(kek, env.Nonce, env.Ciphertext, []byte(aad))
	if err != nil {
		return nil, ErrCryptoFailure
	}

	if len(dek) != KeySize {
		Zero(dek)
		return nil, ErrCryptoFailure
	}

	// NewSecureDEK wipes the plaintext copy.
	return NewSecureDEK(dek), nil
}

// GenerateDEK reads a fresh uniformly random 256-bit data encryption key
// from the OS CSPRNG and seals it into a [SecureDEK].
func GenerateDEK() (*SecureDEK, error) {
	key, err := randomBytes(KeySize)
	if err != nil {
		return nil, fmt.Errorf("generate dek: %w", err)
	}
	return NewSecureDEK(key), nil
}
