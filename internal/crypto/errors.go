package crypto

import "errors"

// Sentinel errors returned by the crypto layer. Callers should use
// [errors.Is] to match against these values; the vault maps them onto its
// caller-facing taxonomy.
var (
	// ErrMalformedEnvelope is returned when an envelope cannot be parsed:
	// short length, invalid base64, or an unknown version byte.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrCryptoFailure is returned when an authentication tag does not
	// verify or a primitive rejects its inputs. It deliberately carries no
	// detail about which check failed.
	ErrCryptoFailure = errors.New("decryption failed")

	// ErrBadKdfParams is returned when stored KDF parameters cannot be
	// parsed or fall outside the accepted bounds.
	ErrBadKdfParams = errors.New("bad kdf parameters")

	// ErrInvalidKeySize is returned when a key that must be exactly
	// 32 bytes has a different length.
	ErrInvalidKeySize = errors.New("key must be 32 bytes")
)
