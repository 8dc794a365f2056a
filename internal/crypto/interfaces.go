// Package crypto implements the data plane of the vault: the authenticated
// encryption primitive, the versioned envelope codec, Argon2id key
// derivation, DEK wrapping and the recovery phrase scheme.
//
// Key material flows:
//
//	KEK  = KdfParams.Derive(password, salt)
//	blob = WrapDEK(DEK, KEK, purposeAAD)
//	DEK  = UnwrapDEK(blob, KEK, purposeAAD)
//
// Payload encryption flows Cipher then Envelope; the version byte carried
// by every envelope selects the Cipher on the way back.
package crypto

// Cipher is the authenticated-encryption capability behind the envelope.
//
// Implementations are pure functions of their inputs: no internal state,
// safe for concurrent use. The caller supplies the nonce so the envelope
// layer controls nonce freshness; Encrypt returns ciphertext with the
// authentication tag appended.
type Cipher interface {
	// VersionTag identifies the primitive variant. It is written as the
	// first byte of every envelope this cipher produces.
	VersionTag() byte

	// Encrypt seals plaintext under a 32-byte key with the given nonce and
	// associated data, returning ciphertext‖tag.
	Encrypt(key, nonce, plaintext, aad []byte) ([]byte, error)

	// Decrypt opens ciphertext‖tag. It returns ErrInvalidKeySize if the key
	// is not 32 bytes, and ErrCryptoFailure if the tag does not verify or
	// the nonce or ciphertext is structurally wrong.
	Decrypt(key, nonce, ctWithTag, aad []byte) ([]byte, error)
}
