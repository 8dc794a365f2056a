package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// MinEnvelopeSize is the smallest valid binary envelope:
// version (1) + nonce (24) + tag of an empty plaintext (16).
const MinEnvelopeSize = 1 + NonceSize + TagSize

// Envelope is the parsed form of the on-disk ciphertext blob.
//
// Binary layout: [version: 1][nonce: 24][ciphertext+tag: N+16].
// Text form: standard base64 (with padding) of the binary layout, suitable
// for character columns. Every stored envelope carries its version byte;
// readers never assume a default.
type Envelope struct {
	Version    byte
	Nonce      []byte
	Ciphertext []byte // includes the trailing authentication tag
}

// NewNonce draws a fresh random 24-byte nonce from the OS CSPRNG.
func NewNonce() ([]byte, error) {
	nonce, err := randomBytes(NonceSize)
	if err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return nonce, nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// EncodeBinary serializes the envelope into its binary layout.
func (e Envelope) EncodeBinary() []byte {
	buf := make([]byte, 0, 1+len(e.Nonce)+len(e.Ciphertext))
	buf = append(buf, e.Version)
	buf = append(buf, e.Nonce...)
	buf = append(buf, e.Ciphertext...)
	return buf
}

// EncodeText serializes the envelope into its base64 text form.
func (e Envelope) EncodeText() string {
	return base64.StdEncoding.EncodeToString(e.EncodeBinary())
}

// DecodeBinary parses a binary envelope. It fails with ErrMalformedEnvelope
// on short input or an unknown version byte.
func DecodeBinary(blob []byte) (Envelope, error) {
	if len(blob) < MinEnvelopeSize {
		return Envelope{}, fmt.Errorf("%w: %d bytes, need at least %d", ErrMalformedEnvelope, len(blob), MinEnvelopeSize)
	}

	version := blob[0]
	if _, err := CipherForVersion(version); err != nil {
		return Envelope{}, err
	}

	return Envelope{
		Version:    version,
		Nonce:      blob[1 : 1+NonceSize],
		Ciphertext: blob[1+NonceSize:],
	}, nil
}

// DecodeText base64-decodes a text envelope and parses it. Invalid base64
// is reported as ErrMalformedEnvelope, same as a short blob.
func DecodeText(encoded string) (Envelope, error) {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: invalid base64", ErrMalformedEnvelope)
	}
	return DecodeBinary(blob)
}
