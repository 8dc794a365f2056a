package crypto

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	nonce, _ := NewNonce()
	ct := bytes.Repeat([]byte{0xAB}, 20+TagSize)

	env := Envelope{Version: VersionXChaCha20Poly1305, Nonce: nonce, Ciphertext: ct}

	blob := env.EncodeBinary()
	if len(blob) != 1+NonceSize+len(ct) {
		t.Fatalf("binary length = %d, want %d", len(blob), 1+NonceSize+len(ct))
	}
	if blob[0] != VersionXChaCha20Poly1305 {
		t.Fatalf("first byte = 0x%02x, want version tag 0x01", blob[0])
	}

	decoded, err := DecodeBinary(blob)
	if err != nil {
		t.Fatalf("DecodeBinary error: %v", err)
	}
	if decoded.Version != env.Version || !bytes.Equal(decoded.Nonce, nonce) || !bytes.Equal(decoded.Ciphertext, ct) {
		t.Fatalf("decoded envelope does not match original")
	}

	text := env.EncodeText()
	fromText, err := DecodeText(text)
	if err != nil {
		t.Fatalf("DecodeText error: %v", err)
	}
	if !bytes.Equal(fromText.EncodeBinary(), blob) {
		t.Fatalf("text round trip does not match binary form")
	}
}

func TestDecodeRejectsShortBlob(t *testing.T) {
	blob := bytes.Repeat([]byte{0x01}, MinEnvelopeSize-1)
	if _, err := DecodeBinary(blob); !errors.Is(err, ErrMalformedEnvelope) {
		t.Fatalf("short blob: got %v, want ErrMalformedEnvelope", err)
	}
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	blob := bytes.Repeat([]byte{0x00}, MinEnvelopeSize)
	blob[0] = 0xEE
	if _, err := DecodeBinary(blob); !errors.Is(err, ErrMalformedEnvelope) {
		t.Fatalf("unknown version: got %v, want ErrMalformedEnvelope", err)
	}
}

func TestDecodeTextRejectsInvalidBase64(t *testing.T) {
	if _, err := DecodeText("!!!not-base64!!!"); !errors.Is(err, ErrMalformedEnvelope) {
		t.Fatalf("invalid base64: got %v, want ErrMalformedEnvelope", err)
	}
}

func TestDecodeTextRejectsTruncatedEnvelope(t *testing.T) {
	// A valid-looking base64 string whose decoded form is one byte short.
	short := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{0x01}, MinEnvelopeSize-1))
	if _, err := DecodeText(short); !errors.Is(err, ErrMalformedEnvelope) {
		t.Fatalf("truncated envelope: got %v, want ErrMalformedEnvelope", err)
	}
}

func TestNonceFreshness(t *testing.T) {
	n1, err := NewNonce()
	if err != nil {
		t.Fatalf("NewNonce error: %v", err)
	}
	n2, err := NewNonce()
	if err != nil {
		t.Fatalf("NewNonce error: %v", err)
	}

	if len(n1) != NonceSize {
		t.Fatalf("nonce length = %d, want %d", len(n1), NonceSize)
	}
	if bytes.Equal(n1, n2) {
		t.Fatalf("two fresh nonces are equal")
	}
}
