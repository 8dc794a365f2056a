package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func testKey(fill byte) []byte {
	return bytes.Repeat([]byte{fill}, KeySize)
}

func TestCipherRoundTrip(t *testing.T) {
	c := NewXChaChaCipher()
	key := testKey(0x11)

	nonce, err := NewNonce()
	if err != nil {
		t.Fatalf("NewNonce error: %v", err)
	}

	plaintext := []byte("attack at dawn")
	aad := []byte("env:API_KEY")

	ct, err := c.Encrypt(key, nonce, plaintext, aad)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if len(ct) != len(plaintext)+TagSize {
		t.Fatalf("ciphertext length = %d, want %d", len(ct), len(plaintext)+TagSize)
	}

	got, err := c.Decrypt(key, nonce, ct, aad)
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip mismatch: got %q, want %q", got, plaintext)
	}
}

func TestCipherRejectsWrongKey(t *testing.T) {
	c := NewXChaChaCipher()
	nonce, _ := NewNonce()

	ct, err := c.Encrypt(testKey(0x11), nonce, []byte("secret"), nil)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if _, err := c.Decrypt(testKey(0x22), nonce, ct, nil); !errors.Is(err, ErrCryptoFailure) {
		t.Fatalf("Decrypt with wrong key: got %v, want ErrCryptoFailure", err)
	}
}

func TestCipherRejectsTamperedCiphertext(t *testing.T) {
	c := NewXChaChaCipher()
	key := testKey(0x33)
	nonce, _ := NewNonce()

	ct, err := c.Encrypt(key, nonce, []byte("secret"), nil)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	ct[len(ct)-1] ^= 0x01
	if _, err := c.Decrypt(key, nonce, ct, nil); !errors.Is(err, ErrCryptoFailure) {
		t.Fatalf("Decrypt of tampered ciphertext: got %v, want ErrCryptoFailure", err)
	}
}

func TestCipherRejectsModifiedAAD(t *testing.T) {
	c := NewXChaChaCipher()
	key := testKey(0x44)
	nonce, _ := NewNonce()

	ct, err := c.Encrypt(key, nonce, []byte("x"), []byte("A"))
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	if _, err := c.Decrypt(key, nonce, ct, []byte("B")); !errors.Is(err, ErrCryptoFailure) {
		t.Fatalf("Decrypt with substituted AAD: got %v, want ErrCryptoFailure", err)
	}
}

func TestCipherRejectsBadKeySize(t *testing.T) {
	c := NewXChaChaCipher()
	nonce, _ := NewNonce()

	if _, err := c.Encrypt([]byte("short"), nonce, []byte("x"), nil); !errors.Is(err, ErrInvalidKeySize) {
		t.Fatalf("Encrypt with short key: got %v, want ErrInvalidKeySize", err)
	}
	if _, err := c.Decrypt([]byte("short"), nonce, bytes.Repeat([]byte{0}, TagSize), nil); !errors.Is(err, ErrInvalidKeySize) {
		t.Fatalf("Decrypt with short key: got %v, want ErrInvalidKeySize", err)
	}
}

func TestCipherForVersion(t *testing.T) {
	c, err := CipherForVersion(VersionXChaCha20Poly1305)
	if err != nil {
		t.Fatalf("CipherForVersion(0x01) error: %v", err)
	}
	if c.VersionTag() != VersionXChaCha20Poly1305 {
		t.Fatalf("VersionTag = 0x%02x, want 0x01", c.VersionTag())
	}

	if _, err := CipherForVersion(0x7F); !errors.Is(err, ErrMalformedEnvelope) {
		t.Fatalf("CipherForVersion(0x7F): got %v, want ErrMalformedEnvelope", err)
	}
}
