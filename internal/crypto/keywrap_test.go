package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func mustUnwrapBytes(t *testing.T, dek *SecureDEK) []byte {
	t.Helper()
	key, cleanup, err := dek.Bytes()
	if err != nil {
		t.Fatalf("SecureDEK.Bytes error: %v", err)
	}
	out := bytes.Clone(key)
	cleanup()
	return out
}

func TestWrapUnwrapRoundTrip(t *testing.T) {
	dek := testKey(0xD0)
	kek := testKey(0xE0)

	wrapped, err := WrapDEK(dek, kek, AADPasswordWrap)
	if err != nil {
		t.Fatalf("WrapDEK error: %v", err)
	}

	unwrapped, err := UnwrapDEK(wrapped, kek, AADPasswordWrap)
	if err != nil {
		t.Fatalf("UnwrapDEK error: %v", err)
	}
	defer unwrapped.Destroy()

	if !bytes.Equal(mustUnwrapBytes(t, unwrapped), dek) {
		t.Fatalf("unwrapped DEK does not match original")
	}
}

func TestUnwrapRejectsWrongKEK(t *testing.T) {
	wrapped, err := WrapDEK(testKey(0xD0), testKey(0xE0), AADPasswordWrap)
	if err != nil {
		t.Fatalf("WrapDEK error: %v", err)
	}

	if _, err := UnwrapDEK(wrapped, testKey(0xE1), AADPasswordWrap); !errors.Is(err, ErrCryptoFailure) {
		t.Fatalf("wrong KEK: got %v, want ErrCryptoFailure", err)
	}
}

func TestUnwrapRejectsCrossPurposeSubstitution(t *testing.T) {
	kek := testKey(0xE0)

	asRecovery, err := WrapDEK(testKey(0xD0), kek, AADRecoveryWrap)
	if err != nil {
		t.Fatalf("WrapDEK error: %v", err)
	}

	// A recovery wrapper must not open as a password wrapper.
	if _, err := UnwrapDEK(asRecovery, kek, AADPasswordWrap); !errors.Is(err, ErrCryptoFailure) {
		t.Fatalf("cross-purpose unwrap: got %v, want ErrCryptoFailure", err)
	}
}

func TestUnwrapCollapsesMalformedIntoCryptoFailure(t *testing.T) {
	// Garbage input must be indistinguishable from a wrong key.
	if _, err := UnwrapDEK("!!not-base64!!", testKey(0xE0), AADPasswordWrap); !errors.Is(err, ErrCryptoFailure) {
		t.Fatalf("garbage wrapper: got %v, want ErrCryptoFailure", err)
	}
}

func TestWrapRejectsShortDEK(t *testing.T) {
	if _, err := WrapDEK([]byte("short"), testKey(0xE0), AADPasswordWrap); !errors.Is(err, ErrInvalidKeySize) {
		t.Fatalf("short DEK: got %v, want ErrInvalidKeySize", err)
	}
}

func TestWrapProducesFreshNonces(t *testing.T) {
	dek := testKey(0xD0)
	kek := testKey(0xE0)

	w1, err := WrapDEK(dek, kek, AADPasswordWrap)
	if err != nil {
		t.Fatalf("WrapDEK error: %v", err)
	}
	w2, err := WrapDEK(dek, kek, AADPasswordWrap)
	if err != nil {
		t.Fatalf("WrapDEK error: %v", err)
	}

	if w1 == w2 {
		t.Fatalf("two wraps of the same DEK are identical")
	}
}

func TestGenerateDEK(t *testing.T) {
	d1, err := GenerateDEK()
	if err != nil {
		t.Fatalf("GenerateDEK error: %v", err)
	}
	defer d1.Destroy()
	d2, err := GenerateDEK()
	if err != nil {
		t.Fatalf("GenerateDEK error: %v", err)
	}
	defer d2.Destroy()

	b1 := mustUnwrapBytes(t, d1)
	b2 := mustUnwrapBytes(t, d2)
	if len(b1) != KeySize {
		t.Fatalf("DEK length = %d, want %d", len(b1), KeySize)
	}
	if bytes.Equal(b1, b2) {
		t.Fatalf("two generated DEKs are equal")
	}
}
