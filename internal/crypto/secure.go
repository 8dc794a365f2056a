package crypto

import (
	"errors"

	"github.com/awnumar/memguard"
)

// ErrKeyDestroyed is returned when key material is requested from a
// SecureDEK that has been sealed away or never held a key.
var ErrKeyDestroyed = errors.New("key material destroyed")

// SecureDEK holds the data encryption key in a memguard enclave: encrypted
// in memory, decrypted only for the duration of a single crypto operation.
//
// The type models exclusive ownership. It must not be copied; transfer is
// by moving the pointer, and Destroy drops the key for good. Construction
// wipes the source slice, so the plaintext key exists outside the enclave
// only between Bytes() and its cleanup call.
type SecureDEK struct {
	enclave *memguard.Enclave
}

// NewSecureDEK seals key into an enclave and wipes the source bytes.
// Returns nil if key is empty.
func NewSecureDEK(key []byte) *SecureDEK {
	if len(key) == 0 {
		return nil
	}

	buf := memguard.NewBufferFromBytes(key)
	return &SecureDEK{enclave: buf.Seal()}
}

// Bytes opens the enclave and returns the key. The caller must invoke
// cleanup as soon as the operation using the key completes:
//
//	key, cleanup, err := dek.Bytes()
//	if err != nil { ... }
//	defer cleanup()
func (s *SecureDEK) Bytes() ([]byte, func(), error) {
	if s == nil || s.enclave == nil {
		return nil, func() {}, ErrKeyDestroyed
	}

	buf, err := s.enclave.Open()
	if err != nil {
		return nil, func() {}, ErrKeyDestroyed
	}

	return buf.Bytes(), func() { buf.Destroy() }, nil
}

// Destroy releases the enclave. Safe to call on nil and idempotent.
func (s *SecureDEK) Destroy() {
	if s != nil && s.enclave != nil {
		s.enclave = nil
	}
}

// IsDestroyed reports whether the key is gone (or was never set).
func (s *SecureDEK) IsDestroyed() bool {
	return s == nil || s.enclave == nil
}

// Zero overwrites b in place. Used for transient key material (KEKs,
// unwrap output, password bytes) that lives outside an enclave.
func Zero(b []byte) {
	memguard.WipeBytes(b)
}
