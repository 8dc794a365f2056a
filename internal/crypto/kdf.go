// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Moltis Authors

package crypto

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Bounds accepted for stored KDF parameters. Values outside these limits
// are refused with ErrBadKdfParams: below the floor the derivation is too
// weak to trust, above the ceiling a hostile row could exhaust the host.
const (
	kdfMinMemoryKiB = 8 * 1024        // 8 MiB
	kdfMaxMemoryKiB = 4 * 1024 * 1024 // 4 GiB
	kdfMinTime      = 1
	kdfMaxTime      = 64
	kdfMinThreads   = 1
	kdfMaxThreads   = 16

	// KdfKeyLength is the only accepted output length: a 256-bit KEK.
	KdfKeyLength = 32

	// KdfSaltSize is the salt length generated for new wrappers. Stored
	// salts between 16 and 32 bytes are accepted.
	KdfSaltSize    = 16
	kdfMinSaltSize = 16
	kdfMaxSaltSize = 32

	kdfAlgorithm = "argon2id"
)

// KdfParams is the stored Argon2id parameter set of one wrapper.
//
// Parameters are bound to the metadata row, not to global config, so cost
// can be tuned per vault and per wrapper: the password wrapper pays full
// cost while the recovery wrapper runs lighter (the phrase already carries
// 128 bits of entropy).
type KdfParams struct {
	// MemoryKiB is the Argon2id memory cost in KiB.
	MemoryKiB uint32

	// Time is the Argon2id iteration count.
	Time uint32

	// Threads is the Argon2id parallelism degree.
	Threads uint8

	// KeyLength is the derived key length in bytes; always 32.
	KeyLength uint32
}

// DefaultKdfParams returns the password-wrapper profile: 19 MiB memory,
// 2 iterations, 1 lane (the OWASP minimum recommendation for Argon2id).
func DefaultKdfParams() KdfParams {
	return KdfParams{
		MemoryKiB: 19 * 1024,
		Time:      2,
		Threads:   1,
		KeyLength: KdfKeyLength,
	}
}

// RecoveryKdfParams returns the lighter recovery-wrapper profile. The
// recovery phrase is uniformly random, so the KDF only needs to be a key
// expander, not a password stretcher.
func RecoveryKdfParams() KdfParams {
	return KdfParams{
		MemoryKiB: 16 * 1024,
		Time:      1,
		Threads:   1,
		KeyLength: KdfKeyLength,
	}
}

// GenerateSalt reads KdfSaltSize random bytes from the OS CSPRNG.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, KdfSaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// Validate checks the parameter set against the accepted bounds.
func (p KdfParams) Validate() error {
	switch {
	case p.MemoryKiB < kdfMinMemoryKiB || p.MemoryKiB > kdfMaxMemoryKiB:
		return fmt.Errorf("%w: memory %d KiB outside [%d, %d]", ErrBadKdfParams, p.MemoryKiB, kdfMinMemoryKiB, kdfMaxMemoryKiB)
	case p.Time < kdfMinTime || p.Time > kdfMaxTime:
		return fmt.Errorf("%w: time cost %d outside [%d, %d]", ErrBadKdfParams, p.Time, kdfMinTime, kdfMaxTime)
	case p.Threads < kdfMinThreads || p.Threads > kdfMaxThreads:
		return fmt.Errorf("%w: parallelism %d outside [%d, %d]", ErrBadKdfParams, p.Threads, kdfMinThreads, kdfMaxThreads)
	case p.KeyLength != KdfKeyLength:
		return fmt.Errorf("%w: key length %d, want %d", ErrBadKdfParams, p.KeyLength, KdfKeyLength)
	}
	return nil
}

// String renders the compact textual form stored alongside the wrapped
// DEK, e.g. "alg=argon2id,m=19456,t=2,p=1,l=32".
func (p KdfParams) String() string {
	return fmt.Sprintf("alg=%s,m=%d,t=%d,p=%d,l=%d", kdfAlgorithm, p.MemoryKiB, p.Time, p.Threads, p.KeyLength)
}

// ParseKdfParams parses the compact textual form produced by
// [KdfParams.String] and validates the result. Unknown algorithms, missing
// fields, junk values and out-of-bounds costs all yield ErrBadKdfParams.
func ParseKdfParams(s string) (KdfParams, error) {
	var p KdfParams
	seen := make(map[string]bool, 5)

	for _, pair := range strings.Split(s, ",") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return KdfParams{}, fmt.Errorf("%w: malformed pair %q", ErrBadKdfParams, pair)
		}
		if seen[name] {
			return KdfParams{}, fmt.Errorf("%w: duplicate field %q", ErrBadKdfParams, name)
		}
		seen[name] = true

		switch name {
		case "alg":
			if value != kdfAlgorithm {
				return KdfParams{}, fmt.Errorf("%w: unsupported algorithm %q", ErrBadKdfParams, value)
			}
		case "m", "t", "p", "l":
			n, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return KdfParams{}, fmt.Errorf("%w: field %q: %v", ErrBadKdfParams, name, err)
			}
			switch name {
			case "m":
				p.MemoryKiB = uint32(n)
			case "t":
				p.Time = uint32(n)
			case "p":
				if n > 255 {
					return KdfParams{}, fmt.Errorf("%w: parallelism %d overflows", ErrBadKdfParams, n)
				}
				p.Threads = uint8(n)
			case "l":
				p.KeyLength = uint32(n)
			}
		default:
			return KdfParams{}, fmt.Errorf("%w: unknown field %q", ErrBadKdfParams, name)
		}
	}

	for _, required := range []string{"alg", "m", "t", "p", "l"} {
		if !seen[required] {
			return KdfParams{}, fmt.Errorf("%w: missing field %q", ErrBadKdfParams, required)
		}
	}

	if err := p.Validate(); err != nil {
		return KdfParams{}, err
	}
	return p, nil
}

// Derive computes the 32-byte Argon2id key for password and salt. It is
// deterministic given its inputs and expensive by design; callers on a
// latency-sensitive path should use [KdfParams.DeriveCtx].
func (p KdfParams) Derive(password, salt []byte) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(salt) < kdfMinSaltSize || len(salt) > kdfMaxSaltSize {
		return nil, fmt.Errorf("%w: salt length %d outside [%d, %d]", ErrBadKdfParams, len(salt), kdfMinSaltSize, kdfMaxSaltSize)
	}

	return argon2.IDKey(password, salt, p.Time, p.MemoryKiB, p.Threads, p.KeyLength), nil
}

// DeriveCtx runs Derive on its own goroutine so the caller can abandon the
// wait when ctx is cancelled. The derivation itself always runs to
// completion; on cancellation the key is wiped before the goroutine exits,
// so no derived material outlives an abandoned call.
func (p KdfParams) DeriveCtx(ctx context.Context, password, salt []byte) ([]byte, error) {
	type result struct {
		key []byte
		err error
	}

	ch := make(chan result, 1)
	go func() {
		key, err := p.Derive(password, salt)
		ch <- result{key: key, err: err}
	}()

	select {
	case r := <-ch:
		return r.key, r.err
	case <-ctx.Done():
		// Reap the abandoned derivation so its key never lingers.
		go func() {
			r := <-ch
			Zero(r.key)
		}()
		return nil, ctx.Err()
	}
}
