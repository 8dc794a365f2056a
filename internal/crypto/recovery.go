// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Moltis Authors

package crypto

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"
)

// Recovery phrase format: 128 bits of CSPRNG entropy rendered as 32
// base36 digits (A-Z, 0-9), grouped XXXX-XXXX-… for transcription.
const (
	recoveryEntropyBytes = 16
	recoveryPhraseChars  = 32
	recoveryGroupSize    = 4

	// RecoveryPhraseLength is the length of a formatted phrase:
	// 32 symbols plus 7 dashes.
	RecoveryPhraseLength = recoveryPhraseChars + recoveryPhraseChars/recoveryGroupSize - 1
)

// Fixed, non-secret salts for the two recovery derivations. Distinct
// constants domain-separate the KEK from the stored hash: knowing one
// output reveals nothing about the other.
var (
	recoveryKekSalt  = []byte("moltis/vault/recovery-kek/v1")
	recoveryHashSalt = []byte("moltis/vault/recovery-hash/v1")
)

// recoveryHashParams is the profile of the stored phrase hash. It only
// gates a fast equality check, so it runs at the bound floor; the real
// work still happens in the recovery KEK derivation.
var recoveryHashParams = KdfParams{
	MemoryKiB: 8 * 1024,
	Time:      1,
	Threads:   1,
	KeyLength: KdfKeyLength,
}

// GenerateRecoveryPhrase samples 128 bits from the OS CSPRNG and renders
// them as eight dash-joined groups of four base36 symbols, e.g.
// "4R2K-09ZA-…". The raw phrase is returned to the caller exactly once;
// only its wrapped-DEK and hash are ever persisted.
func GenerateRecoveryPhrase() (string, error) {
	entropy, err := randomBytes(recoveryEntropyBytes)
	if err != nil {
		return "", fmt.Errorf("generate recovery phrase: %w", err)
	}
	defer Zero(entropy)

	// 2^128 < 36^32, so 32 base36 digits always fit; left-pad with zeros.
	digits := strings.ToUpper(new(big.Int).SetBytes(entropy).Text(36))
	if pad := recoveryPhraseChars - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}

	groups := make([]string, 0, recoveryPhraseChars/recoveryGroupSize)
	for i := 0; i < recoveryPhraseChars; i += recoveryGroupSize {
		groups = append(groups, digits[i:i+recoveryGroupSize])
	}

	return strings.Join(groups, "-"), nil
}

// NormalizeRecoveryPhrase canonicalizes user input: uppercased, with
// dashes and whitespace stripped. Hashing and KEK derivation both consume
// the normalized form, so transcription formatting never matters.
func NormalizeRecoveryPhrase(phrase string) string {
	var b strings.Builder
	b.Grow(recoveryPhraseChars)
	for _, r := range strings.ToUpper(phrase) {
		switch {
		case r == '-' || r == ' ' || r == '\t':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HashRecoveryPhrase computes the stored fast-reject hash of a phrase:
// Argon2id over the normalized form with the fixed hash salt, base64
// encoded.
func HashRecoveryPhrase(phrase string) (string, error) {
	normalized := []byte(NormalizeRecoveryPhrase(phrase))
	defer Zero(normalized)

	sum, err := recoveryHashParams.Derive(normalized, recoveryHashSalt)
	if err != nil {
		return "", fmt.Errorf("hash recovery phrase: %w", err)
	}

	return base64.StdEncoding.EncodeToString(sum), nil
}

// CheckRecoveryPhraseHash compares the hash of phrase against a stored
// hash in constant time.
func CheckRecoveryPhraseHash(phrase, storedHash string) (bool, error) {
	computed, err := HashRecoveryPhrase(phrase)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1, nil
}

// DeriveRecoveryKEK derives the 32-byte recovery KEK from a phrase using
// the lighter recovery profile and the fixed KEK salt.
func DeriveRecoveryKEK(phrase string) ([]byte, error) {
	normalized := []byte(NormalizeRecoveryPhrase(phrase))
	defer Zero(normalized)

	return RecoveryKdfParams().Derive(normalized, recoveryKekSalt)
}

// DeriveRecoveryKEKCtx is [DeriveRecoveryKEK] with the derivation offloaded
// per [KdfParams.DeriveCtx].
func DeriveRecoveryKEKCtx(ctx context.Context, phrase string) ([]byte, error) {
	normalized := []byte(NormalizeRecoveryPhrase(phrase))
	defer Zero(normalized)

	return RecoveryKdfParams().DeriveCtx(ctx, normalized, recoveryKekSalt)
}
