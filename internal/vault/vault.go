// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Moltis Authors

// Package vault implements the password-unlocked secret vault: a process
// local state machine over a single data encryption key.
//
// One random 256-bit DEK encrypts every record at rest. The DEK itself is
// persisted only in wrapped form — sealed under a KEK derived from the
// user password, and under a second KEK derived from the recovery phrase
// generated at initialization. Until an unseal succeeds, no protected data
// can be read or written.
//
// State transitions:
//
//	Uninitialized --Initialize--> Unsealed
//	Sealed --Unseal / UnsealWithRecovery--> Unsealed
//	Unsealed --Seal--> Sealed
//
// ChangePassword re-wraps the existing DEK under a new password KEK;
// records encrypted before the change remain decryptable.
package vault

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Mixik7/moltis/internal/crypto"
	"github.com/Mixik7/moltis/internal/logger"
	"github.com/Mixik7/moltis/internal/store"
	"github.com/Mixik7/moltis/models"
)

// Vault is the top-level state machine and the only type clients use.
//
// The DEK slot is the single piece of mutable shared state: transitions
// (Initialize, Unseal, Seal, ChangePassword) take the write lock, while
// EncryptString/DecryptString take the read lock, so payload crypto runs
// concurrently but never against a half-transitioned slot. Store writes
// always commit before the in-memory slot changes; an abandoned or failed
// transition leaves memory untouched.
type Vault struct {
	mu    sync.RWMutex
	store store.MetadataStore
	log   *logger.Logger

	meta *models.VaultMetadata // cached row, nil until first load
	dek  *crypto.SecureDEK     // nil while sealed

	lastUsed atomic.Int64  // unix nanos of the last protected operation
	kdfRuns  atomic.Uint64 // number of full KDF derivations performed
}

// New constructs a Vault against the given metadata store. It performs no
// I/O; the metadata row is read on demand.
func New(metadataStore store.MetadataStore, log *logger.Logger) *Vault {
	v := &Vault{
		store: metadataStore,
		log:   log,
	}
	v.touch()
	return v
}

// Status reports the externally observable vault state.
func (v *Vault) Status(ctx context.Context) (models.VaultStatus, error) {
	v.mu.RLock()
	unsealed := v.dek != nil && !v.dek.IsDestroyed()
	loaded := v.meta != nil
	v.mu.RUnlock()

	if unsealed {
		return models.VaultStatusUnsealed, nil
	}
	if loaded {
		return models.VaultStatusSealed, nil
	}

	_, err := v.store.GetMetadata(ctx)
	if errors.Is(err, store.ErrMetadataNotFound) {
		return models.VaultStatusUninitialized, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorage, err)
	}

	return models.VaultStatusSealed, nil
}

// IsUnsealed reports whether the DEK is currently held in memory.
func (v *Vault) IsUnsealed() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.dek != nil && !v.dek.IsDestroyed()
}

// Initialize creates the vault: it generates the DEK and the recovery
// phrase, wraps the DEK under both derived KEKs, and writes the metadata
// row in one transaction. On success the vault is Unsealed and the
// recovery phrase is returned — this is the only time it is ever visible.
//
// Fails with ErrAlreadyInitialized if a metadata row exists.
func (v *Vault) Initialize(ctx context.Context, password string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.meta != nil || v.dek != nil {
		return "", ErrAlreadyInitialized
	}

	if _, err := v.store.GetMetadata(ctx); err == nil {
		return "", ErrAlreadyInitialized
	} else if !errors.Is(err, store.ErrMetadataNotFound) {
		return "", fmt.Errorf("%w: %w", ErrStorage, err)
	}

	dek, err := crypto.GenerateDEK()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}

	salt, err := crypto.GenerateSalt()
	if err != nil {
		dek.Destroy()
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}
	params := crypto.DefaultKdfParams()

	passwordKEK, err := v.deriveKey(ctx, params, []byte(password), salt)
	if err != nil {
		dek.Destroy()
		return "", err
	}
	defer crypto.Zero(passwordKEK)

	phrase, err := crypto.GenerateRecoveryPhrase()
	if err != nil {
		dek.Destroy()
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}

	v.kdfRuns.Add(1)
	recoveryKEK, err := crypto.DeriveRecoveryKEKCtx(ctx, phrase)
	if err != nil {
		dek.Destroy()
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}
	defer crypto.Zero(recoveryKEK)

	phraseHash, err := crypto.HashRecoveryPhrase(phrase)
	if err != nil {
		dek.Destroy()
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}

	dekBytes, cleanup, err := dek.Bytes()
	if err != nil {
		dek.Destroy()
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}
	wrapped, wrapErr := crypto.WrapDEK(dekBytes, passwordKEK, crypto.AADPasswordWrap)
	recoveryWrapped, recErr := crypto.WrapDEK(dekBytes, recoveryKEK, crypto.AADRecoveryWrap)
	cleanup()
	if wrapErr != nil {
		dek.Destroy()
		return "", fmt.Errorf("%w: %w", ErrInternal, wrapErr)
	}
	if recErr != nil {
		dek.Destroy()
		return "", fmt.Errorf("%w: %w", ErrInternal, recErr)
	}

	meta := models.VaultMetadata{
		KdfSalt:            base64.StdEncoding.EncodeToString(salt),
		KdfParams:          params.String(),
		WrappedDEK:         wrapped,
		RecoveryWrappedDEK: recoveryWrapped,
		RecoveryKeyHash:    phraseHash,
	}

	created, err := v.store.CreateMetadata(ctx, meta)
	if err != nil {
		dek.Destroy()
		if errors.Is(err, store.ErrMetadataExists) {
			return "", ErrAlreadyInitialized
		}
		return "", fmt.Errorf("%w: %w", ErrStorage, err)
	}

	// Commit succeeded; only now does the in-memory slot change.
	v.meta = &created
	v.dek = dek
	v.touch()

	v.log.Info().Int64("metadata_version", created.Version).Msg("vault initialized")
	return phrase, nil
}

// Unseal derives the password KEK from the stored parameters and unwraps
// the DEK. A wrong password (or a damaged wrapper) yields ErrBadPassword
// and the vault stays Sealed. Unsealing an already-unsealed vault is a
// no-op: concurrent unseal attempts serialize and only the first performs
// the KDF work.
func (v *Vault) Unseal(ctx context.Context, password string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.dek != nil && !v.dek.IsDestroyed() {
		return nil
	}

	meta, err := v.loadMetadata(ctx)
	if err != nil {
		return err
	}

	params, err := crypto.ParseKdfParams(meta.KdfParams)
	if err != nil {
		return err
	}

	salt, err := base64.StdEncoding.DecodeString(meta.KdfSalt)
	if err != nil {
		return fmt.Errorf("%w: stored salt is not base64", ErrInternal)
	}

	kek, err := v.deriveKey(ctx, params, []byte(password), salt)
	if err != nil {
		return err
	}
	defer crypto.Zero(kek)

	dek, err := crypto.UnwrapDEK(meta.WrappedDEK, kek, crypto.AADPasswordWrap)
	if err != nil {
		return ErrBadPassword
	}

	v.meta = meta
	v.dek = dek
	v.touch()

	v.log.Info().Msg("vault unsealed")
	return nil
}

// UnsealWithRecovery unlocks the vault with the recovery phrase captured
// at initialization. The stored phrase hash serves as a fast reject before
// the recovery KDF runs; both a hash mismatch and a failed unwrap report
// ErrInvalidRecoveryPhrase, leaking nothing about which check failed.
func (v *Vault) UnsealWithRecovery(ctx context.Context, phrase string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.dek != nil && !v.dek.IsDestroyed() {
		return nil
	}

	meta, err := v.loadMetadata(ctx)
	if err != nil {
		return err
	}

	if !meta.HasRecovery() {
		return ErrRecoveryNotConfigured
	}

	match, err := crypto.CheckRecoveryPhraseHash(phrase, meta.RecoveryKeyHash)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if !match {
		return ErrInvalidRecoveryPhrase
	}

	v.kdfRuns.Add(1)
	kek, err := crypto.DeriveRecoveryKEKCtx(ctx, phrase)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	defer crypto.Zero(kek)

	dek, err := crypto.UnwrapDEK(meta.RecoveryWrappedDEK, kek, crypto.AADRecoveryWrap)
	if err != nil {
		return ErrInvalidRecoveryPhrase
	}

	v.meta = meta
	v.dek = dek
	v.touch()

	v.log.Info().Msg("vault unsealed with recovery phrase")
	return nil
}

// Seal destroys the in-memory DEK holder and clears the slot. The holder
// drops its enclave reference; the enclave's encrypted buffer is released,
// not overwritten. Idempotent; sealing a sealed or uninitialized vault does
// nothing.
func (v *Vault) Seal() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.dek != nil {
		v.dek.Destroy()
		v.dek = nil
		v.log.Info().Msg("vault sealed")
	}
}

// ChangePassword verifies the old password against the current wrapper,
// then re-wraps the unchanged DEK under a KEK derived from the new
// password with a fresh salt. The row update is transactional: on any
// failure the old wrapper (and the old password) remain fully intact.
//
// The DEK is never regenerated here, so every envelope produced before the
// change stays decryptable after it.
func (v *Vault) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.dek == nil || v.dek.IsDestroyed() {
		return ErrSealed
	}

	meta := v.meta
	if meta == nil {
		return fmt.Errorf("%w: unsealed vault has no metadata", ErrInternal)
	}

	params, err := crypto.ParseKdfParams(meta.KdfParams)
	if err != nil {
		return err
	}
	oldSalt, err := base64.StdEncoding.DecodeString(meta.KdfSalt)
	if err != nil {
		return fmt.Errorf("%w: stored salt is not base64", ErrInternal)
	}

	oldKEK, err := v.deriveKey(ctx, params, []byte(oldPassword), oldSalt)
	if err != nil {
		return err
	}
	defer crypto.Zero(oldKEK)

	verified, err := crypto.UnwrapDEK(meta.WrappedDEK, oldKEK, crypto.AADPasswordWrap)
	if err != nil {
		return ErrBadPassword
	}
	verified.Destroy()

	newSalt, err := crypto.GenerateSalt()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	newParams := crypto.DefaultKdfParams()

	newKEK, err := v.deriveKey(ctx, newParams, []byte(newPassword), newSalt)
	if err != nil {
		return err
	}
	defer crypto.Zero(newKEK)

	dekBytes, cleanup, err := v.dek.Bytes()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	rewrapped, err := crypto.WrapDEK(dekBytes, newKEK, crypto.AADPasswordWrap)
	cleanup()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	updated, err := v.store.UpdatePasswordWrapper(ctx,
		base64.StdEncoding.EncodeToString(newSalt), newParams.String(), rewrapped)
	if err != nil {
		if errors.Is(err, store.ErrMetadataNotFound) {
			return fmt.Errorf("%w: metadata row vanished", ErrInternal)
		}
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	// Commit succeeded; adopt the new row.
	v.meta = &updated
	v.touch()

	v.log.Info().Int64("metadata_version", updated.Version).Msg("vault password changed")
	return nil
}

// EncryptString encrypts plaintext under the DEK with a fresh random nonce
// and the caller-supplied AAD string, returning the base64 envelope.
// Fails with ErrSealed while the vault is not Unsealed.
func (v *Vault) EncryptString(plaintext, aad string) (string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.dek == nil || v.dek.IsDestroyed() {
		return "", ErrSealed
	}

	nonce, err := crypto.NewNonce()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}

	key, cleanup, err := v.dek.Bytes()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}
	defer cleanup()

	c := crypto.NewXChaChaCipher()
	ct, err := c.Encrypt(key, nonce, []byte(plaintext), []byte(aad))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}

	env := crypto.Envelope{Version: c.VersionTag(), Nonce: nonce, Ciphertext: ct}
	v.touch()
	return env.EncodeText(), nil
}

// DecryptString decodes a base64 envelope, selects the cipher by its
// version byte and decrypts with the DEK and the caller-supplied AAD.
// Fails with ErrSealed, ErrMalformedEnvelope, or ErrCryptoFailure.
func (v *Vault) DecryptString(encoded, aad string) (string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.dek == nil || v.dek.IsDestroyed() {
		return "", ErrSealed
	}

	env, err := crypto.DecodeText(encoded)
	if err != nil {
		return "", err
	}

	c, err := crypto.CipherForVersion(env.Version)
	if err != nil {
		return "", err
	}

	key, cleanup, err := v.dek.Bytes()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInternal, err)
	}
	defer cleanup()

	plaintext, err := c.Decrypt(key, env.Nonce, env.Ciphertext, []byte(aad))
	if err != nil {
		return "", err
	}

	v.touch()
	return string(plaintext), nil
}

// IdleSince returns how long ago the vault last performed a protected
// operation. The auto-seal watchdog polls it.
func (v *Vault) IdleSince() time.Duration {
	return time.Since(time.Unix(0, v.lastUsed.Load()))
}

// KdfInvocations returns how many full KDF derivations this vault has
// performed. Exposed for observability and tests.
func (v *Vault) KdfInvocations() uint64 {
	return v.kdfRuns.Load()
}

// loadMetadata reads the metadata row, mapping a missing row onto
// ErrNotInitialized. Callers hold the write lock.
func (v *Vault) loadMetadata(ctx context.Context) (*models.VaultMetadata, error) {
	meta, err := v.store.GetMetadata(ctx)
	if errors.Is(err, store.ErrMetadataNotFound) {
		return nil, ErrNotInitialized
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return &meta, nil
}

// deriveKey runs the password KDF on a blocking-safe goroutine and counts
// the invocation. Cancellation errors pass through; parameter errors keep
// their ErrBadKdfParams identity.
func (v *Vault) deriveKey(ctx context.Context, params crypto.KdfParams, password, salt []byte) ([]byte, error) {
	v.kdfRuns.Add(1)
	key, err := params.DeriveCtx(ctx, password, salt)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, crypto.ErrBadKdfParams) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return key, nil
}

func (v *Vault) touch() {
	v.lastUsed.Store(time.Now().UnixNano())
}
