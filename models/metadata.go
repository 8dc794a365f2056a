// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Moltis Authors

package models

import "time"

// VaultStatus enumerates the externally observable states of the vault.
type VaultStatus string

const (
	// VaultStatusUninitialized means no metadata row exists yet: the vault
	// has never been created and holds no data.
	VaultStatusUninitialized VaultStatus = "uninitialized"

	// VaultStatusSealed means the metadata row exists but the data
	// encryption key is not present in memory. No protected data can be
	// read or written.
	VaultStatusSealed VaultStatus = "sealed"

	// VaultStatusUnsealed means the data encryption key is held in memory
	// and protected data is accessible.
	VaultStatusUnsealed VaultStatus = "unsealed"
)

// VaultMetadata is the single persisted row describing the vault: the
// wrapped data encryption key, the KDF parameters needed to re-derive the
// password KEK, and the optional recovery wrapper.
//
// Invariants:
//   - The row exists iff the vault has been initialized (ID is always 1).
//   - RecoveryWrappedDEK and RecoveryKeyHash are either both set or both
//     empty.
//   - Both wrappers seal the same DEK.
type VaultMetadata struct {
	// ID is the constant primary key (1); the table holds exactly one row.
	ID int64 `json:"-"`

	// Version is a monotonic schema/update counter, bumped on every
	// wrapper update.
	Version int64 `json:"version"`

	// KdfSalt is the base64-encoded random salt of the password KDF.
	// Not secret; required to re-derive the password KEK.
	KdfSalt string `json:"kdf_salt"`

	// KdfParams is the compact textual Argon2id parameter string for the
	// password wrapper (see crypto.KdfParams).
	KdfParams string `json:"kdf_params"`

	// WrappedDEK is the base64 envelope of the DEK sealed under the
	// password-derived KEK.
	WrappedDEK string `json:"wrapped_dek"`

	// RecoveryWrappedDEK is the base64 envelope of the DEK sealed under
	// the recovery-phrase-derived KEK. Empty when recovery is not
	// configured.
	RecoveryWrappedDEK string `json:"recovery_wrapped_dek,omitempty"`

	// RecoveryKeyHash is the fixed-salt hash of the normalized recovery
	// phrase, used as a fast equality check before the recovery KDF runs.
	// Empty when recovery is not configured.
	RecoveryKeyHash string `json:"recovery_key_hash,omitempty"`

	// CreatedAt is when the vault was initialized.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when a wrapper was last rewritten (password change).
	UpdatedAt time.Time `json:"updated_at"`
}

// HasRecovery reports whether a recovery wrapper is configured.
func (m VaultMetadata) HasRecovery() bool {
	return m.RecoveryWrappedDEK != "" && m.RecoveryKeyHash != ""
}

// TableName returns the name of the database table
// associated with the VaultMetadata model.
func (m VaultMetadata) TableName() string {
	return "vault_metadata"
}
