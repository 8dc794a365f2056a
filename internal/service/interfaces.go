package service

import (
	"context"

	"github.com/Mixik7/moltis/internal/store"
	"github.com/Mixik7/moltis/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// StringCipher is the slice of the vault the secrets service consumes:
// payload encryption with caller-supplied associated data. Implemented by
// *vault.Vault.
type StringCipher interface {
	EncryptString(plaintext, aad string) (string, error)
	DecryptString(encoded, aad string) (string, error)
	IsUnsealed() bool
}

// SecretsService stores and retrieves protected records, encrypting them
// under the vault's DEK on the way in and decrypting on the way out.
type SecretsService interface {
	// StoreSecret encrypts value and upserts it under name.
	StoreSecret(ctx context.Context, name, value string) (models.SecretRecord, error)

	// RevealSecret returns the plaintext value of a stored record. Legacy
	// rows with the encrypted flag unset are returned as stored.
	RevealSecret(ctx context.Context, name string) (string, error)

	// ListSecrets returns records matching the filter. Values stay in
	// their stored (encrypted) form.
	ListSecrets(ctx context.Context, filter store.SecretFilter) ([]models.SecretRecord, error)

	// DeleteSecret removes a record by name.
	DeleteSecret(ctx context.Context, name string) error

	// EncryptPendingRecords re-writes every record whose encrypted flag is
	// unset as an envelope, returning how many rows were converted. Used
	// after unlocking a vault that was introduced over existing plaintext
	// data.
	EncryptPendingRecords(ctx context.Context) (int, error)
}
