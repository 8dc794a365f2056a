package store

import (
	"context"

	"github.com/Mixik7/moltis/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// MetadataStore is the transactional handle the vault uses to read and
// write its single-row metadata record.
//
// Implementations must guarantee:
//   - CreateMetadata inserts the row inside one transaction and fails with
//     [ErrMetadataExists] when a row is already present.
//   - UpdatePasswordWrapper replaces the password-wrapper columns (salt,
//     params, wrapped DEK, updated_at) atomically, bumping the version
//     counter; either all columns commit or none do.
//   - GetMetadata returns [ErrMetadataNotFound] when the vault has never
//     been initialized.
type MetadataStore interface {
	GetMetadata(ctx context.Context) (models.VaultMetadata, error)
	CreateMetadata(ctx context.Context, meta models.VaultMetadata) (models.VaultMetadata, error)
	UpdatePasswordWrapper(ctx context.Context, kdfSalt, kdfParams, wrappedDEK string) (models.VaultMetadata, error)
}

// SecretFilter narrows ListSecrets results. Zero value means no filtering.
type SecretFilter struct {
	// NamePrefix keeps only records whose name starts with the prefix,
	// e.g. "env:" for environment values.
	NamePrefix string

	// Encrypted, when non-nil, keeps only records whose encrypted flag
	// matches. Listing unencrypted rows drives plaintext migration.
	Encrypted *bool
}

// SecretStore persists protected records. Values are opaque to the store:
// base64 envelopes when the record's encrypted flag is set, legacy
// plaintext otherwise.
type SecretStore interface {
	SaveSecret(ctx context.Context, secret models.SecretRecord) (models.SecretRecord, error)
	GetSecret(ctx context.Context, name string) (models.SecretRecord, error)
	ListSecrets(ctx context.Context, filter SecretFilter) ([]models.SecretRecord, error)
	DeleteSecret(ctx context.Context, name string) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying. Driver-specific implementations inspect driver error codes.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
