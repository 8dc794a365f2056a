package store

import "github.com/Mixik7/moltis/internal/logger"

// Storages aggregates the repositories the rest of the application
// consumes.
type Storages struct {
	MetadataStore MetadataStore
	SecretStore   SecretStore
}

// NewStorages wires all repositories over one database connection.
func NewStorages(db *DB, log *logger.Logger) Storages {
	return Storages{
		MetadataStore: NewMetadataRepository(db, log),
		SecretStore:   NewSecretRepository(db, log),
	}
}
