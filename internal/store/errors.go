package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known
// failure conditions. Callers should use [errors.Is] to match against
// these values.
var (
	// ErrMetadataNotFound is returned when the vault metadata row does not
	// exist: the vault has never been initialized.
	ErrMetadataNotFound = errors.New("vault metadata not found")

	// ErrMetadataExists is returned when CreateMetadata collides with an
	// existing row. Initialization is a once-only operation.
	ErrMetadataExists = errors.New("vault metadata already exists")

	// ErrSecretNotFound is returned when a secret lookup or delete targets
	// a name with no stored record.
	ErrSecretNotFound = errors.New("secret not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised
	// SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommittingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back at
	// this point.
	ErrCommittingTransaction = errors.New("failed to commit transaction")
)
