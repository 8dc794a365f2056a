package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/Mixik7/moltis/internal/logger"
	"github.com/Mixik7/moltis/migrations"
)

// DB bundles the open connection with the pieces that differ between the
// PostgreSQL and SQLite backends: the placeholder format used to build
// queries, the goose dialect for migrations, and the driver error
// classifier.
type DB struct {
	*sql.DB
	builder            sq.StatementBuilderType
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded schema migrations for this backend.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}
