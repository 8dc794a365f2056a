// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Moltis Authors

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/Mixik7/moltis/internal/logger"
	"github.com/Mixik7/moltis/models"
)

// metadataRowID is the constant primary key of the single metadata row.
const metadataRowID = 1

var metadataColumns = []string{
	"id", "version", "kdf_salt", "kdf_params", "wrapped_dek",
	"recovery_wrapped_dek", "recovery_key_hash", "created_at", "updated_at",
}

// metadataRepository implements [MetadataStore] over a relational [DB].
// The same code serves both backends; the DB's statement builder supplies
// the correct placeholder format.
type metadataRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewMetadataRepository constructs a [MetadataStore] backed by the
// provided database connection and logger.
func NewMetadataRepository(db *DB, logger *logger.Logger) MetadataStore {
	logger.Debug().Msg("creating vault metadata repository")
	return &metadataRepository{
		db:     db,
		logger: logger,
	}
}

// GetMetadata reads the single metadata row. Returns [ErrMetadataNotFound]
// when the vault has never been initialized.
func (r *metadataRepository) GetMetadata(ctx context.Context) (models.VaultMetadata, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(metadataColumns...).
		From(models.VaultMetadata{}.TableName()).
		Where(sq.Eq{"id": metadataRowID}).
		ToSql()
	if err != nil {
		return models.VaultMetadata{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	meta, err := scanMetadata(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.VaultMetadata{}, ErrMetadataNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*metadataRepository.GetMetadata").Msg("error reading metadata row")
		return models.VaultMetadata{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return meta, nil
}

// CreateMetadata inserts the metadata row inside one transaction. A
// primary-key collision means the vault is already initialized and is
// reported as [ErrMetadataExists].
func (r *metadataRepository) CreateMetadata(ctx context.Context, meta models.VaultMetadata) (models.VaultMetadata, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	meta.ID = metadataRowID
	meta.Version = 1
	meta.CreatedAt = now
	meta.UpdatedAt = now

	query, args, err := r.db.builder.
		Insert(meta.TableName()).
		Columns(metadataColumns...).
		Values(meta.ID, meta.Version, meta.KdfSalt, meta.KdfParams, meta.WrappedDEK,
			nullableString(meta.RecoveryWrappedDEK), nullableString(meta.RecoveryKeyHash),
			meta.CreatedAt, meta.UpdatedAt).
		ToSql()
	if err != nil {
		return models.VaultMetadata{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.runTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isDuplicateKey(err) {
				return ErrMetadataExists
			}
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrMetadataExists) {
			log.Err(err).Str("func", "*metadataRepository.CreateMetadata").Msg("error creating metadata row")
		}
		return models.VaultMetadata{}, err
	}

	return meta, nil
}

// UpdatePasswordWrapper atomically replaces the password-wrapper columns
// and bumps the version counter. The recovery wrapper is untouched: a
// password change never invalidates the recovery phrase.
func (r *metadataRepository) UpdatePasswordWrapper(ctx context.Context, kdfSalt, kdfParams, wrappedDEK string) (models.VaultMetadata, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	query, args, err := r.db.builder.
		Update(models.VaultMetadata{}.TableName()).
		Set("version", sq.Expr("version + 1")).
		Set("kdf_salt", kdfSalt).
		Set("kdf_params", kdfParams).
		Set("wrapped_dek", wrappedDEK).
		Set("updated_at", now).
		Where(sq.Eq{"id": metadataRowID}).
		ToSql()
	if err != nil {
		return models.VaultMetadata{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	selectQuery, selectArgs, err := r.db.builder.
		Select(metadataColumns...).
		From(models.VaultMetadata{}.TableName()).
		Where(sq.Eq{"id": metadataRowID}).
		ToSql()
	if err != nil {
		return models.VaultMetadata{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.VaultMetadata
	err = r.runTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if affected == 0 {
			return ErrMetadataNotFound
		}

		updated, err = scanMetadata(tx.QueryRowContext(ctx, selectQuery, selectArgs...))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrMetadataNotFound) {
			log.Err(err).Str("func", "*metadataRepository.UpdatePasswordWrapper").Msg("error updating password wrapper")
		}
		return models.VaultMetadata{}, err
	}

	return updated, nil
}

// runTx runs fn inside a transaction, committing on success and rolling
// back on error. Transient failures (per the backend's classifier) get one
// additional attempt.
func (r *metadataRepository) runTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	err := r.execTx(ctx, fn)
	if err != nil && r.db.errorClassificator.Classify(err) == Retryable {
		r.logger.Warn().Err(err).Msg("retrying transaction after transient database error")
		err = r.execTx(ctx, fn)
	}
	return err
}

func (r *metadataRepository) execTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMetadata(row rowScanner) (models.VaultMetadata, error) {
	var (
		meta            models.VaultMetadata
		recoveryDEK     sql.NullString
		recoveryKeyHash sql.NullString
	)

	err := row.Scan(&meta.ID, &meta.Version, &meta.KdfSalt, &meta.KdfParams, &meta.WrappedDEK,
		&recoveryDEK, &recoveryKeyHash, &meta.CreatedAt, &meta.UpdatedAt)
	if err != nil {
		return models.VaultMetadata{}, err
	}

	meta.RecoveryWrappedDEK = recoveryDEK.String
	meta.RecoveryKeyHash = recoveryKeyHash.String
	return meta, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func isDuplicateKey(err error) bool {
	return postgresError(err) == pgerrcode.UniqueViolation || sqliteConstraintViolation(err)
}
