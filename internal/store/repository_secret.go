package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/Mixik7/moltis/internal/logger"
	"github.com/Mixik7/moltis/models"
)

var secretColumns = []string{"id", "name", "value", "encrypted", "created_at", "updated_at"}

// secretRepository implements [SecretStore] over a relational [DB].
type secretRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSecretRepository constructs a [SecretStore] backed by the provided
// database connection and logger.
func NewSecretRepository(db *DB, logger *logger.Logger) SecretStore {
	logger.Debug().Msg("creating secret repository")
	return &secretRepository{
		db:     db,
		logger: logger,
	}
}

// SaveSecret upserts a record by name: an existing row keeps its ID and
// CreatedAt, only value, encrypted flag and UpdatedAt change.
func (r *secretRepository) SaveSecret(ctx context.Context, secret models.SecretRecord) (models.SecretRecord, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()

	existing, err := r.GetSecret(ctx, secret.Name)
	switch {
	case err == nil:
		secret.ID = existing.ID
		secret.CreatedAt = existing.CreatedAt
		secret.UpdatedAt = now

		query, args, err := r.db.builder.
			Update(secret.TableName()).
			Set("value", secret.Value).
			Set("encrypted", secret.Encrypted).
			Set("updated_at", secret.UpdatedAt).
			Where(sq.Eq{"name": secret.Name}).
			ToSql()
		if err != nil {
			return models.SecretRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "*secretRepository.SaveSecret").Msg("error updating secret")
			return models.SecretRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		return secret, nil

	case errors.Is(err, ErrSecretNotFound):
		secret.CreatedAt = now
		secret.UpdatedAt = now

		query, args, err := r.db.builder.
			Insert(secret.TableName()).
			Columns(secretColumns...).
			Values(secret.ID, secret.Name, secret.Value, secret.Encrypted, secret.CreatedAt, secret.UpdatedAt).
			ToSql()
		if err != nil {
			return models.SecretRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).Str("func", "*secretRepository.SaveSecret").Msg("error inserting secret")
			return models.SecretRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		return secret, nil

	default:
		return models.SecretRecord{}, err
	}
}

// GetSecret retrieves a record by name. Returns [ErrSecretNotFound] when
// no row matches.
func (r *secretRepository) GetSecret(ctx context.Context, name string) (models.SecretRecord, error) {
	query, args, err := r.db.builder.
		Select(secretColumns...).
		From(models.SecretRecord{}.TableName()).
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return models.SecretRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var secret models.SecretRecord
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&secret.ID, &secret.Name, &secret.Value, &secret.Encrypted, &secret.CreatedAt, &secret.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SecretRecord{}, ErrSecretNotFound
	}
	if err != nil {
		return models.SecretRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return secret, nil
}

// ListSecrets returns records matching the filter, ordered by name.
func (r *secretRepository) ListSecrets(ctx context.Context, filter SecretFilter) ([]models.SecretRecord, error) {
	log := logger.FromContext(ctx)

	builder := r.db.builder.
		Select(secretColumns...).
		From(models.SecretRecord{}.TableName()).
		OrderBy("name")

	if filter.NamePrefix != "" {
		builder = builder.Where(sq.Like{"name": filter.NamePrefix + "%"})
	}
	if filter.Encrypted != nil {
		builder = builder.Where(sq.Eq{"encrypted": *filter.Encrypted})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*secretRepository.ListSecrets").Msg("error listing secrets")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var secrets []models.SecretRecord
	for rows.Next() {
		var secret models.SecretRecord
		if err := rows.Scan(&secret.ID, &secret.Name, &secret.Value, &secret.Encrypted, &secret.CreatedAt, &secret.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		secrets = append(secrets, secret)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return secrets, nil
}

// DeleteSecret removes a record by name. Returns [ErrSecretNotFound] when
// no row matches.
func (r *secretRepository) DeleteSecret(ctx context.Context, name string) error {
	query, args, err := r.db.builder.
		Delete(models.SecretRecord{}.TableName()).
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrSecretNotFound
	}

	return nil
}
