package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"

	"github.com/Mixik7/moltis/internal/logger"
	"github.com/Mixik7/moltis/models"
)

func newTestSecretRepo(t *testing.T) (*secretRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &secretRepository{
		db: &DB{
			DB:                 db,
			builder:            sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
			dialect:            "pgx",
			errorClassificator: NewPostgresErrorClassifier(),
			logger:             l,
		},
		logger: l,
	}
	return repo, mock, db
}

func secretRows(now time.Time, records ...models.SecretRecord) *sqlmock.Rows {
	rows := sqlmock.NewRows(secretColumns)
	for _, r := range records {
		rows.AddRow(r.ID, r.Name, r.Value, r.Encrypted, now, now)
	}
	return rows
}

func TestGetSecret_Success(t *testing.T) {
	repo, mock, db := newTestSecretRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .+ FROM secrets").
		WithArgs("env:TOKEN").
		WillReturnRows(secretRows(now, models.SecretRecord{ID: "id-1", Name: "env:TOKEN", Value: "ciphertext", Encrypted: true}))

	secret, err := repo.GetSecret(context.Background(), "env:TOKEN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret.Name != "env:TOKEN" || !secret.Encrypted {
		t.Fatalf("unexpected secret: %+v", secret)
	}
}

func TestGetSecret_NotFound(t *testing.T) {
	repo, mock, db := newTestSecretRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM secrets").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetSecret(context.Background(), "missing")
	if !errors.Is(err, ErrSecretNotFound) {
		t.Fatalf("expected ErrSecretNotFound, got %v", err)
	}
}

func TestSaveSecret_InsertsNewRecord(t *testing.T) {
	repo, mock, db := newTestSecretRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM secrets").
		WithArgs("env:TOKEN").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO secrets").
		WillReturnResult(sqlmock.NewResult(1, 1))

	record := models.SecretRecord{ID: "id-1", Name: "env:TOKEN", Value: "ciphertext", Encrypted: true}
	saved, err := repo.SaveSecret(context.Background(), record)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveSecret_UpdatesExistingRecord(t *testing.T) {
	repo, mock, db := newTestSecretRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .+ FROM secrets").
		WithArgs("env:TOKEN").
		WillReturnRows(secretRows(now, models.SecretRecord{ID: "id-1", Name: "env:TOKEN", Value: "old", Encrypted: true}))
	mock.ExpectExec("UPDATE secrets").
		WillReturnResult(sqlmock.NewResult(0, 1))

	record := models.SecretRecord{ID: "ignored", Name: "env:TOKEN", Value: "new-ciphertext", Encrypted: true}
	saved, err := repo.SaveSecret(context.Background(), record)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The existing row keeps its identity.
	if saved.ID != "id-1" {
		t.Fatalf("expected existing id to be kept, got %q", saved.ID)
	}
}

func TestListSecrets_WithFilters(t *testing.T) {
	repo, mock, db := newTestSecretRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	encrypted := false
	mock.ExpectQuery("SELECT .+ FROM secrets").
		WithArgs("env:%", false).
		WillReturnRows(secretRows(now,
			models.SecretRecord{ID: "a", Name: "env:ONE", Value: "v1"},
			models.SecretRecord{ID: "b", Name: "env:TWO", Value: "v2"},
		))

	records, err := repo.ListSecrets(context.Background(), SecretFilter{NamePrefix: "env:", Encrypted: &encrypted})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestDeleteSecret_NotFound(t *testing.T) {
	repo, mock, db := newTestSecretRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM secrets").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteSecret(context.Background(), "missing")
	if !errors.Is(err, ErrSecretNotFound) {
		t.Fatalf("expected ErrSecretNotFound, got %v", err)
	}
}

func TestDeleteSecret_Success(t *testing.T) {
	repo, mock, db := newTestSecretRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM secrets").
		WithArgs("env:TOKEN").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteSecret(context.Background(), "env:TOKEN"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
