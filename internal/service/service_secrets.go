// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Moltis Authors

// Package service implements the application layer between the host
// surfaces and the vault core: protected-record storage with
// encryption-at-rest semantics.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Mixik7/moltis/internal/logger"
	"github.com/Mixik7/moltis/internal/store"
	"github.com/Mixik7/moltis/models"
)

// secretAAD returns the associated-data string binding an envelope to its
// record. Renaming a row without re-encrypting invalidates the tag.
func secretAAD(name string) string {
	return "secret:" + name
}

// secretsService implements [SecretsService] over a [store.SecretStore]
// and the vault's string cipher.
type secretsService struct {
	cipher  StringCipher
	secrets store.SecretStore
	logger  *logger.Logger
}

// NewSecretsService constructs a [SecretsService].
func NewSecretsService(cipher StringCipher, secrets store.SecretStore, log *logger.Logger) SecretsService {
	log.Debug().Msg("creating secrets service")
	return &secretsService{
		cipher:  cipher,
		secrets: secrets,
		logger:  log,
	}
}

// StoreSecret implements [SecretsService]. The value is encrypted under
// AAD "secret:<name>" before it reaches the store; the vault's Sealed
// error passes through untouched.
func (s *secretsService) StoreSecret(ctx context.Context, name, value string) (models.SecretRecord, error) {
	log := logger.FromContext(ctx)

	if name == "" {
		return models.SecretRecord{}, ErrEmptySecretName
	}

	encrypted, err := s.cipher.EncryptString(value, secretAAD(name))
	if err != nil {
		return models.SecretRecord{}, err
	}

	record := models.SecretRecord{
		ID:        uuid.NewString(),
		Name:      name,
		Value:     encrypted,
		Encrypted: true,
	}

	saved, err := s.secrets.SaveSecret(ctx, record)
	if err != nil {
		log.Err(err).Str("func", "*secretsService.StoreSecret").Msg("error saving secret")
		return models.SecretRecord{}, err
	}

	log.Debug().Str("name", name).Int("ciphertext_len", len(encrypted)).Msg("secret stored")
	return saved, nil
}

// RevealSecret implements [SecretsService]. Rows flagged encrypted are
// decrypted with the record-bound AAD; legacy plaintext rows are returned
// as stored so reads keep working mid-migration.
func (s *secretsService) RevealSecret(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", ErrEmptySecretName
	}

	record, err := s.secrets.GetSecret(ctx, name)
	if err != nil {
		return "", err
	}

	if !record.Encrypted {
		return record.Value, nil
	}

	return s.cipher.DecryptString(record.Value, secretAAD(name))
}

// ListSecrets implements [SecretsService].
func (s *secretsService) ListSecrets(ctx context.Context, filter store.SecretFilter) ([]models.SecretRecord, error) {
	return s.secrets.ListSecrets(ctx, filter)
}

// DeleteSecret implements [SecretsService].
func (s *secretsService) DeleteSecret(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptySecretName
	}
	return s.secrets.DeleteSecret(ctx, name)
}

// EncryptPendingRecords implements [SecretsService]. It lists rows with
// the encrypted flag unset and rewrites each as an envelope. Conversion is
// per-row: a failure aborts and reports the row, rows already converted
// stay converted.
func (s *secretsService) EncryptPendingRecords(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	plaintext := false
	pending, err := s.secrets.ListSecrets(ctx, store.SecretFilter{Encrypted: &plaintext})
	if err != nil {
		return 0, err
	}

	converted := 0
	for _, record := range pending {
		encrypted, err := s.cipher.EncryptString(record.Value, secretAAD(record.Name))
		if err != nil {
			return converted, fmt.Errorf("encrypting record %q: %w", record.Name, err)
		}

		record.Value = encrypted
		record.Encrypted = true
		if _, err := s.secrets.SaveSecret(ctx, record); err != nil {
			return converted, fmt.Errorf("saving record %q: %w", record.Name, err)
		}
		converted++
	}

	if converted > 0 {
		log.Info().Int("converted", converted).Msg("encrypted pending plaintext records")
	}
	return converted, nil
}
