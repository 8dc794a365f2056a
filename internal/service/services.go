package service

import (
	"github.com/Mixik7/moltis/internal/logger"
	"github.com/Mixik7/moltis/internal/store"
)

// Services aggregates the application services the host surfaces consume.
type Services struct {
	SecretsService SecretsService
}

// NewServices wires all services over the vault cipher and storages.
func NewServices(cipher StringCipher, storages store.Storages, logger *logger.Logger) *Services {
	return &Services{
		SecretsService: NewSecretsService(cipher, storages.SecretStore, logger),
	}
}
