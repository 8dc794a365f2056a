// Package http implements the HTTP guard of the vault: the only transport
// surface the host exposes. It provides middleware, route handlers, and
// request/response utilities for the lifecycle routes (status, unseal,
// seal, recover, password change) and the protected secrets routes.
// While the vault is Sealed every protected route answers 423 Locked.
package http

import (
	"context"

	"github.com/Mixik7/moltis/internal/config"
	"github.com/Mixik7/moltis/internal/logger"
	"github.com/Mixik7/moltis/internal/service"
	"github.com/Mixik7/moltis/models"
)

// VaultManager is the slice of the vault the guard drives. Implemented by
// *vault.Vault.
type VaultManager interface {
	Status(ctx context.Context) (models.VaultStatus, error)
	Initialize(ctx context.Context, password string) (string, error)
	Unseal(ctx context.Context, password string) error
	UnsealWithRecovery(ctx context.Context, phrase string) error
	Seal()
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	IsUnsealed() bool
}

// Handler carries the dependencies of all HTTP routes.
type Handler struct {
	vault    VaultManager
	services *service.Services
	authCfg  config.Auth

	logger *logger.Logger
}

// NewHandler constructs the guard handler.
func NewHandler(vault VaultManager, services *service.Services, authCfg config.Auth, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		vault:    vault,
		services: services,
		authCfg:  authCfg,
		logger:   logger,
	}
}
