package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/Mixik7/moltis/internal/service"
	"github.com/Mixik7/moltis/internal/store"
	"github.com/Mixik7/moltis/internal/vault"
)

// httpStatusForError maps the vault error taxonomy onto HTTP status codes.
// The guard never exposes internal representations, only the kind.
func httpStatusForError(err error) int {
	switch {
	case errors.Is(err, vault.ErrSealed):
		return http.StatusLocked
	case errors.Is(err, vault.ErrBadPassword),
		errors.Is(err, vault.ErrInvalidRecoveryPhrase):
		return http.StatusUnauthorized
	case errors.Is(err, vault.ErrNotInitialized),
		errors.Is(err, vault.ErrAlreadyInitialized),
		errors.Is(err, vault.ErrRecoveryNotConfigured):
		return http.StatusConflict
	case errors.Is(err, vault.ErrMalformedEnvelope),
		errors.Is(err, vault.ErrCryptoFailure):
		return http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrSecretNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmptySecretName):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
