package http

import (
	"net/http"

	"github.com/Mixik7/moltis/internal/logger"
	"github.com/Mixik7/moltis/models"
)

// locked is the guard middleware over every protected route: while the
// vault is Sealed (or was never initialized) the route answers
// 423 Locked with a "locked" status body instead of reaching the handler.
func (h *Handler) locked(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.vault.IsUnsealed() {
			log := logger.FromRequest(r)
			log.Debug().Str("uri", r.RequestURI).Msg("rejecting request: vault is sealed")

			writeJSON(w, http.StatusLocked, statusResponse{Status: lockedStatus})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// lockedStatus is the body value the host UI keys on while the vault is
// sealed.
const lockedStatus = "locked"

// vaultStatusBody renders a VaultStatus for responses: sealed and
// uninitialized both read as locked on protected routes, but the
// lifecycle status route reports them verbatim.
func vaultStatusBody(status models.VaultStatus) statusResponse {
	return statusResponse{Status: string(status)}
}
