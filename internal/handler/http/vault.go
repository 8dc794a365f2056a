package http

import (
	"net/http"

	"github.com/Mixik7/moltis/internal/logger"
	"github.com/Mixik7/moltis/internal/utils"
)

// status reports the vault state: uninitialized, sealed or unsealed.
func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	vaultStatus, err := h.vault.Status(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("error reading vault status")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, vaultStatusBody(vaultStatus))
}

// initialize creates the vault and returns the recovery phrase — the only
// time it ever leaves the process — plus a fresh unlock-session token.
func (h *Handler) initialize(w http.ResponseWriter, r *http.Request) {
	var req initializeRequest
	if !readJSON(w, r, &req) {
		return
	}

	phrase, err := h.vault.Initialize(r.Context(), req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.mintSessionToken()
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("error minting session token")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, initializeResponse{
		Status:         "unsealed",
		RecoveryPhrase: phrase,
		Token:          token,
	})
}

// unseal unlocks the vault with the password and mints a session token.
func (h *Handler) unseal(w http.ResponseWriter, r *http.Request) {
	var req unsealRequest
	if !readJSON(w, r, &req) {
		return
	}

	if err := h.vault.Unseal(r.Context(), req.Password); err != nil {
		writeError(w, err)
		return
	}

	token, err := h.mintSessionToken()
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("error minting session token")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, unlockResponse{Status: "unsealed", Token: token})
}

// unsealWithRecovery unlocks the vault with the recovery phrase.
func (h *Handler) unsealWithRecovery(w http.ResponseWriter, r *http.Request) {
	var req recoverRequest
	if !readJSON(w, r, &req) {
		return
	}

	if err := h.vault.UnsealWithRecovery(r.Context(), req.Phrase); err != nil {
		writeError(w, err)
		return
	}

	token, err := h.mintSessionToken()
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("error minting session token")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, unlockResponse{Status: "unsealed", Token: token})
}

// seal drops the in-memory DEK. Idempotent.
func (h *Handler) seal(w http.ResponseWriter, r *http.Request) {
	h.vault.Seal()
	writeJSON(w, http.StatusOK, statusResponse{Status: "sealed"})
}

// changePassword re-wraps the DEK under a new password.
func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !readJSON(w, r, &req) {
		return
	}

	if err := h.vault.ChangePassword(r.Context(), req.OldPassword, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{Status: "unsealed"})
}

// mintSessionToken issues the bearer token that authorizes guarded routes
// for the duration of this unlock session.
func (h *Handler) mintSessionToken() (string, error) {
	sessionID := utils.NewUUIDGenerator().Generate()
	token, err := utils.GenerateSessionToken(h.authCfg.TokenIssuer, sessionID, h.authCfg.TokenDuration, h.authCfg.TokenSignKey)
	if err != nil {
		return "", err
	}
	return token.SignedString, nil
}
