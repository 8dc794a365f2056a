package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Mixik7/moltis/internal/store"
)

// storeSecret encrypts and upserts a protected record.
func (h *Handler) storeSecret(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req storeSecretRequest
	if !readJSON(w, r, &req) {
		return
	}

	record, err := h.services.SecretsService.StoreSecret(r.Context(), name, req.Value)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// revealSecret returns the plaintext value of a record.
func (h *Handler) revealSecret(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	value, err := h.services.SecretsService.RevealSecret(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, secretResponse{Name: name, Value: value})
}

// listSecrets returns record metadata matching the optional "prefix" query
// parameter. Values are not revealed here.
func (h *Handler) listSecrets(w http.ResponseWriter, r *http.Request) {
	filter := store.SecretFilter{NamePrefix: r.URL.Query().Get("prefix")}

	records, err := h.services.SecretsService.ListSecrets(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// deleteSecret removes a record.
func (h *Handler) deleteSecret(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.services.SecretsService.DeleteSecret(r.Context(), name); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
