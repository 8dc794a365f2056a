package http

import (
	"encoding/json"
	"net/http"

	"github.com/Mixik7/moltis/internal/logger"
)

// Request bodies.
type (
	initializeRequest struct {
		Password string `json:"password"`
	}

	unsealRequest struct {
		Password string `json:"password"`
	}

	recoverRequest struct {
		Phrase string `json:"phrase"`
	}

	changePasswordRequest struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}

	storeSecretRequest struct {
		Value string `json:"value"`
	}
)

// Response bodies.
type (
	statusResponse struct {
		Status string `json:"status"`
	}

	unlockResponse struct {
		Status string `json:"status"`
		Token  string `json:"token"`
	}

	initializeResponse struct {
		Status         string `json:"status"`
		RecoveryPhrase string `json:"recovery_phrase"`
		Token          string `json:"token"`
	}

	secretResponse struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}

	errorResponse struct {
		Error string `json:"error"`
	}
)

// writeJSON serializes body with the given status code. Serialization
// failures degrade to a bare 500.
func writeJSON(w http.ResponseWriter, status int, body any) {
	raw, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(raw, '\n'))
}

// readJSON decodes the request body into target, answering 400 on
// malformed input. Returns false when the request was already answered.
func readJSON(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		logger.FromRequest(r).Err(err).Msg("malformed request body")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return false
	}
	return true
}

// writeError answers with the mapped status code and the error kind text.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, httpStatusForError(err), errorResponse{Error: err.Error()})
}
