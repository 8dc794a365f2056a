package http

import (
	"context"
	"net/http"

	"github.com/Mixik7/moltis/internal/logger"
	"github.com/Mixik7/moltis/internal/utils"
)

// auth is an HTTP middleware that enforces unlock-session authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer
// token, validates it as a session JWT, and — on success — stores the
// session ID in the request context under [utils.SessionIDCtxKey] before
// delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized when the
// header is absent, the bearer token cannot be parsed, or the token fails
// signature/issuer/expiry validation.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		token, err := utils.ValidateAndParseSessionToken(tokenString, h.authCfg.TokenSignKey, h.authCfg.TokenIssuer)
		if err != nil {
			log.Err(ErrInvalidToken).Send()
			http.Error(w, ErrInvalidToken.Error(), http.StatusUnauthorized)
			return
		}

		sessionID, err := token.GetSessionID()
		if err != nil {
			log.Err(ErrInvalidToken).Send()
			http.Error(w, ErrInvalidToken.Error(), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), utils.SessionIDCtxKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
