package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the guard router.
//
// Lifecycle routes are reachable in every vault state so a locked host can
// still be inspected and unlocked. Everything under /api/secrets sits
// behind the locked middleware (423 while Sealed) and the session token
// check.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// lifecycle routes: available regardless of vault state
	router.Group(func(r chi.Router) {
		r.Get("/api/vault/status", h.status)
		r.Post("/api/vault/init", h.initialize)
		r.Post("/api/vault/unseal", h.unseal)
		r.Post("/api/vault/recover", h.unsealWithRecovery)
	})

	// session-guarded lifecycle routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/vault/seal", h.seal)
		r.Post("/api/vault/password", h.changePassword)
	})

	// protected record routes: locked guard first, then session token
	router.Group(func(r chi.Router) {
		r.Use(h.locked)
		r.Use(h.auth)
		r.Get("/api/secrets", h.listSecrets)
		r.Get("/api/secrets/{name}", h.revealSecret)
		r.Put("/api/secrets/{name}", h.storeSecret)
		r.Delete("/api/secrets/{name}", h.deleteSecret)
	})

	return router
}
