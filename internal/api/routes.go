// internal/api/routes.go
package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Profiles
	mux.HandleFunc("POST /profiles", h.createProfile)
	mux.HandleFunc("GET /profiles", h.listProfiles)
	mux.HandleFunc("GET /profiles/{profileID}", h.getProfile)
	mux.HandleFunc("DELETE /profiles/{profileID}", h.deleteProfile)

	// Mastery
	mux.HandleFunc("GET /profiles/{profileID}/mastery", h.getMastery)
	mux.HandleFunc("GET /profiles/{profileID}/mastery/{factKey}", h.getFact)
	mux.HandleFunc("POST /profiles/{profileID}/mastery/reset", h.resetMastery)
	mux.HandleFunc("GET /profiles/{profileID}/export", h.exportMastery)
	mux.HandleFunc("POST /profiles/{profileID}/import", h.importMastery)

	// Sessions
	mux.HandleFunc("POST /profiles/{profileID}/sessions", h.createSession)
	mux.HandleFunc("GET /sessions/{sessionID}", h.getSession)
	mux.HandleFunc("POST /sessions/{sessionID}/answers", h.submitAnswer)
	mux.HandleFunc("POST /sessions/{sessionID}/complete", h.completeSession)

	// Dashboard
	mux.HandleFunc("GET /dashboard", h.getDashboard)
}
