package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/factdojo/backend/internal/domain/profile"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateProfileRequest struct {
	Name string `json:"name" example:"Ada"`
}

func (r *CreateProfileRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

type ProfileResponse struct {
	ID        string `json:"id" example:"3f2b8c1d9e4a4b7c8d6e5f4a3b2c1d0e"`
	Name      string `json:"name" example:"Ada"`
	CreatedAt string `json:"created_at" example:"2026-01-02T15:04:05Z"`
}

func toProfileResponse(p *profile.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createProfile creates a learner profile with an empty mastery map.
// @Summary      Create a profile
// @Description  Create a learner profile. Its mastery map starts empty.
// @Tags         Profiles
// @Accept       json
// @Produce      json
// @Param        body  body      CreateProfileRequest  true  "Profile to create"
// @Success      201   {object}  ProfileResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /profiles [post]
func (h *Handler) createProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	p, err := h.practice.CreateProfile(r.Context(), req.Name)
	if h.handleStoreError(w, err, "profile") {
		return
	}

	respondJSON(w, http.StatusCreated, toProfileResponse(p))
}

// listProfiles lists every profile.
// @Summary      List profiles
// @Tags         Profiles
// @Produce      json
// @Success      200  {array}   ProfileResponse
// @Failure      500  {object}  map[string]string
// @Router       /profiles [get]
func (h *Handler) listProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.practice.ListProfiles(r.Context())
	if err != nil {
		h.logger.Error("failed to list profiles", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load profiles")
		return
	}

	response := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		response[i] = toProfileResponse(p)
	}
	respondJSON(w, http.StatusOK, response)
}

// getProfile returns one profile.
// @Summary      Get a profile
// @Tags         Profiles
// @Produce      json
// @Param        profileID  path      string  true  "Profile ID"
// @Success      200        {object}  ProfileResponse
// @Failure      404        {object}  map[string]string
// @Router       /profiles/{profileID} [get]
func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.practice.GetProfile(r.Context(), r.PathValue("profileID"))
	if h.handleStoreError(w, err, "profile") {
		return
	}
	respondJSON(w, http.StatusOK, toProfileResponse(p))
}

// deleteProfile removes a profile with its mastery and sessions.
// @Summary      Delete a profile
// @Description  Delete a profile and cascade-delete its mastery map and sessions. Irreversible.
// @Tags         Profiles
// @Param        profileID  path  string  true  "Profile ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /profiles/{profileID} [delete]
func (h *Handler) deleteProfile(w http.ResponseWriter, r *http.Request) {
	if h.handleStoreError(w, h.practice.DeleteProfile(r.Context(), r.PathValue("profileID")), "profile") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
