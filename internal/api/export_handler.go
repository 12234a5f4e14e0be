package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

const exportVersion = "1.0"

// ── Request / Response types ────────────────────────────────────────────────

// ExportData is the portable form of one profile's mastery map. Keys use the
// persisted "AxB" format with A <= B.
type ExportData struct {
	Version     string             `json:"version" example:"1.0"`
	ExportedAt  string             `json:"exported_at" example:"2026-01-02T15:04:05Z"`
	ProfileName string             `json:"profile_name" example:"Ada"`
	Mastery     map[string]float64 `json:"mastery"`
}

type ImportRequest struct {
	Version string             `json:"version,omitempty" example:"1.0"`
	Mastery map[string]float64 `json:"mastery"`
}

func (r *ImportRequest) Validate() error {
	if r.Mastery == nil {
		return errors.New("mastery is required")
	}
	return nil
}

type ImportResult struct {
	Imported int      `json:"imported" example:"36"`
	Skipped  []string `json:"skipped"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// exportMastery downloads the profile's mastery map.
// @Summary      Export mastery
// @Description  Download every stored score of the profile as a JSON file.
// @Tags         Mastery
// @Produce      json
// @Param        profileID  path      string  true  "Profile ID"
// @Success      200        {object}  ExportData
// @Failure      404        {object}  map[string]string
// @Failure      500        {object}  map[string]string
// @Router       /profiles/{profileID}/export [get]
func (h *Handler) exportMastery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profileID := r.PathValue("profileID")

	p, err := h.practice.GetProfile(ctx, profileID)
	if h.handleStoreError(w, err, "profile") {
		return
	}

	scores, err := h.practice.ExportMastery(ctx, profileID)
	if h.handleStoreError(w, err, "profile") {
		return
	}

	exportData := ExportData{
		Version:     exportVersion,
		ExportedAt:  time.Now().UTC().Format(time.RFC3339),
		ProfileName: p.Name,
		Mastery:     scores,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=factdojo-"+profileID+".json")
	json.NewEncoder(w).Encode(exportData)
}

// importMastery replaces the profile's mastery map.
// @Summary      Import mastery
// @Description  Replace every score of the profile. Keys may use either factor order; malformed or out-of-range keys are skipped and listed.
// @Tags         Mastery
// @Accept       json
// @Produce      json
// @Param        profileID  path      string         true  "Profile ID"
// @Param        body       body      ImportRequest  true  "Scores keyed by fact"
// @Success      200        {object}  ImportResult
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /profiles/{profileID}/import [post]
func (h *Handler) importMastery(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.practice.ImportMastery(r.Context(), r.PathValue("profileID"), req.Mastery)
	if h.handleStoreError(w, err, "profile") {
		return
	}

	h.logger.Info("mastery import finished", "profile_id", r.PathValue("profileID"), "imported", result.Imported)
	respondJSON(w, http.StatusOK, ImportResult{
		Imported: result.Imported,
		Skipped:  result.Skipped,
	})
}
