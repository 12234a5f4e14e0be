package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/factdojo/backend/internal/domain/fact"
	"github.com/factdojo/backend/internal/domain/mastery"
)

// ── Request / Response types ────────────────────────────────────────────────

type FactResponse struct {
	Fact    string        `json:"fact" example:"2x7"`
	Product int           `json:"product" example:"14"`
	Score   float64       `json:"score" example:"0.42"`
	Level   mastery.Level `json:"level" swaggertype:"string" enums:"GAP,LEARNING,MASTERED" example:"LEARNING"`
}

type MasteryResponse struct {
	ProfileID string         `json:"profile_id" example:"3f2b8c1d9e4a4b7c8d6e5f4a3b2c1d0e"`
	Stats     mastery.Stats  `json:"stats"`
	Known     []FactResponse `json:"known"`
	Heatmap   []mastery.Cell `json:"heatmap"`
}

type ResetMasteryRequest struct {
	Confirm bool `json:"confirm" example:"true"`
}

func toFactResponse(f fact.Fact, score float64) FactResponse {
	return FactResponse{
		Fact:    f.Key(),
		Product: f.Product(),
		Score:   score,
		Level:   mastery.Classify(score),
	}
}

// parseRange reads the optional min/max query parameters. Missing values
// fall back to fact.DrillRange; the result must lie within fact.TableRange.
func parseRange(r *http.Request) (fact.Range, error) {
	rng := fact.DrillRange
	q := r.URL.Query()

	if v := q.Get("min"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fact.Range{}, fmt.Errorf("invalid min %q", v)
		}
		rng.Min = n
	}
	if v := q.Get("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fact.Range{}, fmt.Errorf("invalid max %q", v)
		}
		rng.Max = n
	}

	if !rng.Valid() || !fact.TableRange.Contains(rng.Min) || !fact.TableRange.Contains(rng.Max) {
		return fact.Range{}, fmt.Errorf("range %d..%d must lie within %d..%d",
			rng.Min, rng.Max, fact.TableRange.Min, fact.TableRange.Max)
	}
	return rng, nil
}

// ── Handlers ────────────────────────────────────────────────────────────────

// getMastery returns the profile's aggregate, known facts and heatmap.
// @Summary      Get mastery overview
// @Description  Aggregate counts, every stored fact and the heatmap grid over the requested factor range.
// @Tags         Mastery
// @Produce      json
// @Param        profileID  path      string  true   "Profile ID"
// @Param        min        query     int     false  "Smallest factor (default 2)"
// @Param        max        query     int     false  "Largest factor (default 9)"
// @Success      200        {object}  MasteryResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /profiles/{profileID}/mastery [get]
func (h *Handler) getMastery(w http.ResponseWriter, r *http.Request) {
	profileID := r.PathValue("profileID")

	rng, err := parseRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ms, err := h.practice.Mastery(r.Context(), profileID)
	if h.handleStoreError(w, err, "profile") {
		return
	}

	entries := ms.Known()
	known := make([]FactResponse, len(entries))
	for i, e := range entries {
		known[i] = toFactResponse(e.Fact, e.Score)
	}

	respondJSON(w, http.StatusOK, MasteryResponse{
		ProfileID: profileID,
		Stats:     ms.Aggregate(rng),
		Known:     known,
		Heatmap:   ms.Heatmap(rng),
	})
}

// getFact returns the score and level of one fact.
// @Summary      Get one fact
// @Description  Either order is accepted ("7x2" and "2x7" name the same fact).
// @Tags         Mastery
// @Produce      json
// @Param        profileID  path      string  true  "Profile ID"
// @Param        factKey    path      string  true  "Fact key, e.g. 2x7"
// @Success      200        {object}  FactResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /profiles/{profileID}/mastery/{factKey} [get]
func (h *Handler) getFact(w http.ResponseWriter, r *http.Request) {
	f, err := fact.ParseKey(r.PathValue("factKey"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ms, err := h.practice.Mastery(r.Context(), r.PathValue("profileID"))
	if h.handleStoreError(w, err, "profile") {
		return
	}

	respondJSON(w, http.StatusOK, toFactResponse(f, ms.Score(f.Low, f.High)))
}

// resetMastery wipes every score of the profile.
// @Summary      Reset mastery
// @Description  Irreversibly forget every score of the profile. The body must carry {"confirm": true}.
// @Tags         Mastery
// @Accept       json
// @Param        profileID  path  string               true  "Profile ID"
// @Param        body       body  ResetMasteryRequest  true  "Confirmation"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /profiles/{profileID}/mastery/reset [post]
func (h *Handler) resetMastery(w http.ResponseWriter, r *http.Request) {
	var req ResetMasteryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.practice.ResetMastery(r.Context(), r.PathValue("profileID"), req.Confirm)
	if h.handleStoreError(w, err, "profile") {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
