package api

import (
	"net/http"

	"github.com/factdojo/backend/internal/domain/mastery"
)

type DashboardRow struct {
	ProfileID string        `json:"profile_id" example:"3f2b8c1d9e4a4b7c8d6e5f4a3b2c1d0e"`
	Name      string        `json:"name" example:"Ada"`
	Stats     mastery.Stats `json:"stats"`
	Error     string        `json:"error,omitempty"`
}

// getDashboard aggregates every profile over one factor range.
// @Summary      Dashboard
// @Description  Mastered, learning and gap counts per profile over the requested factor range.
// @Tags         Dashboard
// @Produce      json
// @Param        min  query     int  false  "Smallest factor (default 2)"
// @Param        max  query     int  false  "Largest factor (default 9)"
// @Success      200  {array}   DashboardRow
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /dashboard [get]
func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	summaries, err := h.dashboard.Overview(r.Context(), rng)
	if h.handleStoreError(w, err, "dashboard") {
		return
	}

	rows := make([]DashboardRow, len(summaries))
	for i, s := range summaries {
		rows[i] = DashboardRow{
			ProfileID: s.ProfileID,
			Name:      s.Name,
			Stats:     s.Stats,
		}
		if s.Err != nil {
			rows[i].Error = "failed to load mastery"
		}
	}
	respondJSON(w, http.StatusOK, rows)
}
