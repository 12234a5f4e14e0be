package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/factdojo/backend/internal/domain/fact"
	"github.com/factdojo/backend/internal/domain/mastery"
	practicesession "github.com/factdojo/backend/internal/domain/practice_session"
	"github.com/factdojo/backend/internal/domain/scoring"
	"github.com/factdojo/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateSessionRequest struct {
	SessionSize  *int        `json:"session_size,omitempty" example:"10"`
	FocusFactors []int       `json:"focus_factors,omitempty"`
	MissingSlot  string      `json:"missing_slot,omitempty" enums:"NONE,RANDOM,ALWAYS_PRODUCT,ALWAYS_FACTOR" example:"RANDOM"`
	Range        *fact.Range `json:"range,omitempty"`
	Facts        []string    `json:"facts,omitempty"`
}

func (r *CreateSessionRequest) Validate() error {
	if r.SessionSize != nil && *r.SessionSize < 0 {
		return errors.New("session_size cannot be negative")
	}
	if !practicesession.SlotPolicy(r.MissingSlot).IsValid() {
		return fmt.Errorf("invalid missing_slot %q", r.MissingSlot)
	}
	if r.Range != nil {
		if !r.Range.Valid() || !fact.TableRange.Contains(r.Range.Min) || !fact.TableRange.Contains(r.Range.Max) {
			return fmt.Errorf("range must lie within %d..%d", fact.TableRange.Min, fact.TableRange.Max)
		}
	}
	for _, key := range r.Facts {
		f, err := fact.ParseKey(key)
		if err != nil {
			return err
		}
		if !fact.TableRange.ContainsFact(f) {
			return fmt.Errorf("fact %s is outside %d..%d", key, fact.TableRange.Min, fact.TableRange.Max)
		}
	}
	return nil
}

// ProblemResponse hides the missing slot; the hidden cell is null.
type ProblemResponse struct {
	Position int    `json:"position" example:"0"`
	Top      *int   `json:"top" example:"14"`
	Left     *int   `json:"left" example:"7"`
	Right    *int   `json:"right" example:"2"`
	Missing  string `json:"missing" enums:"none,top,left,right" example:"none"`
	Type     string `json:"type" enums:"REPAIR,REINFORCE,MAINTENANCE" example:"REPAIR"`
}

type SessionConfigResponse struct {
	SessionSize  int        `json:"session_size" example:"10"`
	FocusFactors []int      `json:"focus_factors"`
	MissingSlot  string     `json:"missing_slot" example:"NONE"`
	Range        fact.Range `json:"range"`
}

type SessionResponse struct {
	ID          string                `json:"id" example:"9a8b7c6d5e4f40312a2b3c4d5e6f7a8b"`
	ProfileID   string                `json:"profile_id" example:"3f2b8c1d9e4a4b7c8d6e5f4a3b2c1d0e"`
	Config      SessionConfigResponse `json:"config"`
	Problems    []ProblemResponse     `json:"problems"`
	CreatedAt   string                `json:"created_at" example:"2026-01-02T15:04:05Z"`
	CompletedAt *string               `json:"completed_at,omitempty"`
}

type SubmitAnswerRequest struct {
	Position       int    `json:"position" example:"0"`
	Answer         *int   `json:"answer" example:"14"`
	Outcome        string `json:"outcome,omitempty" enums:"CORRECT,WRONG,SLOW"`
	ResponseTimeMs int64  `json:"response_time_ms" example:"1800"`
}

func (r *SubmitAnswerRequest) Validate() error {
	if r.Position < 0 {
		return errors.New("position cannot be negative")
	}
	if r.ResponseTimeMs < 0 {
		return errors.New("response_time_ms cannot be negative")
	}
	if r.Outcome != "" {
		var o scoring.Outcome
		if err := o.UnmarshalText([]byte(r.Outcome)); err != nil {
			return err
		}
	}
	return nil
}

type ResultResponse struct {
	Fact           string  `json:"fact" example:"2x7"`
	Outcome        string  `json:"outcome" example:"CORRECT"`
	ResponseTimeMs int64   `json:"response_time_ms" example:"1800"`
	OldScore       float64 `json:"old_score" example:"0.75"`
	NewScore       float64 `json:"new_score" example:"0.825"`
	OldLevel       string  `json:"old_level" example:"LEARNING"`
	NewLevel       string  `json:"new_level" example:"MASTERED"`
	Flipped        bool    `json:"flipped" example:"true"`
}

type SubmitAnswerResponse struct {
	Position int `json:"position" example:"0"`
	ResultResponse
	Expected int `json:"expected" example:"14"`
}

type ReportItemResponse struct {
	Position int `json:"position" example:"0"`
	ResultResponse
}

type CompleteSessionResponse struct {
	SessionID   string               `json:"session_id"`
	ProfileID   string               `json:"profile_id"`
	Answered    int                  `json:"answered" example:"9"`
	Unanswered  int                  `json:"unanswered" example:"1"`
	Correct     int                  `json:"correct" example:"6"`
	Slow        int                  `json:"slow" example:"2"`
	Wrong       int                  `json:"wrong" example:"1"`
	Accuracy    float64              `json:"accuracy" example:"0.89"`
	Items       []ReportItemResponse `json:"items"`
	Promotions  []ResultResponse     `json:"promotions"`
	Regressions []ResultResponse     `json:"regressions"`
	Stats       mastery.Stats        `json:"stats"`
}

func toSessionResponse(s *practicesession.PracticeSession) SessionResponse {
	problems := make([]ProblemResponse, len(s.Problems))
	for i, p := range s.Problems {
		top, left, right := p.Triad()
		pr := ProblemResponse{
			Position: i,
			Top:      &top,
			Left:     &left,
			Right:    &right,
			Missing:  string(p.Missing),
			Type:     string(p.Type),
		}
		switch p.Missing {
		case practicesession.MissingNone, practicesession.MissingProduct:
			pr.Top = nil
		case practicesession.MissingLeft:
			pr.Left = nil
		case practicesession.MissingRight:
			pr.Right = nil
		}
		problems[i] = pr
	}

	focus := s.Config.FocusFactors
	if focus == nil {
		focus = []int{}
	}

	resp := SessionResponse{
		ID:        s.ID,
		ProfileID: s.ProfileID,
		Config: SessionConfigResponse{
			SessionSize:  s.Config.SessionSize,
			FocusFactors: focus,
			MissingSlot:  string(s.Config.MissingSlotPolicy),
			Range:        s.Config.Range,
		},
		Problems:  problems,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
	if s.CompletedAt != nil {
		completed := s.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completed
	}
	return resp
}

func toResultResponse(r scoring.Result) ResultResponse {
	return ResultResponse{
		Fact:           r.Fact.Key(),
		Outcome:        r.Outcome.String(),
		ResponseTimeMs: r.ResponseTime.Milliseconds(),
		OldScore:       r.OldScore,
		NewScore:       r.NewScore,
		OldLevel:       r.OldLevel.String(),
		NewLevel:       r.NewLevel.String(),
		Flipped:        r.Flipped(),
	}
}

func toResultResponses(results []scoring.Result) []ResultResponse {
	out := make([]ResultResponse, len(results))
	for i, r := range results {
		out[i] = toResultResponse(r)
	}
	return out
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createSession plans a new session for the profile.
// @Summary      Start a session
// @Description  Plans a session from the profile's mastery map: gaps and focus tables first, LEARNING facts next, random practice last. With "facts" set, exactly those facts are drilled.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        profileID  path      string                true  "Profile ID"
// @Param        body       body      CreateSessionRequest  true  "Session options"
// @Success      201        {object}  SessionResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Failure      500        {object}  map[string]string
// @Router       /profiles/{profileID}/sessions [post]
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	config := practicesession.DefaultConfig()
	config.SessionSize = h.practice.SessionSize()
	if req.SessionSize != nil {
		config.SessionSize = *req.SessionSize
	}
	config.FocusFactors = req.FocusFactors
	if req.MissingSlot != "" {
		config.MissingSlotPolicy = practicesession.SlotPolicy(req.MissingSlot)
	}
	if req.Range != nil {
		config.Range = *req.Range
	}

	var facts []fact.Fact
	for _, key := range req.Facts {
		f, _ := fact.ParseKey(key)
		facts = append(facts, f)
	}

	session, err := h.practice.StartSession(r.Context(), r.PathValue("profileID"), service.SessionRequest{
		Config: config,
		Facts:  facts,
	})
	if h.handleStoreError(w, err, "profile") {
		return
	}

	respondJSON(w, http.StatusCreated, toSessionResponse(session))
}

// getSession returns a planned session.
// @Summary      Get a session
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  map[string]string
// @Router       /sessions/{sessionID} [get]
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.practice.GetSession(r.Context(), r.PathValue("sessionID"))
	if h.handleStoreError(w, err, "session") {
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(session))
}

// submitAnswer grades one answer and updates the fact's score.
// @Summary      Submit an answer
// @Description  The answer is checked against the hidden slot; answers at or above the fast threshold count as slow. A null answer is wrong. An explicit outcome skips grading.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string               true  "Session ID"
// @Param        body       body      SubmitAnswerRequest  true  "Answer"
// @Success      200        {object}  SubmitAnswerResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string  "already answered or session completed"
// @Router       /sessions/{sessionID}/answers [post]
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	answer := service.Answer{
		Position:     req.Position,
		Value:        req.Answer,
		ResponseTime: time.Duration(req.ResponseTimeMs) * time.Millisecond,
	}
	if req.Outcome != "" {
		var o scoring.Outcome
		_ = o.UnmarshalText([]byte(req.Outcome))
		answer.Outcome = &o
	}

	got, err := h.practice.SubmitAnswer(r.Context(), r.PathValue("sessionID"), answer)
	if h.handleStoreError(w, err, "session") {
		return
	}

	respondJSON(w, http.StatusOK, SubmitAnswerResponse{
		Position:       got.Position,
		ResultResponse: toResultResponse(got.Result),
		Expected:       got.Problem.Answer(),
	})
}

// completeSession closes the session and returns its Evolution Report.
// @Summary      Complete a session
// @Description  Closes the session and reports every answer in order with the level changes it caused. Completing again returns the same report.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  CompleteSessionResponse
// @Failure      404        {object}  map[string]string
// @Failure      500        {object}  map[string]string
// @Router       /sessions/{sessionID}/complete [post]
func (h *Handler) completeSession(w http.ResponseWriter, r *http.Request) {
	report, err := h.practice.CompleteSession(r.Context(), r.PathValue("sessionID"))
	if h.handleStoreError(w, err, "session") {
		return
	}

	items := make([]ReportItemResponse, len(report.Report.Items))
	for i, res := range report.Report.Items {
		items[i] = ReportItemResponse{
			Position:       report.Positions[i],
			ResultResponse: toResultResponse(res),
		}
	}

	respondJSON(w, http.StatusOK, CompleteSessionResponse{
		SessionID:   report.SessionID,
		ProfileID:   report.ProfileID,
		Answered:    report.Answered,
		Unanswered:  report.Unanswered,
		Correct:     report.Report.Correct,
		Slow:        report.Report.Slow,
		Wrong:       report.Report.Wrong,
		Accuracy:    report.Report.Accuracy(),
		Items:       items,
		Promotions:  toResultResponses(report.Report.Promotions),
		Regressions: toResultResponses(report.Report.Regressions),
		Stats:       report.Stats,
	})
}
