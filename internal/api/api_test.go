package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/factdojo/backend/internal/api"
	"github.com/factdojo/backend/internal/domain/scoring"
	"github.com/factdojo/backend/internal/grader"
	"github.com/factdojo/backend/internal/service"
	"github.com/factdojo/backend/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := store.NewSQLite(filepath.Join(t.TempDir(), "api.db"), logger)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	policy := scoring.DefaultPolicy()
	updater, err := scoring.NewUpdater(policy)
	if err != nil {
		t.Fatalf("NewUpdater: %v", err)
	}

	practice := service.NewPracticeService(db, updater, grader.NewArithmetic(policy), logger)
	dashboard := service.NewDashboardService(db, 2, logger)
	handler := api.NewHandler(practice, dashboard, logger)

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, handler)

	srv := httptest.NewServer(api.Logging(logger)(api.CORS(mux)))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func createProfile(t *testing.T, srv *httptest.Server, name string) api.ProfileResponse {
	t.Helper()
	var p api.ProfileResponse
	if status := do(t, srv, http.MethodPost, "/profiles", map[string]string{"name": name}, &p); status != http.StatusCreated {
		t.Fatalf("create profile: expected 201, got %d", status)
	}
	return p
}

func TestProfiles(t *testing.T) {
	srv := newTestServer(t)
	p := createProfile(t, srv, "Ada")

	if p.ID == "" || p.Name != "Ada" {
		t.Errorf("unexpected profile %+v", p)
	}

	if status := do(t, srv, http.MethodPost, "/profiles", map[string]string{"name": " "}, nil); status != http.StatusBadRequest {
		t.Errorf("empty name: expected 400, got %d", status)
	}

	var list []api.ProfileResponse
	if status := do(t, srv, http.MethodGet, "/profiles", nil, &list); status != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", status)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 profile, got %d", len(list))
	}

	if status := do(t, srv, http.MethodGet, "/profiles/missing", nil, nil); status != http.StatusNotFound {
		t.Errorf("missing profile: expected 404, got %d", status)
	}

	if status := do(t, srv, http.MethodDelete, "/profiles/"+p.ID, nil, nil); status != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", status)
	}
	if status := do(t, srv, http.MethodGet, "/profiles/"+p.ID, nil, nil); status != http.StatusNotFound {
		t.Errorf("after delete: expected 404, got %d", status)
	}
}

func TestSessionFlow(t *testing.T) {
	srv := newTestServer(t)
	p := createProfile(t, srv, "Ada")

	var session api.SessionResponse
	status := do(t, srv, http.MethodPost, "/profiles/"+p.ID+"/sessions", map[string]any{
		"facts":        []string{"8x7", "3x4"},
		"missing_slot": "NONE",
	}, &session)
	if status != http.StatusCreated {
		t.Fatalf("create session: expected 201, got %d", status)
	}
	if len(session.Problems) != 2 {
		t.Fatalf("expected 2 problems, got %d", len(session.Problems))
	}

	first := session.Problems[0]
	if first.Top != nil || first.Left == nil || first.Right == nil {
		t.Fatalf("expected hidden product only, got %+v", first)
	}
	if first.Type != "REPAIR" {
		t.Errorf("expected REPAIR, got %s", first.Type)
	}

	answer := *first.Left * *first.Right
	var result api.SubmitAnswerResponse
	status = do(t, srv, http.MethodPost, "/sessions/"+session.ID+"/answers", map[string]any{
		"position":         0,
		"answer":           answer,
		"response_time_ms": 900,
	}, &result)
	if status != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d", status)
	}
	if result.Outcome != "CORRECT" || result.NewLevel != "LEARNING" || !result.Flipped {
		t.Errorf("unexpected result %+v", result)
	}
	if result.Expected != answer {
		t.Errorf("expected %d, got %d", answer, result.Expected)
	}

	status = do(t, srv, http.MethodPost, "/sessions/"+session.ID+"/answers", map[string]any{
		"position": 0, "answer": answer, "response_time_ms": 900,
	}, nil)
	if status != http.StatusConflict {
		t.Errorf("duplicate answer: expected 409, got %d", status)
	}

	status = do(t, srv, http.MethodPost, "/sessions/"+session.ID+"/answers", map[string]any{
		"position": 9, "answer": 1, "response_time_ms": 900,
	}, nil)
	if status != http.StatusNotFound {
		t.Errorf("bad position: expected 404, got %d", status)
	}

	status = do(t, srv, http.MethodPost, "/sessions/"+session.ID+"/answers", map[string]any{
		"position": 1, "answer": 1, "response_time_ms": -5,
	}, nil)
	if status != http.StatusBadRequest {
		t.Errorf("negative time: expected 400, got %d", status)
	}

	var report api.CompleteSessionResponse
	if status := do(t, srv, http.MethodPost, "/sessions/"+session.ID+"/complete", nil, &report); status != http.StatusOK {
		t.Fatalf("complete: expected 200, got %d", status)
	}
	if report.Answered != 1 || report.Unanswered != 1 || report.Correct != 1 {
		t.Errorf("unexpected report %+v", report)
	}
	if len(report.Items) != 1 || report.Items[0].Position != 0 || report.Items[0].Fact != "7x8" {
		t.Errorf("unexpected report items %+v", report.Items)
	}
	if len(report.Promotions) != 1 {
		t.Errorf("expected one promotion, got %d", len(report.Promotions))
	}

	status = do(t, srv, http.MethodPost, "/sessions/"+session.ID+"/answers", map[string]any{
		"position": 1, "answer": 12, "response_time_ms": 900,
	}, nil)
	if status != http.StatusConflict {
		t.Errorf("answer after complete: expected 409, got %d", status)
	}

	var fetched api.SessionResponse
	if status := do(t, srv, http.MethodGet, "/sessions/"+session.ID, nil, &fetched); status != http.StatusOK {
		t.Fatalf("get session: expected 200, got %d", status)
	}
	if fetched.CompletedAt == nil {
		t.Error("expected completed_at to be set")
	}
}

func TestCreateSession_Validation(t *testing.T) {
	srv := newTestServer(t)
	p := createProfile(t, srv, "Ada")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"negative size", map[string]any{"session_size": -1}},
		{"unknown slot", map[string]any{"missing_slot": "SIDEWAYS"}},
		{"range too wide", map[string]any{"range": map[string]int{"min": 0, "max": 12}}},
		{"bad fact key", map[string]any{"facts": []string{"7by2"}}},
		{"fact out of table", map[string]any{"facts": []string{"11x2"}}},
	}

	for _, tt := range tests {
		if status := do(t, srv, http.MethodPost, "/profiles/"+p.ID+"/sessions", tt.body, nil); status != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.name, status)
		}
	}

	if status := do(t, srv, http.MethodPost, "/profiles/missing/sessions", map[string]any{}, nil); status != http.StatusNotFound {
		t.Errorf("unknown profile: expected 404, got %d", status)
	}

	var session api.SessionResponse
	if status := do(t, srv, http.MethodPost, "/profiles/"+p.ID+"/sessions", map[string]any{}, &session); status != http.StatusCreated {
		t.Fatalf("default session: expected 201, got %d", status)
	}
	if len(session.Problems) != 10 {
		t.Errorf("expected default 10 problems, got %d", len(session.Problems))
	}
	for _, prob := range session.Problems {
		if prob.Type != "MAINTENANCE" {
			t.Errorf("empty map: expected MAINTENANCE only, got %s", prob.Type)
		}
	}

	var unfocused api.SessionResponse
	status := do(t, srv, http.MethodPost, "/profiles/"+p.ID+"/sessions", map[string]any{
		"session_size":  5,
		"focus_factors": []int{42, 0},
	}, &unfocused)
	if status != http.StatusCreated {
		t.Fatalf("out-of-range focus: expected 201, got %d", status)
	}
	if len(unfocused.Problems) != 5 {
		t.Errorf("out-of-range focus: expected 5 problems, got %d", len(unfocused.Problems))
	}
	for _, prob := range unfocused.Problems {
		if prob.Type != "MAINTENANCE" {
			t.Errorf("out-of-range focus should be ignored, got %s", prob.Type)
		}
	}
}

func TestMasteryEndpoints(t *testing.T) {
	srv := newTestServer(t)
	p := createProfile(t, srv, "Ada")
	base := "/profiles/" + p.ID

	var imported api.ImportResult
	status := do(t, srv, http.MethodPost, base+"/import", map[string]any{
		"mastery": map[string]float64{"7x2": 0.9, "3x4": 0.5, "nope": 0.2},
	}, &imported)
	if status != http.StatusOK {
		t.Fatalf("import: expected 200, got %d", status)
	}
	if imported.Imported != 2 || len(imported.Skipped) != 1 {
		t.Errorf("unexpected import result %+v", imported)
	}

	var f api.FactResponse
	if status := do(t, srv, http.MethodGet, base+"/mastery/7x2", nil, &f); status != http.StatusOK {
		t.Fatalf("get fact: expected 200, got %d", status)
	}
	if f.Fact != "2x7" || f.Product != 14 || f.Level.String() != "MASTERED" {
		t.Errorf("unexpected fact %+v", f)
	}
	if status := do(t, srv, http.MethodGet, base+"/mastery/7-2", nil, nil); status != http.StatusBadRequest {
		t.Errorf("bad key: expected 400, got %d", status)
	}

	var overview api.MasteryResponse
	if status := do(t, srv, http.MethodGet, base+"/mastery", nil, &overview); status != http.StatusOK {
		t.Fatalf("mastery: expected 200, got %d", status)
	}
	if overview.Stats.Total != 36 || overview.Stats.Mastered != 1 || overview.Stats.Learning != 1 {
		t.Errorf("unexpected stats %+v", overview.Stats)
	}
	if len(overview.Known) != 2 {
		t.Errorf("expected 2 known facts, got %d", len(overview.Known))
	}
	if len(overview.Heatmap) != 64 {
		t.Errorf("expected an 8x8 heatmap, got %d cells", len(overview.Heatmap))
	}

	if status := do(t, srv, http.MethodGet, base+"/mastery?min=1&max=10", nil, &overview); status != http.StatusOK {
		t.Fatalf("table range: expected 200, got %d", status)
	}
	if overview.Stats.Total != 55 {
		t.Errorf("expected 55 facts in 1..10, got %d", overview.Stats.Total)
	}
	if status := do(t, srv, http.MethodGet, base+"/mastery?min=0", nil, nil); status != http.StatusBadRequest {
		t.Errorf("min=0: expected 400, got %d", status)
	}

	var exported api.ExportData
	if status := do(t, srv, http.MethodGet, base+"/export", nil, &exported); status != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", status)
	}
	if exported.ProfileName != "Ada" || exported.Mastery["2x7"] != 0.9 {
		t.Errorf("unexpected export %+v", exported)
	}

	if status := do(t, srv, http.MethodPost, base+"/mastery/reset", map[string]bool{"confirm": false}, nil); status != http.StatusBadRequest {
		t.Errorf("unconfirmed reset: expected 400, got %d", status)
	}
	if status := do(t, srv, http.MethodPost, base+"/mastery/reset", map[string]bool{"confirm": true}, nil); status != http.StatusNoContent {
		t.Errorf("reset: expected 204, got %d", status)
	}
	if status := do(t, srv, http.MethodGet, base+"/mastery/2x7", nil, &f); status != http.StatusOK || f.Score != 0 {
		t.Errorf("after reset: expected score 0, got %d %+v", status, f)
	}

	// An export file imports back as-is.
	if status := do(t, srv, http.MethodPost, base+"/import", exported, &imported); status != http.StatusOK {
		t.Fatalf("re-import: expected 200, got %d", status)
	}
	if imported.Imported != 2 {
		t.Errorf("expected 2 re-imported facts, got %d", imported.Imported)
	}
}

func TestDashboard(t *testing.T) {
	srv := newTestServer(t)
	createProfile(t, srv, "Ada")
	createProfile(t, srv, "Bob")

	var rows []api.DashboardRow
	if status := do(t, srv, http.MethodGet, "/dashboard", nil, &rows); status != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d", status)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Stats.Gaps != 36 {
			t.Errorf("%s: expected 36 gaps, got %d", row.Name, row.Stats.Gaps)
		}
	}

	if status := do(t, srv, http.MethodGet, "/dashboard?min=9&max=2", nil, nil); status != http.StatusBadRequest {
		t.Errorf("inverted range: expected 400, got %d", status)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/profiles", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS header")
	}
}
