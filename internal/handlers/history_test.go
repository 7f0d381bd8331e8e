package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"transistor_bench/internal/models"
	"transistor_bench/internal/service"
)

func getWithAuth(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer valid")
	r.ServeHTTP(w, req)
	return w
}

func TestGetHistory_ReturnsRuns(t *testing.T) {
	hist := &mockHistory{resp: []models.SimulationRun{
		{ID: "r1"}, {ID: "r2"},
	}}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 7},
		History:       hist,
	}
	r := newTestRouter(s)

	w := getWithAuth(r, "/api/v1/history")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Count int                    `json:"count"`
		Runs  []models.SimulationRun `json:"runs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 2 || len(resp.Runs) != 2 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestGetHistory_ParsesTimeFormats(t *testing.T) {
	hist := &mockHistory{}
	s := &service.Service{
		Authorization: &mockAuth{parseID: 7},
		History:       hist,
	}
	r := newTestRouter(s)

	w := getWithAuth(r, "/api/v1/history?from=2026-08-01&to=2026-08-31")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	wantFrom := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	if !hist.last.From.Equal(wantFrom) {
		t.Fatalf("from = %v, want %v", hist.last.From, wantFrom)
	}
	// Date-only 'to' becomes end-of-day inclusive.
	wantTo := time.Date(2026, 8, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	if !hist.last.To.Equal(wantTo) {
		t.Fatalf("to = %v, want %v", hist.last.To, wantTo)
	}

	w = getWithAuth(r, "/api/v1/history?from=2026-08-23T10:00:00Z")
	if w.Code != http.StatusOK {
		t.Fatalf("RFC3339 from rejected: %d %s", w.Code, w.Body.String())
	}
	if hist.last.From.Hour() != 10 {
		t.Fatalf("RFC3339 from parsed wrong: %v", hist.last.From)
	}
}

func TestGetHistory_RejectsBadInput(t *testing.T) {
	s := &service.Service{
		Authorization: &mockAuth{parseID: 7},
		History:       &mockHistory{},
	}
	r := newTestRouter(s)

	if w := getWithAuth(r, "/api/v1/history?from=bogus"); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad from, got %d", w.Code)
	}
	if w := getWithAuth(r, "/api/v1/history?from=2026-08-31&to=2026-08-01"); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", w.Code)
	}
}
