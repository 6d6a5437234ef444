package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	websqlite "github.com/direwen/dilemma-web/internal/services/web/storage/sqlite"
	"github.com/direwen/dilemma-web/internal/survey"
)

type fakeSurveyServer struct {
	*httptest.Server
	dashboardHits atomic.Int32
	submitted     atomic.Int32
}

func newFakeSurveyServer(t *testing.T) *fakeSurveyServer {
	t.Helper()
	f := &fakeSurveyServer{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/sessions" && r.URL.Path != "/api/v1/dashboard" && r.Header.Get("Authorization") != "Bearer tok-e2e" {
			writeEnvelope(w, http.StatusUnauthorized, false, nil)
			return
		}
		switch r.Method + " " + r.URL.Path {
		case "POST /api/v1/sessions":
			writeEnvelope(w, http.StatusCreated, true, survey.CreateSessionOutput{Token: "tok-e2e"})
		case "GET /api/v1/scenarios/next":
			writeEnvelope(w, http.StatusOK, true, survey.Scenario{
				ID:        "sc-1",
				Narrative: "A cyclist swerves into your lane.",
				Width:     2,
				Height:    1,
				GridData:  [][]int{{3, 3}},
				Entities: []survey.Entity{
					{ID: "ego", Type: "vehicle", Emoji: "🚗", Col: 1, Metadata: survey.EntityMeta{IsEgo: true, Orientation: "W"}},
				},
			})
		case "POST /api/v1/scenarios/sc-1/responses":
			f.submitted.Add(1)
			writeEnvelope(w, http.StatusCreated, true, survey.SubmitResponseOutput{
				Response:   survey.RecordedResponse{ID: "resp-1", ScenarioID: "sc-1"},
				IsComplete: true,
			})
		case "GET /api/v1/dashboard":
			f.dashboardHits.Add(1)
			writeEnvelope(w, http.StatusOK, true, survey.DashboardStats{CompletedSessions: 7})
		default:
			writeEnvelope(w, http.StatusNotFound, false, nil)
		}
	}))
	t.Cleanup(f.Close)
	return f
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": success, "message": "ok", "data": data})
}

func openStore(t *testing.T) *websqlite.Store {
	t.Helper()
	store, err := websqlite.Open(filepath.Join(t.TempDir(), "web.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestNewHandlerRequiresAPIBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := NewHandler(Config{}, nil); err == nil {
		t.Fatalf("expected error for missing api base url")
	}
}

func TestNewServerRequiresHTTPAddr(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(context.Background(), Config{APIBaseURL: "http://localhost:8080"}); err == nil {
		t.Fatalf("expected error for missing http address")
	}
}

func TestNewServerOpensStore(t *testing.T) {
	t.Parallel()

	srv, err := NewServer(context.Background(), Config{
		HTTPAddr:   "127.0.0.1:0",
		APIBaseURL: "http://localhost:8080",
		DBPath:     filepath.Join(t.TempDir(), "nested", "web.db"),
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	defer srv.Close()
	if srv.store == nil {
		t.Fatalf("expected store to be opened")
	}
	if got := srv.Addr(); got != "127.0.0.1:0" {
		t.Fatalf("Addr() = %q, want %q", got, "127.0.0.1:0")
	}
}

func TestListenAndServeStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv, err := NewServer(context.Background(), Config{HTTPAddr: "127.0.0.1:0", APIBaseURL: "http://localhost:8080"})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	defer srv.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := srv.ListenAndServe(ctx); err != nil {
		t.Fatalf("ListenAndServe() error = %v", err)
	}
}

func TestHandlerServesHealthStaticAndRequestID(t *testing.T) {
	t.Parallel()

	api := newFakeSurveyServer(t)
	h, err := NewHandler(Config{APIBaseURL: api.URL, HTTPClient: api.Client()}, nil)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	health := serve(h, httptest.NewRequest(http.MethodGet, "/up", nil))
	if health.Code != http.StatusOK {
		t.Fatalf("health status = %d, want %d", health.Code, http.StatusOK)
	}
	if !strings.Contains(health.Body.String(), `"status":"ok"`) {
		t.Fatalf("health body = %q", health.Body.String())
	}
	if health.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}

	css := serve(h, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	if css.Code != http.StatusOK {
		t.Fatalf("static status = %d, want %d", css.Code, http.StatusOK)
	}
	if !strings.Contains(css.Body.String(), ".board") {
		t.Fatalf("static body missing board styles")
	}

	missing := serve(h, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if missing.Code != http.StatusNotFound {
		t.Fatalf("missing status = %d, want %d", missing.Code, http.StatusNotFound)
	}
}

func TestHandlerParticipantFlow(t *testing.T) {
	t.Parallel()

	api := newFakeSurveyServer(t)
	h, err := NewHandler(Config{APIBaseURL: api.URL, HTTPClient: api.Client()}, openStore(t))
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	guarded := serve(h, httptest.NewRequest(http.MethodGet, "/experiment", nil))
	if guarded.Code != http.StatusFound || guarded.Header().Get("Location") != "/" {
		t.Fatalf("guarded = %d %q, want redirect to /", guarded.Code, guarded.Header().Get("Location"))
	}

	form := url.Values{"age_range": {"1"}, "gender": {"2"}, "country": {"NZ"}, "driving_experience": {"3"}}
	consentReq := httptest.NewRequest(http.MethodPost, "/experiment/consent", strings.NewReader(form.Encode()))
	consentReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	consent := serve(h, consentReq)
	if consent.Code != http.StatusSeeOther || consent.Header().Get("Location") != "/experiment" {
		t.Fatalf("consent = %d %q, want redirect to /experiment", consent.Code, consent.Header().Get("Location"))
	}
	var session *http.Cookie
	for _, cookie := range consent.Result().Cookies() {
		if cookie.Name == "session_token" {
			session = cookie
		}
	}
	if session == nil || session.Value != "tok-e2e" {
		t.Fatalf("session cookie = %+v", session)
	}

	for range 2 {
		dashboard := serve(h, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
		if dashboard.Code != http.StatusOK {
			t.Fatalf("dashboard status = %d, want %d", dashboard.Code, http.StatusOK)
		}
	}
	if got := api.dashboardHits.Load(); got != 1 {
		t.Fatalf("dashboard hits = %d, want 1 while cached", got)
	}

	pageReq := httptest.NewRequest(http.MethodGet, "/experiment", nil)
	pageReq.AddCookie(session)
	page := serve(h, pageReq)
	if page.Code != http.StatusOK {
		t.Fatalf("experiment status = %d, want %d", page.Code, http.StatusOK)
	}
	if !strings.Contains(page.Body.String(), "A cyclist swerves into your lane.") {
		t.Fatalf("experiment body missing narrative")
	}

	ranking := url.Values{"scenario_id": {"sc-1"}, "rank": {"maintain", "swerve_left", "swerve_right"}}
	submitReq := httptest.NewRequest(http.MethodPost, "/experiment/responses", strings.NewReader(ranking.Encode()))
	submitReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	submitReq.Header.Set("Origin", "http://example.com")
	submitReq.AddCookie(session)
	submit := serve(h, submitReq)
	if submit.Code != http.StatusSeeOther || submit.Header().Get("Location") != "/feedback" {
		t.Fatalf("submit = %d %q, want redirect to /feedback", submit.Code, submit.Header().Get("Location"))
	}
	if got := api.submitted.Load(); got != 1 {
		t.Fatalf("submitted = %d, want 1", got)
	}

	serve(h, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if got := api.dashboardHits.Load(); got != 2 {
		t.Fatalf("dashboard hits = %d, want 2 after completion invalidates the cache", got)
	}
}
