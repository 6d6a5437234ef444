package dashboard

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/direwen/dilemma-web/internal/services/web/platform/errors"
	"github.com/direwen/dilemma-web/internal/services/web/routepath"
	"github.com/direwen/dilemma-web/internal/services/web/state"
	"github.com/direwen/dilemma-web/internal/survey"
)

func serveDashboard(t *testing.T, api *fakeAPI, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	mount, err := New(state.Factory{API: api}).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != routepath.DashboardPrefix {
		t.Fatalf("Prefix = %q, want %q", mount.Prefix, routepath.DashboardPrefix)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, req)
	return rr
}

func TestModuleID(t *testing.T) {
	t.Parallel()

	if got := New(state.Factory{}).ID(); got != "dashboard" {
		t.Fatalf("ID() = %q, want %q", got, "dashboard")
	}
}

func TestDashboardRendersStatsWithSuccessNotice(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{stats: survey.DashboardStats{
		CompletedSessions:    128,
		CountriesRepresented: 14,
		LeastHarmfulOutcome:  survey.OutcomeDistribution{MaintainPct: 42.5, SwerveLeftPct: 30, SwerveRightPct: 27.5},
		ArchetypeDistribution: []survey.ArchetypeCount{
			{Archetype: "The Guardian", Count: 40},
		},
	}}
	rr := serveDashboard(t, api, httptest.NewRequest(http.MethodGet, routepath.Dashboard, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %q, want %q", got, "text/html; charset=utf-8")
	}
	body := rr.Body.String()
	for _, want := range []string{"128", "14", "42.5%", "27.5%", "The Guardian", "Dashboard stats fetched successfully"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
	if strings.Contains(body, "Results are not available right now.") {
		t.Fatalf("unexpected unavailable state")
	}
}

func TestDashboardFailureRendersUnavailableWithErrorNotice(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{statsErr: apperrors.E(apperrors.KindUnavailable, "down")}
	rr := serveDashboard(t, api, httptest.NewRequest(http.MethodGet, routepath.DashboardPrefix, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Results are not available right now.") || !strings.Contains(body, "Failed to get dashboard stats") {
		t.Fatalf("body = %q, want unavailable state with error notice", body)
	}
}

func TestDashboardWithoutAPIRendersUnavailable(t *testing.T) {
	t.Parallel()

	mount, err := New(state.Factory{}).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.Dashboard, nil))
	if !strings.Contains(rr.Body.String(), "Results are not available right now.") {
		t.Fatalf("body = %q, want unavailable state", rr.Body.String())
	}
}

func TestDashboardHTMXReturnsFragment(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, routepath.Dashboard, nil)
	req.Header.Set("HX-Request", "true")
	rr := serveDashboard(t, &fakeAPI{}, req)

	body := rr.Body.String()
	if strings.Contains(strings.ToLower(body), "<!doctype html") {
		t.Fatalf("expected HTMX fragment without document wrapper")
	}
	if !strings.Contains(body, "What participants chose") {
		t.Fatalf("body = %q, want dashboard fragment", body)
	}
}
