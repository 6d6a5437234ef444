package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/direwen/dilemma-web/internal/services/web/module"
	"github.com/direwen/dilemma-web/internal/services/web/platform/requestmeta"
)

func noContentHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestComposeRejectsDuplicateModulePrefix(t *testing.T) {
	t.Parallel()

	_, err := Compose(ComposeInput{
		Modules: []module.Module{
			stubModule{id: "one", mount: module.Mount{Prefix: "/one/", Handler: noContentHandler()}},
			stubModule{id: "two", mount: module.Mount{Prefix: "/one/", Handler: noContentHandler()}},
		},
	})
	if err == nil {
		t.Fatalf("expected duplicate prefix error")
	}
	if got := err.Error(); !strings.Contains(got, `"two"`) || !strings.Contains(got, `"one"`) {
		t.Fatalf("unexpected error = %q", got)
	}
}

func TestComposeRejectsInvalidModulePrefixes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
	}{
		{name: "missing leading slash", prefix: "experiment/"},
		{name: "missing trailing slash", prefix: "/experiment"},
		{name: "contains surrounding whitespace", prefix: "/experiment/ "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compose(ComposeInput{
				Modules: []module.Module{
					stubModule{id: "bad", mount: module.Mount{Prefix: tc.prefix, Handler: noContentHandler()}},
				},
			})
			if err == nil {
				t.Fatalf("expected invalid prefix error")
			}
			if got := err.Error(); !strings.Contains(got, "invalid prefix") || !strings.Contains(got, tc.prefix) || !strings.Contains(got, "bad") {
				t.Fatalf("unexpected error = %q", got)
			}
		})
	}
}

func TestComposeRejectsNilModule(t *testing.T) {
	t.Parallel()

	if _, err := Compose(ComposeInput{Modules: []module.Module{nil}}); err == nil {
		t.Fatalf("expected nil module error")
	}
}

func TestComposeRejectsMountFailureAndMissingHandler(t *testing.T) {
	t.Parallel()

	_, err := Compose(ComposeInput{
		Modules: []module.Module{stubModule{id: "broken", err: http.ErrNotSupported}},
	})
	if err == nil || !strings.Contains(err.Error(), "broken") {
		t.Fatalf("Compose() error = %v, want mount failure", err)
	}
	_, err = Compose(ComposeInput{
		Modules: []module.Module{stubModule{id: "empty", mount: module.Mount{Prefix: "/empty/"}}},
	})
	if err == nil || !strings.Contains(err.Error(), "handler is required") {
		t.Fatalf("Compose() error = %v, want handler error", err)
	}
}

func TestComposeMountsSlashlessAlias(t *testing.T) {
	t.Parallel()

	h, err := Compose(ComposeInput{
		Modules: []module.Module{
			stubModule{id: "public", mount: module.Mount{Prefix: "/", Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			})}},
			stubModule{id: "experiment", mount: module.Mount{Prefix: "/experiment/", Handler: noContentHandler()}},
		},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	for _, path := range []string{"/experiment", "/experiment/guide"} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusNoContent {
			t.Fatalf("%s status = %d, want %d", path, rr.Code, http.StatusNoContent)
		}
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("fallback status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestComposeAppliesGuardToEveryRoute(t *testing.T) {
	t.Parallel()

	var guarded []string
	h, err := Compose(ComposeInput{
		Modules: []module.Module{
			stubModule{id: "public", mount: module.Mount{Prefix: "/", Handler: noContentHandler()}},
		},
		Guard: func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				guarded = append(guarded, r.URL.Path)
				next.ServeHTTP(w, r)
			})
		},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/feedback", nil))
	if len(guarded) != 2 {
		t.Fatalf("guarded = %v, want two requests", guarded)
	}
}

func TestComposeRejectsCookieMutationWithoutSameOriginProof(t *testing.T) {
	t.Parallel()

	h := composeExperimentStub(t, requestmeta.SchemePolicy{})

	req := httptest.NewRequest(http.MethodPost, "/experiment/responses", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "tok-1"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
}

func TestComposeAllowsMutationWithoutSessionCookie(t *testing.T) {
	t.Parallel()

	h := composeExperimentStub(t, requestmeta.SchemePolicy{})

	req := httptest.NewRequest(http.MethodPost, "/experiment/consent", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}

func TestComposeCookieMutationOriginChecks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		target     string
		host       string
		origin     string
		referer    string
		forwarded  string
		policy     requestmeta.SchemePolicy
		wantStatus int
	}{
		{
			name:       "same origin header",
			target:     "https://survey.example.test/experiment/responses",
			host:       "survey.example.test",
			origin:     "https://survey.example.test",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "same origin referer",
			target:     "https://survey.example.test/experiment/responses",
			host:       "survey.example.test",
			referer:    "https://survey.example.test/experiment",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "scheme differs",
			target:     "https://survey.example.test/experiment/responses",
			host:       "survey.example.test",
			origin:     "http://survey.example.test",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "forwarded proto untrusted by default",
			target:     "http://survey.example.test/experiment/responses",
			host:       "survey.example.test",
			origin:     "https://survey.example.test",
			forwarded:  "https",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "forwarded proto trusted",
			target:     "http://survey.example.test/experiment/responses",
			host:       "survey.example.test",
			origin:     "https://survey.example.test",
			forwarded:  "https",
			policy:     requestmeta.SchemePolicy{TrustForwardedProto: true},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "origin omits non default port",
			target:     "https://survey.example.test:8443/experiment/responses",
			host:       "survey.example.test:8443",
			origin:     "https://survey.example.test",
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := composeExperimentStub(t, tc.policy)
			req := httptest.NewRequest(http.MethodPost, tc.target, nil)
			req.Host = tc.host
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.referer != "" {
				req.Header.Set("Referer", tc.referer)
			}
			if tc.forwarded != "" {
				req.Header.Set("X-Forwarded-Proto", tc.forwarded)
			}
			req.AddCookie(&http.Cookie{Name: "session_token", Value: "tok-1"})
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
		})
	}
}

func composeExperimentStub(t *testing.T, policy requestmeta.SchemePolicy) http.Handler {
	t.Helper()

	h, err := Compose(ComposeInput{
		RequestSchemePolicy: policy,
		Modules: []module.Module{
			stubModule{id: "experiment", mount: module.Mount{Prefix: "/experiment/", Handler: noContentHandler()}},
		},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	return h
}

type stubModule struct {
	id    string
	mount module.Mount
	err   error
}

func (s stubModule) ID() string {
	return s.id
}

func (s stubModule) Mount() (module.Mount, error) {
	return s.mount, s.err
}
