package app

import (
	"log"
	"net/http"

	"github.com/direwen/dilemma-web/internal/services/web/platform/httpx"
	"github.com/direwen/dilemma-web/internal/services/web/platform/webctx"
	"github.com/direwen/dilemma-web/internal/services/web/routepath"
	"github.com/direwen/dilemma-web/internal/services/web/state"
)

// protectedPaths need a session token; visitors without one go to the landing page.
var protectedPaths = map[string]bool{
	routepath.Experiment:          true,
	routepath.ExperimentResponses: true,
	routepath.Feedback:            true,
}

// guestPaths are for visitors without a session; participants go to the experiment.
var guestPaths = map[string]bool{
	routepath.Root:              true,
	routepath.ExperimentConsent: true,
}

// Guard loads experiment state for routed pages, attaches it to the request
// context and redirects according to session and progress state.
func Guard(factory state.Factory) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := routepath.Normalize(r.URL.Path)
			if !guardedPath(path) {
				next.ServeHTTP(w, r)
				return
			}
			exp, err := factory.ForRequest(w, r)
			if err != nil {
				log.Printf("web: load experiment state path=%s: %v", path, err)
			}
			if target := redirectTarget(path, exp); target != "" && target != path {
				httpx.WriteRedirect(w, r, target)
				return
			}
			next.ServeHTTP(w, r.WithContext(webctx.WithExperiment(r.Context(), exp)))
		})
	}
}

func guardedPath(path string) bool {
	return protectedPaths[path] || guestPaths[path] || path == routepath.ExperimentGuide
}

func redirectTarget(path string, exp *state.Experiment) string {
	hasToken := exp != nil && exp.Token() != ""
	switch {
	case path == routepath.ExperimentGuide:
		if !hasToken {
			return routepath.ExperimentConsent
		}
		if !exp.CanAccessGuide() {
			return routepath.Experiment
		}
	case protectedPaths[path] && !hasToken:
		return routepath.Root
	case guestPaths[path] && hasToken:
		return routepath.Experiment
	}
	return ""
}
