// Package webctx provides shared web request context helpers.
package webctx

import (
	"context"
	"log"
	"net/http"

	"github.com/direwen/dilemma-web/internal/services/web/state"
)

type experimentContextKey struct{}

// WithExperiment stores request experiment state in context.
func WithExperiment(ctx context.Context, exp *state.Experiment) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, experimentContextKey{}, exp)
}

// ExperimentFromContext returns experiment state stored in context.
func ExperimentFromContext(ctx context.Context) (*state.Experiment, bool) {
	if ctx == nil {
		return nil, false
	}
	exp, ok := ctx.Value(experimentContextKey{}).(*state.Experiment)
	return exp, ok && exp != nil
}

// Experiment returns the request experiment, loading it through factory
// when no earlier middleware attached one.
func Experiment(w http.ResponseWriter, r *http.Request, factory state.Factory) *state.Experiment {
	if r != nil {
		if exp, ok := ExperimentFromContext(r.Context()); ok {
			return exp
		}
	}
	exp, err := factory.ForRequest(w, r)
	if err != nil {
		log.Printf("web: load experiment state: %v", err)
	}
	return exp
}
