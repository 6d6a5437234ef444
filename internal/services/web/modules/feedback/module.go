// Package feedback serves the participant's closing archetype page.
package feedback

import (
	"net/http"

	module "github.com/direwen/dilemma-web/internal/services/web/module"
	"github.com/direwen/dilemma-web/internal/services/web/routepath"
	"github.com/direwen/dilemma-web/internal/services/web/state"
)

// Module provides feedback routes.
type Module struct {
	experiments state.Factory
}

// New returns a feedback module.
func New(experiments state.Factory) Module {
	return Module{experiments: experiments}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "feedback" }

// Mount wires feedback route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{experiments: m.experiments})
	return module.Mount{Prefix: routepath.FeedbackPrefix, Handler: mux}, nil
}
