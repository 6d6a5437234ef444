// Package dashboard serves the public aggregate results page.
package dashboard

import (
	"net/http"

	module "github.com/direwen/dilemma-web/internal/services/web/module"
	"github.com/direwen/dilemma-web/internal/services/web/routepath"
	"github.com/direwen/dilemma-web/internal/services/web/state"
)

// Module provides dashboard routes.
type Module struct {
	experiments state.Factory
}

// New returns a dashboard module. Statistics are read through the factory's
// survey API, which is expected to carry the dashboard cache.
func New(experiments state.Factory) Module {
	return Module{experiments: experiments}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "dashboard" }

// Mount wires dashboard route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{experiments: m.experiments})
	return module.Mount{Prefix: routepath.DashboardPrefix, Handler: mux}, nil
}
