// Package public serves the entry pages that need no experiment session.
package public

import (
	"net/http"

	module "github.com/direwen/dilemma-web/internal/services/web/module"
	"github.com/direwen/dilemma-web/internal/services/web/routepath"
)

// Module provides landing, login alias, and health routes.
type Module struct {
	healthy func() bool
}

// New returns a public module. healthy reports backend availability for the
// health route; nil always reports healthy.
func New(healthy func() bool) Module {
	return Module{healthy: healthy}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "public" }

// Mount wires public routes under the root prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.healthy))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
