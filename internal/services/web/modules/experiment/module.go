// Package experiment serves the consent form, guide, scenario board and
// ranking submission.
package experiment

import (
	"net/http"

	module "github.com/direwen/dilemma-web/internal/services/web/module"
	"github.com/direwen/dilemma-web/internal/services/web/routepath"
	"github.com/direwen/dilemma-web/internal/services/web/state"
)

// DefaultApproachDistance is how many cells ahead of the ego the approach
// path is drawn.
const DefaultApproachDistance = 1

// Config configures the experiment module.
type Config struct {
	Experiments state.Factory
	// ApproachDistance is the trident zone distance; non-positive uses the default.
	ApproachDistance int
}

// Module provides experiment routes.
type Module struct {
	cfg Config
}

// New returns an experiment module.
func New(cfg Config) Module {
	if cfg.ApproachDistance <= 0 {
		cfg.ApproachDistance = DefaultApproachDistance
	}
	return Module{cfg: cfg}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "experiment" }

// Healthy reports whether the module has a survey backend to talk to.
func (m Module) Healthy() bool {
	return m.cfg.Experiments.API != nil
}

// Mount wires experiment route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.cfg))
	return module.Mount{Prefix: routepath.ExperimentPrefix, Handler: mux}, nil
}
