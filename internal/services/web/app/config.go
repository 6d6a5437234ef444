package app

import (
	module "github.com/direwen/dilemma-web/internal/services/web/module"
	"github.com/direwen/dilemma-web/internal/services/web/state"
)

// Config captures the composition inputs for the web root handler.
type Config struct {
	Modules []module.Module
	// Experiments builds request-scoped experiment state for the route guard.
	Experiments state.Factory
}
