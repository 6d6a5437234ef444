package modules

import (
	module "github.com/direwen/dilemma-web/internal/services/web/module"
	"github.com/direwen/dilemma-web/internal/services/web/modules/dashboard"
	"github.com/direwen/dilemma-web/internal/services/web/modules/experiment"
	"github.com/direwen/dilemma-web/internal/services/web/modules/feedback"
	"github.com/direwen/dilemma-web/internal/services/web/modules/public"
)

// DefaultModules returns every web module in mount order. The public health
// route reports the health of the modules that follow it.
func DefaultModules(deps Dependencies) []Module {
	backed := []Module{
		experiment.New(experiment.Config{
			Experiments:      deps.Experiments,
			ApproachDistance: deps.ApproachDistance,
		}),
		feedback.New(deps.Experiments),
		dashboard.New(deps.Experiments),
	}
	return append([]Module{public.New(healthCheck(backed))}, backed...)
}

func healthCheck(mods []Module) func() bool {
	return func() bool {
		for _, m := range mods {
			reporter, ok := m.(module.HealthReporter)
			if ok && !reporter.Healthy() {
				return false
			}
		}
		return true
	}
}
