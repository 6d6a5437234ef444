package app

import "net/http"

// BuildRootHandler composes a root mux from the configured modules behind
// the session route guard.
func BuildRootHandler(cfg Config) (http.Handler, error) {
	return Compose(ComposeInput{
		Modules:             cfg.Modules,
		Guard:               Guard(cfg.Experiments),
		RequestSchemePolicy: cfg.Experiments.Policy,
	})
}
