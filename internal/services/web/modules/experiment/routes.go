package experiment

import (
	"net/http"

	"github.com/direwen/dilemma-web/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Experiment, h.handleScenario)
	mux.HandleFunc(http.MethodGet+" "+routepath.ExperimentPrefix+"{$}", h.handleScenario)
	mux.HandleFunc(http.MethodGet+" "+routepath.ExperimentConsent, h.handleConsent)
	mux.HandleFunc(http.MethodPost+" "+routepath.ExperimentConsent, h.handleConsentSubmit)
	mux.HandleFunc(http.MethodGet+" "+routepath.ExperimentGuide, h.handleGuide)
	mux.HandleFunc(http.MethodPost+" "+routepath.ExperimentResponses, h.handleResponseSubmit)
	mux.HandleFunc(http.MethodGet+" "+routepath.ExperimentPrefix+"{rest...}", h.handleNotFound)
}
