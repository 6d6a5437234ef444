package feedback

import (
	"net/http"

	"github.com/direwen/dilemma-web/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Feedback, h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.FeedbackPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.FeedbackPrefix+"{rest...}", h.handleNotFound)
}
