package feedback

import (
	"log"
	"net/http"

	"github.com/direwen/dilemma-web/internal/services/web/platform/httpx"
	webi18n "github.com/direwen/dilemma-web/internal/services/web/platform/i18n"
	"github.com/direwen/dilemma-web/internal/services/web/platform/pagerender"
	"github.com/direwen/dilemma-web/internal/services/web/platform/webctx"
	"github.com/direwen/dilemma-web/internal/services/web/platform/weberror"
	"github.com/direwen/dilemma-web/internal/services/web/routepath"
	"github.com/direwen/dilemma-web/internal/services/web/state"
	webtemplates "github.com/direwen/dilemma-web/internal/services/web/templates"
)

type handlers struct {
	experiments state.Factory
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	exp := webctx.Experiment(w, r, h.experiments)
	result := exp.GetFeedback(r.Context())
	if result.Unauthorized {
		httpx.WriteRedirect(w, r, routepath.AuthLogin)
		return
	}
	if result.Failure != nil {
		log.Printf("web: load feedback: %v", result.Failure)
	}
	err := pagerender.WriteModulePage(w, r, func(loc webi18n.Localizer) pagerender.ModulePage {
		return pagerender.ModulePage{
			Title:    webi18n.Text(loc, "feedback.title"),
			Fragment: webtemplates.FeedbackPage(loc, result.Value),
		}
	})
	if err != nil {
		weberror.WriteModuleError(w, r, err)
	}
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound)
}
