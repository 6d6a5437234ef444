package dashboard

import (
	"log"
	"net/http"

	webi18n "github.com/direwen/dilemma-web/internal/services/web/platform/i18n"
	"github.com/direwen/dilemma-web/internal/services/web/platform/pagerender"
	"github.com/direwen/dilemma-web/internal/services/web/platform/webctx"
	"github.com/direwen/dilemma-web/internal/services/web/platform/weberror"
	"github.com/direwen/dilemma-web/internal/services/web/state"
	webtemplates "github.com/direwen/dilemma-web/internal/services/web/templates"
	"github.com/direwen/dilemma-web/internal/survey"
)

type handlers struct {
	experiments state.Factory
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	exp := webctx.Experiment(w, r, h.experiments)
	result := exp.GetDashboardData(r.Context())
	var stats *survey.DashboardStats
	if result.OK() {
		stats = &result.Value
	} else {
		log.Printf("web: load dashboard: %v", result.Failure)
	}
	err := pagerender.WriteModulePage(w, r, func(loc webi18n.Localizer) pagerender.ModulePage {
		return pagerender.ModulePage{
			Title:    webi18n.Text(loc, "dashboard.title"),
			Fragment: webtemplates.DashboardPage(loc, stats),
			Notice:   result.Notice,
		}
	})
	if err != nil {
		weberror.WriteModuleError(w, r, err)
	}
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound)
}
