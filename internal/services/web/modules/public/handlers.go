package public

import (
	"net/http"

	"github.com/direwen/dilemma-web/internal/services/web/platform/httpx"
	webi18n "github.com/direwen/dilemma-web/internal/services/web/platform/i18n"
	"github.com/direwen/dilemma-web/internal/services/web/platform/pagerender"
	"github.com/direwen/dilemma-web/internal/services/web/platform/weberror"
	webtemplates "github.com/direwen/dilemma-web/internal/services/web/templates"
)

type handlers struct {
	healthy func() bool
}

func newHandlers(healthy func() bool) handlers {
	if healthy == nil {
		healthy = func() bool { return true }
	}
	return handlers{healthy: healthy}
}

func (h handlers) handleLanding(w http.ResponseWriter, r *http.Request) {
	h.writePage(w, r, func(loc webi18n.Localizer) pagerender.ModulePage {
		return pagerender.ModulePage{
			Title:    webi18n.Text(loc, "landing.title"),
			Fragment: webtemplates.LandingPage(loc),
		}
	})
}

// handleLogin is the target of expired-session redirects.
func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	h.writePage(w, r, func(loc webi18n.Localizer) pagerender.ModulePage {
		return pagerender.ModulePage{
			Title:    webi18n.Text(loc, "login.title"),
			Fragment: webtemplates.ExpiredPage(loc),
		}
	})
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status, state := http.StatusOK, "ok"
	if !h.healthy() {
		status, state = http.StatusServiceUnavailable, "degraded"
	}
	_ = httpx.WriteJSON(w, status, map[string]string{"status": state})
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound)
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, build pagerender.PageFunc) {
	if err := pagerender.WriteModulePage(w, r, build); err != nil {
		weberror.WriteModuleError(w, r, err)
	}
}
