package experiment

import (
	"log"
	"net/http"

	apperrors "github.com/direwen/dilemma-web/internal/services/web/platform/errors"
	"github.com/direwen/dilemma-web/internal/services/web/platform/fingerprint"
	flashnotice "github.com/direwen/dilemma-web/internal/services/web/platform/flash"
	"github.com/direwen/dilemma-web/internal/services/web/platform/httpx"
	webi18n "github.com/direwen/dilemma-web/internal/services/web/platform/i18n"
	"github.com/direwen/dilemma-web/internal/services/web/platform/pagerender"
	"github.com/direwen/dilemma-web/internal/services/web/platform/webctx"
	"github.com/direwen/dilemma-web/internal/services/web/platform/weberror"
	"github.com/direwen/dilemma-web/internal/services/web/routepath"
	"github.com/direwen/dilemma-web/internal/services/web/state"
	webtemplates "github.com/direwen/dilemma-web/internal/services/web/templates"
	"github.com/direwen/dilemma-web/internal/survey"
	"github.com/direwen/dilemma-web/internal/survey/grid"
)

type handlers struct {
	experiments      state.Factory
	approachDistance int
}

func newHandlers(cfg Config) handlers {
	return handlers{experiments: cfg.Experiments, approachDistance: cfg.ApproachDistance}
}

func (h handlers) experiment(w http.ResponseWriter, r *http.Request) *state.Experiment {
	return webctx.Experiment(w, r, h.experiments)
}

func (h handlers) handleConsent(w http.ResponseWriter, r *http.Request) {
	h.writeConsent(w, r, consentForm{}, false)
}

func (h handlers) handleConsentSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		weberror.WriteModuleError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "parse consent form", err))
		return
	}
	form := parseConsentForm(r)
	exp := h.experiment(w, r)
	result := exp.CreateSession(r.Context(), state.SessionRequest{
		Demographic:     form.demographic,
		SelfReportedNew: form.selfReportedNew,
		Fingerprint:     fingerprint.VisitorID(r),
	})
	if !result.OK() {
		if apperrors.Is(result.Failure, apperrors.KindInvalidInput) {
			h.writeConsent(w, r, form, true)
			return
		}
		log.Printf("web: create session: %v", result.Failure)
		h.redirectWithNotice(w, r, routepath.ExperimentConsent, result.Notice)
		return
	}
	target := routepath.Experiment
	if form.selfReportedNew {
		target = routepath.ExperimentGuide
	}
	h.redirectWithNotice(w, r, target, result.Notice)
}

func (h handlers) writeConsent(w http.ResponseWriter, r *http.Request, form consentForm, invalid bool) {
	status := http.StatusOK
	if invalid {
		status = http.StatusUnprocessableEntity
	}
	h.writePage(w, r, func(loc webi18n.Localizer) pagerender.ModulePage {
		return pagerender.ModulePage{
			Title:      webi18n.Text(loc, "consent.title"),
			StatusCode: status,
			Fragment:   webtemplates.ConsentPage(webtemplates.NewConsentView(loc, form.demographic, form.selfReportedNew, invalid)),
		}
	})
}

func (h handlers) handleGuide(w http.ResponseWriter, r *http.Request) {
	h.writePage(w, r, func(loc webi18n.Localizer) pagerender.ModulePage {
		return pagerender.ModulePage{
			Title:    webi18n.Text(loc, "guide.title"),
			Fragment: webtemplates.GuidePage(loc),
		}
	})
}

func (h handlers) handleScenario(w http.ResponseWriter, r *http.Request) {
	exp := h.experiment(w, r)
	snap := exp.Snapshot()
	if snap.Completed {
		httpx.WriteRedirect(w, r, routepath.Feedback)
		return
	}
	scenario, ok := snap.PendingScenario()
	if !ok {
		result := exp.GetScenario(r.Context())
		switch {
		case result.Unauthorized:
			httpx.WriteRedirect(w, r, routepath.AuthLogin)
			return
		case result.Completed:
			h.redirectWithNotice(w, r, routepath.Feedback, result.Notice)
			return
		case !result.OK() || result.Value == nil:
			log.Printf("web: load scenario: %v", result.Failure)
			h.writePage(w, r, func(loc webi18n.Localizer) pagerender.ModulePage {
				return pagerender.ModulePage{
					Title:    webi18n.Text(loc, "experiment.title"),
					Fragment: webtemplates.ExperimentUnavailable(loc),
					Notice:   result.Notice,
				}
			})
			return
		}
		scenario = result.Value
	}

	query := r.URL.Query()
	zone := query.Get(routepath.ZoneParam)
	var rank state.Rank
	rank.SelectByID(scenario, query.Get(routepath.EntityParam))
	var selected *survey.Entity
	if entity, ok := rank.Selected(); ok {
		selected = &entity
	}
	board := grid.BuildBoard(scenario, zone, h.approachDistance)
	number := exp.Snapshot().Number()

	h.writePage(w, r, func(loc webi18n.Localizer) pagerender.ModulePage {
		return pagerender.ModulePage{
			Title: webi18n.Text(loc, "experiment.title"),
			Fragment: webtemplates.ExperimentPage(webtemplates.NewExperimentView(loc, webtemplates.ExperimentInput{
				Number:       number,
				TimerSeconds: exp.TimerSeconds(),
				Scenario:     scenario,
				Board:        board,
				Zone:         zone,
				IsSelected:   rank.IsSelected,
				Selected:     selected,
			})),
		}
	})
}

func (h handlers) handleResponseSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		weberror.WriteModuleError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "parse response form", err))
		return
	}
	exp := h.experiment(w, r)
	result, err := exp.SubmitResponse(r.Context(), parseResponseForm(r))
	if result.Unauthorized {
		httpx.WriteRedirect(w, r, routepath.AuthLogin)
		return
	}
	if err != nil {
		log.Printf("web: submit response: %v", err)
		h.redirectWithNotice(w, r, routepath.Experiment, result.Notice)
		return
	}
	target := routepath.Experiment
	if result.Completed {
		target = routepath.Feedback
	}
	h.redirectWithNotice(w, r, target, result.Notice)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound)
}

func (h handlers) redirectWithNotice(w http.ResponseWriter, r *http.Request, target string, notice flashnotice.Notice) {
	if !notice.IsZero() {
		flashnotice.WriteWithPolicy(w, r, notice, h.experiments.Policy)
	}
	httpx.WriteRedirect(w, r, target)
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, build pagerender.PageFunc) {
	if err := pagerender.WriteModulePage(w, r, build); err != nil {
		weberror.WriteModuleError(w, r, err)
	}
}
