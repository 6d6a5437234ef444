package templates

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/direwen/dilemma-web/internal/services/web/routepath"
)

func landingView(loc Localizer) templ.Component {
	return component(func(m *markup) {
		m.raw(`<section class="hero">`, "\n<h1>")
		m.text(T(loc, "landing.heading"))
		m.raw("</h1>\n<p>")
		m.text(T(loc, "landing.tagline"))
		m.raw("</p>\n", `<p class="actions">`, "\n", `<a class="button" href="`, routepath.ExperimentConsent, `">`)
		m.text(T(loc, "landing.start"))
		m.raw("</a>\n", `<a class="link" href="`, routepath.Dashboard, `">`)
		m.text(T(loc, "landing.dashboard"))
		m.raw("</a>\n</p>\n</section>\n")
	})
}

func expiredView(loc Localizer) templ.Component {
	return component(func(m *markup) {
		m.raw(`<section class="hero">`, "\n<h1>")
		m.text(T(loc, "login.heading"))
		m.raw("</h1>\n<p>")
		m.text(T(loc, "login.body"))
		m.raw("</p>\n", `<p class="actions"><a class="button" href="`, routepath.ExperimentConsent, `">`)
		m.text(T(loc, "login.restart"))
		m.raw("</a></p>\n</section>\n")
	})
}

func guideView(loc Localizer) templ.Component {
	return component(func(m *markup) {
		m.raw(`<section class="card">`, "\n<h1>")
		m.text(T(loc, "guide.heading"))
		m.raw("</h1>\n", `<ol class="guide-steps">`, "\n")
		for _, key := range []string{"guide.step_board", "guide.step_zones", "guide.step_rank"} {
			m.raw("<li>")
			m.text(T(loc, key))
			m.raw("</li>\n")
		}
		m.raw("</ol>\n", `<p class="actions"><a class="button" href="`, routepath.Experiment, `">`)
		m.text(T(loc, "guide.continue"))
		m.raw("</a></p>\n</section>\n")
	})
}

func selectOptions(m *markup, options []Option) {
	m.raw(`<option value=""></option>`)
	for _, option := range options {
		m.raw(`<option value="`)
		m.text(option.Value)
		m.raw(`"`)
		if option.Selected {
			m.raw(" selected")
		}
		m.raw(">")
		m.text(option.Label)
		m.raw("</option>")
	}
}

func consentView(v ConsentView) templ.Component {
	return component(func(m *markup) {
		loc := v.Loc
		labelled := func(labelKey string, field func()) {
			m.raw("<label>")
			m.text(T(loc, labelKey))
			m.raw("\n")
			field()
			m.raw("\n</label>\n")
		}
		selectField := func(name string, options []Option) func() {
			return func() {
				m.raw(`<select name="`, name, `" required>`)
				selectOptions(m, options)
				m.raw("</select>")
			}
		}
		textField := func(name string, value string, required bool) func() {
			return func() {
				m.raw(`<input type="text" name="`, name, `" value="`)
				m.text(value)
				m.raw(`"`)
				if required {
					m.raw(" required")
				}
				m.raw(">")
			}
		}

		m.raw(`<section class="card">`, "\n<h1>")
		m.text(T(loc, "consent.heading"))
		m.raw("</h1>\n<p>")
		m.text(T(loc, "consent.body"))
		m.raw("</p>\n")
		if v.Invalid {
			m.raw(`<p class="form-error" role="alert">`)
			m.text(T(loc, "consent.invalid"))
			m.raw("</p>")
		}
		m.raw("\n", `<form method="post" action="`, routepath.ExperimentConsent, `" class="form">`, "\n")
		labelled("consent.age_range", selectField("age_range", v.AgeOptions))
		labelled("consent.gender", selectField("gender", v.GenderOptions))
		labelled("consent.country", textField("country", v.Values.Country, true))
		labelled("consent.occupation", textField("occupation", v.Values.Occupation, false))
		labelled("consent.driving_experience", selectField("driving_experience", v.ExperienceOptions))
		m.raw(`<label class="checkbox"><input type="checkbox" name="self_reported_new" value="true"`)
		if v.SelfReportedNew {
			m.raw(" checked")
		}
		m.raw("> ")
		m.text(T(loc, "consent.new_participant"))
		m.raw("</label>\n", `<button type="submit" class="button">`)
		m.text(T(loc, "consent.submit"))
		m.raw("</button>\n</form>\n</section>\n")
	})
}

func boardSquare(m *markup, square BoardSquare) {
	m.raw(`<div class="`)
	m.text(square.Class)
	m.raw(`" title="`)
	m.text(square.Label)
	m.raw(`">`)
	if square.Arrow != "" {
		m.raw(`<span class="lane-arrow `)
		m.text(square.ArrowClass)
		m.raw(`">`)
		m.text(square.Arrow)
		m.raw("</span>")
	}
	for _, entity := range square.Entities {
		m.raw(`<a class="entity`)
		if entity.Ego {
			m.raw(" entity-ego")
		}
		if entity.Star {
			m.raw(" entity-star")
		}
		if entity.Selected {
			m.raw(" entity-selected")
		}
		m.raw(`" href="`)
		m.href(entity.URL)
		m.raw(`" title="`)
		m.text(entity.Name)
		m.raw(`">`)
		m.text(entity.Emoji)
		m.raw("</a>")
	}
	m.raw("</div>")
}

func experimentView(v ExperimentView) templ.Component {
	return component(func(m *markup) {
		loc := v.Loc
		m.raw(`<section class="experiment" data-scenario-id="`)
		m.text(v.ScenarioID)
		m.raw(`">`, "\n", `<header class="experiment-header">`, "\n<h1>")
		m.text(T(loc, "experiment.progress", v.Number))
		m.raw("</h1>\n", `<p class="timer" data-seconds="`)
		m.number(v.TimerSeconds)
		m.raw(`">`)
		m.text(T(loc, "experiment.timer", v.TimerSeconds))
		m.raw("</p>\n</header>\n", `<p class="narrative">`)
		m.text(v.Narrative)
		m.raw("</p>\n", `<div class="board" style="--board-width: `)
		m.number(v.Width)
		m.raw(`">`, "\n")
		for _, row := range v.Rows {
			m.raw(`<div class="board-row">`)
			for _, square := range row {
				boardSquare(m, square)
			}
			m.raw("</div>\n")
		}
		m.raw("</div>\n")

		if selected := v.Selected; selected != nil {
			m.raw(`<aside class="entity-detail">`, "\n", `<p><span class="entity-emoji">`)
			m.text(selected.Emoji)
			m.raw("</span> <strong>")
			m.text(selected.Name)
			m.raw("</strong> ")
			m.text(selected.Type)
			m.raw("</p>\n")
			if selected.Action != "" {
				m.raw("<p>")
				m.text(selected.Action)
				m.raw("</p>")
			}
			m.raw("\n", `<a class="link" href="`)
			m.href(selected.ClearURL)
			m.raw(`">&times;</a>`, "\n</aside>")
		}

		m.raw("\n", `<ul class="outcomes">`, "\n")
		for _, outcome := range v.Outcomes {
			m.raw(`<li class="outcome`)
			if outcome.Active {
				m.raw(" outcome-active")
			}
			m.raw(`">`, "\n", `<a href="`)
			m.href(outcome.PreviewURL)
			m.raw(`" class="outcome-preview">`)
			m.text(outcome.Label)
			m.raw("</a>\n<p>")
			m.text(outcome.Text)
			m.raw("</p>\n</li>\n")
		}
		m.raw("</ul>\n", `<form method="post" action="`, routepath.ExperimentResponses, `" class="form rank-form">`, "\n<h2>")
		m.text(T(loc, "experiment.rank_heading"))
		m.raw("</h2>\n", `<input type="hidden" name="scenario_id" value="`)
		m.text(v.ScenarioID)
		m.raw(`">`, "\n", `<input type="hidden" name="has_interacted" value="`)
		if v.Interacted {
			m.raw("true")
		} else {
			m.raw("false")
		}
		m.raw(`">`, "\n")
		for _, slot := range v.Slots {
			m.raw("<label>")
			m.text(T(loc, "experiment.rank_position", slot.Position))
			m.raw("\n", `<select name="rank">`)
			for _, choice := range slot.Choices {
				m.raw(`<option value="`)
				m.text(choice.Value)
				m.raw(`"`)
				if choice.Selected {
					m.raw(" selected")
				}
				m.raw(">")
				m.text(choice.Label)
				m.raw("</option>")
			}
			m.raw("</select>\n</label>\n")
		}
		m.raw(`<button type="submit" class="button">`)
		m.text(T(loc, "experiment.submit"))
		m.raw("</button>\n</form>\n</section>\n")
	})
}

func experimentUnavailableView(loc Localizer) templ.Component {
	return component(func(m *markup) {
		m.raw(`<section class="card">`, "\n<p>")
		m.text(T(loc, "experiment.unavailable"))
		m.raw("</p>\n</section>\n")
	})
}

func feedbackView(data feedbackData) templ.Component {
	return component(func(m *markup) {
		loc := data.Loc
		m.raw(`<section class="card feedback">`, "\n<h1>")
		m.text(T(loc, "feedback.heading", data.Feedback.Archetype))
		m.raw("</h1>\n<p>")
		m.text(data.Feedback.Summary)
		m.raw("</p>\n<p><strong>")
		m.text(T(loc, "feedback.key_trait"))
		m.raw(":</strong> ")
		m.text(data.Feedback.KeyTrait)
		m.raw("</p>\n", `<p class="actions"><a class="button" href="`, routepath.Dashboard, `">`)
		m.text(T(loc, "feedback.dashboard"))
		m.raw("</a></p>\n</section>\n")
	})
}

func dashboardView(data dashboardData) templ.Component {
	return component(func(m *markup) {
		loc := data.Loc
		stat := func(labelKey string, value string) {
			m.raw("<div><dt>")
			m.text(T(loc, labelKey))
			m.raw("</dt><dd>")
			m.text(value)
			m.raw("</dd></div>\n")
		}
		bar := func(label string, value string) {
			m.raw("<li>")
			m.text(label)
			m.raw(" <span>")
			m.text(value)
			m.raw("</span></li>\n")
		}

		m.raw(`<section class="dashboard">`, "\n<h1>")
		m.text(T(loc, "dashboard.heading"))
		m.raw("</h1>\n")
		stats := data.Stats
		if stats == nil {
			m.raw(`<p class="empty">`)
			m.text(T(loc, "dashboard.unavailable"))
			m.raw("</p>\n</section>\n")
			return
		}

		m.raw(`<dl class="stats">`, "\n")
		stat("dashboard.completed_sessions", strconv.Itoa(stats.CompletedSessions))
		stat("dashboard.countries", strconv.Itoa(stats.CountriesRepresented))
		m.raw("</dl>\n<h2>")
		m.text(T(loc, "dashboard.least_harmful"))
		m.raw("</h2>\n", `<ul class="bars">`, "\n")
		bar(T(loc, "experiment.outcome.maintain"), pct(stats.LeastHarmfulOutcome.MaintainPct))
		bar(T(loc, "experiment.outcome.swerve_left"), pct(stats.LeastHarmfulOutcome.SwerveLeftPct))
		bar(T(loc, "experiment.outcome.swerve_right"), pct(stats.LeastHarmfulOutcome.SwerveRightPct))
		m.raw("</ul>\n", `<dl class="stats">`, "\n")
		stat("dashboard.tailgater", pct(stats.SelfPreservationEffect.WithTailgater.Percentage))
		stat("dashboard.tailgater_without", pct(stats.SelfPreservationEffect.WithoutTailgater.Percentage))
		stat("dashboard.compliant", pct(stats.EntityComplianceEffect.Compliant.Percentage))
		stat("dashboard.violation", pct(stats.EntityComplianceEffect.Violation.Percentage))
		m.raw("</dl>\n<h2>")
		m.text(T(loc, "dashboard.decision_time"))
		m.raw("</h2>\n", `<ul class="bars">`, "\n")
		decisions := stats.DecisionTimeDistribution
		bar(T(loc, "dashboard.decision.under_2s"), strconv.Itoa(decisions.Under2s))
		bar(T(loc, "dashboard.decision.2s_4s"), strconv.Itoa(decisions.Between2s4s))
		bar(T(loc, "dashboard.decision.4s_6s"), strconv.Itoa(decisions.Between4s6s))
		bar(T(loc, "dashboard.decision.over_6s"), strconv.Itoa(decisions.Over6s))
		m.raw("</ul>\n")
		if len(stats.ArchetypeDistribution) > 0 {
			m.raw("<h2>")
			m.text(T(loc, "dashboard.archetypes"))
			m.raw("</h2>\n", `<ul class="bars">`)
			for _, archetype := range stats.ArchetypeDistribution {
				bar(archetype.Archetype, strconv.Itoa(archetype.Count))
			}
			m.raw("</ul>")
		}
		m.raw("\n</section>\n")
	})
}

func errorView(data errorData) templ.Component {
	return component(func(m *markup) {
		m.raw(`<section class="card error-state" data-status="`)
		m.number(data.Status)
		m.raw(`">`, "\n<h1>")
		m.text(data.Heading)
		m.raw("</h1>\n<p>")
		m.text(data.Message)
		m.raw("</p>\n", `<p class="actions"><a class="button" href="`, routepath.Root, `">`)
		m.text(T(data.Loc, "error.action_home"))
		m.raw("</a></p>\n</section>\n")
	})
}
