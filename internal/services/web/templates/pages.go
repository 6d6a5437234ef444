package templates

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/direwen/dilemma-web/internal/services/web/routepath"
	"github.com/direwen/dilemma-web/internal/survey"
	"github.com/direwen/dilemma-web/internal/survey/grid"
)

// LandingPage renders the public entry page.
func LandingPage(loc Localizer) templ.Component {
	return landingView(loc)
}

// ExpiredPage renders the session-expired entry page.
func ExpiredPage(loc Localizer) templ.Component {
	return expiredView(loc)
}

// GuidePage renders the first-time participant guide.
func GuidePage(loc Localizer) templ.Component {
	return guideView(loc)
}

// Option is one choice of a select input.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// ConsentView is the consent and demographics form state.
type ConsentView struct {
	Loc               Localizer
	Values            survey.Demographic
	SelfReportedNew   bool
	Invalid           bool
	AgeOptions        []Option
	GenderOptions     []Option
	ExperienceOptions []Option
}

// NewConsentView builds the form with values pre-selected.
func NewConsentView(loc Localizer, values survey.Demographic, selfReportedNew bool, invalid bool) ConsentView {
	return ConsentView{
		Loc:               loc,
		Values:            values,
		SelfReportedNew:   selfReportedNew,
		Invalid:           invalid,
		AgeOptions:        numberedOptions(loc, "consent.age.", 6, values.AgeRange),
		GenderOptions:     numberedOptions(loc, "consent.gender.", 4, values.Gender),
		ExperienceOptions: numberedOptions(loc, "consent.experience.", 3, values.DrivingExperience),
	}
}

func numberedOptions(loc Localizer, keyPrefix string, count int, selected int) []Option {
	options := make([]Option, 0, count)
	for i := 1; i <= count; i++ {
		value := strconv.Itoa(i)
		options = append(options, Option{
			Value:    value,
			Label:    T(loc, keyPrefix+value),
			Selected: i == selected,
		})
	}
	return options
}

// ConsentPage renders the consent form.
func ConsentPage(v ConsentView) templ.Component {
	return consentView(v)
}

// EntityBadge is one entity drawn inside a board square.
type EntityBadge struct {
	ID       string
	Emoji    string
	Name     string
	Ego      bool
	Star     bool
	Selected bool
	URL      string
}

// BoardSquare is the render state of one board cell.
type BoardSquare struct {
	Label      string
	Class      string
	Arrow      string
	ArrowClass string
	Entities   []EntityBadge
}

// OutcomeOption is one rankable outcome with its zone preview link.
type OutcomeOption struct {
	Outcome    string
	Label      string
	Text       string
	Active     bool
	PreviewURL string
}

// RankSlot is one position of the ranking form.
type RankSlot struct {
	Position int
	Choices  []Option
}

// SelectedEntity describes the entity opened for inspection.
type SelectedEntity struct {
	Emoji     string
	Name      string
	Type      string
	Action    string
	Violation bool
	ClearURL  string
}

// ExperimentView is the scenario page state.
type ExperimentView struct {
	Loc          Localizer
	Number       int
	TimerSeconds int
	ScenarioID   string
	Narrative    string
	Rows         [][]BoardSquare
	Width        int
	Outcomes     []OutcomeOption
	Slots        []RankSlot
	Selected     *SelectedEntity
	Interacted   bool
}

var highlightClasses = map[survey.Outcome]string{
	survey.OutcomeMaintain:    "highlight-maintain",
	survey.OutcomeSwerveLeft:  "highlight-swerve-left",
	survey.OutcomeSwerveRight: "highlight-swerve-right",
}

// ExperimentInput carries what the scenario page needs from the handler.
type ExperimentInput struct {
	Number       int
	TimerSeconds int
	Scenario     *survey.Scenario
	Board        grid.Board
	Zone         string
	IsSelected   func(id string) bool
	Selected     *survey.Entity
}

// NewExperimentView resolves a board into render rows and builds the
// outcome and ranking controls.
func NewExperimentView(loc Localizer, in ExperimentInput) ExperimentView {
	v := ExperimentView{
		Loc:          loc,
		Number:       in.Number,
		TimerSeconds: in.TimerSeconds,
		Width:        in.Board.Width,
		Interacted:   strings.TrimSpace(in.Zone) != "" || in.Selected != nil,
	}
	if in.Scenario != nil {
		v.ScenarioID = in.Scenario.ID
		v.Narrative = in.Scenario.Narrative
	}
	isSelected := in.IsSelected
	if isSelected == nil {
		isSelected = func(string) bool { return false }
	}

	v.Rows = make([][]BoardSquare, 0, len(in.Board.Rows))
	for _, row := range in.Board.Rows {
		squares := make([]BoardSquare, 0, len(row))
		for _, square := range row {
			classes := []string{"cell", square.Cell.Class}
			if square.Cell.Interactive {
				classes = append(classes, "cell-interactive")
			}
			if class, ok := highlightClasses[square.Highlight]; ok {
				classes = append(classes, class)
			}
			if square.OnPath {
				classes = append(classes, "approach-path")
			}
			badges := make([]EntityBadge, 0, len(square.Entities))
			for _, entity := range square.Entities {
				badges = append(badges, EntityBadge{
					ID:       entity.ID,
					Emoji:    entity.Emoji,
					Name:     entityName(entity),
					Ego:      entity.Metadata.IsEgo,
					Star:     entity.Metadata.IsStar,
					Selected: isSelected(entity.ID),
					URL:      routepath.ExperimentView(in.Zone, entity.ID),
				})
			}
			squares = append(squares, BoardSquare{
				Label:      square.Cell.Label,
				Class:      strings.Join(strings.Fields(strings.Join(classes, " ")), " "),
				Arrow:      square.Arrow,
				ArrowClass: square.ArrowClass,
				Entities:   badges,
			})
		}
		v.Rows = append(v.Rows, squares)
	}

	active, _ := survey.OutcomeForZone(in.Zone)
	for _, outcome := range survey.Outcomes {
		text := ""
		if in.Scenario != nil {
			text = in.Scenario.DilemmaOptions.Text(outcome)
		}
		v.Outcomes = append(v.Outcomes, OutcomeOption{
			Outcome:    string(outcome),
			Label:      T(loc, "experiment.outcome."+string(outcome)),
			Text:       text,
			Active:     outcome == active,
			PreviewURL: routepath.ExperimentView(survey.ZoneForOutcome(outcome), ""),
		})
	}
	for position := range survey.Outcomes {
		slot := RankSlot{Position: position + 1}
		for index, outcome := range survey.Outcomes {
			slot.Choices = append(slot.Choices, Option{
				Value:    string(outcome),
				Label:    T(loc, "experiment.outcome."+string(outcome)),
				Selected: index == position,
			})
		}
		v.Slots = append(v.Slots, slot)
	}

	if in.Selected != nil {
		v.Selected = &SelectedEntity{
			Emoji:     in.Selected.Emoji,
			Name:      entityName(*in.Selected),
			Type:      in.Selected.Type,
			Action:    in.Selected.Metadata.Action,
			Violation: in.Selected.Metadata.IsViolation,
			ClearURL:  routepath.ExperimentView(in.Zone, ""),
		}
	}
	return v
}

func entityName(entity survey.Entity) string {
	if name := strings.TrimSpace(entity.Metadata.Name); name != "" {
		return name
	}
	return entity.Type
}

// ExperimentPage renders the scenario board and ranking form.
func ExperimentPage(v ExperimentView) templ.Component {
	return experimentView(v)
}

// ExperimentUnavailable renders the empty scenario state.
func ExperimentUnavailable(loc Localizer) templ.Component {
	return experimentUnavailableView(loc)
}

type feedbackData struct {
	Loc      Localizer
	Feedback survey.Feedback
}

// FeedbackPage renders the participant's closing archetype.
func FeedbackPage(loc Localizer, feedback survey.Feedback) templ.Component {
	return feedbackView(feedbackData{Loc: loc, Feedback: feedback})
}

type dashboardData struct {
	Loc   Localizer
	Stats *survey.DashboardStats
}

// DashboardPage renders aggregate results. A nil stats value renders the
// unavailable state.
func DashboardPage(loc Localizer, stats *survey.DashboardStats) templ.Component {
	return dashboardView(dashboardData{Loc: loc, Stats: stats})
}

const (
	errorPageTitleNotFoundKey  = "error.page_title_not_found"
	errorPageTitleServerErrKey = "error.page_title_server_error"
	errorHeadingNotFoundKey    = "error.title_not_found"
	errorHeadingServerErrKey   = "error.title_server_error"
	errorMessageNotFoundKey    = "error.message_not_found"
	errorMessageServerErrKey   = "error.message_server_error"
)

type errorData struct {
	Loc     Localizer
	Status  int
	Heading string
	Message string
}

// ErrorPageTitle returns the browser page title for error pages.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	if normalizeErrorStatus(statusCode) == http.StatusNotFound {
		return T(loc, errorPageTitleNotFoundKey)
	}
	return T(loc, errorPageTitleServerErrKey)
}

// ErrorState renders the error page body.
func ErrorState(statusCode int, loc Localizer) templ.Component {
	data := errorData{Loc: loc, Status: normalizeErrorStatus(statusCode)}
	if data.Status == http.StatusNotFound {
		data.Heading = T(loc, errorHeadingNotFoundKey)
		data.Message = T(loc, errorMessageNotFoundKey)
	} else {
		data.Heading = T(loc, errorHeadingServerErrKey)
		data.Message = T(loc, errorMessageServerErrKey)
	}
	return errorView(data)
}

func normalizeErrorStatus(statusCode int) int {
	if statusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
