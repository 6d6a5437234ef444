package experiment

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/direwen/dilemma-web/internal/services/web/state"
	"github.com/direwen/dilemma-web/internal/survey"
)

const (
	fieldAgeRange          = "age_range"
	fieldGender            = "gender"
	fieldCountry           = "country"
	fieldOccupation        = "occupation"
	fieldDrivingExperience = "driving_experience"
	fieldSelfReportedNew   = "self_reported_new"
	fieldScenarioID        = "scenario_id"
	fieldRank              = "rank"
	fieldHasInteracted     = "has_interacted"
)

type consentForm struct {
	demographic     survey.Demographic
	selfReportedNew bool
}

func parseConsentForm(r *http.Request) consentForm {
	return consentForm{
		demographic: survey.Demographic{
			AgeRange:          formInt(r, fieldAgeRange),
			Gender:            formInt(r, fieldGender),
			Country:           strings.TrimSpace(r.PostFormValue(fieldCountry)),
			Occupation:        strings.TrimSpace(r.PostFormValue(fieldOccupation)),
			DrivingExperience: formInt(r, fieldDrivingExperience),
		},
		selfReportedNew: formBool(r, fieldSelfReportedNew),
	}
}

// parseResponseForm reads the ranking in submitted order. Unknown outcomes
// are kept as-is so ranking validation rejects them.
func parseResponseForm(r *http.Request) state.ResponseRequest {
	values := r.PostForm[fieldRank]
	ranking := make([]survey.Outcome, 0, len(values))
	for _, value := range values {
		if outcome, ok := survey.ParseOutcome(value); ok {
			ranking = append(ranking, outcome)
			continue
		}
		ranking = append(ranking, survey.Outcome(strings.TrimSpace(value)))
	}
	return state.ResponseRequest{
		ScenarioID:    strings.TrimSpace(r.PostFormValue(fieldScenarioID)),
		Ranking:       ranking,
		HasInteracted: formBool(r, fieldHasInteracted),
	}
}

func formInt(r *http.Request, name string) int {
	value, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue(name)))
	if err != nil {
		return 0
	}
	return value
}

func formBool(r *http.Request, name string) bool {
	switch strings.ToLower(strings.TrimSpace(r.PostFormValue(name))) {
	case "true", "on", "1", "yes":
		return true
	default:
		return false
	}
}
