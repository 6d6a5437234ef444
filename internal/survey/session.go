package survey

import (
	"fmt"
	"strings"
)

// Demographic is the participant profile collected on the consent form.
type Demographic struct {
	AgeRange          int    `json:"age_range"`
	Gender            int    `json:"gender"`
	Country           string `json:"country"`
	Occupation        string `json:"occupation"`
	DrivingExperience int    `json:"driving_experience"`
}

// Validate enforces the ranges accepted by the survey API.
func (d Demographic) Validate() error {
	if d.AgeRange < 1 || d.AgeRange > 6 {
		return fmt.Errorf("age range must be between 1 and 6")
	}
	if d.Gender < 1 || d.Gender > 4 {
		return fmt.Errorf("gender must be between 1 and 4")
	}
	if strings.TrimSpace(d.Country) == "" {
		return fmt.Errorf("country is required")
	}
	if d.DrivingExperience < 1 || d.DrivingExperience > 3 {
		return fmt.Errorf("driving experience must be between 1 and 3")
	}
	return nil
}

// CreateSessionInput is the session creation payload.
type CreateSessionInput struct {
	Demographic
	Fingerprint     string `json:"fingerprint"`
	SelfReportedNew bool   `json:"self_reported_new"`
}

// CreateSessionOutput carries the issued session token.
type CreateSessionOutput struct {
	Token string `json:"token"`
}

// SubmitResponseInput is one participant ranking.
type SubmitResponseInput struct {
	RankingOrder   []Outcome `json:"ranking_order"`
	ResponseTimeMS int64     `json:"response_time_ms"`
	IsTimeout      bool      `json:"is_timeout"`
	HasInteracted  bool      `json:"has_interacted"`
}

// ValidateRanking reports whether order ranks every outcome exactly once.
func ValidateRanking(order []Outcome) error {
	if len(order) != len(Outcomes) {
		return fmt.Errorf("ranking must list %d outcomes, got %d", len(Outcomes), len(order))
	}
	seen := make(map[Outcome]struct{}, len(order))
	for _, outcome := range order {
		if _, ok := ParseOutcome(string(outcome)); !ok {
			return fmt.Errorf("unknown outcome %q", outcome)
		}
		if _, dup := seen[outcome]; dup {
			return fmt.Errorf("outcome %q ranked twice", outcome)
		}
		seen[outcome] = struct{}{}
	}
	return nil
}

// RecordedResponse echoes the stored response returned by the API.
type RecordedResponse struct {
	ID             string    `json:"id"`
	ScenarioID     string    `json:"scenario_id"`
	RankingOrder   []Outcome `json:"ranking_order"`
	ResponseTimeMS int64     `json:"response_time_ms"`
	IsTimeout      bool      `json:"is_timeout"`
	HasInteracted  bool      `json:"has_interacted"`
}

// SubmitResponseOutput reports the stored response and whether the session finished.
type SubmitResponseOutput struct {
	Response   RecordedResponse `json:"response"`
	IsComplete bool             `json:"is_complete"`
}

// Feedback is the closing archetype summary for a participant.
type Feedback struct {
	Archetype string `json:"archetype"`
	Summary   string `json:"summary"`
	KeyTrait  string `json:"key_trait"`
}

// FallbackFeedback is shown when personalized feedback cannot be generated.
var FallbackFeedback = Feedback{
	Archetype: "The Thoughtful Participant",
	Summary:   "Thank you for completing the experiment. We were unable to generate your personalized feedback at this time, but your responses have been recorded and will contribute to our research.",
	KeyTrait:  "Valued Contributor",
}
