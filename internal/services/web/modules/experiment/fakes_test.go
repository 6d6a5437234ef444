package experiment

import (
	"context"
	"sync"

	"github.com/direwen/dilemma-web/internal/survey"
)

// fakeAPI implements state.SurveyAPI with configurable results and call tracking.
type fakeAPI struct {
	mu sync.Mutex

	sessionOut  survey.CreateSessionOutput
	sessionErr  error
	scenario    survey.Scenario
	scenarioErr error
	submitOut   survey.SubmitResponseOutput
	submitErr   error

	sessionInputs []survey.CreateSessionInput
	submitInputs  []survey.SubmitResponseInput
	submitIDs     []string
	calls         int
}

func (f *fakeAPI) CreateSession(_ context.Context, in survey.CreateSessionInput) (survey.CreateSessionOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.sessionInputs = append(f.sessionInputs, in)
	return f.sessionOut, f.sessionErr
}

func (f *fakeAPI) NextScenario(context.Context, string) (survey.Scenario, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.scenario, f.scenarioErr
}

func (f *fakeAPI) SubmitResponse(_ context.Context, _ string, scenarioID string, in survey.SubmitResponseInput) (survey.SubmitResponseOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.submitIDs = append(f.submitIDs, scenarioID)
	f.submitInputs = append(f.submitInputs, in)
	return f.submitOut, f.submitErr
}

func (f *fakeAPI) Feedback(context.Context, string) (survey.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return survey.Feedback{}, nil
}

func (f *fakeAPI) Dashboard(context.Context) (survey.DashboardStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return survey.DashboardStats{}, nil
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func sampleScenario() survey.Scenario {
	return survey.Scenario{
		ID:        "sc-1",
		Narrative: "Your brakes fail on a wet street.",
		DilemmaOptions: survey.DilemmaOptions{
			Maintain:    "Continue into the crossing.",
			SwerveLeft:  "Swerve into the parked van.",
			SwerveRight: "Swerve onto the sidewalk.",
		},
		Width:    3,
		Height:   2,
		GridData: [][]int{{9, 9, 9}, {3, 3, 3}},
		Entities: []survey.Entity{
			{ID: "car", Type: "vehicle", Emoji: "🚗", Row: 0, Col: 2, Metadata: survey.EntityMeta{IsEgo: true, Orientation: "W"}},
			{ID: "walker", Type: "pedestrian", Emoji: "🚶", Row: 1, Col: 0, Metadata: survey.EntityMeta{Name: "Jogger", Action: "Crossing on red", IsViolation: true}},
		},
		LaneConfig: survey.LaneConfig{W: [][]int{{0, 0}, {0, 1}, {0, 2}}},
		TridentZones: &survey.TridentZones{
			ZoneA: survey.TridentZone{Coordinates: []survey.ZoneCoordinate{{Row: 0, Col: 1}}},
			ZoneB: survey.TridentZone{Coordinates: []survey.ZoneCoordinate{{Row: 1, Col: 1}}},
		},
	}
}
