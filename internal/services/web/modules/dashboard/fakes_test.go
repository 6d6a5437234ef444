package dashboard

import (
	"context"
	"sync"

	"github.com/direwen/dilemma-web/internal/survey"
)

// fakeAPI implements state.SurveyAPI for dashboard reads.
type fakeAPI struct {
	mu sync.Mutex

	stats    survey.DashboardStats
	statsErr error
	calls    int
}

func (f *fakeAPI) CreateSession(context.Context, survey.CreateSessionInput) (survey.CreateSessionOutput, error) {
	return survey.CreateSessionOutput{}, nil
}

func (f *fakeAPI) NextScenario(context.Context, string) (survey.Scenario, error) {
	return survey.Scenario{}, nil
}

func (f *fakeAPI) SubmitResponse(context.Context, string, string, survey.SubmitResponseInput) (survey.SubmitResponseOutput, error) {
	return survey.SubmitResponseOutput{}, nil
}

func (f *fakeAPI) Feedback(context.Context, string) (survey.Feedback, error) {
	return survey.Feedback{}, nil
}

func (f *fakeAPI) Dashboard(context.Context) (survey.DashboardStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.stats, f.statsErr
}
