package feedback

import (
	"context"
	"sync"

	"github.com/direwen/dilemma-web/internal/survey"
)

// fakeAPI implements state.SurveyAPI for feedback reads.
type fakeAPI struct {
	mu sync.Mutex

	feedback    survey.Feedback
	feedbackErr error
	tokens      []string
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

func (f *fakeAPI) Feedback(_ context.Context, token string) (survey.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	return f.feedback, f.feedbackErr
}

func (f *fakeAPI) Dashboard(context.Context) (survey.DashboardStats, error) {
	return survey.DashboardStats{}, nil
}
