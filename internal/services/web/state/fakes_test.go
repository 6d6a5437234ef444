package state

import (
	"context"
	"sync"
	"time"

	"github.com/direwen/dilemma-web/internal/services/web/storage"
	"github.com/direwen/dilemma-web/internal/survey"
)

// fakeAPI implements SurveyAPI with configurable results and call tracking.
type fakeAPI struct {
	mu sync.Mutex

	sessionOut  survey.CreateSessionOutput
	sessionErr  error
	scenario    survey.Scenario
	scenarioErr error
	submitOut   survey.SubmitResponseOutput
	submitErr   error
	feedback    survey.Feedback
	feedbackErr error
	stats       survey.DashboardStats
	statsErr    error

	// during runs inside every call, before results are returned.
	during func()

	sessionInputs []survey.CreateSessionInput
	submitInputs  []survey.SubmitResponseInput
	tokens        []string
	calls         int
}

func (f *fakeAPI) record(token string) {
	f.mu.Lock()
	f.calls++
	f.tokens = append(f.tokens, token)
	during := f.during
	f.mu.Unlock()
	if during != nil {
		during()
	}
}

func (f *fakeAPI) CreateSession(_ context.Context, in survey.CreateSessionInput) (survey.CreateSessionOutput, error) {
	f.mu.Lock()
	f.sessionInputs = append(f.sessionInputs, in)
	f.mu.Unlock()
	f.record("")
	return f.sessionOut, f.sessionErr
}

func (f *fakeAPI) NextScenario(_ context.Context, token string) (survey.Scenario, error) {
	f.record(token)
	return f.scenario, f.scenarioErr
}

func (f *fakeAPI) SubmitResponse(_ context.Context, token string, _ string, in survey.SubmitResponseInput) (survey.SubmitResponseOutput, error) {
	f.mu.Lock()
	f.submitInputs = append(f.submitInputs, in)
	f.mu.Unlock()
	f.record(token)
	return f.submitOut, f.submitErr
}

func (f *fakeAPI) Feedback(_ context.Context, token string) (survey.Feedback, error) {
	f.record(token)
	return f.feedback, f.feedbackErr
}

func (f *fakeAPI) Dashboard(context.Context) (survey.DashboardStats, error) {
	f.record("")
	return f.stats, f.statsErr
}

// fakeProgress implements storage.ProgressStore in memory.
type fakeProgress struct {
	mu       sync.Mutex
	rows     map[string]storage.Progress
	answers  map[string][]storage.Answer
	deleted  []string
	putCalls int
}

func newFakeProgress() *fakeProgress {
	return &fakeProgress{rows: map[string]storage.Progress{}, answers: map[string][]storage.Answer{}}
}

func (f *fakeProgress) GetProgress(_ context.Context, key string) (storage.Progress, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	progress, ok := f.rows[key]
	if !ok {
		return storage.Progress{}, false, nil
	}
	progress.Answers = append([]storage.Answer(nil), f.answers[key]...)
	return progress, true, nil
}

func (f *fakeProgress) PutProgress(_ context.Context, progress storage.Progress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putCalls++
	progress.Answers = nil
	f.rows[progress.SessionKey] = progress
	return nil
}

func (f *fakeProgress) AppendAnswer(_ context.Context, key string, answer storage.Answer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers[key] = append(f.answers[key], answer)
	return nil
}

func (f *fakeProgress) DeleteProgress(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, key)
	delete(f.answers, key)
	f.deleted = append(f.deleted, key)
	return nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
