// Package state holds participant experiment state for one request.
//
// An Experiment is built per request over a PersistedState (cookies in
// production) and the web progress store. Actions call the survey API once,
// update the snapshot, and return a Result for the caller to present.
package state

import (
	"context"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	apperrors "github.com/direwen/dilemma-web/internal/services/web/platform/errors"
	flashnotice "github.com/direwen/dilemma-web/internal/services/web/platform/flash"
	"github.com/direwen/dilemma-web/internal/services/web/platform/sessioncookie"
	"github.com/direwen/dilemma-web/internal/services/web/storage"
	"github.com/direwen/dilemma-web/internal/survey"
)

const (
	// DefaultTimerSeconds is the per-scenario decision window.
	DefaultTimerSeconds = 20

	fingerprintMaxAge = 365 * 24 * time.Hour
)

// Notice keys produced by experiment actions.
const (
	NoticeSessionCreateFailed = "notice.session_create_failed"
	NoticeScenarioLoadFailed  = "notice.scenario_load_failed"
	NoticeResponseSubmitted   = "notice.response_submitted"
	NoticeResponseFailed      = "notice.response_submit_failed"
	NoticeDashboardLoaded     = "notice.dashboard_loaded"
	NoticeDashboardFailed     = "notice.dashboard_load_failed"
	NoticeCompleted           = "notice.experiment_completed"
)

// SurveyAPI is the survey backend surface the experiment drives.
type SurveyAPI interface {
	CreateSession(ctx context.Context, in survey.CreateSessionInput) (survey.CreateSessionOutput, error)
	NextScenario(ctx context.Context, token string) (survey.Scenario, error)
	SubmitResponse(ctx context.Context, token string, scenarioID string, in survey.SubmitResponseInput) (survey.SubmitResponseOutput, error)
	Feedback(ctx context.Context, token string) (survey.Feedback, error)
	Dashboard(ctx context.Context) (survey.DashboardStats, error)
}

// Options configure an Experiment.
type Options struct {
	API       SurveyAPI
	Persisted PersistedState
	// Progress is optional; without it the shown scenario, its shown-at
	// time, the answer count and the participant flags are kept in
	// Persisted, one key each.
	Progress     storage.ProgressStore
	TimerSeconds int
	Now          func() time.Time
}

// Snapshot is a point-in-time copy of experiment state.
type Snapshot struct {
	Token           string
	SessionKey      string
	Scenarios       []survey.Scenario
	CurrentIndex    int
	Answers         []storage.Answer
	// AnswerCount counts recorded responses when Answers are not stored.
	AnswerCount     int
	Demographic     survey.Demographic
	SelfReportedNew bool
	Completed       bool
	ShownAt         time.Time
	// ShownScenarioID is the scenario ShownAt refers to.
	ShownScenarioID string
}

// HasToken reports whether a session token is present.
func (s Snapshot) HasToken() bool {
	return strings.TrimSpace(s.Token) != ""
}

// CurrentScenario returns the scenario at the current index.
func (s Snapshot) CurrentScenario() (*survey.Scenario, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Scenarios) {
		return nil, false
	}
	return &s.Scenarios[s.CurrentIndex], true
}

// Answered reports whether a response was recorded for scenarioID.
func (s Snapshot) Answered(scenarioID string) bool {
	for _, answer := range s.Answers {
		if answer.ScenarioID == scenarioID {
			return true
		}
	}
	return false
}

// PendingScenario returns the current scenario when it still awaits a response.
func (s Snapshot) PendingScenario() (*survey.Scenario, bool) {
	if s.Completed {
		return nil, false
	}
	current, ok := s.CurrentScenario()
	if !ok || s.Answered(current.ID) {
		return nil, false
	}
	return current, true
}

// Number is the one-based position of the scenario being answered.
func (s Snapshot) Number() int {
	return s.answered() + 1
}

func (s Snapshot) answered() int {
	return max(len(s.Answers), s.AnswerCount)
}

func (s Snapshot) clone() Snapshot {
	s.Scenarios = slices.Clone(s.Scenarios)
	s.Answers = slices.Clone(s.Answers)
	return s
}

// SessionRequest is a consent form submission.
type SessionRequest struct {
	Demographic     survey.Demographic
	SelfReportedNew bool
	Fingerprint     string
}

// ResponseRequest is one ranking submission.
type ResponseRequest struct {
	ScenarioID    string
	Ranking       []survey.Outcome
	HasInteracted bool
}

// Experiment is the participant's experiment state and its actions.
type Experiment struct {
	api       SurveyAPI
	persisted PersistedState
	progress  storage.ProgressStore
	timer     time.Duration
	now       func() time.Time

	mu   sync.Mutex
	busy int
	snap Snapshot
}

// NewExperiment builds experiment state. Call Load before reading it.
func NewExperiment(opts Options) *Experiment {
	timerSeconds := opts.TimerSeconds
	if timerSeconds <= 0 {
		timerSeconds = DefaultTimerSeconds
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	persisted := opts.Persisted
	if persisted == nil {
		persisted = NewMemory(nil)
	}
	return &Experiment{
		api:       opts.API,
		persisted: persisted,
		progress:  opts.Progress,
		timer:     time.Duration(timerSeconds) * time.Second,
		now:       now,
	}
}

// Load reads the session token and stored progress. An expired token is
// cleared and the state starts empty.
func (e *Experiment) Load(ctx context.Context) error {
	token := e.readToken()
	if token == "" {
		e.setSnapshot(Snapshot{})
		return nil
	}
	if sessioncookie.Expired(token, e.now()) {
		e.expire(ctx)
		return nil
	}
	snap := Snapshot{Token: token, SessionKey: sessioncookie.SessionKey(token)}
	if e.progress != nil {
		progress, found, err := e.progress.GetProgress(ctx, snap.SessionKey)
		if err != nil {
			e.setSnapshot(snap)
			return apperrors.Wrap(apperrors.KindUnavailable, "load experiment progress", err)
		}
		if found {
			snap.Scenarios = progress.Scenarios
			snap.CurrentIndex = progress.CurrentIndex
			snap.Answers = progress.Answers
			snap.Demographic = progress.Demographic
			snap.SelfReportedNew = progress.SelfReportedNew
			snap.Completed = progress.Completed
			snap.ShownAt = progress.ShownAt
			if current, ok := snap.CurrentScenario(); ok && !snap.ShownAt.IsZero() {
				snap.ShownScenarioID = current.ID
			}
		}
	} else {
		loadCookieProgress(e.persisted, &snap)
	}
	e.setSnapshot(snap)
	return nil
}

func (e *Experiment) readToken() string {
	for _, key := range []string{KeySessionToken, KeyLegacyToken} {
		if value, ok := e.persisted.Get(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// Snapshot returns a copy of the current state.
func (e *Experiment) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snap.clone()
}

// Token returns the session token, or "" when there is none.
func (e *Experiment) Token() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snap.Token
}

// Loading reports whether any action is in flight.
func (e *Experiment) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy > 0
}

// TimerSeconds is the decision window applied to submissions.
func (e *Experiment) TimerSeconds() int {
	return int(e.timer / time.Second)
}

// CanAccessGuide reports whether the participant may open the guide: a
// self-reported newcomer who has not answered anything yet.
func (e *Experiment) CanAccessGuide() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snap.HasToken() && e.snap.SelfReportedNew && e.snap.answered() == 0 && !e.snap.Completed
}

// Fingerprint returns the stored visitor fingerprint, storing candidate
// first when none is recorded yet.
func (e *Experiment) Fingerprint(candidate string) string {
	if value, ok := e.persisted.Get(KeyFingerprint); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	candidate = strings.TrimSpace(candidate)
	if candidate != "" {
		e.persisted.Set(KeyFingerprint, candidate, fingerprintMaxAge)
	}
	return candidate
}

// CreateSession registers the participant and stores the issued token.
func (e *Experiment) CreateSession(ctx context.Context, req SessionRequest) Result[string] {
	defer e.begin()()
	notice := flashnotice.NoticeError(NoticeSessionCreateFailed)

	if err := req.Demographic.Validate(); err != nil {
		return Result[string]{
			Failure: apperrors.EK(apperrors.KindInvalidInput, "error.invalid_input", err.Error()),
			Notice:  notice,
		}
	}
	if e.api == nil {
		return Result[string]{Failure: errAPIUnavailable(), Notice: notice}
	}
	out, err := e.api.CreateSession(ctx, survey.CreateSessionInput{
		Demographic:     req.Demographic,
		Fingerprint:     e.Fingerprint(req.Fingerprint),
		SelfReportedNew: req.SelfReportedNew,
	})
	if err != nil {
		return failed[string](ctx, e, err, notice)
	}

	token := strings.TrimSpace(out.Token)
	e.persisted.Set(KeySessionToken, token, sessioncookie.SessionMaxAge)
	e.persisted.Clear(KeyLegacyToken)
	snap := Snapshot{
		Token:           token,
		SessionKey:      sessioncookie.SessionKey(token),
		Demographic:     req.Demographic,
		SelfReportedNew: req.SelfReportedNew,
	}
	e.setSnapshot(snap)
	e.saveProgress(ctx, snap)
	return Result[string]{Value: token}
}

// GetScenario loads the next scenario. Reloading a scenario that is still
// unanswered keeps its original shown-at time.
func (e *Experiment) GetScenario(ctx context.Context) Result[*survey.Scenario] {
	defer e.begin()()
	token := e.Token()
	if token == "" {
		return Result[*survey.Scenario]{Failure: errNoSession(), Unauthorized: true}
	}
	if e.api == nil {
		return Result[*survey.Scenario]{Failure: errAPIUnavailable(), Notice: flashnotice.NoticeError(NoticeScenarioLoadFailed)}
	}
	scenario, err := e.api.NextScenario(ctx, token)
	if err != nil {
		if apperrors.Is(err, apperrors.KindConflict) {
			e.markCompleted(ctx)
			return Result[*survey.Scenario]{Completed: true, Notice: flashnotice.NoticeInfo(NoticeCompleted)}
		}
		return failed[*survey.Scenario](ctx, e, err, flashnotice.NoticeError(NoticeScenarioLoadFailed))
	}

	snap := e.update(func(s *Snapshot) {
		if current, ok := s.CurrentScenario(); ok && current.ID == scenario.ID && !s.Answered(scenario.ID) {
			s.Scenarios[s.CurrentIndex] = scenario
			if s.ShownAt.IsZero() {
				s.ShownAt = e.now()
			}
			s.ShownScenarioID = scenario.ID
			return
		}
		s.Scenarios = append(s.Scenarios, scenario)
		s.CurrentIndex = len(s.Scenarios) - 1
		if s.ShownScenarioID != scenario.ID || s.ShownAt.IsZero() {
			s.ShownAt = e.now()
		}
		s.ShownScenarioID = scenario.ID
	})
	e.saveProgress(ctx, snap)
	current, _ := snap.CurrentScenario()
	return Result[*survey.Scenario]{Value: current}
}

// SubmitResponse records a ranking for the current scenario. Response time
// is measured from when the scenario was shown; exceeding the timer marks
// the response as a timeout. Failures are returned both in the Result and
// as the error so callers can stop the participant from advancing.
func (e *Experiment) SubmitResponse(ctx context.Context, req ResponseRequest) (Result[survey.SubmitResponseOutput], error) {
	defer e.begin()()
	notice := flashnotice.NoticeError(NoticeResponseFailed)

	snap := e.Snapshot()
	if !snap.HasToken() {
		err := errNoSession()
		return Result[survey.SubmitResponseOutput]{Failure: err, Unauthorized: true}, err
	}
	scenarioID := strings.TrimSpace(req.ScenarioID)
	if scenarioID == "" {
		if current, ok := snap.CurrentScenario(); ok {
			scenarioID = current.ID
		}
	}
	if err := survey.ValidateRanking(req.Ranking); err != nil {
		err = apperrors.EK(apperrors.KindInvalidInput, "error.invalid_input", err.Error())
		return Result[survey.SubmitResponseOutput]{Failure: err, Notice: notice}, err
	}
	if e.api == nil {
		err := errAPIUnavailable()
		return Result[survey.SubmitResponseOutput]{Failure: err, Notice: notice}, err
	}

	elapsed := time.Duration(0)
	if !snap.ShownAt.IsZero() {
		elapsed = max(e.now().Sub(snap.ShownAt), 0)
	}
	in := survey.SubmitResponseInput{
		RankingOrder:   slices.Clone(req.Ranking),
		ResponseTimeMS: elapsed.Milliseconds(),
		IsTimeout:      elapsed > e.timer,
		HasInteracted:  req.HasInteracted,
	}
	out, err := e.api.SubmitResponse(ctx, snap.Token, scenarioID, in)
	if err != nil {
		return failed[survey.SubmitResponseOutput](ctx, e, err, notice), err
	}

	answer := storage.Answer{
		ID:             strings.TrimSpace(out.Response.ID),
		ScenarioID:     scenarioID,
		RankingOrder:   in.RankingOrder,
		ResponseTimeMS: in.ResponseTimeMS,
		IsTimeout:      in.IsTimeout,
		HasInteracted:  in.HasInteracted,
		RecordedAt:     e.now().UTC(),
	}
	updated := e.update(func(s *Snapshot) {
		s.AnswerCount = s.answered() + 1
		s.Answers = append(s.Answers, answer)
		s.ShownAt = time.Time{}
		s.ShownScenarioID = ""
		if out.IsComplete {
			s.Completed = true
		}
	})
	if e.progress != nil && updated.SessionKey != "" {
		if err := e.progress.AppendAnswer(ctx, updated.SessionKey, answer); err != nil {
			log.Printf("web: record answer for %s: %v", updated.SessionKey, err)
		}
	}
	e.saveProgress(ctx, updated)
	return Result[survey.SubmitResponseOutput]{
		Value:     out,
		Notice:    flashnotice.NoticeSuccess(NoticeResponseSubmitted),
		Completed: out.IsComplete,
	}, nil
}

// GetFeedback loads the closing archetype. Failures resolve to
// survey.FallbackFeedback and carry no notice.
func (e *Experiment) GetFeedback(ctx context.Context) Result[survey.Feedback] {
	defer e.begin()()
	if e.api == nil {
		return Result[survey.Feedback]{Value: survey.FallbackFeedback, Failure: errAPIUnavailable()}
	}
	feedback, err := e.api.Feedback(ctx, e.Token())
	if err != nil {
		result := failed[survey.Feedback](ctx, e, err, flashnotice.Notice{})
		result.Value = survey.FallbackFeedback
		return result
	}
	return Result[survey.Feedback]{Value: feedback}
}

// GetDashboardData loads the public aggregate statistics.
func (e *Experiment) GetDashboardData(ctx context.Context) Result[survey.DashboardStats] {
	defer e.begin()()
	notice := flashnotice.NoticeError(NoticeDashboardFailed)
	if e.api == nil {
		return Result[survey.DashboardStats]{Failure: errAPIUnavailable(), Notice: notice}
	}
	stats, err := e.api.Dashboard(ctx)
	if err != nil {
		return failed[survey.DashboardStats](ctx, e, err, notice)
	}
	return Result[survey.DashboardStats]{Value: stats, Notice: flashnotice.NoticeSuccess(NoticeDashboardLoaded)}
}

// failed builds the Result for an API failure. A 401 from any action
// clears the session.
func failed[T any](ctx context.Context, e *Experiment, err error, notice flashnotice.Notice) Result[T] {
	if apperrors.Is(err, apperrors.KindUnauthorized) {
		e.expire(ctx)
		return Result[T]{Failure: err, Unauthorized: true}
	}
	return Result[T]{Failure: err, Notice: notice}
}

func (e *Experiment) begin() func() {
	e.mu.Lock()
	e.busy++
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		e.busy--
		e.mu.Unlock()
	}
}

func (e *Experiment) setSnapshot(snap Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.snap = snap
}

func (e *Experiment) update(mutate func(*Snapshot)) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	next := e.snap.clone()
	mutate(&next)
	e.snap = next
	return next.clone()
}

// expire drops the session token and its stored progress.
func (e *Experiment) expire(ctx context.Context) {
	token := e.readToken()
	e.persisted.Clear(KeySessionToken)
	e.persisted.Clear(KeyLegacyToken)
	e.setSnapshot(Snapshot{})
	if e.progress == nil {
		clearCookieProgress(e.persisted)
		return
	}
	if token == "" {
		return
	}
	if err := e.progress.DeleteProgress(ctx, sessioncookie.SessionKey(token)); err != nil {
		log.Printf("web: drop expired progress: %v", err)
	}
}

func (e *Experiment) markCompleted(ctx context.Context) {
	snap := e.update(func(s *Snapshot) {
		s.Completed = true
	})
	e.saveProgress(ctx, snap)
}

func (e *Experiment) saveProgress(ctx context.Context, snap Snapshot) {
	if snap.SessionKey == "" {
		return
	}
	if e.progress == nil {
		saveCookieProgress(e.persisted, snap)
		return
	}
	err := e.progress.PutProgress(ctx, storage.Progress{
		SessionKey:      snap.SessionKey,
		Demographic:     snap.Demographic,
		SelfReportedNew: snap.SelfReportedNew,
		Scenarios:       snap.Scenarios,
		CurrentIndex:    snap.CurrentIndex,
		Completed:       snap.Completed,
		ShownAt:         snap.ShownAt,
		UpdatedAt:       e.now().UTC(),
	})
	if err != nil {
		log.Printf("web: save progress for %s: %v", snap.SessionKey, err)
	}
}

func errNoSession() error {
	return apperrors.E(apperrors.KindUnauthorized, "session token is required")
}

func errAPIUnavailable() error {
	return apperrors.E(apperrors.KindUnavailable, "survey api is not configured")
}
