// Package surveyapi is the HTTP client for the survey backend. Every
// endpoint answers with a {success, message, data, error} envelope.
package surveyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	apperrors "github.com/direwen/dilemma-web/internal/services/web/platform/errors"
	"github.com/direwen/dilemma-web/internal/survey"
)

const (
	sessionsPath     = "/api/v1/sessions"
	nextScenarioPath = "/api/v1/scenarios/next"
	feedbackPath     = "/api/v1/sessions/feedback"
	dashboardPath    = "/api/v1/dashboard"

	// DefaultTimeout bounds one API round trip.
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 4 << 20
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
}

// detail returns the most specific failure text the envelope carries.
func (e envelope) detail() string {
	if len(e.Error) > 0 {
		var text string
		if err := json.Unmarshal(e.Error, &text); err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
		var object struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(e.Error, &object); err == nil && strings.TrimSpace(object.Message) != "" {
			return strings.TrimSpace(object.Message)
		}
	}
	return strings.TrimSpace(e.Message)
}

// Client calls the survey API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates a client for baseURL. A nil httpClient gets a traced
// transport; a non-positive timeout uses DefaultTimeout.
func NewClient(baseURL string, httpClient *http.Client, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("survey api base url is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse survey api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("survey api base url must be http or https, got %q", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{baseURL: strings.TrimRight(parsed.String(), "/"), httpClient: httpClient, timeout: timeout}, nil
}

// CreateSession registers a participant and returns the issued token.
func (c *Client) CreateSession(ctx context.Context, in survey.CreateSessionInput) (survey.CreateSessionOutput, error) {
	var out survey.CreateSessionOutput
	if err := c.do(ctx, http.MethodPost, sessionsPath, "", in, &out); err != nil {
		return survey.CreateSessionOutput{}, err
	}
	if strings.TrimSpace(out.Token) == "" {
		return survey.CreateSessionOutput{}, apperrors.E(apperrors.KindUnknown, "survey api returned an empty session token")
	}
	return out, nil
}

// NextScenario loads the next scenario for the session.
func (c *Client) NextScenario(ctx context.Context, token string) (survey.Scenario, error) {
	var out survey.Scenario
	if err := c.do(ctx, http.MethodGet, nextScenarioPath, token, nil, &out); err != nil {
		return survey.Scenario{}, err
	}
	return out, nil
}

// SubmitResponse records a ranking for one scenario.
func (c *Client) SubmitResponse(ctx context.Context, token string, scenarioID string, in survey.SubmitResponseInput) (survey.SubmitResponseOutput, error) {
	scenarioID = strings.TrimSpace(scenarioID)
	if scenarioID == "" {
		return survey.SubmitResponseOutput{}, apperrors.E(apperrors.KindInvalidInput, "scenario id is required")
	}
	path := "/api/v1/scenarios/" + url.PathEscape(scenarioID) + "/responses"
	var out survey.SubmitResponseOutput
	if err := c.do(ctx, http.MethodPost, path, token, in, &out); err != nil {
		return survey.SubmitResponseOutput{}, err
	}
	return out, nil
}

// Feedback loads the participant's closing archetype.
func (c *Client) Feedback(ctx context.Context, token string) (survey.Feedback, error) {
	var out survey.Feedback
	if err := c.do(ctx, http.MethodGet, feedbackPath, token, nil, &out); err != nil {
		return survey.Feedback{}, err
	}
	return out, nil
}

// Dashboard loads the public aggregate statistics.
func (c *Client) Dashboard(ctx context.Context) (survey.DashboardStats, error) {
	var out survey.DashboardStats
	if err := c.do(ctx, http.MethodGet, dashboardPath, "", nil, &out); err != nil {
		return survey.DashboardStats{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method string, path string, token string, body any, out any) error {
	if c == nil {
		return apperrors.E(apperrors.KindUnavailable, "survey api is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token = strings.TrimSpace(token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, fmt.Sprintf("%s %s", method, path), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, fmt.Sprintf("read %s %s", method, path), err)
	}
	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= http.StatusBadRequest {
		message := env.detail()
		if decodeErr != nil || message == "" {
			message = resp.Status
		}
		return apperrors.E(apperrors.KindForStatus(resp.StatusCode), message)
	}
	if decodeErr != nil {
		return apperrors.Wrap(apperrors.KindUnknown, fmt.Sprintf("decode %s %s", method, path), decodeErr)
	}
	if !env.Success {
		message := env.detail()
		if message == "" {
			message = "survey api reported failure"
		}
		return apperrors.E(apperrors.KindBusiness, message)
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apperrors.Wrap(apperrors.KindUnknown, fmt.Sprintf("decode %s %s data", method, path), err)
	}
	return nil
}
