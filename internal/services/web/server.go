package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/direwen/dilemma-web/internal/platform/timeouts"
	webapp "github.com/direwen/dilemma-web/internal/services/web/app"
	"github.com/direwen/dilemma-web/internal/services/web/integration/cache"
	"github.com/direwen/dilemma-web/internal/services/web/integration/surveyapi"
	"github.com/direwen/dilemma-web/internal/services/web/modules"
	"github.com/direwen/dilemma-web/internal/services/web/platform/httpx"
	"github.com/direwen/dilemma-web/internal/services/web/platform/observability"
	"github.com/direwen/dilemma-web/internal/services/web/platform/requestmeta"
	"github.com/direwen/dilemma-web/internal/services/web/routepath"
	"github.com/direwen/dilemma-web/internal/services/web/state"
	webstatic "github.com/direwen/dilemma-web/internal/services/web/static"
	webstorage "github.com/direwen/dilemma-web/internal/services/web/storage"
	"github.com/direwen/dilemma-web/internal/survey"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr   string
	APIBaseURL string
	APITimeout time.Duration
	// HTTPClient overrides the traced default client used for survey API calls.
	HTTPClient          *http.Client
	DBPath              string
	DashboardTTL        time.Duration
	TimerSeconds        int
	TridentZoneDistance int
	TrustForwardedProto bool
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      webstorage.Store
}

// cachedSurveyAPI serves dashboard reads through the cache and drops cached
// statistics once a participant completes the experiment.
type cachedSurveyAPI struct {
	state.SurveyAPI
	dashboard *cache.Dashboard
}

func (a cachedSurveyAPI) Dashboard(ctx context.Context) (survey.DashboardStats, error) {
	return a.dashboard.Dashboard(ctx)
}

func (a cachedSurveyAPI) SubmitResponse(ctx context.Context, token string, scenarioID string, in survey.SubmitResponseInput) (survey.SubmitResponseOutput, error) {
	out, err := a.SurveyAPI.SubmitResponse(ctx, token, scenarioID, in)
	if err == nil && out.IsComplete {
		a.dashboard.Invalidate(ctx)
	}
	return out, err
}

// NewHandler builds the root handler. store is optional; without it progress
// is kept in per-key cookies and dashboard reads are not cached.
func NewHandler(cfg Config, store webstorage.Store) (http.Handler, error) {
	client, err := surveyapi.NewClient(cfg.APIBaseURL, cfg.HTTPClient, cfg.APITimeout)
	if err != nil {
		return nil, fmt.Errorf("build survey api client: %w", err)
	}
	var (
		progress   webstorage.ProgressStore
		cacheStore webstorage.CacheStore
	)
	if store != nil {
		progress = store
		cacheStore = store
	}
	factory := state.Factory{
		API: cachedSurveyAPI{
			SurveyAPI: client,
			dashboard: cache.NewDashboard(client, cacheStore, cfg.DashboardTTL),
		},
		Progress:     progress,
		TimerSeconds: cfg.TimerSeconds,
		Policy:       requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
	}
	h, err := webapp.BuildRootHandler(webapp.Config{
		Modules: modules.DefaultModules(modules.Dependencies{
			Experiments:      factory,
			ApproachDistance: cfg.TridentZoneDistance,
		}),
		Experiments: factory,
	})
	if err != nil {
		return nil, err
	}
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(webstatic.FS))))
	rootMux.Handle(routepath.Root, h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.RequestLogger(log.Default()),
		tracing(),
	), nil
}

func tracing() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "web",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + routepath.Normalize(r.URL.Path)
			}),
		)
	}
}

// NewServer validates config, opens the web store and constructs a server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	sqliteStore, err := cache.OpenStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	var store webstorage.Store
	if sqliteStore != nil {
		store = sqliteStore
	}
	handler, err := NewHandler(cfg, store)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		store:    store,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("web: close store: %v", err)
		}
	}
}
