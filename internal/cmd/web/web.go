// Package web parses web service flags and launches the service.
package web

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/direwen/dilemma-web/internal/platform/cmd"
	"github.com/direwen/dilemma-web/internal/services/web"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr            string        `env:"DILEMMA_WEB_HTTP_ADDR" envDefault:"localhost:3000"`
	APIBaseURL          string        `env:"DILEMMA_WEB_API_BASE_URL" envDefault:"http://localhost:8080"`
	APITimeout          time.Duration `env:"DILEMMA_WEB_API_TIMEOUT" envDefault:"10s"`
	DBPath              string        `env:"DILEMMA_WEB_DB_PATH" envDefault:"data/web.db"`
	DashboardTTL        time.Duration `env:"DILEMMA_WEB_DASHBOARD_TTL" envDefault:"1m"`
	TimerSeconds        int           `env:"DILEMMA_WEB_TIMER_SECONDS" envDefault:"20"`
	TridentZoneDistance int           `env:"DILEMMA_WEB_TRIDENT_ZONE_DISTANCE" envDefault:"1"`
	TrustForwardedProto bool          `env:"DILEMMA_WEB_TRUST_FORWARDED_PROTO" envDefault:"false"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "Survey API base URL")
	fs.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "Timeout for one survey API call")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite path for progress and cache; empty keeps progress in cookies")
	fs.DurationVar(&cfg.DashboardTTL, "dashboard-ttl", cfg.DashboardTTL, "How long dashboard statistics are cached")
	fs.IntVar(&cfg.TimerSeconds, "timer-seconds", cfg.TimerSeconds, "Seconds a participant has per scenario")
	fs.IntVar(&cfg.TridentZoneDistance, "trident-zone-distance", cfg.TridentZoneDistance, "Cells between the ego vehicle and the trident zones")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Trust X-Forwarded-Proto when checking request origin")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			APIBaseURL:          cfg.APIBaseURL,
			APITimeout:          cfg.APITimeout,
			DBPath:              cfg.DBPath,
			DashboardTTL:        cfg.DashboardTTL,
			TimerSeconds:        cfg.TimerSeconds,
			TridentZoneDistance: cfg.TridentZoneDistance,
			TrustForwardedProto: cfg.TrustForwardedProto,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
