// Package cache wires the web SQLite store and the cached dashboard read.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	webstorage "github.com/direwen/dilemma-web/internal/services/web/storage"
	websqlite "github.com/direwen/dilemma-web/internal/services/web/storage/sqlite"
	"github.com/direwen/dilemma-web/internal/survey"
)

const (
	dashboardCacheKey   = "dashboard:public"
	dashboardCacheScope = "dashboard"

	// DefaultDashboardTTL is how long dashboard statistics are reused.
	DefaultDashboardTTL = time.Minute

	// refreshTimeout bounds one shared refresh, which outlives the caller
	// that started it.
	refreshTimeout = 30 * time.Second
)

// OpenStore opens the web store when a storage path is provided.
func OpenStore(path string) (*websqlite.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create web store dir: %w", err)
		}
	}
	store, err := websqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open web sqlite store: %w", err)
	}
	return store, nil
}

// DashboardSource loads fresh dashboard statistics.
type DashboardSource interface {
	Dashboard(ctx context.Context) (survey.DashboardStats, error)
}

// Dashboard serves dashboard statistics from the cache store while fresh
// and collapses concurrent refreshes into one upstream call.
type Dashboard struct {
	source DashboardSource
	store  webstorage.CacheStore
	ttl    time.Duration
	now    func() time.Time
	group  singleflight.Group
}

// NewDashboard builds a cached dashboard reader. A nil store disables
// caching; a non-positive ttl uses DefaultDashboardTTL.
func NewDashboard(source DashboardSource, store webstorage.CacheStore, ttl time.Duration) *Dashboard {
	if ttl <= 0 {
		ttl = DefaultDashboardTTL
	}
	return &Dashboard{source: source, store: store, ttl: ttl, now: time.Now}
}

// Dashboard returns cached statistics or refreshes them from the source.
// Cancelling ctx abandons the wait but not a refresh other callers share.
func (d *Dashboard) Dashboard(ctx context.Context) (survey.DashboardStats, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if stats, ok := d.cached(ctx); ok {
		return stats, nil
	}
	flight := d.group.DoChan(dashboardCacheKey, func() (any, error) {
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		if stats, ok := d.cached(refreshCtx); ok {
			return stats, nil
		}
		stats, err := d.source.Dashboard(refreshCtx)
		if err != nil {
			return survey.DashboardStats{}, err
		}
		d.put(refreshCtx, stats)
		return stats, nil
	})
	select {
	case <-ctx.Done():
		return survey.DashboardStats{}, ctx.Err()
	case result := <-flight:
		if result.Err != nil {
			return survey.DashboardStats{}, result.Err
		}
		return result.Val.(survey.DashboardStats), nil
	}
}

// Invalidate drops cached statistics.
func (d *Dashboard) Invalidate(ctx context.Context) {
	if d.store == nil {
		return
	}
	if err := d.store.DeleteCacheEntry(ctx, dashboardCacheKey); err != nil {
		log.Printf("web: invalidate dashboard cache: %v", err)
	}
}

func (d *Dashboard) cached(ctx context.Context) (survey.DashboardStats, bool) {
	if d.store == nil {
		return survey.DashboardStats{}, false
	}
	entry, ok, err := d.store.GetCacheEntry(ctx, dashboardCacheKey)
	if err != nil || !ok || !entry.Fresh(d.now()) {
		return survey.DashboardStats{}, false
	}
	var stats survey.DashboardStats
	if err := json.Unmarshal(entry.PayloadBytes, &stats); err != nil {
		d.Invalidate(ctx)
		return survey.DashboardStats{}, false
	}
	return stats, true
}

func (d *Dashboard) put(ctx context.Context, stats survey.DashboardStats) {
	if d.store == nil {
		return
	}
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	now := d.now().UTC()
	err = d.store.PutCacheEntry(ctx, webstorage.CacheEntry{
		CacheKey:     dashboardCacheKey,
		Scope:        dashboardCacheScope,
		PayloadBytes: payload,
		CheckedAt:    now,
		ExpiresAt:    now.Add(d.ttl),
	})
	if err != nil {
		log.Printf("web: store dashboard cache: %v", err)
	}
}
