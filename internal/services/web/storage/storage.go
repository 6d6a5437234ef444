package storage

import (
	"context"
	"time"

	"github.com/direwen/dilemma-web/internal/survey"
)

// CacheEntry stores one web cache payload and freshness metadata.
type CacheEntry struct {
	CacheKey     string
	Scope        string
	PayloadBytes []byte
	CheckedAt    time.Time
	ExpiresAt    time.Time
}

// Fresh reports whether the entry can still be served at now.
func (e CacheEntry) Fresh(now time.Time) bool {
	if len(e.PayloadBytes) == 0 {
		return false
	}
	return e.ExpiresAt.IsZero() || now.Before(e.ExpiresAt)
}

// Answer is one ranking the participant submitted.
type Answer struct {
	ID             string
	ScenarioID     string
	RankingOrder   []survey.Outcome
	ResponseTimeMS int64
	IsTimeout      bool
	HasInteracted  bool
	RecordedAt     time.Time
}

// Progress is the web-side record of one participant session.
type Progress struct {
	SessionKey      string
	Demographic     survey.Demographic
	SelfReportedNew bool
	Scenarios       []survey.Scenario
	CurrentIndex    int
	Answers         []Answer
	Completed       bool
	ShownAt         time.Time
	UpdatedAt       time.Time
}

// CurrentScenario returns the scenario at the current index.
func (p Progress) CurrentScenario() (*survey.Scenario, bool) {
	if p.CurrentIndex < 0 || p.CurrentIndex >= len(p.Scenarios) {
		return nil, false
	}
	return &p.Scenarios[p.CurrentIndex], true
}

// ProgressStore persists experiment progress keyed by session.
type ProgressStore interface {
	GetProgress(ctx context.Context, sessionKey string) (Progress, bool, error)
	PutProgress(ctx context.Context, progress Progress) error
	AppendAnswer(ctx context.Context, sessionKey string, answer Answer) error
	DeleteProgress(ctx context.Context, sessionKey string) error
}

// CacheStore persists derived payloads with an expiry.
type CacheStore interface {
	GetCacheEntry(ctx context.Context, cacheKey string) (CacheEntry, bool, error)
	PutCacheEntry(ctx context.Context, entry CacheEntry) error
	DeleteCacheEntry(ctx context.Context, cacheKey string) error
}

// Store is the full web persistence contract.
type Store interface {
	ProgressStore
	CacheStore
	Close() error
}
