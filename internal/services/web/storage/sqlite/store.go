package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	sqlitemigrate "github.com/direwen/dilemma-web/internal/platform/storage/sqlitemigrate"
	webstorage "github.com/direwen/dilemma-web/internal/services/web/storage"
	"github.com/direwen/dilemma-web/internal/services/web/storage/sqlite/migrations"
	"github.com/direwen/dilemma-web/internal/survey"
)

// Store provides SQLite-backed persistence for web progress and cache data.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens and migrates a web SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB, now: time.Now}
	if err := store.runMigrations(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetProgress loads one session's progress with its answers in submission order.
func (s *Store) GetProgress(ctx context.Context, sessionKey string) (webstorage.Progress, bool, error) {
	if s == nil || s.sqlDB == nil {
		return webstorage.Progress{}, false, fmt.Errorf("storage is not configured")
	}
	sessionKey = strings.TrimSpace(sessionKey)
	if sessionKey == "" {
		return webstorage.Progress{}, false, fmt.Errorf("session key is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT session_key, self_reported_new, demographic_json, scenarios_json, current_index, completed, shown_at, updated_at
		 FROM progress
		 WHERE session_key = ?`,
		sessionKey,
	)

	var progress webstorage.Progress
	var selfReportedNew int64
	var demographicJSON []byte
	var scenariosJSON []byte
	var completed int64
	var shownAt int64
	var updatedAt int64
	if err := row.Scan(
		&progress.SessionKey,
		&selfReportedNew,
		&demographicJSON,
		&scenariosJSON,
		&progress.CurrentIndex,
		&completed,
		&shownAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return webstorage.Progress{}, false, nil
		}
		return webstorage.Progress{}, false, fmt.Errorf("get progress: %w", err)
	}
	if err := json.Unmarshal(demographicJSON, &progress.Demographic); err != nil {
		return webstorage.Progress{}, false, fmt.Errorf("decode progress demographic: %w", err)
	}
	if err := json.Unmarshal(scenariosJSON, &progress.Scenarios); err != nil {
		return webstorage.Progress{}, false, fmt.Errorf("decode progress scenarios: %w", err)
	}
	progress.SelfReportedNew = selfReportedNew != 0
	progress.Completed = completed != 0
	progress.ShownAt = unixMillisToTime(shownAt)
	progress.UpdatedAt = unixMillisToTime(updatedAt)

	answers, err := s.listAnswers(ctx, sessionKey)
	if err != nil {
		return webstorage.Progress{}, false, err
	}
	progress.Answers = answers
	return progress, true, nil
}

func (s *Store) listAnswers(ctx context.Context, sessionKey string) ([]webstorage.Answer, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, scenario_id, ranking_json, response_time_ms, is_timeout, has_interacted, recorded_at
		 FROM answers
		 WHERE session_key = ?
		 ORDER BY recorded_at, rowid`,
		sessionKey,
	)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	answers := make([]webstorage.Answer, 0)
	for rows.Next() {
		var answer webstorage.Answer
		var rankingJSON []byte
		var isTimeout int64
		var hasInteracted int64
		var recordedAt int64
		if err := rows.Scan(
			&answer.ID,
			&answer.ScenarioID,
			&rankingJSON,
			&answer.ResponseTimeMS,
			&isTimeout,
			&hasInteracted,
			&recordedAt,
		); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		if err := json.Unmarshal(rankingJSON, &answer.RankingOrder); err != nil {
			return nil, fmt.Errorf("decode answer ranking: %w", err)
		}
		answer.IsTimeout = isTimeout != 0
		answer.HasInteracted = hasInteracted != 0
		answer.RecordedAt = unixMillisToTime(recordedAt)
		answers = append(answers, answer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answers: %w", err)
	}
	return answers, nil
}

// PutProgress upserts session progress. Answers are written separately
// through AppendAnswer and are not touched here.
func (s *Store) PutProgress(ctx context.Context, progress webstorage.Progress) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	progress.SessionKey = strings.TrimSpace(progress.SessionKey)
	if progress.SessionKey == "" {
		return fmt.Errorf("session key is required")
	}
	if progress.CurrentIndex < 0 {
		return fmt.Errorf("current index must not be negative")
	}
	scenarios := progress.Scenarios
	if scenarios == nil {
		scenarios = []survey.Scenario{}
	}
	demographicJSON, err := json.Marshal(progress.Demographic)
	if err != nil {
		return fmt.Errorf("encode progress demographic: %w", err)
	}
	scenariosJSON, err := json.Marshal(scenarios)
	if err != nil {
		return fmt.Errorf("encode progress scenarios: %w", err)
	}
	if progress.UpdatedAt.IsZero() {
		progress.UpdatedAt = s.now().UTC()
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO progress (
		    session_key, self_reported_new, demographic_json, scenarios_json, current_index, completed, shown_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_key) DO UPDATE SET
		    self_reported_new = excluded.self_reported_new,
		    demographic_json = excluded.demographic_json,
		    scenarios_json = excluded.scenarios_json,
		    current_index = excluded.current_index,
		    completed = excluded.completed,
		    shown_at = excluded.shown_at,
		    updated_at = excluded.updated_at`,
		progress.SessionKey,
		boolToInt(progress.SelfReportedNew),
		demographicJSON,
		scenariosJSON,
		progress.CurrentIndex,
		boolToInt(progress.Completed),
		timeToUnixMillis(progress.ShownAt),
		timeToUnixMillis(progress.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put progress: %w", err)
	}
	return nil
}

// AppendAnswer records one submitted ranking for an existing session.
func (s *Store) AppendAnswer(ctx context.Context, sessionKey string, answer webstorage.Answer) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	sessionKey = strings.TrimSpace(sessionKey)
	if sessionKey == "" {
		return fmt.Errorf("session key is required")
	}
	answer.ScenarioID = strings.TrimSpace(answer.ScenarioID)
	if answer.ScenarioID == "" {
		return fmt.Errorf("scenario id is required")
	}
	if strings.TrimSpace(answer.ID) == "" {
		answer.ID = uuid.NewString()
	}
	if answer.RecordedAt.IsZero() {
		answer.RecordedAt = s.now().UTC()
	}
	rankingJSON, err := json.Marshal(answer.RankingOrder)
	if err != nil {
		return fmt.Errorf("encode answer ranking: %w", err)
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO answers (
		    id, session_key, scenario_id, ranking_json, response_time_ms, is_timeout, has_interacted, recorded_at
		 )
		 SELECT ?, session_key, ?, ?, ?, ?, ?, ?
		 FROM progress
		 WHERE session_key = ?`,
		answer.ID,
		answer.ScenarioID,
		rankingJSON,
		answer.ResponseTimeMS,
		boolToInt(answer.IsTimeout),
		boolToInt(answer.HasInteracted),
		timeToUnixMillis(answer.RecordedAt),
		sessionKey,
	)
	if err != nil {
		return fmt.Errorf("append answer: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("append answer: no progress for session %q", sessionKey)
	}
	return nil
}

// DeleteProgress removes a session's progress and answers.
func (s *Store) DeleteProgress(ctx context.Context, sessionKey string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	sessionKey = strings.TrimSpace(sessionKey)
	if sessionKey == "" {
		return fmt.Errorf("session key is required")
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete progress: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM answers WHERE session_key = ?`, sessionKey); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete answers: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM progress WHERE session_key = ?`, sessionKey); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete progress: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete progress: %w", err)
	}
	return nil
}

// GetCacheEntry loads a cache payload and metadata by key.
func (s *Store) GetCacheEntry(ctx context.Context, cacheKey string) (webstorage.CacheEntry, bool, error) {
	if s == nil || s.sqlDB == nil {
		return webstorage.CacheEntry{}, false, fmt.Errorf("storage is not configured")
	}
	cacheKey = strings.TrimSpace(cacheKey)
	if cacheKey == "" {
		return webstorage.CacheEntry{}, false, fmt.Errorf("cache key is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT cache_key, scope, payload_json, checked_at, expires_at
		 FROM cache_entries
		 WHERE cache_key = ?`,
		cacheKey,
	)

	var entry webstorage.CacheEntry
	var checkedAt int64
	var expiresAt int64
	if err := row.Scan(&entry.CacheKey, &entry.Scope, &entry.PayloadBytes, &checkedAt, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return webstorage.CacheEntry{}, false, nil
		}
		return webstorage.CacheEntry{}, false, fmt.Errorf("get cache entry: %w", err)
	}
	entry.CheckedAt = unixMillisToTime(checkedAt)
	entry.ExpiresAt = unixMillisToTime(expiresAt)
	return entry, true, nil
}

// PutCacheEntry upserts a cache payload and metadata by key.
func (s *Store) PutCacheEntry(ctx context.Context, entry webstorage.CacheEntry) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	entry.CacheKey = strings.TrimSpace(entry.CacheKey)
	if entry.CacheKey == "" {
		return fmt.Errorf("cache key is required")
	}
	entry.Scope = strings.TrimSpace(entry.Scope)
	if entry.Scope == "" {
		return fmt.Errorf("cache scope is required")
	}
	if len(entry.PayloadBytes) == 0 {
		return fmt.Errorf("cache payload is required")
	}
	if entry.CheckedAt.IsZero() {
		entry.CheckedAt = s.now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO cache_entries (cache_key, scope, payload_json, checked_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
		    scope = excluded.scope,
		    payload_json = excluded.payload_json,
		    checked_at = excluded.checked_at,
		    expires_at = excluded.expires_at`,
		entry.CacheKey,
		entry.Scope,
		entry.PayloadBytes,
		timeToUnixMillis(entry.CheckedAt),
		timeToUnixMillis(entry.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("put cache entry: %w", err)
	}
	return nil
}

// DeleteCacheEntry removes a cache entry by key.
func (s *Store) DeleteCacheEntry(ctx context.Context, cacheKey string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	cacheKey = strings.TrimSpace(cacheKey)
	if cacheKey == "" {
		return fmt.Errorf("cache key is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM cache_entries WHERE cache_key = ?`, cacheKey); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

// runMigrations applies embedded SQL migrations in filename order.
func (s *Store) runMigrations() error {
	return sqlitemigrate.Apply(context.Background(), s.sqlDB, migrations.FS)
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

var _ webstorage.Store = (*Store)(nil)
