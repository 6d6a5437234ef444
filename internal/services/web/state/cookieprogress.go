package state

import (
	"strconv"
	"strings"
	"time"

	"github.com/direwen/dilemma-web/internal/services/web/platform/sessioncookie"
)

// Persisted progress keys used when no progress store is configured.
const (
	KeyShownScenario = "dw_scenario"
	KeyShownAt       = "dw_shown_at"
	KeyAnswerCount   = "dw_answers"
	KeyNewcomer      = "dw_newcomer"
	KeyCompleted     = "dw_completed"
)

var cookieProgressKeys = []string{KeyShownScenario, KeyShownAt, KeyAnswerCount, KeyNewcomer, KeyCompleted}

// loadCookieProgress restores the per-key progress written by saveCookieProgress.
func loadCookieProgress(persisted PersistedState, snap *Snapshot) {
	if value, ok := persisted.Get(KeyShownScenario); ok {
		snap.ShownScenarioID = strings.TrimSpace(value)
	}
	if value, ok := persisted.Get(KeyShownAt); ok {
		if millis, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil && millis > 0 {
			snap.ShownAt = time.UnixMilli(millis).UTC()
		}
	}
	if snap.ShownScenarioID == "" {
		snap.ShownAt = time.Time{}
	}
	if value, ok := persisted.Get(KeyAnswerCount); ok {
		if count, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && count > 0 {
			snap.AnswerCount = count
		}
	}
	snap.SelfReportedNew = flagSet(persisted, KeyNewcomer)
	snap.Completed = flagSet(persisted, KeyCompleted)
}

func saveCookieProgress(persisted PersistedState, snap Snapshot) {
	maxAge := sessioncookie.SessionMaxAge
	if snap.ShownScenarioID != "" && !snap.ShownAt.IsZero() {
		persisted.Set(KeyShownScenario, snap.ShownScenarioID, maxAge)
		persisted.Set(KeyShownAt, strconv.FormatInt(snap.ShownAt.UnixMilli(), 10), maxAge)
	} else {
		persisted.Clear(KeyShownScenario)
		persisted.Clear(KeyShownAt)
	}
	if count := snap.answered(); count > 0 {
		persisted.Set(KeyAnswerCount, strconv.Itoa(count), maxAge)
	} else {
		persisted.Clear(KeyAnswerCount)
	}
	setFlag(persisted, KeyNewcomer, snap.SelfReportedNew)
	setFlag(persisted, KeyCompleted, snap.Completed)
}

func clearCookieProgress(persisted PersistedState) {
	for _, key := range cookieProgressKeys {
		persisted.Clear(key)
	}
}

func flagSet(persisted PersistedState, key string) bool {
	value, ok := persisted.Get(key)
	return ok && strings.TrimSpace(value) == "1"
}

func setFlag(persisted PersistedState, key string, on bool) {
	if on {
		persisted.Set(key, "1", sessioncookie.SessionMaxAge)
		return
	}
	persisted.Clear(key)
}
