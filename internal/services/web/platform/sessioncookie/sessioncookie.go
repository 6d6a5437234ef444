// Package sessioncookie centralizes participant session cookie behavior.
package sessioncookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/direwen/dilemma-web/internal/services/web/platform/requestmeta"
)

const (
	// Name is the canonical session token cookie.
	Name = "session_token"
	// LegacyName is the bare token cookie some API clients still set.
	LegacyName = "token"
	// FingerprintName stores the visitor fingerprint.
	FingerprintName = "fingerprint"
)

// SessionMaxAge is how long an issued session token is kept.
const SessionMaxAge = 4 * time.Hour

// Read returns the trimmed session token, falling back to the legacy cookie.
func Read(r *http.Request) (string, bool) {
	for _, name := range []string{Name, LegacyName} {
		if value, ok := readCookie(r, name); ok {
			return value, true
		}
	}
	return "", false
}

func readCookie(r *http.Request, name string) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Jar is a request-scoped key/value view over cookies. Writes are visible
// to later reads through the same Jar and are emitted as Set-Cookie headers.
type Jar struct {
	w       http.ResponseWriter
	r       *http.Request
	policy  requestmeta.SchemePolicy
	pending map[string]*string
}

// NewJar returns a cookie jar bound to one request/response pair.
func NewJar(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) *Jar {
	return &Jar{w: w, r: r, policy: policy, pending: make(map[string]*string)}
}

// Get returns a cookie value, honoring writes made through this jar.
func (j *Jar) Get(key string) (string, bool) {
	if j == nil {
		return "", false
	}
	if value, ok := j.pending[key]; ok {
		if value == nil {
			return "", false
		}
		return *value, true
	}
	return readCookie(j.r, key)
}

// Set writes a cookie. A non-positive maxAge makes it a browser-session cookie.
func (j *Jar) Set(key string, value string, maxAge time.Duration) {
	if j == nil {
		return
	}
	value = strings.TrimSpace(value)
	if value == "" {
		j.Clear(key)
		return
	}
	j.pending[key] = &value
	if j.w == nil {
		return
	}
	cookie := j.cookie(key, value)
	if maxAge > 0 {
		cookie.MaxAge = int(maxAge / time.Second)
		cookie.Expires = time.Now().Add(maxAge).UTC()
	}
	http.SetCookie(j.w, cookie)
}

// Clear expires a cookie.
func (j *Jar) Clear(key string) {
	if j == nil {
		return
	}
	j.pending[key] = nil
	if j.w == nil {
		return
	}
	cookie := j.cookie(key, "")
	cookie.MaxAge = -1
	http.SetCookie(j.w, cookie)
}

func (j *Jar) cookie(key string, value string) *http.Cookie {
	return &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPSWithPolicy(j.r, j.policy),
		SameSite: http.SameSiteLaxMode,
	}
}
