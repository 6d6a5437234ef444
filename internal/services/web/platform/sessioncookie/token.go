package sessioncookie

import (
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the session token fields the web tier reads. The token is
// signed by the survey API; the web tier never verifies the signature and
// uses these values only for routing decisions.
type TokenClaims struct {
	SessionID string `json:"id"`
	jwt.RegisteredClaims
}

// InspectToken decodes token claims without verifying the signature.
func InspectToken(raw string) (TokenClaims, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TokenClaims{}, false
	}
	var claims TokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return TokenClaims{}, false
	}
	return claims, true
}

// Expired reports whether a token carries an expiry at or before now.
// Opaque tokens without readable claims never expire locally.
func Expired(raw string, now time.Time) bool {
	claims, ok := InspectToken(raw)
	if !ok || claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}

// SessionKey returns the storage key for a session token. The key hashes the
// whole token, signature included, so unverified claims never select rows.
func SessionKey(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	return fmt.Sprintf("tok:%016x", xxhash.Sum64String(raw))
}
