// Package fingerprint derives a coarse visitor identifier from request
// headers. It is a duplicate-participation signal, not an identity.
package fingerprint

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

var signalHeaders = []string{
	"User-Agent",
	"Accept-Language",
	"Accept-Encoding",
	"Sec-CH-UA",
	"Sec-CH-UA-Platform",
	"Sec-CH-UA-Mobile",
}

// VisitorID hashes stable browser headers into a hex id. Requests without
// any signal header get a random id, which callers persist.
func VisitorID(r *http.Request) string {
	if r == nil {
		return uuid.NewString()
	}
	digest := xxhash.New()
	seen := false
	for _, name := range signalHeaders {
		value := strings.TrimSpace(r.Header.Get(name))
		if value == "" {
			continue
		}
		seen = true
		_, _ = digest.WriteString(strings.ToLower(name))
		_, _ = digest.WriteString("=")
		_, _ = digest.WriteString(value)
		_, _ = digest.WriteString("\n")
	}
	if !seen {
		return uuid.NewString()
	}
	return fmt.Sprintf("%016x", digest.Sum64())
}
