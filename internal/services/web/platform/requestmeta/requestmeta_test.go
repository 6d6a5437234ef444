package requestmeta

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHasSameOriginProofWithPolicy(t *testing.T) {
	t.Parallel()

	newReq := func(target string, headers map[string]string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, target, nil)
		req.Host = "survey.example.test"
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return req
	}

	tests := []struct {
		name   string
		req    *http.Request
		policy SchemePolicy
		want   bool
	}{
		{
			name: "origin matches",
			req:  newReq("https://survey.example.test/experiment/responses", map[string]string{"Origin": "https://survey.example.test"}),
			want: true,
		},
		{
			name: "referer used when origin missing",
			req:  newReq("https://survey.example.test/experiment/responses", map[string]string{"Referer": "https://survey.example.test/experiment"}),
			want: true,
		},
		{
			name: "explicit default port matches",
			req:  newReq("https://survey.example.test/experiment/responses", map[string]string{"Origin": "https://survey.example.test:443"}),
			want: true,
		},
		{
			name: "foreign host rejected",
			req:  newReq("https://survey.example.test/experiment/responses", map[string]string{"Origin": "https://evil.example.test"}),
			want: false,
		},
		{
			name: "scheme mismatch rejected",
			req:  newReq("https://survey.example.test/experiment/responses", map[string]string{"Origin": "http://survey.example.test"}),
			want: false,
		},
		{
			name: "no proof headers",
			req:  newReq("https://survey.example.test/experiment/responses", nil),
			want: false,
		},
		{
			name:   "untrusted forwarded proto ignored",
			req:    newReq("https://survey.example.test/experiment/responses", map[string]string{"Origin": "http://survey.example.test", "X-Forwarded-Proto": "http"}),
			policy: SchemePolicy{},
			want:   false,
		},
		{
			name:   "trusted forwarded proto used",
			req:    newReq("https://survey.example.test/experiment/responses", map[string]string{"Origin": "http://survey.example.test", "X-Forwarded-Proto": "http"}),
			policy: SchemePolicy{TrustForwardedProto: true},
			want:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := HasSameOriginProofWithPolicy(tc.req, tc.policy); got != tc.want {
				t.Fatalf("HasSameOriginProofWithPolicy() = %v, want %v", got, tc.want)
			}
		})
	}
	if HasSameOriginProofWithPolicy(nil, SchemePolicy{}) {
		t.Fatalf("HasSameOriginProofWithPolicy(nil) = true, want false")
	}
}

func TestIsHTTPS(t *testing.T) {
	t.Parallel()

	plain := httptest.NewRequest(http.MethodGet, "/", nil)
	plain.URL.Scheme = ""
	if IsHTTPS(plain) {
		t.Fatalf("IsHTTPS(plain) = true, want false")
	}

	withTLS := httptest.NewRequest(http.MethodGet, "/", nil)
	withTLS.URL.Scheme = ""
	withTLS.TLS = &tls.ConnectionState{}
	if !IsHTTPS(withTLS) {
		t.Fatalf("IsHTTPS(tls) = false, want true")
	}

	forwarded := httptest.NewRequest(http.MethodGet, "/", nil)
	forwarded.URL.Scheme = ""
	forwarded.Header.Set("X-Forwarded-Proto", "https")
	if IsHTTPS(forwarded) {
		t.Fatalf("IsHTTPS(untrusted forwarded) = true, want false")
	}
	if !IsHTTPSWithPolicy(forwarded, SchemePolicy{TrustForwardedProto: true}) {
		t.Fatalf("IsHTTPSWithPolicy(trusted forwarded) = false, want true")
	}
}
