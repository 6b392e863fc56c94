package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		headers    map[string]string
		remote     string
		want       string
	}{
		{"cloudflare", true, map[string]string{"CF-Connecting-IP": "1.1.1.1", "X-Forwarded-For": "2.2.2.2"}, "3.3.3.3:1", "1.1.1.1"},
		{"forwarded chain", true, map[string]string{"X-Forwarded-For": "2.2.2.2, 10.0.0.1"}, "3.3.3.3:1", "2.2.2.2"},
		{"trusted without headers", true, nil, "3.3.3.3:1234", "3.3.3.3"},
		{"untrusted cloudflare header", false, map[string]string{"CF-Connecting-IP": "1.1.1.1"}, "3.3.3.3:1", "3.3.3.3"},
		{"untrusted forwarded header", false, map[string]string{"X-Forwarded-For": "2.2.2.2"}, "3.3.3.3:1", "3.3.3.3"},
		{"remote addr", false, nil, "3.3.3.3:1234", "3.3.3.3"},
		{"remote without port", false, nil, "3.3.3.3", "3.3.3.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(tt.trustProxy)(r))
		})
	}
}

func TestRateLimit(t *testing.T) {
	now := time.Date(2015, time.March, 1, 10, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(2)
	limiter.now = func() time.Time { return now }

	handler := RateLimit(limiter, RemoteIP, http.MethodPost)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	do := func(method, remote string) int {
		r := httptest.NewRequest(method, "/events/e/", nil)
		r.RemoteAddr = remote
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, r)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, do(http.MethodPost, "1.1.1.1:1"))
	assert.Equal(t, http.StatusOK, do(http.MethodPost, "1.1.1.1:2"))
	assert.Equal(t, http.StatusTooManyRequests, do(http.MethodPost, "1.1.1.1:3"))
	assert.Equal(t, http.StatusOK, do(http.MethodGet, "1.1.1.1:4"), "GET is not counted")
	assert.Equal(t, http.StatusOK, do(http.MethodPost, "2.2.2.2:1"), "keys are independent")

	now = now.Add(31 * time.Second)
	assert.Equal(t, http.StatusOK, do(http.MethodPost, "1.1.1.1:5"), "a token refills every 30s")

	now = now.Add(time.Hour)
	limiter.Cleanup(time.Minute)
	assert.Empty(t, limiter.visitors)
}

func TestRateLimit_ForwardedHeadersUntrusted(t *testing.T) {
	limiter := NewRateLimiter(1)
	handler := RateLimit(limiter, ClientIP(false), http.MethodPost)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	do := func(forwarded string) int {
		r := httptest.NewRequest(http.MethodPost, "/events/e/", nil)
		r.RemoteAddr = "1.1.1.1:1"
		r.Header.Set("X-Forwarded-For", forwarded)
		r.Header.Set("CF-Connecting-IP", forwarded)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, r)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.2"), "rotating headers share the peer's bucket")
}

func TestCORS(t *testing.T) {
	handler := CORS([]string{"https://wsd.events/"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodOptions, "/api/events/e", nil)
	r.Header.Set("Origin", "https://wsd.events")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, r)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "https://wsd.events", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, corsAllowMethods, rr.Header().Get("Access-Control-Allow-Methods"))

	r = httptest.NewRequest(http.MethodGet, "/api/events/e", nil)
	r.Header.Set("Origin", "https://evil.test")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, r)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestHosts(t *testing.T) {
	assert.Equal(t, []string{"wsd.events", "localhost:8080"}, hosts([]string{"https://wsd.events/", "localhost:8080"}))
}
