package api

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestRateLimiter(t *testing.T, opts ...RateLimitOption) *RateLimitMiddleware {
	rl := NewRateLimitMiddleware(slog.New(slog.NewTextHandler(os.Stderr, nil)), opts...)
	t.Cleanup(rl.Stop)
	return rl
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_AllowsNormalRequests(t *testing.T) {
	h := newTestRateLimiter(t).Wrap(okHandler())
	assert.Equal(t, http.StatusOK, serve(h, httptest.NewRequest(http.MethodGet, "/v1/session", nil)).Code)
}

func TestRateLimit_BlocksExcessiveSubmissions(t *testing.T) {
	h := newTestRateLimiter(t).Wrap(okHandler())

	for i := 0; i < 2; i++ {
		rec := serve(h, httptest.NewRequest(http.MethodPost, "/v1/records", nil))
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/v1/records", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"rate limit exceeded","retryable":true}`, rec.Body.String())

	retryAfter, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, retryAfter, 1)
	assert.LessOrEqual(t, retryAfter, 10)
}

func TestRateLimit_ProxyHeadersIgnoredByDefault(t *testing.T) {
	h := newTestRateLimiter(t).Wrap(okHandler())

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/v1/records", nil)
		req.Header.Set("X-Forwarded-For", ip)
		return serve(h, req).Code
	}

	send("203.0.113.1")
	send("203.0.113.2")
	// Same RemoteAddr, so a spoofed header does not buy a fresh bucket.
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.3"))
}

func TestRateLimit_PerClientBehindProxy(t *testing.T) {
	h := newTestRateLimiter(t, WithTrustedProxyHeaders(true)).Wrap(okHandler())

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/v1/records", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		return serve(h, req).Code
	}

	send("203.0.113.1")
	send("203.0.113.1")
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.1"))
	assert.Equal(t, http.StatusOK, send("203.0.113.2"))
}

func TestRateLimit_RulesAreIndependent(t *testing.T) {
	h := newTestRateLimiter(t).Wrap(okHandler())

	for i := 0; i < 3; i++ {
		serve(h, httptest.NewRequest(http.MethodPost, "/v1/records", nil))
	}
	assert.Equal(t, http.StatusOK, serve(h, httptest.NewRequest(http.MethodPost, "/v1/cid/validate", nil)).Code)
}

func TestRateLimit_ExemptPaths(t *testing.T) {
	rl := newTestRateLimiter(t, WithRules([]Rule{{Name: "all", Rate: rate.Every(time.Hour), Burst: 1}}))
	h := rl.Wrap(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil)).Code)
		assert.Equal(t, http.StatusOK, serve(h, httptest.NewRequest(http.MethodGet, "/metrics", nil)).Code)
	}
	assert.Zero(t, rl.ClientCount())

	assert.Equal(t, http.StatusOK, serve(h, httptest.NewRequest(http.MethodGet, "/v1/session", nil)).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, httptest.NewRequest(http.MethodGet, "/v1/session", nil)).Code)
}

func TestRateLimit_UnmatchedPassesWithCustomRules(t *testing.T) {
	rl := newTestRateLimiter(t, WithRules([]Rule{{Name: "records", Method: http.MethodPost, Prefix: "/v1/records", Burst: 0}}))
	h := rl.Wrap(okHandler())

	assert.Equal(t, http.StatusTooManyRequests, serve(h, httptest.NewRequest(http.MethodPost, "/v1/records", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(h, httptest.NewRequest(http.MethodGet, "/v1/records", nil)).Code)
}

func TestRateLimit_SweepsIdleClients(t *testing.T) {
	rl := newTestRateLimiter(t)
	now := time.Now()
	rl.now = func() time.Time { return now }

	serve(rl.Wrap(okHandler()), httptest.NewRequest(http.MethodGet, "/v1/session", nil))
	assert.Equal(t, 1, rl.ClientCount())

	now = now.Add(idleClientTTL + time.Second)
	rl.sweep()
	assert.Equal(t, 0, rl.ClientCount())
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 1, retryAfterSeconds(0))
	assert.Equal(t, 1, retryAfterSeconds(200*time.Millisecond))
	assert.Equal(t, 3, retryAfterSeconds(2100*time.Millisecond))
}
