package api

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/WebHash-eth/sui-domain/internal/metrics"
	"golang.org/x/time/rate"
)

const (
	// idleClientTTL is how long a client's limiter survives without traffic.
	idleClientTTL = 10 * time.Minute
	sweepInterval = time.Minute
)

// Rule limits requests whose method and path prefix match. An empty Method
// or Prefix matches anything.
type Rule struct {
	Name   string
	Method string
	Prefix string
	Rate   rate.Limit
	Burst  int
}

// DefaultRules keep record submissions scarce since each one asks the wallet
// for a signature. The final rule catches everything else.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "records", Method: http.MethodPost, Prefix: "/v1/records", Rate: rate.Every(10 * time.Second), Burst: 2},
		{Name: "cid_validate", Method: http.MethodPost, Prefix: "/v1/cid/validate", Rate: 5, Burst: 10},
		{Name: "domains", Method: http.MethodGet, Prefix: "/v1/domains", Rate: rate.Every(2 * time.Second), Burst: 5},
		{Name: "default", Rate: 10, Burst: 20},
	}
}

// exemptPaths are never limited so probes and scrapes keep working under load.
var exemptPaths = map[string]bool{
	"/healthz": true,
	"/metrics": true,
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware limits each client separately per rule.
type RateLimitMiddleware struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter // rule name + "|" + client IP
	rules   []Rule
	trustXF bool
	logger  *slog.Logger
	now     func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
}

type RateLimitOption func(*RateLimitMiddleware)

// WithRules replaces DefaultRules. Requests matching no rule pass unlimited.
func WithRules(rules []Rule) RateLimitOption {
	return func(rl *RateLimitMiddleware) { rl.rules = rules }
}

// WithTrustedProxyHeaders identifies clients by X-Forwarded-For and
// X-Real-IP. Enable only behind a proxy that sets them.
func WithTrustedProxyHeaders(trust bool) RateLimitOption {
	return func(rl *RateLimitMiddleware) { rl.trustXF = trust }
}

// NewRateLimitMiddleware starts a sweeper for idle clients. Call Stop to
// release it.
func NewRateLimitMiddleware(logger *slog.Logger, opts ...RateLimitOption) *RateLimitMiddleware {
	rl := &RateLimitMiddleware{
		clients: make(map[string]*clientLimiter),
		rules:   DefaultRules(),
		logger:  logger.With("component", "api_ratelimit"),
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(rl)
	}
	go rl.sweepLoop()
	return rl
}

// Stop is safe to call more than once.
func (rl *RateLimitMiddleware) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func (rl *RateLimitMiddleware) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

func (rl *RateLimitMiddleware) sweep() {
	cutoff := rl.now().Add(-idleClientTTL)
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, key)
		}
	}
}

// ClientCount returns the number of tracked client limiters.
func (rl *RateLimitMiddleware) ClientCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *RateLimitMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if exemptPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}
		rule, ok := rl.match(r.Method, r.URL.Path)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ip := rl.clientIP(r)
		if wait, allowed := rl.take(rule, ip); !allowed {
			metrics.APIRateLimited.WithLabelValues(rule.Name).Inc()
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(wait)))
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate limit exceeded", Retryable: true})
			rl.logger.Warn("api rate limit exceeded", "rule", rule.Name, "path", r.URL.Path, "client_ip", ip)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimitMiddleware) match(method, path string) (Rule, bool) {
	for _, rule := range rl.rules {
		if rule.Method != "" && !strings.EqualFold(rule.Method, method) {
			continue
		}
		if rule.Prefix != "" && !strings.HasPrefix(path, rule.Prefix) {
			continue
		}
		return rule, true
	}
	return Rule{}, false
}

// take spends one token for ip under rule. When none is available it reports
// how long until one will be.
func (rl *RateLimitMiddleware) take(rule Rule, ip string) (time.Duration, bool) {
	now := rl.now()
	key := rule.Name + "|" + ip

	rl.mu.Lock()
	c, ok := rl.clients[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rule.Rate, rule.Burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now
	rl.mu.Unlock()

	if c.limiter.AllowN(now, 1) {
		return 0, true
	}
	res := c.limiter.ReserveN(now, 1)
	if !res.OK() {
		return 0, false
	}
	wait := res.DelayFrom(now)
	res.CancelAt(now)
	return wait, false
}

func retryAfterSeconds(wait time.Duration) int {
	secs := int(math.Ceil(wait.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

func (rl *RateLimitMiddleware) clientIP(r *http.Request) string {
	if rl.trustXF {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
