package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters and histograms for the domain-record linker, partitioned by network.

var (
	// Sui JSON-RPC
	RPCCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "suilink",
		Subsystem: "rpc",
		Name:      "calls_total",
		Help:      "Total Sui JSON-RPC calls by method and outcome class",
	}, []string{"network", "method", "status"})

	RPCLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "suilink",
		Subsystem: "rpc",
		Name:      "call_duration_seconds",
		Help:      "Sui JSON-RPC round-trip duration",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"network", "method"})

	RPCRateLimitWaits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "suilink",
		Subsystem: "rpc",
		Name:      "rate_limit_waits_total",
		Help:      "Total times RPC calls waited for rate limiter",
	}, []string{"network"})

	RPCBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "suilink",
		Subsystem: "rpc",
		Name:      "breaker_state",
		Help:      "Circuit breaker state (0=closed, 1=open, 2=half-open)",
	}, []string{"network"})

	// Resolver
	DomainsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "suilink",
		Subsystem: "resolver",
		Name:      "domains_resolved_total",
		Help:      "Total domain records emitted by the resolver",
	}, []string{"network"})

	DomainsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "suilink",
		Subsystem: "resolver",
		Name:      "domains_dropped_total",
		Help:      "Total owned objects dropped for a missing object id",
	}, []string{"network"})

	ResolutionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "suilink",
		Subsystem: "resolver",
		Name:      "errors_total",
		Help:      "Total failed domain listings",
	}, []string{"network"})

	// Submitter
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "suilink",
		Subsystem: "submitter",
		Name:      "submissions_total",
		Help:      "Total record update submissions by outcome",
	}, []string{"network", "outcome"})

	SubmissionLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "suilink",
		Subsystem: "submitter",
		Name:      "submission_duration_seconds",
		Help:      "Signing plus execution duration of record updates",
		Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"network"})

	// HTTP API
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "suilink",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Total API requests by route and status code",
	}, []string{"route", "code"})

	APIRateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "suilink",
		Subsystem: "api",
		Name:      "rate_limited_total",
		Help:      "Total API requests rejected by the per-IP limiter",
	}, []string{"route"})
)
