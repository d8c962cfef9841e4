package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by route template and status
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "careconnect",
		Name:      "http_requests_total",
		Help:      "HTTP requests handled, by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "careconnect",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	BookingTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "careconnect",
		Name:      "booking_transitions_total",
		Help:      "Booking status changes, by target status.",
	}, []string{"status"})

	WalletOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "careconnect",
		Name:      "wallet_operations_total",
		Help:      "Wallet ledger writes, by type and outcome.",
	}, []string{"type", "outcome"})

	VerificationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "careconnect",
		Name:      "verification_decisions_total",
		Help:      "Admin verification actions, by action.",
	}, []string{"action"})

	JobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "careconnect",
		Name:      "job_runs_total",
		Help:      "Background job runs, by job and outcome.",
	}, []string{"job", "outcome"})
)

// Outcome labels
const (
	OutcomeOK       = "ok"
	OutcomeReplayed = "replayed"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)
