package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Command metrics
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mafia_commands_total",
			Help: "Total commands dispatched",
		},
		[]string{"command", "outcome"}, // outcome: "ok", "rejected", "error"
	)

	CommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mafia_command_duration_seconds",
			Help:    "Command handling duration",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"command"},
	)

	// Game metrics
	ConfirmationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mafia_confirmations_total",
			Help: "Total confirmation prompts resolved",
		},
		[]string{"result"}, // "accept", "decline", "timeout"
	)

	GamesStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mafia_games_started_total",
			Help: "Total games started",
		},
	)

	Signups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mafia_signups_total",
			Help: "Total roster changes",
		},
		[]string{"action"}, // "join" or "leave"
	)

	// Infrastructure metrics
	StoreLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mafia_store_latency_seconds",
			Help:    "Session store operation latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1},
		},
		[]string{"op"},
	)

	GatewayEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mafia_gateway_events_total",
			Help: "Total gateway events received",
		},
		[]string{"type"}, // "message" or "reaction"
	)

	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mafia_rate_limit_hits_total",
			Help: "Total commands dropped by the rate limiter",
		},
	)

	// Admin HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mafia_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mafia_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)
)
