// Package metrics declares the Prometheus collectors shared across moodcanvas.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sentiment Metrics
var (
	// ReadingsIngestedTotal counts utterances turned into sentiment readings
	ReadingsIngestedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentiment_readings_ingested_total",
			Help: "Total utterances ingested as sentiment readings",
		},
	)

	// UtterancesRejectedTotal counts utterances rejected before ingestion
	UtterancesRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_utterances_rejected_total",
			Help: "Total utterances rejected before ingestion by reason",
		},
		[]string{"reason"},
	)

	// MoodComputationsTotal counts mood snapshots computed by resulting mood
	MoodComputationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_mood_computations_total",
			Help: "Total mood snapshots computed by resulting mood category",
		},
		[]string{"mood"},
	)

	// MoodTransitionsTotal counts mood category changes between snapshots
	MoodTransitionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentiment_mood_transitions_total",
			Help: "Total mood category changes between consecutive snapshots",
		},
	)
)

// Background Generation Metrics
var (
	// FramesGeneratedTotal counts background frames generated by style
	FramesGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "background_frames_generated_total",
			Help: "Total background frames generated by style",
		},
		[]string{"style"},
	)

	// PaletteTransitionsTotal counts palette cross-fades started
	PaletteTransitionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "background_palette_transitions_total",
			Help: "Total palette cross-fades started by the generator",
		},
	)
)

// Compositor Metrics
var (
	// FramesCompositedTotal counts composited output frames
	FramesCompositedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "compositor_frames_composited_total",
			Help: "Total frames composited",
		},
	)

	// CompositorLayers tracks the current number of persistent custom layers per session
	CompositorLayers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "compositor_custom_layers",
			Help: "Current number of persistent custom layers by session",
		},
		[]string{"session"},
	)
)

// Render Loop Metrics
var (
	// RenderTickDuration tracks how long one full render tick takes
	RenderTickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "render_tick_duration_seconds",
			Help:    "Duration of one render loop tick across all sessions",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		},
	)

	// ActiveRenderSessions tracks the number of live render sessions
	ActiveRenderSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "render_active_sessions",
			Help: "Number of live render sessions",
		},
	)
)

// Broadcast Metrics
var (
	// BroadcastConnectedClients tracks connected WebSocket renderer clients
	BroadcastConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "broadcast_connected_clients",
			Help: "Current number of connected WebSocket renderer clients",
		},
	)

	// BroadcastActiveSessions tracks sessions with at least one client
	BroadcastActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "broadcast_active_sessions",
			Help: "Number of sessions with at least one connected client",
		},
	)

	// BroadcastSlowClientsEvicted counts clients dropped for full send buffers
	BroadcastSlowClientsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcast_slow_clients_evicted_total",
			Help: "Total WebSocket clients evicted because their send buffer was full",
		},
	)

	// BroadcastFrameSendDuration tracks WebSocket frame write duration
	BroadcastFrameSendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "broadcast_frame_send_duration_seconds",
			Help:    "WebSocket frame write duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1},
		},
	)

	// BroadcastPingFailures counts WebSocket ping failures
	BroadcastPingFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "broadcast_ping_failures_total",
			Help: "Total WebSocket ping failures (client not responding)",
		},
	)
)

// Redis Metrics
var (
	// RedisOpsTotal counts Redis commands by operation and status
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total Redis operations by command and status",
		},
		[]string{"operation", "status"},
	)

	// RedisOpDuration tracks Redis command duration by operation
	RedisOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		},
		[]string{"operation"},
	)

	// RedisConnectionErrors counts failed Redis connection attempts
	RedisConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_connection_errors_total",
			Help: "Total failed Redis connection attempts",
		},
	)
)

// Ingest Metrics
var (
	// IngestMessagesTotal counts Pub/Sub utterance messages by result
	IngestMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_messages_total",
			Help: "Total Pub/Sub utterance messages by result (ok/bad_channel/bad_payload/no_session/rejected)",
		},
		[]string{"result"},
	)
)
