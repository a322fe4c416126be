package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/councilstream/moodcanvas/internal/app"
	"github.com/councilstream/moodcanvas/internal/background"
	"github.com/councilstream/moodcanvas/internal/broadcast"
	"github.com/councilstream/moodcanvas/internal/compositor"
	"github.com/councilstream/moodcanvas/internal/ingest"
	"github.com/councilstream/moodcanvas/internal/platform/config"
	"github.com/councilstream/moodcanvas/internal/platform/logging"
	"github.com/councilstream/moodcanvas/internal/platform/retry"
	"github.com/councilstream/moodcanvas/internal/sentiment"
	"github.com/councilstream/moodcanvas/internal/server"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupRedis(ctx context.Context, redisURL string) *goredis.Client {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		slog.Error("Failed to parse Redis URL", "error", err)
		os.Exit(1)
	}

	client := goredis.NewClient(opts)
	client.AddHook(&ingest.MetricsHook{})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func defaultsFromConfig(cfg *config.Config) app.Defaults {
	return app.Defaults{
		Sentiment: sentiment.Config{
			SmoothingWindow:         cfg.SmoothingWindow,
			MoodTransitionThreshold: cfg.MoodTransitionThreshold,
			IntensitySensitivity:    cfg.IntensitySensitivity,
		},
		Generator: background.Config{
			Style:          cfg.Style(),
			Width:          cfg.CanvasWidth,
			Height:         cfg.CanvasHeight,
			FPS:            cfg.TargetFPS,
			ParticleCount:  cfg.ParticleCount,
			AnimationSpeed: cfg.AnimationSpeed,
		},
		Compositor: compositor.Config{
			Width:              cfg.CanvasWidth,
			Height:             cfg.CanvasHeight,
			FPS:                cfg.TargetFPS,
			BackgroundOpacity:  cfg.BackgroundOpacity,
			EnableTransitions:  cfg.EnableTransitions,
			TransitionDuration: cfg.TransitionDuration,
			BlurBackground:     cfg.BlurBackground,
			BlurAmount:         cfg.BlurAmount,
		},
	}
}

// runSubscriber keeps the Pub/Sub subscription alive across transient Redis
// failures.
func runSubscriber(ctx context.Context, subscriber *ingest.Subscriber) {
	policy := retry.Policy{
		MaxAttempts:    10,
		InitialBackoff: time.Second,
		MaxBackoff:     30 * time.Second,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			slog.Warn("Utterance subscriber failed, retrying", "attempt", attempt, "backoff", backoff.String(), "error", err)
		},
	}
	retryable := func(err error) bool { return !errors.Is(err, context.Canceled) }

	err := retry.DoVoid(ctx, policy, retryable, func() error { return subscriber.Run(ctx) })
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Utterance subscriber gave up", "error", err)
	}
}

func runGracefulShutdown(srv *server.Server, broadcaster *broadcast.Broadcaster, cancel context.CancelFunc) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		// Stop the render loop and subscriber first so no new frames queue
		// behind the draining sockets.
		cancel()

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		broadcaster.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.Init(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient = setupRedis(ctx, cfg.RedisURL)
		defer func() { _ = redisClient.Close() }()
	} else {
		slog.Info("REDIS_URL not set, Pub/Sub utterance ingestion disabled")
	}

	service := app.NewService(defaultsFromConfig(cfg), clock)

	onSessionEmpty := func(sessionID uuid.UUID) {
		slog.Info("Last renderer disconnected, session stays live", "session_id", sessionID.String())
	}
	broadcaster := broadcast.NewBroadcaster(onSessionEmpty, clock, cfg.MaxClientsPerSession)

	renderLoop := app.NewRenderLoop(service, broadcaster, clock, cfg.TargetFPS)
	go renderLoop.Run(ctx)

	if redisClient != nil {
		subscriber := ingest.NewSubscriber(redisClient, service)
		go runSubscriber(ctx, subscriber)
	}

	srv := server.NewServer(cfg, service, broadcaster, redisClient)
	done := runGracefulShutdown(srv, broadcaster, cancel)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
