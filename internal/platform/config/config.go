// Package config loads the process configuration from environment variables,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"

	"github.com/councilstream/moodcanvas/internal/domain"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	// RedisURL is optional: when empty, Pub/Sub utterance ingestion is
	// disabled and utterances arrive over HTTP only.
	RedisURL string `env:"REDIS_URL"`

	CanvasWidth  int `env:"CANVAS_WIDTH" default:"1920"`
	CanvasHeight int `env:"CANVAS_HEIGHT" default:"1080"`
	TargetFPS    int `env:"TARGET_FPS" default:"30"`

	BackgroundStyle    string        `env:"BACKGROUND_STYLE" default:"gradient"`
	ParticleCount      int           `env:"PARTICLE_COUNT" default:"100"`
	AnimationSpeed     float64       `env:"ANIMATION_SPEED" default:"1.0"`
	BackgroundOpacity  float64       `env:"BACKGROUND_OPACITY" default:"0.8"`
	EnableTransitions  bool          `env:"ENABLE_TRANSITIONS" default:"true"`
	TransitionDuration time.Duration `env:"TRANSITION_DURATION" default:"2s"`
	BlurBackground     bool          `env:"BLUR_BACKGROUND" default:"false"`
	BlurAmount         int           `env:"BLUR_AMOUNT" default:"10"`

	SmoothingWindow         int     `env:"SMOOTHING_WINDOW" default:"5"`
	MoodTransitionThreshold float64 `env:"MOOD_TRANSITION_THRESHOLD" default:"0.3"`
	IntensitySensitivity    float64 `env:"INTENSITY_SENSITIVITY" default:"1.0"`

	MaxClientsPerSession    int     `env:"MAX_CLIENTS_PER_SESSION" default:"16"`
	MaxWebSocketConnections int64   `env:"MAX_WEBSOCKET_CONNECTIONS" default:"10000"`
	MaxConnectionsPerIP     int     `env:"MAX_CONNECTIONS_PER_IP" default:"32"`
	ConnectionRatePerSec    float64 `env:"CONNECTION_RATE_PER_SECOND" default:"10"`
	ConnectionRateBurst     int     `env:"CONNECTION_RATE_BURST" default:"10"`
	UtteranceRatePerSec     float64 `env:"UTTERANCE_RATE_PER_SECOND" default:"20"`
	UtteranceRateBurst      int     `env:"UTTERANCE_RATE_BURST" default:"40"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Style returns the parsed default background style. Load guarantees it
// parses.
func (c *Config) Style() domain.Style {
	style, _ := domain.ParseStyle(c.BackgroundStyle)
	return style
}

func validate(cfg *Config) error {
	if _, err := domain.ParseStyle(cfg.BackgroundStyle); err != nil {
		return fmt.Errorf("BACKGROUND_STYLE: %w", err)
	}
	if cfg.CanvasWidth <= 0 || cfg.CanvasHeight <= 0 {
		return fmt.Errorf("CANVAS_WIDTH and CANVAS_HEIGHT must be positive, got %dx%d", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.TargetFPS < 1 || cfg.TargetFPS > 120 {
		return fmt.Errorf("TARGET_FPS must be between 1 and 120, got %d", cfg.TargetFPS)
	}
	if cfg.ParticleCount <= 0 {
		return fmt.Errorf("PARTICLE_COUNT must be positive, got %d", cfg.ParticleCount)
	}
	if cfg.AnimationSpeed <= 0 {
		return fmt.Errorf("ANIMATION_SPEED must be positive, got %g", cfg.AnimationSpeed)
	}
	if cfg.BackgroundOpacity < 0 || cfg.BackgroundOpacity > 1 {
		return fmt.Errorf("BACKGROUND_OPACITY must be in [0,1], got %g", cfg.BackgroundOpacity)
	}
	if cfg.TransitionDuration <= 0 {
		return fmt.Errorf("TRANSITION_DURATION must be positive, got %s", cfg.TransitionDuration)
	}
	if cfg.SmoothingWindow <= 0 {
		return fmt.Errorf("SMOOTHING_WINDOW must be positive, got %d", cfg.SmoothingWindow)
	}
	if cfg.IntensitySensitivity <= 0 {
		return fmt.Errorf("INTENSITY_SENSITIVITY must be positive, got %g", cfg.IntensitySensitivity)
	}
	if cfg.MaxClientsPerSession <= 0 {
		return fmt.Errorf("MAX_CLIENTS_PER_SESSION must be positive, got %d", cfg.MaxClientsPerSession)
	}
	return nil
}
