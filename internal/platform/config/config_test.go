package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/councilstream/moodcanvas/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 1920, cfg.CanvasWidth)
	assert.Equal(t, 1080, cfg.CanvasHeight)
	assert.Equal(t, 30, cfg.TargetFPS)
	assert.Equal(t, domain.StyleGradient, cfg.Style())
	assert.Equal(t, 100, cfg.ParticleCount)
	assert.InDelta(t, 0.8, cfg.BackgroundOpacity, 1e-9)
	assert.True(t, cfg.EnableTransitions)
	assert.Equal(t, 2*time.Second, cfg.TransitionDuration)
	assert.Equal(t, 5, cfg.SmoothingWindow)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CANVAS_WIDTH", "1280")
	t.Setenv("CANVAS_HEIGHT", "720")
	t.Setenv("TARGET_FPS", "60")
	t.Setenv("BACKGROUND_STYLE", "particles")
	t.Setenv("TRANSITION_DURATION", "500ms")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.CanvasWidth)
	assert.Equal(t, 720, cfg.CanvasHeight)
	assert.Equal(t, 60, cfg.TargetFPS)
	assert.Equal(t, domain.StyleParticles, cfg.Style())
	assert.Equal(t, 500*time.Millisecond, cfg.TransitionDuration)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown style", "BACKGROUND_STYLE", "plasma"},
		{"zero width", "CANVAS_WIDTH", "0"},
		{"negative height", "CANVAS_HEIGHT", "-1"},
		{"fps too high", "TARGET_FPS", "500"},
		{"zero particles", "PARTICLE_COUNT", "0"},
		{"opacity out of range", "BACKGROUND_OPACITY", "1.5"},
		{"zero transition", "TRANSITION_DURATION", "0s"},
		{"zero window", "SMOOTHING_WINDOW", "0"},
		{"zero sensitivity", "INTENSITY_SENSITIVITY", "0"},
		{"zero clients", "MAX_CLIENTS_PER_SESSION", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
