package background

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/councilstream/moodcanvas/internal/domain"
	"github.com/councilstream/moodcanvas/internal/metrics"
)

// transitionStep is the base per-frame palette cross-fade advance; multiplied
// by the mood's transition speed.
const transitionStep = 0.05

// Config fixes a generator's style, canvas, and simulation parameters at
// construction time.
type Config struct {
	Style          domain.Style
	Width          int
	Height         int
	FPS            int
	ParticleCount  int
	AnimationSpeed float64
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.ParticleCount <= 0 {
		return fmt.Errorf("particle count must be positive, got %d", c.ParticleCount)
	}
	if c.AnimationSpeed <= 0 {
		return fmt.Errorf("animation speed must be positive, got %g", c.AnimationSpeed)
	}
	return nil
}

// Frame is one generated background payload. Concrete types are per-style;
// the exact fields are a rendering contract, not a behavior contract.
type Frame interface {
	// StyleName tags the payload for renderers and metrics.
	StyleName() string
}

// Generator produces background frames for one render session. It owns
// long-lived mutable state (particles, transition progress) and must not be
// shared across concurrent callers; instantiate one per session.
type Generator struct {
	cfg Config
	rng *rand.Rand

	particles          []particle
	frameCount         int
	currentPalette     *Palette
	transitionProgress float64
}

// NewGenerator validates cfg and seeds the simulation. rng drives particle
// spawning and style jitter; pass a seeded source for reproducible output,
// or nil for a time-seeded one.
func NewGenerator(cfg Config, rng *rand.Rand) (*Generator, error) {
	if cfg.AnimationSpeed == 0 {
		cfg.AnimationSpeed = 1.0
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g := &Generator{
		cfg:                cfg,
		rng:                rng,
		transitionProgress: 1.0,
	}
	g.initParticles()
	return g, nil
}

// GenerateFrame advances the simulation one step and returns the payload for
// the configured style. A palette change restarts the cross-fade; progress
// then advances by transitionStep x mood.TransitionSpeed per call, clamped
// to 1.
func (g *Generator) GenerateFrame(mood domain.MoodState) Frame {
	palette := PaletteFor(mood.Mood)

	if g.currentPalette == nil || *g.currentPalette != palette {
		g.transitionProgress = 0
		g.currentPalette = &palette
		metrics.PaletteTransitionsTotal.Inc()
	}

	if g.transitionProgress < 1 {
		g.transitionProgress = min(1, g.transitionProgress+transitionStep*mood.TransitionSpeed)
	}

	var frame Frame
	switch g.cfg.Style {
	case domain.StyleGradient:
		frame = g.gradientFrame(mood, palette)
	case domain.StyleParticles:
		frame = g.particleFrame(mood, palette)
	case domain.StyleGeometric:
		frame = g.geometricFrame(mood, palette)
	case domain.StyleWaves:
		frame = g.waveFrame(mood, palette)
	case domain.StyleNebula:
		frame = g.nebulaFrame(mood, palette)
	case domain.StyleMatrix:
		frame = g.matrixFrame(mood, palette)
	case domain.StyleNeural:
		frame = g.neuralFrame(mood, palette)
	default:
		frame = g.gradientFrame(mood, palette)
	}

	g.frameCount++
	metrics.FramesGeneratedTotal.WithLabelValues(g.cfg.Style.String()).Inc()
	return frame
}

// TransitionProgress reports the current palette cross-fade progress in [0,1].
func (g *Generator) TransitionProgress() float64 {
	return g.transitionProgress
}

// Reset restarts the simulation: frame counter, palette state, and particles.
func (g *Generator) Reset() {
	g.frameCount = 0
	g.currentPalette = nil
	g.transitionProgress = 1.0
	g.initParticles()
}

// Stats summarizes the generator state.
type Stats struct {
	FramesGenerated    int     `json:"frames_generated"`
	ParticleCount      int     `json:"particle_count"`
	Style              string  `json:"style"`
	CurrentPalette     string  `json:"current_palette"`
	TransitionProgress float64 `json:"transition_progress"`
}

// Stats reports the generator's counters and palette state.
func (g *Generator) Stats() Stats {
	s := Stats{
		FramesGenerated:    g.frameCount,
		ParticleCount:      len(g.particles),
		Style:              g.cfg.Style.String(),
		TransitionProgress: g.transitionProgress,
	}
	if g.currentPalette != nil {
		s.CurrentPalette = g.currentPalette.Primary
	}
	return s
}
