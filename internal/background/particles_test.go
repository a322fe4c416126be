package background

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/councilstream/moodcanvas/internal/domain"
)

func newParticleGenerator(t *testing.T, seed int64) *Generator {
	t.Helper()
	g, err := NewGenerator(testConfig(domain.StyleParticles), rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return g
}

func TestInitParticles_StartInBounds(t *testing.T) {
	g := newParticleGenerator(t, 7)
	require.Len(t, g.particles, 50)
	for _, p := range g.particles {
		assert.GreaterOrEqual(t, p.x, 0.0)
		assert.Less(t, p.x, 1920.0)
		assert.GreaterOrEqual(t, p.y, 0.0)
		assert.Less(t, p.y, 1080.0)
		assert.GreaterOrEqual(t, p.alpha, minAlpha)
		assert.LessOrEqual(t, p.alpha, maxAlpha)
	}
}

func TestParticleFrame_PositionsStayInBounds(t *testing.T) {
	g := newParticleGenerator(t, 7)

	// Maximal stimulation for several hundred frames; wraparound must hold.
	mood := testMood()
	mood.Intensity = 1.0
	mood.ControversyLevel = 1.0
	mood.ConsensusLevel = 1.0
	mood.EnergyLevel = 1.0

	for i := 0; i < 500; i++ {
		frame := g.GenerateFrame(mood).(ParticlesFrame)
		for _, p := range frame.Particles {
			assert.GreaterOrEqual(t, p.X, 0.0)
			assert.Less(t, p.X, 1920.0)
			assert.GreaterOrEqual(t, p.Y, 0.0)
			assert.Less(t, p.Y, 1080.0)
		}
	}
}

func TestParticleFrame_LifetimeRespawn(t *testing.T) {
	g := newParticleGenerator(t, 7)

	mood := testMood()
	// Longest possible initial lifetime is 1.0, so 101 decays guarantee at
	// least one respawn cycle for every particle.
	for i := 0; i < 101; i++ {
		g.GenerateFrame(mood)
	}
	for _, p := range g.particles {
		assert.Greater(t, p.lifetime, 0.0)
		assert.GreaterOrEqual(t, p.alpha, minAlpha)
		assert.LessOrEqual(t, p.alpha, maxAlpha)
	}
}

func TestParticleFrame_RecoloredToPalette(t *testing.T) {
	g := newParticleGenerator(t, 7)

	mood := testMood()
	mood.Mood = domain.MoodHeatedDebate
	frame := g.GenerateFrame(mood).(ParticlesFrame)

	want := parseHex(PaletteFor(domain.MoodHeatedDebate).Particle)
	for _, p := range frame.Particles {
		assert.Equal(t, want, p.Color)
	}
	assert.Equal(t, PaletteFor(domain.MoodHeatedDebate).Primary, frame.BackgroundColor)
}

func TestParticleFrame_SizeScalesWithIntensity(t *testing.T) {
	calm := newParticleGenerator(t, 7)
	wild := newParticleGenerator(t, 7)

	low := testMood()
	low.Intensity = 0.0
	high := testMood()
	high.Intensity = 1.0

	calmFrame := calm.GenerateFrame(low).(ParticlesFrame)
	wildFrame := wild.GenerateFrame(high).(ParticlesFrame)
	assert.InDelta(t, wildFrame.Particles[0].Size, calmFrame.Particles[0].Size*1.5, 1e-9)
}

func TestParticleFrame_GlowFollowsEnergy(t *testing.T) {
	g := newParticleGenerator(t, 7)

	mood := testMood()
	mood.EnergyLevel = 0.9
	assert.True(t, g.GenerateFrame(mood).(ParticlesFrame).Glow)

	mood.EnergyLevel = 0.3
	assert.False(t, g.GenerateFrame(mood).(ParticlesFrame).Glow)
}

func TestWrap(t *testing.T) {
	assert.Equal(t, 5.0, wrap(5, 100))
	assert.Equal(t, 5.0, wrap(105, 100))
	assert.Equal(t, 95.0, wrap(-5, 100))
	assert.Equal(t, 0.0, wrap(100, 100))
}
