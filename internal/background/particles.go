package background

import (
	"math"

	"github.com/councilstream/moodcanvas/internal/domain"
)

// particle is one simulation entity. Positions stay within
// [0,width) x [0,height) by wraparound; lifetime decays each frame and the
// particle respawns in place on expiry.
type particle struct {
	x, y     float64
	vx, vy   float64
	size     float64
	alpha    float64
	color    RGB
	lifetime float64
}

const (
	lifetimeDecay = 0.01
	minAlpha      = 0.3
	maxAlpha      = 0.8
)

func (g *Generator) initParticles() {
	g.particles = make([]particle, g.cfg.ParticleCount)
	for i := range g.particles {
		g.particles[i] = particle{
			x:        g.rng.Float64() * float64(g.cfg.Width),
			y:        g.rng.Float64() * float64(g.cfg.Height),
			vx:       g.rng.Float64()*2 - 1,
			vy:       g.rng.Float64()*2 - 1,
			size:     1 + g.rng.Float64()*3,
			alpha:    minAlpha + g.rng.Float64()*(maxAlpha-minAlpha),
			color:    RGB{R: 255, G: 255, B: 255},
			lifetime: 0.5 + g.rng.Float64()*0.5,
		}
	}
}

// wrap folds v into [0, limit) cyclically. Distinct from clamping: a particle
// leaving one edge re-enters from the opposite one.
func wrap(v, limit float64) float64 {
	v = math.Mod(v, limit)
	if v < 0 {
		v += limit
	}
	return v
}

// ParticleDescriptor is the rendered view of one particle.
type ParticleDescriptor struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Alpha float64 `json:"alpha"`
	Color RGB     `json:"color"`
}

// ParticlesFrame is the particle-style payload.
type ParticlesFrame struct {
	Type            string               `json:"type"`
	Particles       []ParticleDescriptor `json:"particles"`
	BackgroundColor string               `json:"background_color"`
	Glow            bool                 `json:"glow"`
}

func (ParticlesFrame) StyleName() string { return "particles" }

// particleFrame steps every particle once and snapshots the result. Intensity
// scales movement speed, controversy shakes velocities, and high consensus
// pulls particles gently toward the canvas center.
func (g *Generator) particleFrame(mood domain.MoodState, palette Palette) ParticlesFrame {
	speedMult := (1 + mood.Intensity*2) * g.cfg.AnimationSpeed
	centerX := float64(g.cfg.Width) / 2
	centerY := float64(g.cfg.Height) / 2
	color := parseHex(palette.Particle)

	out := make([]ParticleDescriptor, len(g.particles))
	for i := range g.particles {
		p := &g.particles[i]

		p.x = wrap(p.x+p.vx*speedMult, float64(g.cfg.Width))
		p.y = wrap(p.y+p.vy*speedMult, float64(g.cfg.Height))

		if mood.ControversyLevel > 0.5 {
			p.vx += (g.rng.Float64()*2 - 1) * 0.1 * mood.ControversyLevel
			p.vy += (g.rng.Float64()*2 - 1) * 0.1 * mood.ControversyLevel
		}

		if mood.ConsensusLevel > 0.7 {
			p.vx += (centerX - p.x) * 0.0001 * mood.ConsensusLevel
			p.vy += (centerY - p.y) * 0.0001 * mood.ConsensusLevel
		}

		p.color = color

		p.lifetime -= lifetimeDecay
		if p.lifetime <= 0 {
			p.lifetime = 1.0
			p.alpha = minAlpha + g.rng.Float64()*(maxAlpha-minAlpha)
		}

		out[i] = ParticleDescriptor{
			X:     p.x,
			Y:     p.y,
			Size:  p.size * (1 + mood.Intensity*0.5),
			Alpha: p.alpha,
			Color: p.color,
		}
	}

	return ParticlesFrame{
		Type:            "particles",
		Particles:       out,
		BackgroundColor: palette.Primary,
		Glow:            mood.EnergyLevel > 0.7,
	}
}
