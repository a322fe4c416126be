package compositor

import (
	"math"

	"github.com/councilstream/moodcanvas/internal/domain"
)

// VignetteContent darkens the frame edges; strength in [0,0.5].
type VignetteContent struct {
	Type     string  `json:"type"`
	Strength float64 `json:"strength"`
}

// GlowContent is an additive full-frame glow wash.
type GlowContent struct {
	Type     string  `json:"type"`
	Strength float64 `json:"strength"`
	Color    string  `json:"color"`
}

// AberrationContent shifts color channels apart by OffsetPx pixels.
type AberrationContent struct {
	Type     string  `json:"type"`
	OffsetPx float64 `json:"offset_px"`
}

// BlurPulseContent is a momentary blur amount. It is returned to the caller
// rather than persisted as a layer; wrap it in one if the renderer needs it.
type BlurPulseContent struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

// ApplyMoodVignette adds an edge-darkening overlay whose strength follows the
// average of controversy and intensity.
func (c *Compositor) ApplyMoodVignette(mood domain.MoodState) domain.Layer {
	strength := (mood.ControversyLevel + mood.Intensity) / 2 * 0.5
	return c.AddLayer(
		domain.LayerOverlay,
		VignetteContent{Type: "vignette", Strength: strength},
		0.4,
		domain.BlendMultiply,
		100,
	)
}

// ApplyGlowEffect adds an additive glow overlay; energy sets both the glow
// strength and the layer opacity.
func (c *Compositor) ApplyGlowEffect(mood domain.MoodState, color string) domain.Layer {
	strength := mood.EnergyLevel * 0.3
	return c.AddLayer(
		domain.LayerOverlay,
		GlowContent{Type: "glow", Strength: strength, Color: color},
		strength,
		domain.BlendAdd,
		90,
	)
}

// ApplyChromaticAberration adds a channel-split overlay; controversy sets the
// pixel offset.
func (c *Compositor) ApplyChromaticAberration(mood domain.MoodState) domain.Layer {
	return c.AddLayer(
		domain.LayerOverlay,
		AberrationContent{Type: "chromatic_aberration", OffsetPx: mood.ControversyLevel * 5},
		1.0,
		domain.BlendNormal,
		110,
	)
}

// ApplyBlurPulse computes a sinusoidal blur amount from the composited-frame
// clock. frequency is in pulses per second.
func (c *Compositor) ApplyBlurPulse(mood domain.MoodState, frequency float64) BlurPulseContent {
	t := float64(c.frameCount) / float64(c.cfg.FPS)
	pulse := (math.Sin(t*frequency*2*math.Pi) + 1) / 2
	return BlurPulseContent{
		Type:   "blur_pulse",
		Amount: pulse * mood.EnergyLevel * 10,
	}
}
