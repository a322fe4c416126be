package compositor

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/councilstream/moodcanvas/internal/domain"
	"github.com/councilstream/moodcanvas/internal/metrics"
)

// Config fixes the canvas and transition behavior at construction time.
type Config struct {
	Width              int
	Height             int
	FPS                int
	BackgroundOpacity  float64
	EnableTransitions  bool
	TransitionDuration time.Duration
	BlurBackground     bool
	BlurAmount         int
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.BackgroundOpacity < 0 || c.BackgroundOpacity > 1 {
		return fmt.Errorf("background opacity must be in [0,1], got %g", c.BackgroundOpacity)
	}
	if c.EnableTransitions && c.TransitionDuration <= 0 {
		return fmt.Errorf("transition duration must be positive, got %s", c.TransitionDuration)
	}
	if c.BlurBackground && c.BlurAmount <= 0 {
		return fmt.Errorf("blur amount must be positive when blur is enabled, got %d", c.BlurAmount)
	}
	return nil
}

// Compositor composes frames for one render session. Like the generator it is
// mutable private state for a single driving loop; instantiate one per
// session.
//
// Layout and effect geometry is not validated: out-of-range split positions
// or picture-in-picture rectangles are a caller precondition and pass through
// untouched.
type Compositor struct {
	cfg     Config
	session string

	layers []domain.Layer

	currentBackground  any
	previousBackground any
	transitionActive   bool
	transitionProgress float64

	frameCount int
}

// New validates cfg and returns an empty compositor. The session label tags
// this instance's layer-count gauge.
func New(cfg Config, session string) (*Compositor, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid compositor config: %w", err)
	}
	return &Compositor{cfg: cfg, session: session}, nil
}

// AddLayer appends a custom layer and keeps the list sorted by z-index
// ascending. Equal z-indices preserve insertion order.
func (c *Compositor) AddLayer(t domain.LayerType, content any, opacity float64, blend domain.BlendMode, zIndex int) domain.Layer {
	layer := domain.Layer{
		ID:      uuid.New(),
		Type:    t,
		Content: content,
		Opacity: opacity,
		Blend:   blend,
		ZIndex:  zIndex,
		Enabled: true,
	}
	c.layers = append(c.layers, layer)
	sort.SliceStable(c.layers, func(i, j int) bool {
		return c.layers[i].ZIndex < c.layers[j].ZIndex
	})
	c.updateLayerGauge()
	return layer
}

// RemoveLayer removes the layer with the given ID. Returns false when no
// such layer exists.
func (c *Compositor) RemoveLayer(id uuid.UUID) bool {
	for i, l := range c.layers {
		if l.ID == id {
			c.layers = append(c.layers[:i], c.layers[i+1:]...)
			c.updateLayerGauge()
			return true
		}
	}
	return false
}

// SetLayerEnabled toggles a layer in or out of composited output without
// removing it. Returns false when no such layer exists.
func (c *Compositor) SetLayerEnabled(id uuid.UUID, enabled bool) bool {
	for i := range c.layers {
		if c.layers[i].ID == id {
			c.layers[i].Enabled = enabled
			return true
		}
	}
	return false
}

// ClearLayers removes all custom layers, or only those matching the given
// types when any are passed.
func (c *Compositor) ClearLayers(types ...domain.LayerType) {
	if len(types) == 0 {
		c.layers = nil
	} else {
		c.layers = slices.DeleteFunc(c.layers, func(l domain.Layer) bool {
			return slices.Contains(types, l.Type)
		})
	}
	c.updateLayerGauge()
}

// LayerCount reports the number of custom layers, optionally filtered by type.
func (c *Compositor) LayerCount(types ...domain.LayerType) int {
	if len(types) == 0 {
		return len(c.layers)
	}
	n := 0
	for _, l := range c.layers {
		if slices.Contains(types, l.Type) {
			n++
		}
	}
	return n
}

func (c *Compositor) updateLayerGauge() {
	metrics.CompositorLayers.WithLabelValues(c.session).Set(float64(len(c.layers)))
}

// SetBackground adopts frame as the current background. When transition is
// requested, transitions are enabled, and a background is already showing, the
// old background is kept and cross-faded out; otherwise the swap is immediate.
func (c *Compositor) SetBackground(frame any, transition bool) {
	if transition && c.cfg.EnableTransitions && c.currentBackground != nil {
		c.previousBackground = c.currentBackground
		c.currentBackground = frame
		c.transitionActive = true
		c.transitionProgress = 0
		return
	}
	c.currentBackground = frame
	c.previousBackground = nil
	c.transitionActive = false
	c.transitionProgress = 1
}

// RefreshBackground replaces the current background content without touching
// transition state. Render loops call this every frame so an in-flight
// cross-fade keeps fading between a stale snapshot and live content instead
// of restarting each tick.
func (c *Compositor) RefreshBackground(frame any) {
	c.currentBackground = frame
}

// UpdateTransition advances an active cross-fade by the wall-clock delta since
// the previous call. On completion the previous background is discarded.
func (c *Compositor) UpdateTransition(delta time.Duration) {
	if !c.transitionActive {
		return
	}
	c.transitionProgress += delta.Seconds() / c.cfg.TransitionDuration.Seconds()
	if c.transitionProgress >= 1 {
		c.transitionProgress = 1
		c.transitionActive = false
		c.previousBackground = nil
	}
}

// TransitionActive reports whether a background cross-fade is in flight.
func (c *Compositor) TransitionActive() bool {
	return c.transitionActive
}

// TransitionProgress reports cross-fade progress in [0,1].
func (c *Compositor) TransitionProgress() float64 {
	return c.transitionProgress
}

// CompositeFrame assembles the full frame descriptor: background (one layer,
// or two while cross-fading), optional video, then every enabled custom
// layer, sorted by z-index ascending. Background and video layers are
// synthesized per call and never stored.
func (c *Compositor) CompositeFrame(video any) domain.FrameDescriptor {
	var out []domain.LayerDescriptor

	switch {
	case c.transitionActive && c.previousBackground != nil:
		out = append(out,
			domain.LayerDescriptor{
				Type:    "background_previous",
				Content: c.previousBackground,
				Opacity: (1 - c.transitionProgress) * c.cfg.BackgroundOpacity,
				Blend:   domain.BlendNormal,
				ZIndex:  0,
			},
			domain.LayerDescriptor{
				Type:    "background_current",
				Content: c.currentBackground,
				Opacity: c.transitionProgress * c.cfg.BackgroundOpacity,
				Blend:   domain.BlendNormal,
				ZIndex:  1,
			},
		)
	case c.currentBackground != nil:
		desc := domain.LayerDescriptor{
			Type:    "background",
			Content: c.currentBackground,
			Opacity: c.cfg.BackgroundOpacity,
			Blend:   domain.BlendNormal,
			ZIndex:  0,
		}
		if c.cfg.BlurBackground {
			desc.Blur = c.cfg.BlurAmount
		}
		out = append(out, desc)
	}

	if video != nil {
		out = append(out, domain.LayerDescriptor{
			Type:    domain.LayerVideo.String(),
			Content: video,
			Opacity: 1,
			Blend:   domain.BlendNormal,
			ZIndex:  10,
		})
	}

	for _, l := range c.layers {
		if !l.Enabled {
			continue
		}
		out = append(out, domain.LayerDescriptor{
			Type:    l.Type.String(),
			Content: l.Content,
			Opacity: l.Opacity,
			Blend:   l.Blend,
			ZIndex:  l.ZIndex,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })

	c.frameCount++
	metrics.FramesCompositedTotal.Inc()

	return domain.FrameDescriptor{
		Width:  c.cfg.Width,
		Height: c.cfg.Height,
		Layers: out,
	}
}

// Reset drops all layers, backgrounds, and counters.
func (c *Compositor) Reset() {
	c.layers = nil
	c.currentBackground = nil
	c.previousBackground = nil
	c.transitionActive = false
	c.transitionProgress = 0
	c.frameCount = 0
	c.updateLayerGauge()
}

// Stats summarizes the compositor state.
type Stats struct {
	FramesComposited   int     `json:"frames_composited"`
	CustomLayers       int     `json:"custom_layers"`
	TransitionActive   bool    `json:"transition_active"`
	TransitionProgress float64 `json:"transition_progress"`
}

// Stats reports the compositor's counters and transition state.
func (c *Compositor) Stats() Stats {
	return Stats{
		FramesComposited:   c.frameCount,
		CustomLayers:       len(c.layers),
		TransitionActive:   c.transitionActive,
		TransitionProgress: c.transitionProgress,
	}
}
