package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/councilstream/moodcanvas/internal/background"
	"github.com/councilstream/moodcanvas/internal/compositor"
	"github.com/councilstream/moodcanvas/internal/domain"
	"github.com/councilstream/moodcanvas/internal/metrics"
	"github.com/councilstream/moodcanvas/internal/sentiment"
)

// RenderSession is one debate's analyzer/generator/compositor triple. The
// core components do no locking of their own, so the session serializes all
// access: the render loop and the HTTP handlers both go through its mutex.
type RenderSession struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu         sync.Mutex
	analyzer   *sentiment.Analyzer
	generator  *background.Generator
	compositor *compositor.Compositor

	mood          domain.MoodState
	hasBackground bool
}

func newRenderSession(id uuid.UUID, defaults Defaults, style domain.Style, clock clockwork.Clock) (*RenderSession, error) {
	analyzer, err := sentiment.NewAnalyzer(defaults.Sentiment, clock)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}

	genCfg := defaults.Generator
	genCfg.Style = style
	generator, err := background.NewGenerator(genCfg, nil)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}

	comp, err := compositor.New(defaults.Compositor, id.String())
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}

	return &RenderSession{
		ID:         id,
		CreatedAt:  clock.Now(),
		analyzer:   analyzer,
		generator:  generator,
		compositor: comp,
		mood:       analyzer.CurrentMood(),
	}, nil
}

func validateUtterance(u domain.Utterance) error {
	if u.Speaker == "" {
		return fmt.Errorf("%w: speaker is required", domain.ErrInvalidUtterance)
	}
	if u.Confidence < 0 || u.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be in [0,1], got %g", domain.ErrInvalidUtterance, u.Confidence)
	}
	if u.SentimentOverride != nil && (*u.SentimentOverride < -1 || *u.SentimentOverride > 1) {
		return fmt.Errorf("%w: sentiment override must be in [-1,1], got %g", domain.ErrInvalidUtterance, *u.SentimentOverride)
	}
	return nil
}

// AddUtterance validates and scores one utterance.
func (s *RenderSession) AddUtterance(u domain.Utterance) (domain.SentimentReading, error) {
	if err := validateUtterance(u); err != nil {
		metrics.UtterancesRejectedTotal.WithLabelValues("invalid").Inc()
		return domain.SentimentReading{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analyzer.AddReading(u.Speaker, u.Text, u.Confidence, u.Emotion, u.SentimentOverride), nil
}

// RefreshMood recomputes the mood snapshot. A mood category change starts a
// background cross-fade toward the new palette; refreshing into the same
// category leaves the compositor's transition state alone.
func (s *RenderSession) RefreshMood() domain.MoodState {
	s.mu.Lock()
	defer s.mu.Unlock()

	mood := s.analyzer.CurrentMood()
	changed := s.hasBackground && mood.Mood != s.mood.Mood
	s.mood = mood

	if changed {
		s.compositor.SetBackground(s.generator.GenerateFrame(mood), true)
	}
	return mood
}

// RenderFrame advances the simulation one tick and composites the frame.
// delta is the wall-clock time since the previous tick; it drives cross-fade
// progress.
func (s *RenderSession) RenderFrame(delta time.Duration) domain.FrameDescriptor {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := s.generator.GenerateFrame(s.mood)
	if !s.hasBackground {
		s.compositor.SetBackground(frame, false)
		s.hasBackground = true
	} else {
		s.compositor.RefreshBackground(frame)
	}

	s.compositor.UpdateTransition(delta)
	return s.compositor.CompositeFrame(nil)
}

// CurrentMood returns the last refreshed mood snapshot without recomputing.
func (s *RenderSession) CurrentMood() domain.MoodState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mood
}

// MoodArc returns the mood history within the trailing window.
func (s *RenderSession) MoodArc(window time.Duration) []domain.MoodState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analyzer.MoodArc(window)
}

// ApplyVignette adds a mood-driven vignette overlay.
func (s *RenderSession) ApplyVignette() domain.Layer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compositor.ApplyMoodVignette(s.mood)
}

// ApplyGlow adds a mood-driven glow overlay. An empty color takes the
// current palette's glow color.
func (s *RenderSession) ApplyGlow(color string) domain.Layer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if color == "" {
		color = background.PaletteFor(s.mood.Mood).Glow
	}
	return s.compositor.ApplyGlowEffect(s.mood, color)
}

// ApplyAberration adds a mood-driven chromatic aberration overlay.
func (s *RenderSession) ApplyAberration() domain.Layer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compositor.ApplyChromaticAberration(s.mood)
}

// SplitScreen adds a two-pane split layout.
func (s *RenderSession) SplitScreen(left, right any, split float64, dividerWidth int, dividerColor string) []domain.Layer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compositor.CreateSplitScreen(left, right, split, dividerWidth, dividerColor)
}

// PictureInPicture adds a picture-in-picture layout.
func (s *RenderSession) PictureInPicture(main, pip any, x, y, width, height, borderWidth int, borderColor string) []domain.Layer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compositor.CreatePictureInPicture(main, pip, x, y, width, height, borderWidth, borderColor)
}

// RemoveLayer removes one custom layer by ID.
func (s *RenderSession) RemoveLayer(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compositor.RemoveLayer(id)
}

// ClearLayers removes custom layers, optionally filtered by type.
func (s *RenderSession) ClearLayers(types ...domain.LayerType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compositor.ClearLayers(types...)
}

// Reset restarts the whole session: history, simulation, and layers.
func (s *RenderSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyzer.Reset()
	s.generator.Reset()
	s.compositor.Reset()
	s.mood = s.analyzer.CurrentMood()
	s.hasBackground = false
}

// SessionStats aggregates the per-component statistics surfaces.
type SessionStats struct {
	SessionID  uuid.UUID        `json:"session_id"`
	CreatedAt  time.Time        `json:"created_at"`
	Mood       domain.MoodState `json:"mood"`
	Sentiment  sentiment.Stats  `json:"sentiment"`
	Background background.Stats `json:"background"`
	Compositor compositor.Stats `json:"compositor"`
}

// Stats reports the combined statistics of all three components.
func (s *RenderSession) Stats() SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionStats{
		SessionID:  s.ID,
		CreatedAt:  s.CreatedAt,
		Mood:       s.mood,
		Sentiment:  s.analyzer.Stats(),
		Background: s.generator.Stats(),
		Compositor: s.compositor.Stats(),
	}
}
