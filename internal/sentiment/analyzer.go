package sentiment

import (
	"fmt"
	"math"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/councilstream/moodcanvas/internal/domain"
	"github.com/councilstream/moodcanvas/internal/metrics"
)

const (
	maxReadings    = 100 // hard cap on retained readings, independent of the smoothing window
	maxMoodHistory = 50

	defaultSmoothingWindow      = 5
	defaultIntensitySensitivity = 1.0
)

// Config tunes the analyzer.
type Config struct {
	// SmoothingWindow is the number of recent readings a mood snapshot
	// aggregates over. Defaults to 5.
	SmoothingWindow int
	// MoodTransitionThreshold is accepted for forward compatibility but not
	// read by the decision ladder. Reserved.
	MoodTransitionThreshold float64
	// IntensitySensitivity multiplies the snapshot intensity before clamping.
	// Defaults to 1.0.
	IntensitySensitivity float64
}

// Analyzer ingests utterance readings and derives mood snapshots. It is
// mutable private state for exclusive ownership by one driving loop; it does
// no locking of its own.
type Analyzer struct {
	cfg   Config
	clock clockwork.Clock

	readings    []domain.SentimentReading
	current     *domain.MoodState
	moodHistory []domain.MoodState
}

// NewAnalyzer validates cfg and returns a ready analyzer. Zero values take
// defaults; negative values are configuration errors.
func NewAnalyzer(cfg Config, clock clockwork.Clock) (*Analyzer, error) {
	if cfg.SmoothingWindow == 0 {
		cfg.SmoothingWindow = defaultSmoothingWindow
	}
	if cfg.IntensitySensitivity == 0 {
		cfg.IntensitySensitivity = defaultIntensitySensitivity
	}
	if cfg.SmoothingWindow < 0 {
		return nil, fmt.Errorf("smoothing window must be positive, got %d", cfg.SmoothingWindow)
	}
	if cfg.IntensitySensitivity < 0 {
		return nil, fmt.Errorf("intensity sensitivity must be positive, got %g", cfg.IntensitySensitivity)
	}
	return &Analyzer{cfg: cfg, clock: clock}, nil
}

// AddReading scores one utterance and appends it to the rolling history.
// emotion overrides the keyword ladder when non-empty; sentimentOverride is
// used verbatim when non-nil. Never fails: degenerate input produces a
// zero-signal reading.
func (a *Analyzer) AddReading(speaker, text string, confidence float64, emotion string, sentimentOverride *float64) domain.SentimentReading {
	score := scoreText(text)
	if sentimentOverride != nil {
		score = *sentimentOverride
	}

	intensity := textIntensity(text, confidence)

	if emotion == "" {
		emotion = detectEmotion(text, score)
	}

	reading := domain.SentimentReading{
		Timestamp:         a.clock.Now(),
		Speaker:           speaker,
		SentimentScore:    score,
		Intensity:         intensity,
		Confidence:        confidence,
		Emotion:           emotion,
		ControversyFactor: controversyFactor(score, intensity),
	}

	a.readings = append(a.readings, reading)
	if len(a.readings) > maxReadings {
		a.readings = a.readings[len(a.readings)-maxReadings:]
	}

	metrics.ReadingsIngestedTotal.Inc()
	return reading
}

// CurrentMood recomputes the mood snapshot from the last smoothing-window
// readings, appends it to the mood history, and returns it. An empty history
// yields the documented default state, never an error.
func (a *Analyzer) CurrentMood() domain.MoodState {
	if len(a.readings) == 0 {
		return domain.MoodState{
			Mood:            domain.MoodThoughtfulAnalysis,
			Intensity:       0.3,
			Tone:            domain.ToneNeutral,
			EnergyLevel:     0.3,
			ConsensusLevel:  1.0,
			Timestamp:       a.clock.Now(),
			TransitionSpeed: 1.0,
		}
	}

	recent := a.readings
	if len(recent) > a.cfg.SmoothingWindow {
		recent = recent[len(recent)-a.cfg.SmoothingWindow:]
	}

	var sumSentiment, sumIntensity, sumControversy, sumConfidence float64
	for _, r := range recent {
		sumSentiment += r.SentimentScore
		sumIntensity += r.Intensity
		sumControversy += r.ControversyFactor
		sumConfidence += r.Confidence
	}
	n := float64(len(recent))
	avgSentiment := sumSentiment / n
	avgIntensity := sumIntensity / n
	avgControversy := sumControversy / n
	avgConfidence := sumConfidence / n

	// Population variance of sentiment: the disagreement measure.
	variance := 0.0
	if len(recent) > 1 {
		for _, r := range recent {
			d := r.SentimentScore - avgSentiment
			variance += d * d
		}
		variance /= n
	}

	energy := (avgIntensity + avgConfidence) / 2
	consensus := math.Max(0, 1-variance*2)

	mood := decideMood(avgSentiment, avgIntensity, avgControversy, consensus, energy)

	transitionSpeed := 1.0
	if a.current != nil && a.current.Mood != mood {
		transitionSpeed = 2.0
		metrics.MoodTransitionsTotal.Inc()
	}

	state := domain.MoodState{
		Mood:             mood,
		Intensity:        math.Min(1, avgIntensity*a.cfg.IntensitySensitivity),
		Tone:             classifyTone(avgSentiment),
		ControversyLevel: avgControversy,
		EnergyLevel:      energy,
		ConsensusLevel:   consensus,
		Timestamp:        a.clock.Now(),
		TransitionSpeed:  transitionSpeed,
	}

	a.current = &state
	a.moodHistory = append(a.moodHistory, state)
	if len(a.moodHistory) > maxMoodHistory {
		a.moodHistory = a.moodHistory[len(a.moodHistory)-maxMoodHistory:]
	}

	metrics.MoodComputationsTotal.WithLabelValues(mood.String()).Inc()
	return state
}

// decideMood walks the fixed decision ladder; first match wins.
func decideMood(sentiment, intensity, controversy, consensus, energy float64) domain.Mood {
	// High consensus moods.
	if consensus > 0.7 {
		switch {
		case sentiment > 0.3:
			return domain.MoodConsensusReached
		case intensity < 0.4:
			return domain.MoodCalmAgreement
		default:
			return domain.MoodConsensusBuilding
		}
	}

	// High controversy or collapsed consensus.
	if controversy > 0.7 || consensus < 0.3 {
		if intensity > 0.7 {
			return domain.MoodIntenseDisagreement
		}
		return domain.MoodHeatedDebate
	}

	if intensity < 0.5 && math.Abs(sentiment) < 0.3 {
		return domain.MoodThoughtfulAnalysis
	}

	if math.Abs(sentiment) < 0.2 && energy > 0.3 && energy < 0.7 {
		return domain.MoodCuriousExploration
	}

	if math.Abs(sentiment) > 0.5 && energy > 0.6 {
		return domain.MoodPassionateAdvocacy
	}

	return domain.MoodThoughtfulAnalysis
}

// MoodArc returns a snapshot of the mood history within the trailing window,
// oldest first. The returned slice is a copy.
func (a *Analyzer) MoodArc(window time.Duration) []domain.MoodState {
	cutoff := a.clock.Now().Add(-window)
	var arc []domain.MoodState
	for _, state := range a.moodHistory {
		if !state.Timestamp.Before(cutoff) {
			arc = append(arc, state)
		}
	}
	return arc
}

// Reset discards all readings and mood history.
func (a *Analyzer) Reset() {
	a.readings = nil
	a.current = nil
	a.moodHistory = nil
}

// Stats summarizes the analyzer state.
type Stats struct {
	TotalReadings  int     `json:"total_readings"`
	AvgSentiment   float64 `json:"avg_sentiment"`
	AvgIntensity   float64 `json:"avg_intensity"`
	AvgControversy float64 `json:"avg_controversy"`
	CurrentMood    string  `json:"current_mood"`
	MoodChanges    int     `json:"mood_changes"`
	Speakers       int     `json:"speakers"`
}

// Stats reports aggregate statistics over the retained history.
func (a *Analyzer) Stats() Stats {
	stats := Stats{TotalReadings: len(a.readings)}
	if len(a.readings) == 0 {
		return stats
	}

	speakers := make(map[string]struct{})
	for _, r := range a.readings {
		stats.AvgSentiment += r.SentimentScore
		stats.AvgIntensity += r.Intensity
		stats.AvgControversy += r.ControversyFactor
		speakers[r.Speaker] = struct{}{}
	}
	n := float64(len(a.readings))
	stats.AvgSentiment /= n
	stats.AvgIntensity /= n
	stats.AvgControversy /= n
	stats.Speakers = len(speakers)
	stats.MoodChanges = len(a.moodHistory)
	if a.current != nil {
		stats.CurrentMood = a.current.Mood.String()
	}
	return stats
}
