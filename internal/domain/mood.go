package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Mood is the closed set of visual mood classifications for a debate.
type Mood int

const (
	MoodCalmAgreement Mood = iota
	MoodThoughtfulAnalysis
	MoodHeatedDebate
	MoodConsensusBuilding
	MoodConsensusReached
	MoodIntenseDisagreement
	MoodCuriousExploration
	MoodPassionateAdvocacy
)

var moodNames = [...]string{
	MoodCalmAgreement:       "calm_agreement",
	MoodThoughtfulAnalysis:  "thoughtful_analysis",
	MoodHeatedDebate:        "heated_debate",
	MoodConsensusBuilding:   "consensus_building",
	MoodConsensusReached:    "consensus_reached",
	MoodIntenseDisagreement: "intense_disagreement",
	MoodCuriousExploration:  "curious_exploration",
	MoodPassionateAdvocacy:  "passionate_advocacy",
}

func (m Mood) String() string {
	if m < 0 || int(m) >= len(moodNames) {
		return "unknown"
	}
	return moodNames[m]
}

// MarshalJSON encodes the mood as its snake_case name.
func (m Mood) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a snake_case mood name.
func (m *Mood) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMood(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMood converts a snake_case name to a Mood.
func ParseMood(s string) (Mood, error) {
	for i, name := range moodNames {
		if name == s {
			return Mood(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mood %q", s)
}

// Moods lists all mood variants in declaration order.
func Moods() []Mood {
	out := make([]Mood, len(moodNames))
	for i := range moodNames {
		out[i] = Mood(i)
	}
	return out
}

// Tone is the aggregate sentiment direction over the smoothing window.
type Tone int

const (
	ToneNeutral Tone = iota
	TonePositive
	ToneNegative
	ToneMixed
)

var toneNames = [...]string{
	ToneNeutral:  "neutral",
	TonePositive: "positive",
	ToneNegative: "negative",
	ToneMixed:    "mixed",
}

func (t Tone) String() string {
	if t < 0 || int(t) >= len(toneNames) {
		return "unknown"
	}
	return toneNames[t]
}

// MarshalJSON encodes the tone as its lowercase name.
func (t Tone) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// SentimentReading is one immutable utterance measurement. Created by the
// analyzer on ingestion and never mutated afterwards.
type SentimentReading struct {
	Timestamp         time.Time `json:"timestamp"`
	Speaker           string    `json:"speaker"`
	SentimentScore    float64   `json:"sentiment_score"`    // -1.0 (very negative) to 1.0 (very positive)
	Intensity         float64   `json:"intensity"`          // 0.0 (calm) to 1.0 (intense)
	Confidence        float64   `json:"confidence"`         // speaker's confidence level
	Emotion           string    `json:"emotion"`            // primary emotion label
	ControversyFactor float64   `json:"controversy_factor"` // 0.0 to 1.0
}

// MoodState is a derived, immutable snapshot of the debate mood.
type MoodState struct {
	Mood             Mood      `json:"mood"`
	Intensity        float64   `json:"intensity"`
	Tone             Tone      `json:"sentiment_tone"`
	ControversyLevel float64   `json:"controversy_level"`
	EnergyLevel      float64   `json:"energy_level"`
	ConsensusLevel   float64   `json:"consensus_level"`
	Timestamp        time.Time `json:"timestamp"`
	TransitionSpeed  float64   `json:"transition_speed"` // multiplier for palette cross-fades
}
