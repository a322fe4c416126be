package sentiment

import (
	"math"
	"strings"

	"github.com/councilstream/moodcanvas/internal/domain"
)

// Keyword heuristics, not NLP: the upstream debate agents already attach
// confidence and may override sentiment outright, so the lexicon only has to
// catch the broad polarity of an utterance.

var positiveWords = map[string]struct{}{
	"good": {}, "great": {}, "excellent": {}, "agree": {}, "support": {},
	"benefit": {}, "positive": {}, "helpful": {}, "important": {},
	"necessary": {}, "progress": {}, "improve": {}, "better": {},
	"constructive": {}, "valuable": {}, "promising": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "wrong": {}, "disagree": {}, "oppose": {}, "harmful": {},
	"negative": {}, "problematic": {}, "dangerous": {}, "risky": {},
	"concerning": {}, "worse": {}, "damage": {}, "threat": {}, "issue": {},
	"problem": {}, "failure": {},
}

// intensityMarkers are counted as substrings, so "!!" contributes on top of
// the two "!" hits it contains.
var intensityMarkers = []string{"!", "!!", "very", "extremely", "absolutely", "must", "critical"}

var emotionKeywords = []struct {
	emotion string
	words   []string
}{
	{"determined", []string{"must", "critical", "urgent", "essential"}},
	{"concerned", []string{"concerned", "worried", "risky", "dangerous"}},
	{"enthusiastic", []string{"excited", "promising", "opportunity"}},
	{"analytical", []string{"careful", "consider", "analyze"}},
}

const (
	markerWeight     = 0.15
	confidenceWeight = 0.5
	lengthWeight     = 0.35
	lengthCeiling    = 100 // words; beyond this an utterance counts as maximally thorough
)

// scoreText derives a sentiment score in [-1, 1] from signal-word counts,
// normalized by utterance length. Zero signal words yields zero.
func scoreText(text string) float64 {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 0
	}

	var positive, negative int
	for _, w := range words {
		if _, ok := positiveWords[w]; ok {
			positive++
		}
		if _, ok := negativeWords[w]; ok {
			negative++
		}
	}

	if positive+negative == 0 {
		return 0
	}

	score := float64(positive-negative) / float64(len(words))
	return clamp(score*10, -1, 1)
}

// textIntensity blends marker density, confidence, and a length-normalized
// thoroughness term into [0, 1].
func textIntensity(text string, confidence float64) float64 {
	lower := strings.ToLower(text)
	markerCount := 0
	for _, marker := range intensityMarkers {
		markerCount += strings.Count(lower, marker)
	}

	wordCount := len(strings.Fields(text))
	lengthFactor := math.Min(1, float64(wordCount)/lengthCeiling)

	return math.Min(1, float64(markerCount)*markerWeight+confidence*confidenceWeight+lengthFactor*lengthWeight)
}

// detectEmotion walks a priority-ordered keyword ladder, then falls back to
// sentiment-sign thresholds.
func detectEmotion(text string, sentiment float64) string {
	lower := strings.ToLower(text)
	for _, entry := range emotionKeywords {
		for _, w := range entry.words {
			if strings.Contains(lower, w) {
				return entry.emotion
			}
		}
	}
	switch {
	case sentiment > 0.5:
		return "optimistic"
	case sentiment < -0.5:
		return "critical"
	default:
		return "neutral"
	}
}

// controversyFactor blends sentiment extremity with intensity.
func controversyFactor(sentiment, intensity float64) float64 {
	return math.Min(1, math.Abs(sentiment)*0.6+intensity*0.4)
}

// classifyTone maps a mean sentiment to its aggregate tone.
func classifyTone(sentiment float64) domain.Tone {
	switch {
	case sentiment > 0.3:
		return domain.TonePositive
	case sentiment < -0.3:
		return domain.ToneNegative
	case math.Abs(sentiment) < 0.1:
		return domain.ToneNeutral
	default:
		return domain.ToneMixed
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
