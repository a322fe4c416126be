package sentiment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/councilstream/moodcanvas/internal/domain"
)

func TestScoreText_Positive(t *testing.T) {
	score := scoreText("great progress, I agree")
	assert.Greater(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestScoreText_Negative(t *testing.T) {
	score := scoreText("wrong and dangerous, I oppose this")
	assert.Less(t, score, 0.0)
	assert.GreaterOrEqual(t, score, -1.0)
}

func TestScoreText_NoSignalWords(t *testing.T) {
	assert.Equal(t, 0.0, scoreText("the committee reconvenes on tuesday"))
	assert.Equal(t, 0.0, scoreText(""))
}

func TestScoreText_ClampedAtExtremes(t *testing.T) {
	// Every word is a signal word, so the raw score exceeds 1 before clamping.
	assert.Equal(t, 1.0, scoreText("good great excellent"))
	assert.Equal(t, -1.0, scoreText("bad wrong harmful"))
}

func TestTextIntensity_Bounds(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		confidence float64
	}{
		{"empty", "", 0},
		{"calm", "perhaps we could consider this", 0.2},
		{"emphatic", "we absolutely must act!!! this is extremely critical!", 1.0},
		{"long", strings.Repeat("word ", 200), 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textIntensity(tt.text, tt.confidence)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestTextIntensity_MarkersRaiseIntensity(t *testing.T) {
	calm := textIntensity("we could consider this", 0.5)
	emphatic := textIntensity("we must absolutely do this!", 0.5)
	assert.Greater(t, emphatic, calm)
}

func TestDetectEmotion_KeywordLadder(t *testing.T) {
	tests := []struct {
		text      string
		sentiment float64
		want      string
	}{
		{"this is critical and urgent", 0, "determined"},
		{"I am worried about the outcome", 0, "concerned"},
		{"an excited look at this opportunity", 0, "enthusiastic"},
		{"let us analyze the data", 0, "analytical"},
		{"plain statement", 0.8, "optimistic"},
		{"plain statement", -0.8, "critical"},
		{"plain statement", 0.1, "neutral"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, detectEmotion(tt.text, tt.sentiment))
		})
	}
}

func TestDetectEmotion_LadderPriority(t *testing.T) {
	// "must" (determined) outranks "worried" (concerned).
	assert.Equal(t, "determined", detectEmotion("we must act, I am worried", 0))
}

func TestControversyFactor(t *testing.T) {
	assert.Equal(t, 0.0, controversyFactor(0, 0))
	assert.InDelta(t, 0.6, controversyFactor(1, 0), 1e-9)
	assert.InDelta(t, 0.4, controversyFactor(0, 1), 1e-9)
	assert.Equal(t, 1.0, controversyFactor(1, 1))
	// Negative sentiment is as controversial as positive.
	assert.InDelta(t, controversyFactor(0.9, 0.5), controversyFactor(-0.9, 0.5), 1e-9)
}

func TestClassifyTone(t *testing.T) {
	tests := []struct {
		sentiment float64
		want      domain.Tone
	}{
		{0.5, domain.TonePositive},
		{-0.5, domain.ToneNegative},
		{0.05, domain.ToneNeutral},
		{-0.05, domain.ToneNeutral},
		{0.2, domain.ToneMixed},
		{-0.2, domain.ToneMixed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyTone(tt.sentiment), "sentiment %g", tt.sentiment)
	}
}
