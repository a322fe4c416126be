package background

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/councilstream/moodcanvas/internal/domain"
)

func TestPaletteFor_TotalOverMoods(t *testing.T) {
	for _, mood := range domain.Moods() {
		p := PaletteFor(mood)
		assert.NotEmpty(t, p.Primary, mood.String())
		assert.NotEmpty(t, p.Secondary, mood.String())
		assert.NotEmpty(t, p.Accent, mood.String())
		assert.NotEmpty(t, p.Particle, mood.String())
		assert.NotEmpty(t, p.Glow, mood.String())
	}
}

func TestPaletteFor_UnknownFallsBack(t *testing.T) {
	fallback := PaletteFor(domain.Mood(999))
	assert.Equal(t, moodPalettes[domain.MoodThoughtfulAnalysis], fallback)
}

func TestParseHex(t *testing.T) {
	assert.Equal(t, RGB{R: 0xe7, G: 0x4c, B: 0x3c}, parseHex("#e74c3c"))
	assert.Equal(t, RGB{R: 0xff, G: 0xff, B: 0xff}, parseHex("ffffff"))
	assert.Equal(t, RGB{}, parseHex("#fff"))
	assert.Equal(t, RGB{}, parseHex("not-a-color"))
}
