package compositor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/councilstream/moodcanvas/internal/domain"
)

func TestCreateSplitScreen_HalfSplitGeometry(t *testing.T) {
	c := newTestCompositor(t)

	layers := c.CreateSplitScreen("left", "right", 0.5, 2, "#FFFFFF")
	require.Len(t, layers, 3)
	assert.Equal(t, 3, c.LayerCount())

	left := layers[0].Content.(CropContent)
	assert.Equal(t, 0, left.X)
	assert.Equal(t, 960, left.Width)
	assert.Equal(t, 1080, left.Height)
	assert.Equal(t, 20, layers[0].ZIndex)
	assert.Equal(t, domain.LayerVideo, layers[0].Type)

	right := layers[1].Content.(CropContent)
	assert.Equal(t, 960, right.X)
	assert.Equal(t, 960, right.Width)
	assert.Equal(t, 20, layers[1].ZIndex)

	divider := layers[2].Content.(RectContent)
	assert.Equal(t, 959, divider.X)
	assert.Equal(t, 2, divider.Width)
	assert.Equal(t, 1080, divider.Height)
	assert.Equal(t, "#FFFFFF", divider.Color)
	assert.Equal(t, 30, layers[2].ZIndex)
	assert.Equal(t, domain.LayerForeground, layers[2].Type)
}

func TestCreateSplitScreen_AsymmetricSplit(t *testing.T) {
	c := newTestCompositor(t)

	layers := c.CreateSplitScreen("left", "right", 0.25, 4, "#000000")
	left := layers[0].Content.(CropContent)
	right := layers[1].Content.(CropContent)
	divider := layers[2].Content.(RectContent)

	assert.Equal(t, 480, left.Width)
	assert.Equal(t, 480, right.X)
	assert.Equal(t, 1440, right.Width)
	assert.Equal(t, 478, divider.X)
}

func TestCreateSplitScreen_NoGeometryClamping(t *testing.T) {
	c := newTestCompositor(t)

	// Out-of-range split fractions are a caller precondition: values pass
	// through arithmetically, nothing is clamped or rejected.
	layers := c.CreateSplitScreen("left", "right", 1.5, 2, "#FFFFFF")
	left := layers[0].Content.(CropContent)
	right := layers[1].Content.(CropContent)
	assert.Equal(t, 2880, left.Width)
	assert.Equal(t, -960, right.Width)
}

func TestCreatePictureInPicture_Geometry(t *testing.T) {
	c := newTestCompositor(t)

	layers := c.CreatePictureInPicture("main", "pip", 1400, 100, 480, 270, 4, "#3498db")
	require.Len(t, layers, 3)

	assert.Equal(t, domain.LayerVideo, layers[0].Type)
	assert.Equal(t, "main", layers[0].Content)
	assert.Equal(t, 10, layers[0].ZIndex)

	border := layers[1].Content.(RectContent)
	assert.Equal(t, domain.LayerForeground, layers[1].Type)
	assert.Equal(t, 1396, border.X)
	assert.Equal(t, 96, border.Y)
	assert.Equal(t, 488, border.Width)
	assert.Equal(t, 278, border.Height)
	assert.Equal(t, 50, layers[1].ZIndex)

	window := layers[2].Content.(WindowContent)
	assert.Equal(t, "pip", window.Source)
	assert.Equal(t, 51, layers[2].ZIndex)
}

func TestLayouts_CompositeOrdering(t *testing.T) {
	c := newTestCompositor(t)

	c.SetBackground("bg", false)
	c.CreatePictureInPicture("main", "pip", 100, 100, 320, 180, 2, "#fff")

	frame := c.CompositeFrame(nil)
	require.Len(t, frame.Layers, 4)
	assert.Equal(t, 0, frame.Layers[0].ZIndex)
	assert.Equal(t, 10, frame.Layers[1].ZIndex)
	assert.Equal(t, 50, frame.Layers[2].ZIndex)
	assert.Equal(t, 51, frame.Layers[3].ZIndex)
}
