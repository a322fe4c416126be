package compositor

import "github.com/councilstream/moodcanvas/internal/domain"

// CropContent is a source frame cropped to a rectangle of the canvas.
type CropContent struct {
	Type   string `json:"type"`
	Source any    `json:"source"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// RectContent is a solid colored rectangle (dividers, borders).
type RectContent struct {
	Type   string `json:"type"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Color  string `json:"color"`
}

// WindowContent is a source frame scaled into a rectangle of the canvas.
type WindowContent struct {
	Type   string `json:"type"`
	Source any    `json:"source"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// CreateSplitScreen adds two complementary crops split at the given fraction
// of the canvas width plus a divider bar centered on the split line. The
// split position is not validated against [0,1]; that is the caller's
// precondition.
func (c *Compositor) CreateSplitScreen(left, right any, splitPosition float64, dividerWidth int, dividerColor string) []domain.Layer {
	splitX := int(float64(c.cfg.Width) * splitPosition)

	leftLayer := c.AddLayer(domain.LayerVideo, CropContent{
		Type:   "crop",
		Source: left,
		X:      0,
		Y:      0,
		Width:  splitX,
		Height: c.cfg.Height,
	}, 1.0, domain.BlendNormal, 20)

	rightLayer := c.AddLayer(domain.LayerVideo, CropContent{
		Type:   "crop",
		Source: right,
		X:      splitX,
		Y:      0,
		Width:  c.cfg.Width - splitX,
		Height: c.cfg.Height,
	}, 1.0, domain.BlendNormal, 20)

	divider := c.AddLayer(domain.LayerForeground, RectContent{
		Type:   "rect",
		X:      splitX - dividerWidth/2,
		Y:      0,
		Width:  dividerWidth,
		Height: c.cfg.Height,
		Color:  dividerColor,
	}, 1.0, domain.BlendNormal, 30)

	return []domain.Layer{leftLayer, rightLayer, divider}
}

// CreatePictureInPicture adds the main content full-frame, a border rectangle
// behind the inset window, and the inset content itself. Geometry is taken as
// given; rectangles outside the canvas are the caller's precondition.
func (c *Compositor) CreatePictureInPicture(main, pip any, x, y, width, height, borderWidth int, borderColor string) []domain.Layer {
	mainLayer := c.AddLayer(domain.LayerVideo, main, 1.0, domain.BlendNormal, 10)

	border := c.AddLayer(domain.LayerForeground, RectContent{
		Type:   "rect",
		X:      x - borderWidth,
		Y:      y - borderWidth,
		Width:  width + 2*borderWidth,
		Height: height + 2*borderWidth,
		Color:  borderColor,
	}, 1.0, domain.BlendNormal, 50)

	pipLayer := c.AddLayer(domain.LayerVideo, WindowContent{
		Type:   "window",
		Source: pip,
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}, 1.0, domain.BlendNormal, 51)

	return []domain.Layer{mainLayer, border, pipLayer}
}
