package domain

// LayerDescriptor is one visual element of a composited frame, in renderer
// terms. The Type field carries the layer-type name, or the transient
// "background_previous"/"background_current" pair while a cross-fade runs.
type LayerDescriptor struct {
	Type    string    `json:"type"`
	Content any       `json:"content"`
	Opacity float64   `json:"opacity"`
	Blend   BlendMode `json:"blend_mode"`
	ZIndex  int       `json:"z_index"`
	Blur    int       `json:"blur,omitempty"`
}

// FrameDescriptor is the compositor's sole output: an ordered-by-z-index
// list of layer descriptions plus the canvas dimensions. It is a data
// contract, not a wire protocol; the broadcaster serializes it as JSON for
// WebSocket renderers.
type FrameDescriptor struct {
	Width  int               `json:"width"`
	Height int               `json:"height"`
	Layers []LayerDescriptor `json:"layers"`
}
