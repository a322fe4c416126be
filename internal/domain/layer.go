package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// LayerType classifies a compositing layer.
type LayerType int

const (
	LayerBackground LayerType = iota
	LayerVideo
	LayerOverlay
	LayerForeground
)

var layerTypeNames = [...]string{
	LayerBackground: "background",
	LayerVideo:      "video",
	LayerOverlay:    "overlay",
	LayerForeground: "foreground",
}

func (t LayerType) String() string {
	if t < 0 || int(t) >= len(layerTypeNames) {
		return "unknown"
	}
	return layerTypeNames[t]
}

// MarshalJSON encodes the layer type as its lowercase name.
func (t LayerType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// ParseLayerType converts a lowercase name to a LayerType.
func ParseLayerType(s string) (LayerType, error) {
	for i, name := range layerTypeNames {
		if name == s {
			return LayerType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown layer type %q", s)
}

// BlendMode selects how a layer combines with the layers below it.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendSoftLight
	BlendAdd
)

var blendModeNames = [...]string{
	BlendNormal:    "normal",
	BlendMultiply:  "multiply",
	BlendScreen:    "screen",
	BlendOverlay:   "overlay",
	BlendSoftLight: "soft_light",
	BlendAdd:       "add",
}

func (b BlendMode) String() string {
	if b < 0 || int(b) >= len(blendModeNames) {
		return "unknown"
	}
	return blendModeNames[b]
}

// MarshalJSON encodes the blend mode as its snake_case name.
func (b BlendMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// Layer is one persistent compositing element owned by a compositor. The ID
// gives layers a stable identity so callers can remove exactly the layer a
// helper returned.
type Layer struct {
	ID      uuid.UUID `json:"id"`
	Type    LayerType `json:"type"`
	Content any       `json:"content"`
	Opacity float64   `json:"opacity"`
	Blend   BlendMode `json:"blend_mode"`
	ZIndex  int       `json:"z_index"`
	Enabled bool      `json:"enabled"`
}
