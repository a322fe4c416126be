package domain

import (
	"encoding/json"
	"fmt"
)

// Style selects one of the background generation algorithms.
type Style int

const (
	StyleGradient Style = iota
	StyleParticles
	StyleGeometric
	StyleWaves
	StyleNebula
	StyleMatrix
	StyleNeural
)

var styleNames = [...]string{
	StyleGradient:  "gradient",
	StyleParticles: "particles",
	StyleGeometric: "geometric",
	StyleWaves:     "waves",
	StyleNebula:    "nebula",
	StyleMatrix:    "matrix",
	StyleNeural:    "neural",
}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return "unknown"
	}
	return styleNames[s]
}

// MarshalJSON encodes the style as its lowercase name.
func (s Style) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a lowercase style name.
func (s *Style) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseStyle(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Styles returns every style in declaration order.
func Styles() []Style {
	styles := make([]Style, len(styleNames))
	for i := range styles {
		styles[i] = Style(i)
	}
	return styles
}

// ParseStyle converts a lowercase name to a Style.
func ParseStyle(s string) (Style, error) {
	for i, name := range styleNames {
		if name == s {
			return Style(i), nil
		}
	}
	return 0, fmt.Errorf("unknown background style %q", s)
}
