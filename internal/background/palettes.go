package background

import (
	"fmt"

	"github.com/councilstream/moodcanvas/internal/domain"
)

// Palette is the five named hex colors associated with a mood.
type Palette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
	Particle  string `json:"particle"`
	Glow      string `json:"glow"`
}

// RGB is a decoded color channel triple.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// parseHex decodes "#RRGGBB" (leading '#' optional). Malformed input decodes
// to black rather than failing; palette entries are compile-time constants.
func parseHex(s string) RGB {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var rgb RGB
	if len(s) != 6 {
		return rgb
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &rgb.R, &rgb.G, &rgb.B); err != nil {
		return RGB{}
	}
	return rgb
}

// moodPalettes maps every mood category to its palette. The table is total
// over the closed mood enum; PaletteFor guards the (unreachable) miss case.
var moodPalettes = map[domain.Mood]Palette{
	domain.MoodCalmAgreement: {
		Primary:   "#3498db", // calm blue
		Secondary: "#2ecc71", // peaceful green
		Accent:    "#ecf0f1",
		Particle:  "#5dade2",
		Glow:      "#a9cce3",
	},
	domain.MoodThoughtfulAnalysis: {
		Primary:   "#9b59b6", // deep purple
		Secondary: "#34495e",
		Accent:    "#7f8c8d",
		Particle:  "#bb8fce",
		Glow:      "#d7bde2",
	},
	domain.MoodHeatedDebate: {
		Primary:   "#e74c3c", // hot red
		Secondary: "#f39c12",
		Accent:    "#c0392b",
		Particle:  "#ec7063",
		Glow:      "#f5b7b1",
	},
	domain.MoodConsensusBuilding: {
		Primary:   "#16a085", // teal
		Secondary: "#27ae60",
		Accent:    "#f39c12", // gold accent
		Particle:  "#48c9b0",
		Glow:      "#a3e4d7",
	},
	domain.MoodConsensusReached: {
		Primary:   "#2ecc71", // victory green
		Secondary: "#27ae60",
		Accent:    "#f1c40f", // gold
		Particle:  "#58d68d",
		Glow:      "#abebc6",
	},
	domain.MoodIntenseDisagreement: {
		Primary:   "#c0392b", // deep red
		Secondary: "#e74c3c",
		Accent:    "#34495e", // dark contrast
		Particle:  "#e74c3c",
		Glow:      "#f1948a",
	},
	domain.MoodCuriousExploration: {
		Primary:   "#3498db", // explorer blue
		Secondary: "#9b59b6",
		Accent:    "#1abc9c",
		Particle:  "#85c1e9",
		Glow:      "#aed6f1",
	},
	domain.MoodPassionateAdvocacy: {
		Primary:   "#e67e22", // passionate orange
		Secondary: "#d35400",
		Accent:    "#f39c12",
		Particle:  "#f0b27a",
		Glow:      "#f8c471",
	},
}

// PaletteFor resolves the palette for a mood. Unknown categories fall back to
// the thoughtful_analysis palette; unreachable under the closed enum but kept
// as a guard against future additions.
func PaletteFor(mood domain.Mood) Palette {
	if p, ok := moodPalettes[mood]; ok {
		return p
	}
	return moodPalettes[domain.MoodThoughtfulAnalysis]
}
