package background

import (
	"math"

	"github.com/councilstream/moodcanvas/internal/domain"
)

// GradientFrame is the animated-gradient payload. Angle drifts with intensity
// and the whole gradient pulses with energy.
type GradientFrame struct {
	Type       string    `json:"type"`
	Angle      float64   `json:"angle"`
	Colors     []string  `json:"colors"`
	Stops      []float64 `json:"stops"`
	Pulse      float64   `json:"pulse"`
	Transition float64   `json:"transition"`
}

func (GradientFrame) StyleName() string { return "gradient" }

func (g *Generator) gradientFrame(mood domain.MoodState, palette Palette) GradientFrame {
	angle := math.Mod(float64(g.frameCount)*mood.Intensity*0.5, 360)
	pulse := 0.8 + 0.2*math.Sin(float64(g.frameCount)*mood.EnergyLevel*0.1)

	return GradientFrame{
		Type:       "gradient",
		Angle:      angle,
		Colors:     []string{palette.Primary, palette.Secondary, palette.Accent},
		Stops:      []float64{0, 0.5, 1},
		Pulse:      pulse,
		Transition: g.transitionProgress,
	}
}

// Shape is one rotating polygon in a geometric frame.
type Shape struct {
	Kind     string  `json:"kind"`
	Radius   float64 `json:"radius"`
	Rotation float64 `json:"rotation"`
	Color    string  `json:"color"`
	Alpha    float64 `json:"alpha"`
}

// GeometricFrame is the concentric-shapes payload.
type GeometricFrame struct {
	Type            string  `json:"type"`
	Shapes          []Shape `json:"shapes"`
	BackgroundColor string  `json:"background_color"`
}

func (GeometricFrame) StyleName() string { return "geometric" }

func (g *Generator) geometricFrame(mood domain.MoodState, palette Palette) GeometricFrame {
	count := 5 + int(10*mood.Intensity)
	rotation := math.Mod(float64(g.frameCount)*mood.ControversyLevel*2, 360)
	scale := 0.5 + 0.5*(1-mood.ConsensusLevel)
	alpha := 0.3 + 0.3*mood.EnergyLevel

	shapes := make([]Shape, count)
	for i := range shapes {
		color := palette.Primary
		if i%2 == 1 {
			color = palette.Secondary
		}
		shapes[i] = Shape{
			Kind:     "hexagon",
			Radius:   100 + float64(i)*20*scale,
			Rotation: rotation + float64(i)/float64(count)*360,
			Color:    color,
			Alpha:    alpha,
		}
	}

	return GeometricFrame{
		Type:            "geometric",
		Shapes:          shapes,
		BackgroundColor: palette.Accent,
	}
}

// Wave is one sine layer in a waves frame.
type Wave struct {
	Amplitude float64 `json:"amplitude"`
	Frequency float64 `json:"frequency"`
	Phase     float64 `json:"phase"`
	YOffset   float64 `json:"y_offset"`
	Color     string  `json:"color"`
	Alpha     float64 `json:"alpha"`
}

// WavesFrame is the layered-sine payload.
type WavesFrame struct {
	Type            string `json:"type"`
	Waves           []Wave `json:"waves"`
	BackgroundColor string `json:"background_color"`
}

func (WavesFrame) StyleName() string { return "waves" }

func (g *Generator) waveFrame(mood domain.MoodState, palette Palette) WavesFrame {
	count := 3 + int(5*mood.Intensity)
	amplitude := 30 + 50*mood.EnergyLevel
	frequency := 0.01 + 0.02*mood.ControversyLevel
	alpha := 0.4 + 0.3*mood.ConsensusLevel
	colors := []string{palette.Primary, palette.Secondary, palette.Accent}

	waves := make([]Wave, count)
	for i := range waves {
		waves[i] = Wave{
			Amplitude: amplitude,
			Frequency: frequency,
			Phase:     float64(g.frameCount)*mood.Intensity*0.05 + float64(i)*0.5,
			YOffset:   float64(i) / float64(count) * float64(g.cfg.Height),
			Color:     colors[i%len(colors)],
			Alpha:     alpha,
		}
	}

	return WavesFrame{
		Type:            "waves",
		Waves:           waves,
		BackgroundColor: palette.Accent,
	}
}

// NebulaFrame is the noise-cloud payload. The renderer owns the noise field;
// this side only supplies the parameters that shape it.
type NebulaFrame struct {
	Type       string   `json:"type"`
	Swirl      float64  `json:"swirl"`
	Brightness float64  `json:"brightness"`
	TimeOffset float64  `json:"time_offset"`
	Turbulence float64  `json:"turbulence"`
	Scale      float64  `json:"scale"`
	Colors     []string `json:"colors"`
}

func (NebulaFrame) StyleName() string { return "nebula" }

func (g *Generator) nebulaFrame(mood domain.MoodState, palette Palette) NebulaFrame {
	return NebulaFrame{
		Type:       "nebula",
		Swirl:      2 * mood.ControversyLevel,
		Brightness: 0.5 + 0.5*mood.EnergyLevel,
		TimeOffset: float64(g.frameCount) * 0.01 * mood.Intensity,
		Turbulence: mood.Intensity,
		Scale:      100 + 100*mood.ControversyLevel,
		Colors:     []string{palette.Primary, palette.Secondary, palette.Glow},
	}
}

// MatrixColumn is one falling glyph stream.
type MatrixColumn struct {
	Speed  float64 `json:"speed"`
	Length int     `json:"length"`
	Offset int     `json:"offset"`
}

// MatrixFrame is the glyph-rain payload.
type MatrixFrame struct {
	Type            string         `json:"type"`
	Columns         []MatrixColumn `json:"columns"`
	Charset         string         `json:"charset"`
	Color           string         `json:"color"`
	BackgroundColor string         `json:"background_color"`
	Glow            bool           `json:"glow"`
}

func (MatrixFrame) StyleName() string { return "matrix" }

func (g *Generator) matrixFrame(mood domain.MoodState, palette Palette) MatrixFrame {
	count := 20 + int(30*mood.Intensity)
	baseSpeed := 1 + 3*mood.EnergyLevel

	columns := make([]MatrixColumn, count)
	for i := range columns {
		columns[i] = MatrixColumn{
			Speed:  baseSpeed * (0.8 + g.rng.Float64()*0.4),
			Length: 10 + g.rng.Intn(21),
			Offset: g.rng.Intn(g.cfg.Height),
		}
	}

	// Contested debates corrupt the stream with punctuation glyphs.
	charset := "01?!"
	if mood.ConsensusLevel > 0.7 {
		charset = "01"
	}

	return MatrixFrame{
		Type:            "matrix",
		Columns:         columns,
		Charset:         charset,
		Color:           palette.Particle,
		BackgroundColor: "#000000",
		Glow:            mood.Intensity > 0.7,
	}
}

// NeuralNode is one vertex of the neural graph.
type NeuralNode struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Size       float64 `json:"size"`
	Color      string  `json:"color"`
	PulsePhase float64 `json:"pulse_phase"`
}

// NeuralEdge connects two nodes by index.
type NeuralEdge struct {
	From  int     `json:"from"`
	To    int     `json:"to"`
	Alpha float64 `json:"alpha"`
	Color string  `json:"color"`
}

// NeuralFrame is the node-graph payload. Edge density follows consensus, so a
// converging discussion literally becomes more connected.
type NeuralFrame struct {
	Type            string       `json:"type"`
	Nodes           []NeuralNode `json:"nodes"`
	Edges           []NeuralEdge `json:"edges"`
	PulsePhase      float64      `json:"pulse_phase"`
	Activity        float64      `json:"activity"`
	BackgroundColor string       `json:"background_color"`
}

func (NeuralFrame) StyleName() string { return "neural" }

func (g *Generator) neuralFrame(mood domain.MoodState, palette Palette) NeuralFrame {
	count := 10 + int(20*mood.Intensity)
	margin := 50.0

	nodes := make([]NeuralNode, count)
	for i := range nodes {
		nodes[i] = NeuralNode{
			X:          margin + g.rng.Float64()*(float64(g.cfg.Width)-2*margin),
			Y:          margin + g.rng.Float64()*(float64(g.cfg.Height)-2*margin),
			Size:       5 + 10*mood.EnergyLevel,
			Color:      palette.Particle,
			PulsePhase: g.rng.Float64() * 2 * math.Pi,
		}
	}

	edgeProb := 0.2 + 0.5*mood.ConsensusLevel
	var edges []NeuralEdge
	for i := 0; i < count; i++ {
		for j := i + 1; j < count; j++ {
			if g.rng.Float64() >= edgeProb {
				continue
			}
			dist := math.Hypot(nodes[i].X-nodes[j].X, nodes[i].Y-nodes[j].Y)
			edges = append(edges, NeuralEdge{
				From:  i,
				To:    j,
				Alpha: math.Max(0.1, 1-dist/float64(g.cfg.Width)),
				Color: palette.Accent,
			})
		}
	}

	return NeuralFrame{
		Type:            "neural",
		Nodes:           nodes,
		Edges:           edges,
		PulsePhase:      math.Mod(float64(g.frameCount)*mood.Intensity*0.1, 2*math.Pi),
		Activity:        mood.EnergyLevel,
		BackgroundColor: palette.Secondary,
	}
}
