package layout

import (
	"math"

	"maldreth/internal/lifecycle"
)

// Style selects how stage nodes are placed.
type Style string

const (
	// StyleCircle spaces the stages evenly around a circle of the configured
	// radius, first stage at the top.
	StyleCircle Style = "circle"
	// StyleZigzag reproduces the legacy placement: nodes alternate between
	// (-0.8r, r) and (0.8r, -r) on index parity.
	StyleZigzag Style = "zigzag"
)

// ParseStyle maps a configuration string onto a Style, defaulting to circle.
func ParseStyle(value string) Style {
	if value == string(StyleZigzag) {
		return StyleZigzag
	}
	return StyleCircle
}

// Node is a positioned stage marker.
type Node struct {
	StageID     int64
	Name        string
	Description string
	X           float64
	Y           float64
	Selected    bool
}

// Edge is a line between two stage positions.
type Edge struct {
	FromStageID int64
	ToStageID   int64
	X1, Y1      float64
	X2, Y2      float64
	Dashed      bool
}

// Diagram is a fully positioned lifecycle graph ready for rendering.
type Diagram struct {
	Nodes  []Node
	Edges  []Edge
	Radius float64
}

// Options configures diagram generation.
type Options struct {
	Style Style
	// Radius of the node circle; non-positive values fall back to 1.
	Radius float64
	// SelectedStageID highlights one node; zero selects nothing.
	SelectedStageID int64
}

// Build positions the given stages and connections. Stages must arrive in
// lifecycle order; connections whose endpoints do not resolve to a stage are
// dropped silently.
func Build(stages []lifecycle.Stage, connections []lifecycle.Connection, opts Options) Diagram {
	radius := opts.Radius
	if radius <= 0 {
		radius = 1
	}

	nodes := make([]Node, 0, len(stages))
	position := make(map[int64]int, len(stages))
	for i, stage := range stages {
		x, y := placement(opts.Style, i, len(stages), radius)
		position[stage.ID] = i
		nodes = append(nodes, Node{
			StageID:     stage.ID,
			Name:        stage.Name,
			Description: stage.Description,
			X:           x,
			Y:           y,
			Selected:    opts.SelectedStageID != 0 && stage.ID == opts.SelectedStageID,
		})
	}

	edges := make([]Edge, 0, len(connections))
	for _, conn := range connections {
		from, okFrom := position[conn.FromStageID]
		to, okTo := position[conn.ToStageID]
		if !okFrom || !okTo {
			continue
		}
		edges = append(edges, Edge{
			FromStageID: conn.FromStageID,
			ToStageID:   conn.ToStageID,
			X1:          nodes[from].X,
			Y1:          nodes[from].Y,
			X2:          nodes[to].X,
			Y2:          nodes[to].Y,
			Dashed:      conn.Type == lifecycle.ConnectionAlternative,
		})
	}

	return Diagram{Nodes: nodes, Edges: edges, Radius: radius}
}

func placement(style Style, index, count int, radius float64) (float64, float64) {
	if style == StyleZigzag {
		// Legacy alternating placement.
		if index%2 == 0 {
			return -0.8 * radius, radius
		}
		return 0.8 * radius, -radius
	}
	if count == 0 {
		return 0, 0
	}
	angle := 2*math.Pi*float64(index)/float64(count) - math.Pi/2
	return radius * math.Cos(angle), radius * math.Sin(angle)
}
