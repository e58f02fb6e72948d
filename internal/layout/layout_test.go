package layout_test

import (
	"math"
	"testing"

	"maldreth/internal/layout"
	"maldreth/internal/lifecycle"
)

func twoStages() ([]lifecycle.Stage, []lifecycle.Connection) {
	stages := []lifecycle.Stage{
		{ID: 1, Name: "Conceptualise", OrderIndex: 1},
		{ID: 2, Name: "Plan", OrderIndex: 2},
	}
	conns := []lifecycle.Connection{
		{ID: 1, FromStageID: 1, ToStageID: 2, Type: lifecycle.ConnectionNormal},
	}
	return stages, conns
}

func TestBuildTwoStagesOneSolidEdge(t *testing.T) {
	stages, conns := twoStages()

	for _, style := range []layout.Style{layout.StyleCircle, layout.StyleZigzag} {
		diagram := layout.Build(stages, conns, layout.Options{Style: style, Radius: 1})
		if len(diagram.Nodes) != 2 {
			t.Fatalf("%s: expected 2 nodes, got %d", style, len(diagram.Nodes))
		}
		a, b := diagram.Nodes[0], diagram.Nodes[1]
		if a.X == b.X && a.Y == b.Y {
			t.Fatalf("%s: nodes share a position: (%v,%v)", style, a.X, a.Y)
		}
		if len(diagram.Edges) != 1 {
			t.Fatalf("%s: expected 1 edge, got %d", style, len(diagram.Edges))
		}
		edge := diagram.Edges[0]
		if edge.Dashed {
			t.Fatalf("%s: normal connection rendered dashed", style)
		}
		if edge.X1 != a.X || edge.Y1 != a.Y || edge.X2 != b.X || edge.Y2 != b.Y {
			t.Fatalf("%s: edge does not join the node positions: %+v", style, edge)
		}
	}
}

func TestCircleStylePlacesNodesOnRing(t *testing.T) {
	stages := make([]lifecycle.Stage, 12)
	for i := range stages {
		stages[i] = lifecycle.Stage{ID: int64(i + 1), OrderIndex: int64(i + 1)}
	}

	const radius = 2.5
	diagram := layout.Build(stages, nil, layout.Options{Style: layout.StyleCircle, Radius: radius})

	seen := map[[2]int]bool{}
	for _, node := range diagram.Nodes {
		dist := math.Hypot(node.X, node.Y)
		if math.Abs(dist-radius) > 1e-9 {
			t.Fatalf("node %d at distance %v, want %v", node.StageID, dist, radius)
		}
		key := [2]int{int(math.Round(node.X * 1e6)), int(math.Round(node.Y * 1e6))}
		if seen[key] {
			t.Fatalf("two nodes share position %v", key)
		}
		seen[key] = true
	}

	// First stage sits at the top of the ring.
	first := diagram.Nodes[0]
	if math.Abs(first.X) > 1e-9 || math.Abs(first.Y+radius) > 1e-9 {
		t.Fatalf("first node not at top: (%v, %v)", first.X, first.Y)
	}
}

func TestZigzagStyleMatchesLegacyCoordinates(t *testing.T) {
	stages := make([]lifecycle.Stage, 4)
	for i := range stages {
		stages[i] = lifecycle.Stage{ID: int64(i + 1), OrderIndex: int64(i + 1)}
	}

	diagram := layout.Build(stages, nil, layout.Options{Style: layout.StyleZigzag, Radius: 1})
	want := [][2]float64{{-0.8, 1}, {0.8, -1}, {-0.8, 1}, {0.8, -1}}
	for i, node := range diagram.Nodes {
		if node.X != want[i][0] || node.Y != want[i][1] {
			t.Fatalf("node %d at (%v,%v), want (%v,%v)", i, node.X, node.Y, want[i][0], want[i][1])
		}
	}
}

func TestBuildDropsUnresolvableEdgesAndMarksAlternatives(t *testing.T) {
	stages, _ := twoStages()
	conns := []lifecycle.Connection{
		{FromStageID: 1, ToStageID: 2, Type: lifecycle.ConnectionAlternative},
		{FromStageID: 2, ToStageID: 99, Type: lifecycle.ConnectionNormal},
		{FromStageID: 98, ToStageID: 1, Type: lifecycle.ConnectionNormal},
	}

	diagram := layout.Build(stages, conns, layout.Options{Style: layout.StyleCircle, Radius: 1})
	if len(diagram.Edges) != 1 {
		t.Fatalf("expected out-of-range edges dropped, got %d", len(diagram.Edges))
	}
	if !diagram.Edges[0].Dashed {
		t.Fatal("alternative connection should be dashed")
	}
}

func TestBuildMarksSelection(t *testing.T) {
	stages, conns := twoStages()
	diagram := layout.Build(stages, conns, layout.Options{SelectedStageID: 2})
	if diagram.Nodes[0].Selected || !diagram.Nodes[1].Selected {
		t.Fatalf("selection flags wrong: %+v", diagram.Nodes)
	}

	unselected := layout.Build(stages, conns, layout.Options{})
	for _, node := range unselected.Nodes {
		if node.Selected {
			t.Fatalf("no node should be selected: %+v", node)
		}
	}
}

func TestParseStyle(t *testing.T) {
	if layout.ParseStyle("zigzag") != layout.StyleZigzag {
		t.Fatal("zigzag not recognized")
	}
	if layout.ParseStyle("circle") != layout.StyleCircle {
		t.Fatal("circle not recognized")
	}
	if layout.ParseStyle("") != layout.StyleCircle {
		t.Fatal("default should be circle")
	}
}
