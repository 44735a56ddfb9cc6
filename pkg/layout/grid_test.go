package layout

import (
	"math"
	"strings"
	"testing"

	"github.com/mbertsch/graphplace/pkg/geom"
)

func gridIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = string(rune('a' + i))
	}
	return ids
}

func TestGridDerivedColumnCount(t *testing.T) {
	// Ten nodes, no explicit shape: columns = ceil(sqrt(10)) = 4, rows = 3.
	g := buildGraph(t, gridIDs(10), nil)

	Apply(g, DefaultGridConfig())

	xs := make(map[float64]bool)
	ys := make(map[float64]bool)
	for _, n := range g.Nodes() {
		xs[n.Pos.X] = true
		ys[n.Pos.Y] = true
	}
	if len(xs) != 4 {
		t.Errorf("distinct columns = %d, want 4", len(xs))
	}
	if len(ys) != 3 {
		t.Errorf("distinct rows = %d, want 3", len(ys))
	}
}

func TestGridExplicitShape(t *testing.T) {
	tests := []struct {
		name           string
		columns, rows  int
		wantCols, want int // distinct x, distinct y
	}{
		{"explicit columns", 2, 0, 2, 3},
		{"explicit rows", 0, 2, 3, 2},
		{"columns win over rows", 3, 5, 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, gridIDs(6), nil)
			cfg := DefaultGridConfig()
			cfg.Columns = tt.columns
			cfg.Rows = tt.rows
			Apply(g, cfg)

			xs := make(map[float64]bool)
			ys := make(map[float64]bool)
			for _, n := range g.Nodes() {
				xs[n.Pos.X] = true
				ys[n.Pos.Y] = true
			}
			if len(xs) != tt.wantCols || len(ys) != tt.want {
				t.Errorf("shape = %dx%d, want %dx%d", len(xs), len(ys), tt.wantCols, tt.want)
			}
		})
	}
}

func TestGridUniformCells(t *testing.T) {
	// Mixed sizes share one cell: max width 100, max height 80, plus
	// spacing 20 → 120×100 cells.
	g := NewGraph()
	g.AddNode(&Node{ID: "small", Size: geom.Sz(40, 20)})
	g.AddNode(&Node{ID: "wide", Size: geom.Sz(100, 30)})
	g.AddNode(&Node{ID: "tall", Size: geom.Sz(50, 80)})
	g.AddNode(&Node{ID: "last", Size: geom.Sz(60, 60)})

	cfg := DefaultGridConfig()
	cfg.Columns = 2
	cfg.Spacing = 20
	cfg.Anchor = AnchorTopLeft
	Apply(g, cfg)

	small, _ := g.Node("small")
	wide, _ := g.Node("wide")
	tall, _ := g.Node("tall")
	if got := wide.Pos.X - small.Pos.X; math.Abs(got-120) > tol {
		t.Errorf("cell width = %v, want 120", got)
	}
	if got := tall.Pos.Y - small.Pos.Y; math.Abs(got-100) > tol {
		t.Errorf("cell height = %v, want 100", got)
	}
}

func TestGridAnchors(t *testing.T) {
	// One big and one small node in a single row; the small node's offset
	// inside its 120×100 cell identifies the anchor.
	build := func(anchor Anchor) (small *Node, cellX, cellY float64) {
		g := NewGraph()
		g.AddNode(&Node{ID: "big", Size: geom.Sz(100, 80)})
		g.AddNode(&Node{ID: "small", Size: geom.Sz(20, 20)})
		cfg := DefaultGridConfig()
		cfg.Columns = 2
		cfg.Spacing = 20
		cfg.Anchor = anchor
		Apply(g, cfg)

		big, _ := g.Node("big")
		small, _ = g.Node("small")
		// The big node under the same anchor fixes the cell frame. Its
		// cell starts one cell width to the left of the small node's.
		switch anchor {
		case AnchorTopLeft, AnchorLeft, AnchorBottomLeft:
			cellX = big.Pos.X + 120
		case AnchorTop, AnchorCenter, AnchorBottom:
			cellX = big.Pos.X - 10 + 120 // big is centered in a 120-wide cell
		default:
			cellX = big.Pos.X - 20 + 120 // big is right-aligned
		}
		switch anchor {
		case AnchorTopLeft, AnchorTop, AnchorTopRight:
			cellY = big.Pos.Y
		case AnchorLeft, AnchorCenter, AnchorRight:
			cellY = big.Pos.Y - 10 // big is centered in a 100-tall cell
		default:
			cellY = big.Pos.Y - 20 // big is bottom-aligned
		}
		return small, cellX, cellY
	}

	tests := []struct {
		name    string
		anchor  Anchor
		offsetX float64
		offsetY float64
	}{
		{"top-left", AnchorTopLeft, 0, 0},
		{"top", AnchorTop, 50, 0},
		{"top-right", AnchorTopRight, 100, 0},
		{"left", AnchorLeft, 0, 40},
		{"center", AnchorCenter, 50, 40},
		{"right", AnchorRight, 100, 40},
		{"bottom-left", AnchorBottomLeft, 0, 80},
		{"bottom", AnchorBottom, 50, 80},
		{"bottom-right", AnchorBottomRight, 100, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			small, cellX, cellY := build(tt.anchor)
			if got := small.Pos.X - cellX; math.Abs(got-tt.offsetX) > tol {
				t.Errorf("x offset in cell = %v, want %v", got, tt.offsetX)
			}
			if got := small.Pos.Y - cellY; math.Abs(got-tt.offsetY) > tol {
				t.Errorf("y offset in cell = %v, want %v", got, tt.offsetY)
			}
		})
	}
}

func TestGridComparatorOrder(t *testing.T) {
	g := buildGraph(t, []string{"b", "a"}, nil)

	cfg := DefaultGridConfig()
	cfg.Columns = 2
	cfg.Compare = func(x, y *Node) int { return strings.Compare(x.ID, y.ID) }
	Apply(g, cfg)

	a, _ := g.Node("a")
	b, _ := g.Node("b")
	if a.Pos.X >= b.Pos.X {
		t.Errorf("a.X = %v should be left of b.X = %v after sorting", a.Pos.X, b.Pos.X)
	}
}

func TestGridContainmentAndCentering(t *testing.T) {
	g := buildGraph(t, gridIDs(7), nil)

	Apply(g, DefaultGridConfig())

	box := g.BoundingBox()
	for _, n := range g.Nodes() {
		if !box.Contains(n.Bounds()) {
			t.Errorf("node %s bounds %v outside union box %v", n.ID, n.Bounds(), box)
		}
	}
	c := box.Center()
	if math.Abs(c.X) > tol || math.Abs(c.Y) > tol {
		t.Errorf("bounding box center = %v, want origin", c)
	}
}

func TestGridDeterminism(t *testing.T) {
	run := func() map[string]geom.Point {
		g := buildGraph(t, gridIDs(9), nil)
		Apply(g, DefaultGridConfig())
		return positions(g)
	}

	first, second := run(), run()
	for id, p := range first {
		if second[id] != p {
			t.Errorf("node %s: %v vs %v across runs", id, p, second[id])
		}
	}
}
