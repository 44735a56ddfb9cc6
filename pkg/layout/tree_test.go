package layout

import (
	"math"
	"strings"
	"testing"

	"github.com/mbertsch/graphplace/pkg/geom"
)

const tol = 1e-9

func centerOf(g *Graph, id string) geom.Point {
	n, _ := g.Node(id)
	return n.Center()
}

func TestTreeParentCenteredOverChildren(t *testing.T) {
	g := buildGraph(t, []string{"root", "l", "r"}, [][2]string{{"root", "l"}, {"root", "r"}})

	cfg := DefaultTreeConfig()
	cfg.Alignment = AlignCenterChildren
	Apply(g, cfg)

	root := centerOf(g, "root")
	mid := (centerOf(g, "l").X + centerOf(g, "r").X) / 2
	if math.Abs(root.X-mid) > tol {
		t.Errorf("root center X = %v, want midpoint of children %v", root.X, mid)
	}
}

func TestTreeLayerSeparation(t *testing.T) {
	g := buildGraph(t, []string{"root", "kid"}, [][2]string{{"root", "kid"}})

	cfg := DefaultTreeConfig()
	cfg.LayerSpacing = 70
	Apply(g, cfg)

	root, _ := g.Node("root")
	kid, _ := g.Node("kid")
	gap := kid.Bounds().Top() - root.Bounds().Bottom()
	if math.Abs(gap-70) > tol {
		t.Errorf("layer gap = %v, want 70", gap)
	}
}

func TestTreeSiblingSpacing(t *testing.T) {
	g := buildGraph(t, []string{"p", "a", "b"}, [][2]string{{"p", "a"}, {"p", "b"}})

	cfg := DefaultTreeConfig()
	cfg.SiblingSpacing = 30
	Apply(g, cfg)

	a, _ := g.Node("a")
	b, _ := g.Node("b")
	gap := b.Bounds().Left() - a.Bounds().Right()
	if math.Abs(gap-30) > tol {
		t.Errorf("sibling gap = %v, want 30", gap)
	}
}

func TestTreeAlignments(t *testing.T) {
	// Children span is wider than the parent, so each alignment yields a
	// distinct parent position within the same footprint.
	build := func() *Graph {
		return buildGraph(t, []string{"p", "a", "b", "c"},
			[][2]string{{"p", "a"}, {"p", "b"}, {"p", "c"}})
	}

	tests := []struct {
		name  string
		align Alignment
		// parent left edge relative to the leftmost child's left edge
		want func(parentW, span float64) float64
	}{
		{"start", AlignStart, func(w, span float64) float64 { return 0 }},
		{"center", AlignCenter, func(w, span float64) float64 { return (span - w) / 2 }},
		{"end", AlignEnd, func(w, span float64) float64 { return span - w }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build()
			cfg := DefaultTreeConfig()
			cfg.Alignment = tt.align
			Apply(g, cfg)

			p, _ := g.Node("p")
			a, _ := g.Node("a")
			c, _ := g.Node("c")
			span := c.Bounds().Right() - a.Bounds().Left()
			want := tt.want(p.Size.Width, span)
			got := p.Bounds().Left() - a.Bounds().Left()
			if math.Abs(got-want) > tol {
				t.Errorf("parent offset = %v, want %v", got, want)
			}
		})
	}
}

func TestTreeChildComparator(t *testing.T) {
	g := buildGraph(t, []string{"p", "z", "a"}, [][2]string{{"p", "z"}, {"p", "a"}})

	cfg := DefaultTreeConfig()
	cfg.Compare = func(a, b *Node) int { return strings.Compare(a.ID, b.ID) }
	Apply(g, cfg)

	if centerOf(g, "a").X >= centerOf(g, "z").X {
		t.Error("comparator should order a before z")
	}
}

func TestTreeDirections(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		// check(root, kid) validates the kid's position relative to root
		check func(root, kid geom.Point) bool
	}{
		{"down", Down, func(r, k geom.Point) bool { return k.Y > r.Y }},
		{"up", Up, func(r, k geom.Point) bool { return k.Y < r.Y }},
		{"right", Right, func(r, k geom.Point) bool { return k.X > r.X }},
		{"left", Left, func(r, k geom.Point) bool { return k.X < r.X }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, []string{"root", "kid"}, [][2]string{{"root", "kid"}})
			cfg := DefaultTreeConfig()
			cfg.Direction = tt.dir
			Apply(g, cfg)

			if !tt.check(centerOf(g, "root"), centerOf(g, "kid")) {
				t.Errorf("kid at %v relative to root %v violates direction", centerOf(g, "kid"), centerOf(g, "root"))
			}
		})
	}
}

func TestTreeRotationAngle(t *testing.T) {
	g := buildGraph(t, []string{"root", "kid"}, [][2]string{{"root", "kid"}})
	cfg := DefaultTreeConfig()
	cfg.Angle = 90 // rotates the downward layout so growth points left
	Apply(g, cfg)

	root := centerOf(g, "root")
	kid := centerOf(g, "kid")
	if kid.X >= root.X {
		t.Errorf("kid.X = %v, want left of root.X = %v", kid.X, root.X)
	}
	if math.Abs(kid.Y-root.Y) > tol {
		t.Errorf("rotation should keep Y aligned, got root %v kid %v", root, kid)
	}
}

func TestTreeForestSeparation(t *testing.T) {
	g := buildGraph(t, []string{"r1", "c1", "r2"}, [][2]string{{"r1", "c1"}})

	cfg := DefaultTreeConfig()
	cfg.TreeSpacing = 60
	Apply(g, cfg)

	// Second tree starts one footprint plus the tree gap to the right.
	r1, _ := g.Node("r1")
	r2, _ := g.Node("r2")
	if r2.Bounds().Left() <= r1.Bounds().Right() {
		t.Errorf("trees overlap: r1 right %v, r2 left %v", r1.Bounds().Right(), r2.Bounds().Left())
	}
}

func TestTreeRootlessGraphUsesFirstNode(t *testing.T) {
	// Every node has an incoming link (b↔c cycle feeding a), so no natural
	// root exists and the node at input index 0 is used. The cycle is not
	// reachable from it and keeps its positions.
	g := buildGraph(t, []string{"a", "b", "c"},
		[][2]string{{"b", "c"}, {"c", "b"}, {"b", "a"}})
	b, _ := g.Node("b")
	b.Pos = geom.Pt(7, 7)

	Apply(g, DefaultTreeConfig())

	a, _ := g.Node("a")
	if a.Center() != geom.Pt(50, 25) {
		t.Errorf("root center = %v, want (50,25)", a.Center())
	}
	if b.Pos != geom.Pt(7, 7) {
		t.Errorf("unreachable node moved to %v", b.Pos)
	}
}

func TestTreeDisconnectedCycleKeepsPositions(t *testing.T) {
	// A rooted tree next to a two-node cycle no root can reach. The cycle
	// nodes keep their input positions while the tree is laid out.
	g := buildGraph(t, []string{"r", "c", "x", "y"},
		[][2]string{{"r", "c"}, {"x", "y"}, {"y", "x"}})
	x, _ := g.Node("x")
	y, _ := g.Node("y")
	x.Pos = geom.Pt(3, 4)
	y.Pos = geom.Pt(-9, 2)

	Apply(g, DefaultTreeConfig())

	if x.Pos != geom.Pt(3, 4) || y.Pos != geom.Pt(-9, 2) {
		t.Errorf("cycle nodes moved: x=%v y=%v", x.Pos, y.Pos)
	}
	r, _ := g.Node("r")
	c, _ := g.Node("c")
	if c.Center().Y <= r.Center().Y {
		t.Errorf("child not below root: r=%v c=%v", r.Center(), c.Center())
	}
}

func TestTreeDeterminism(t *testing.T) {
	run := func() map[string]geom.Point {
		g := buildGraph(t, []string{"r", "a", "b", "c", "d"},
			[][2]string{{"r", "a"}, {"r", "b"}, {"a", "c"}, {"a", "d"}})
		Apply(g, DefaultTreeConfig())
		return positions(g)
	}

	first, second := run(), run()
	for id, p := range first {
		if second[id] != p {
			t.Errorf("node %s: %v vs %v across runs", id, p, second[id])
		}
	}
}
