package layout

import (
	"errors"
	"testing"

	"github.com/mbertsch/graphplace/pkg/geom"
)

// buildGraph creates a graph of equally sized nodes named by ids, wired up
// by the from→to pairs in links. Unknown ids produce unbound links on
// purpose, so tests can exercise the skip paths.
func buildGraph(t *testing.T, ids []string, links [][2]string) *Graph {
	t.Helper()
	g := NewGraph()
	for _, id := range ids {
		if err := g.AddNode(&Node{ID: id, Size: geom.Sz(100, 50)}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, l := range links {
		from, _ := g.Node(l[0])
		to, _ := g.Node(l[1])
		g.AddLink(from, to)
	}
	return g
}

func positions(g *Graph) map[string]geom.Point {
	out := make(map[string]geom.Point)
	for _, n := range g.Nodes() {
		out[n.ID] = n.Pos
	}
	return out
}

func TestAddNodeValidation(t *testing.T) {
	g := NewGraph()

	if err := g.AddNode(&Node{ID: ""}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("empty ID error = %v, want ErrInvalidNodeID", err)
	}
	if err := g.AddNode(&Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if err := g.AddNode(&Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("duplicate ID error = %v, want ErrDuplicateNodeID", err)
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", g.NodeCount())
	}
}

func TestNodeLookup(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, nil)

	if n, ok := g.Node("a"); !ok || n.ID != "a" {
		t.Errorf("Node(a) = %v, %v", n, ok)
	}
	if _, ok := g.Node("missing"); ok {
		t.Error("Node(missing) should report false")
	}
}

func TestUnboundAndForeignLinksAreSkipped(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, nil)
	a, _ := g.Node("a")
	b, _ := g.Node("b")

	foreign := &Node{ID: "c", Size: geom.Sz(10, 10)}
	g.AddLink(a, nil)     // unbound
	g.AddLink(nil, b)     // unbound
	g.AddLink(a, foreign) // endpoint not in graph
	g.AddLink(a, a)       // self-loop
	g.AddLink(a, b)

	edges := g.edges()
	if len(edges) != 1 {
		t.Fatalf("resolved edges = %d, want 1", len(edges))
	}
	if edges[0].from != 0 || edges[0].to != 1 {
		t.Errorf("edge = %+v, want {0 1}", edges[0])
	}

	// None of the algorithms should fault on the skipped links.
	for _, cfg := range []Config{
		DefaultTreeConfig(), DefaultLayeredConfig(), DefaultForceConfig(),
		DefaultCircularConfig(), DefaultGridConfig(),
	} {
		Apply(g, cfg)
	}
}

func TestApplyEmptyGraphIsNoOp(t *testing.T) {
	Apply(nil, DefaultGridConfig())
	Apply(NewGraph(), DefaultGridConfig())
	Apply(NewGraph(), DefaultLayeredConfig())
}

func TestBoundingBox(t *testing.T) {
	g := NewGraph()
	if box := g.BoundingBox(); box != (geom.Rect{}) {
		t.Errorf("empty BoundingBox = %v, want zero", box)
	}

	g.AddNode(&Node{ID: "a", Pos: geom.Pt(0, 0), Size: geom.Sz(10, 10)})
	g.AddNode(&Node{ID: "b", Pos: geom.Pt(30, 20), Size: geom.Sz(10, 10)})
	if box := g.BoundingBox(); box != geom.RectOf(0, 0, 40, 30) {
		t.Errorf("BoundingBox = %v, want (0,0,40,30)", box)
	}
}

func TestApplyToGroupIgnoresBoundaryLinks(t *testing.T) {
	// a→b inside the group, b→c crossing the boundary. The group layout
	// must see only a→b, and c must not move.
	g := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})
	a, _ := g.Node("a")
	b, _ := g.Node("b")
	c, _ := g.Node("c")
	c.Pos = geom.Pt(999, 999)

	cfg := DefaultLayeredConfig()
	ApplyToGroup(g, []*Node{a, b}, cfg)

	if c.Pos != geom.Pt(999, 999) {
		t.Errorf("node outside group moved to %v", c.Pos)
	}
	// Inside the group a is the only source, so b sits a full layer below.
	if b.Pos.Y <= a.Pos.Y {
		t.Errorf("b.Y = %v, want below a.Y = %v", b.Pos.Y, a.Pos.Y)
	}
}

func TestApplyToGroupDropsForeignMembers(t *testing.T) {
	g := buildGraph(t, []string{"a"}, nil)
	a, _ := g.Node("a")
	foreign := &Node{ID: "x", Size: geom.Sz(10, 10), Pos: geom.Pt(5, 5)}

	ApplyToGroup(g, []*Node{a, nil, foreign, a}, DefaultGridConfig())

	if foreign.Pos != geom.Pt(5, 5) {
		t.Errorf("foreign node moved to %v", foreign.Pos)
	}
}

func TestSizeNeverMutatedByLayout(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"a", "c"}})

	for _, cfg := range []Config{
		DefaultTreeConfig(), DefaultLayeredConfig(), DefaultForceConfig(),
		DefaultCircularConfig(), DefaultGridConfig(),
	} {
		Apply(g, cfg)
		for _, n := range g.Nodes() {
			if n.Size != geom.Sz(100, 50) {
				t.Fatalf("node %s size mutated to %v", n.ID, n.Size)
			}
		}
	}
}
