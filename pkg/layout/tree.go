package layout

import (
	"math"
	"slices"

	"github.com/mbertsch/graphplace/pkg/geom"
)

// TreeConfig configures hierarchical placement for rooted forests.
//
// The caller must guarantee that the structure reachable beneath each root is
// acyclic; a parent/child cycle recurses without bound. This precondition is
// documented rather than enforced.
type TreeConfig struct {
	// Direction is the growth direction from roots to leaves.
	Direction Direction
	// Angle, in degrees, rotates the whole layout about the origin instead
	// of mapping onto one of the four Directions. It takes effect when
	// non-zero; 0 means "use Direction".
	Angle float64
	// Alignment places each parent relative to its subtree footprint.
	Alignment Alignment
	// LayerSpacing is the gap between a parent and its children layer.
	LayerSpacing float64
	// SiblingSpacing is the gap between adjacent sibling subtrees.
	SiblingSpacing float64
	// TreeSpacing is the gap between the trees of a forest.
	TreeSpacing float64
	// Compare re-orders each node's children; nil keeps link order.
	Compare Compare
}

// DefaultTreeConfig returns the tree configuration used when the caller does
// not override any tunables.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		Direction:      Down,
		Alignment:      AlignCenterChildren,
		LayerSpacing:   50,
		SiblingSpacing: 20,
		TreeSpacing:    50,
	}
}

// footprint is the total extent a subtree occupies in logical coordinates:
// breadth across the layer, depth along the growth axis.
type footprint struct {
	breadth, depth float64
}

// treeState carries the per-invocation scratch of the tree algorithm, all
// keyed by dense node index.
type treeState struct {
	cfg      TreeConfig
	nodes    []*Node
	children [][]int
	fp       []footprint
	center   []geom.Point // logical center per node
	placed   []bool       // set by place; unplaced nodes keep their positions
}

func applyTree(g *Graph, nodes []*Node, cfg TreeConfig) {
	edges := g.edges()
	adj := buildAdjacency(len(nodes), edges)

	st := &treeState{
		cfg:      cfg,
		nodes:    nodes,
		children: adj.out,
		fp:       make([]footprint, len(nodes)),
		center:   make([]geom.Point, len(nodes)),
		placed:   make([]bool, len(nodes)),
	}
	if cfg.Compare != nil {
		for _, kids := range st.children {
			slices.SortStableFunc(kids, func(a, b int) int {
				return cfg.Compare(nodes[a], nodes[b])
			})
		}
	}

	// Roots: nodes with no incoming link, in input order. A graph that is one
	// pure cycle has none; the first node then serves as the single root.
	var roots []int
	for i := range nodes {
		if len(adj.in[i]) == 0 {
			roots = append(roots, i)
		}
	}
	if len(roots) == 0 {
		roots = []int{0}
	}

	// Trees of the forest are laid out side by side along the breadth axis.
	offset := 0.0
	for _, root := range roots {
		st.measure(root)
		st.place(root, offset, 0)
		offset += st.fp[root].breadth + cfg.TreeSpacing
	}

	st.project()
}

// nodeExtent returns the node's logical (breadth, depth) extent. Horizontal
// growth swaps the axes, so a wide node stays wide on the screen.
func (st *treeState) nodeExtent(i int) (breadth, depth float64) {
	s := st.nodes[i].Size
	if st.cfg.Angle == 0 && st.cfg.Direction.horizontal() {
		return s.Height, s.Width
	}
	return s.Width, s.Height
}

// measure computes subtree footprints bottom-up.
func (st *treeState) measure(i int) footprint {
	breadth, depth := st.nodeExtent(i)
	kids := st.children[i]
	if len(kids) == 0 {
		st.fp[i] = footprint{breadth: breadth, depth: depth}
		return st.fp[i]
	}

	kidsBreadth, kidsDepth := 0.0, 0.0
	for _, k := range kids {
		f := st.measure(k)
		kidsBreadth += f.breadth
		kidsDepth = math.Max(kidsDepth, f.depth)
	}
	kidsBreadth += float64(len(kids)-1) * st.cfg.SiblingSpacing

	st.fp[i] = footprint{
		breadth: math.Max(breadth, kidsBreadth),
		depth:   depth + st.cfg.LayerSpacing + kidsDepth,
	}
	return st.fp[i]
}

// place assigns logical centers top-down. x is the leading edge of the
// footprint allocated to this subtree, y the top of the node's layer.
func (st *treeState) place(i int, x, y float64) {
	breadth, depth := st.nodeExtent(i)
	kids := st.children[i]

	kidsBreadth := 0.0
	for _, k := range kids {
		kidsBreadth += st.fp[k].breadth
	}
	kidsBreadth += float64(len(kids)-1) * st.cfg.SiblingSpacing

	var lead float64 // leading edge of the node itself within the footprint
	switch st.cfg.Alignment {
	case AlignStart:
		lead = x
	case AlignCenter:
		lead = x + (st.fp[i].breadth-breadth)/2
	case AlignEnd:
		lead = x + st.fp[i].breadth - breadth
	default: // AlignCenterChildren
		if len(kids) == 0 {
			lead = x + (st.fp[i].breadth-breadth)/2
		} else {
			lead = x + (kidsBreadth-breadth)/2
		}
	}
	st.center[i] = geom.Pt(lead+breadth/2, y+depth/2)
	st.placed[i] = true

	cursor := x
	layerY := y + depth + st.cfg.LayerSpacing
	for _, k := range kids {
		st.place(k, cursor, layerY)
		cursor += st.fp[k].breadth + st.cfg.SiblingSpacing
	}
}

// project maps logical (breadth, depth) centers onto the diagram plane per
// the configured growth direction or rotation angle.
func (st *treeState) project() {
	sin, cos := 0.0, 1.0
	if st.cfg.Angle != 0 {
		rad := st.cfg.Angle * math.Pi / 180
		sin, cos = math.Sin(rad), math.Cos(rad)
	}

	for i, n := range st.nodes {
		if !st.placed[i] {
			continue
		}
		c := st.center[i]
		switch {
		case st.cfg.Angle != 0:
			// Rotate the down-growing layout about the origin. The depth
			// axis points along the angle measured from straight down.
			c = geom.Pt(c.X*cos-c.Y*sin, c.X*sin+c.Y*cos)
		case st.cfg.Direction == Up:
			c = geom.Pt(c.X, -c.Y)
		case st.cfg.Direction == Right:
			c = geom.Pt(c.Y, c.X)
		case st.cfg.Direction == Left:
			c = geom.Pt(-c.Y, c.X)
		}
		n.SetCenter(c)
	}
}
