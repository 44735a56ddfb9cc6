package layout

// Direction is the growth direction of a directional layout: the axis along
// which successive layers advance.
type Direction int

const (
	// Down grows layers toward positive y (the default).
	Down Direction = iota
	// Up grows layers toward negative y.
	Up
	// Right grows layers toward positive x.
	Right
	// Left grows layers toward negative x.
	Left
)

// horizontal reports whether layers advance along the x axis, which swaps
// the role of node width and height in layer math.
func (d Direction) horizontal() bool { return d == Right || d == Left }

// Alignment controls where the tree algorithm places a parent relative to
// the footprint allocated to its subtree.
type Alignment int

const (
	// AlignCenterChildren centers the parent exactly over the span of its
	// children's subtree footprints (the default).
	AlignCenterChildren Alignment = iota
	// AlignStart places the parent at the leading edge of its footprint.
	AlignStart
	// AlignCenter centers the parent within its whole footprint.
	AlignCenter
	// AlignEnd places the parent at the trailing edge of its footprint.
	AlignEnd
)

// Anchor selects where a node sits within its grid cell.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTop
	AnchorTopRight
	AnchorLeft
	AnchorCenter
	AnchorRight
	AnchorBottomLeft
	AnchorBottom
	AnchorBottomRight
)

// Compare orders two nodes; negative means a before b. A nil Compare keeps
// input order. Sorts using a Compare are always stable, so equal nodes keep
// their relative input order.
type Compare func(a, b *Node) int

// Config is the closed set of algorithm configurations. Exactly five types
// implement it: [TreeConfig], [LayeredConfig], [ForceConfig],
// [CircularConfig], and [GridConfig].
type Config interface {
	sealed()
}

func (TreeConfig) sealed()     {}
func (LayeredConfig) sealed()  {}
func (ForceConfig) sealed()    {}
func (CircularConfig) sealed() {}
func (GridConfig) sealed()     {}

// Apply runs the algorithm selected by cfg over the whole graph, mutating
// node positions in place. An empty or nil graph is a no-op. Re-running with
// identical input order, positions, sizes, configuration, and seed produces
// identical output.
func Apply(g *Graph, cfg Config) {
	if g == nil || len(g.nodes) == 0 {
		return
	}
	apply(g, g.nodes, cfg)
}

// ApplyToGroup runs the algorithm over a node subset, treated as an
// independent graph: only links with both endpoints inside the subset are
// considered. Member order defines the subset's node order. Nodes not
// belonging to g, duplicates, and nils are dropped.
func ApplyToGroup(g *Graph, members []*Node, cfg Config) {
	if g == nil || len(members) == 0 {
		return
	}

	sub := NewGraph()
	for _, n := range members {
		if n == nil || g.indexOf(n) < 0 {
			continue
		}
		if _, dup := sub.index[n.ID]; dup {
			continue
		}
		sub.index[n.ID] = len(sub.nodes)
		sub.nodes = append(sub.nodes, n)
	}
	if len(sub.nodes) == 0 {
		return
	}
	for _, l := range g.links {
		if sub.indexOf(l.From) >= 0 && sub.indexOf(l.To) >= 0 {
			sub.links = append(sub.links, l)
		}
	}

	apply(sub, sub.nodes, cfg)
}

func apply(g *Graph, nodes []*Node, cfg Config) {
	switch c := cfg.(type) {
	case TreeConfig:
		applyTree(g, nodes, c)
	case LayeredConfig:
		applyLayered(g, nodes, c)
	case ForceConfig:
		applyForce(g, nodes, c)
	case CircularConfig:
		applyCircular(nodes, c)
	case GridConfig:
		applyGrid(nodes, c)
	}
}
