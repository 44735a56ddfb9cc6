package layout

import (
	"errors"
	"slices"

	"github.com/mbertsch/graphplace/pkg/geom"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")
)

// Node is the layout view of a diagram node.
//
// Pos is the top-left corner of the node's bounding box and is the only field
// an algorithm mutates. Size is read during layout and never changed. Locked
// nodes are pinned: the force-directed algorithm leaves them exactly where
// they are. Ref is an opaque back-reference to the caller's full node object,
// carried through untouched for write-back.
type Node struct {
	ID     string
	Pos    geom.Point
	Size   geom.Size
	Locked bool
	Ref    any
}

// Bounds returns the node's bounding rectangle at its current position.
func (n *Node) Bounds() geom.Rect {
	return geom.Rect{Position: n.Pos, Size: n.Size}
}

// Center returns the midpoint of the node's bounding box.
func (n *Node) Center() geom.Point { return n.Bounds().Center() }

// SetCenter moves the node so its bounding box midpoint lands on p.
func (n *Node) SetCenter(p geom.Point) {
	n.Pos = geom.Pt(p.X-n.Size.Width/2, p.Y-n.Size.Height/2)
}

// Link is a directed connection between two nodes. Either endpoint may be
// nil (an unbound link); unbound links are skipped by every algorithm.
type Link struct {
	From *Node
	To   *Node
}

// Graph is the unit a layout algorithm consumes: an order-preserving node
// list (unique by ID) plus a link list. It is constructed fresh per layout
// invocation and never retained by the engine.
//
// Graph is not safe for concurrent use.
type Graph struct {
	nodes []*Node
	links []Link
	index map[string]int // node ID -> dense index into nodes
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[string]int)}
}

// AddNode appends a node to the graph. Returns ErrInvalidNodeID for an empty
// ID or ErrDuplicateNodeID if the ID is already present. Insertion order is
// preserved and defines tie-break order for every stable sort in the engine.
func (g *Graph) AddNode(n *Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.index[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return nil
}

// AddLink appends a directed link. Either endpoint may be nil, and endpoints
// need not belong to the graph; such links are ignored by the algorithms
// rather than rejected here.
func (g *Graph) AddLink(from, to *Node) {
	g.links = append(g.links, Link{From: from, To: to})
}

// Node returns the node with the given ID and true, or nil and false.
func (g *Graph) Node(id string) (*Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

// Nodes returns the nodes in insertion order. The slice is a copy but the
// node pointers are shared, so position writes are visible to the caller.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Links returns a copy of the link list in insertion order.
func (g *Graph) Links() []Link { return slices.Clone(g.links) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// LinkCount returns the number of links, including unbound ones.
func (g *Graph) LinkCount() int { return len(g.links) }

// BoundingBox returns the union of all node bounding boxes, or the zero Rect
// for an empty graph.
func (g *Graph) BoundingBox() geom.Rect {
	return boundingBox(g.nodes)
}

// indexOf resolves a link endpoint to its dense index in g, or -1 when the
// endpoint is nil or belongs to a different graph.
func (g *Graph) indexOf(n *Node) int {
	if n == nil {
		return -1
	}
	if i, ok := g.index[n.ID]; ok && g.nodes[i] == n {
		return i
	}
	return -1
}

// edge is a link resolved to dense node indices, the form all per-invocation
// scratch state is keyed by.
type edge struct {
	from, to int
}

// edges resolves the link list against this graph, dropping unbound links,
// links with foreign endpoints, and self-loops.
func (g *Graph) edges() []edge {
	out := make([]edge, 0, len(g.links))
	for _, l := range g.links {
		from, to := g.indexOf(l.From), g.indexOf(l.To)
		if from < 0 || to < 0 || from == to {
			continue
		}
		out = append(out, edge{from: from, to: to})
	}
	return out
}

// adjacency is per-invocation scratch state: neighbor indices per node, in
// link order, stored in plain slices keyed by dense node index.
type adjacency struct {
	out [][]int
	in  [][]int
}

func buildAdjacency(n int, edges []edge) adjacency {
	adj := adjacency{out: make([][]int, n), in: make([][]int, n)}
	for _, e := range edges {
		adj.out[e.from] = append(adj.out[e.from], e.to)
		adj.in[e.to] = append(adj.in[e.to], e.from)
	}
	return adj
}

func boundingBox(nodes []*Node) geom.Rect {
	if len(nodes) == 0 {
		return geom.Rect{}
	}
	box := nodes[0].Bounds()
	for _, n := range nodes[1:] {
		box = box.Union(n.Bounds())
	}
	return box
}

// translate shifts every node by delta.
func translate(nodes []*Node, delta geom.Point) {
	for _, n := range nodes {
		n.Pos = n.Pos.Add(delta)
	}
}

// centerAtOrigin translates the nodes so their union bounding box is
// centered on (0,0).
func centerAtOrigin(nodes []*Node) {
	if len(nodes) == 0 {
		return
	}
	c := boundingBox(nodes).Center()
	translate(nodes, geom.Pt(-c.X, -c.Y))
}

// normalizeOrigin translates the nodes so their union bounding box has its
// top-left corner at (0,0).
func normalizeOrigin(nodes []*Node) {
	if len(nodes) == 0 {
		return
	}
	box := boundingBox(nodes)
	translate(nodes, geom.Pt(-box.Left(), -box.Top()))
}
