package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/mbertsch/graphplace/pkg/geom"
)

// LayeredConfig configures Sugiyama-style rank placement for flow diagrams.
//
// Long edges spanning more than one layer are drawn straight through
// intermediate layers; no dummy nodes are inserted to reserve lateral space
// for them. This is a documented limitation, not a bug.
type LayeredConfig struct {
	// Direction is the flow direction from sources to sinks.
	Direction Direction
	// LayerSpacing is the gap between adjacent layers.
	LayerSpacing float64
	// NodeSpacing is the gap between adjacent nodes within a layer.
	NodeSpacing float64
	// Passes is the number of barycenter sweep rounds; each round sweeps
	// forward and then backward over the layers.
	Passes int
}

// DefaultLayeredConfig returns the layered configuration used when the
// caller does not override any tunables.
func DefaultLayeredConfig() LayeredConfig {
	return LayeredConfig{
		Direction:    Down,
		LayerSpacing: 50,
		NodeSpacing:  40,
		Passes:       4,
	}
}

func applyLayered(g *Graph, nodes []*Node, cfg LayeredConfig) {
	// Step 1: cycle removal. Back-edges are reversed in the scratch edge
	// set only; the caller's Link structs are never touched, so their
	// logical direction is already "restored" when Apply returns.
	edges := g.edges()
	breakCycles(len(nodes), edges)

	// Step 2: longest-path layering over the now acyclic edges.
	layerOf := assignLayers(len(nodes), edges)

	// Group nodes into layers, input order within each layer.
	maxLayer := 0
	for _, l := range layerOf {
		maxLayer = max(maxLayer, l)
	}
	layers := make([][]int, maxLayer+1)
	for i := range nodes {
		layers[layerOf[i]] = append(layers[layerOf[i]], i)
	}

	// Step 4: barycenter crossing reduction. (Step 3, dummy-node insertion
	// for long edges, is deliberately absent.) The position and barycenter
	// scratch arrays are allocated once and reused across sweeps.
	adj := buildAdjacency(len(nodes), edges)
	scratch := barycenterScratch{
		pos:  make([]int, len(nodes)),
		bary: make([]float64, len(nodes)),
	}
	for pass := 0; pass < cfg.Passes; pass++ {
		for i := 1; i < len(layers); i++ {
			scratch.order(layers[i], layers[i-1], adj)
		}
		for i := len(layers) - 2; i >= 0; i-- {
			scratch.order(layers[i], layers[i+1], adj)
		}
	}

	// Step 5: coordinate assignment in logical space, then projection.
	assignLayerCoordinates(nodes, layers, cfg)
	normalizeOrigin(nodes)
}

// breakCycles finds back-edges via depth-first traversal with a recursion
// stack and reverses them in place in edges, making the edge set acyclic.
// Traversal starts from every unvisited node in input order.
func breakCycles(n int, edges []edge) {
	out := make([][]int, n) // edge indices, so flips can mutate in place
	for i, e := range edges {
		out[e.from] = append(out[e.from], i)
	}

	visited := make([]bool, n)
	onStack := make([]bool, n)
	var flips []int

	var dfs func(v int)
	dfs = func(v int) {
		visited[v] = true
		onStack[v] = true
		for _, ei := range out[v] {
			w := edges[ei].to
			switch {
			case onStack[w]:
				flips = append(flips, ei)
			case !visited[w]:
				dfs(w)
			}
		}
		onStack[v] = false
	}

	for v := 0; v < n; v++ {
		if !visited[v] {
			dfs(v)
		}
	}

	for _, ei := range flips {
		edges[ei].from, edges[ei].to = edges[ei].to, edges[ei].from
	}
}

// assignLayers computes the longest-path layering of an acyclic edge set:
// breadth-first relaxation from the zero in-degree nodes, so every edge
// points to a strictly greater layer.
func assignLayers(n int, edges []edge) []int {
	layer := make([]int, n)
	inDegree := make([]int, n)
	out := make([][]int, n)
	for _, e := range edges {
		inDegree[e.to]++
		out[e.from] = append(out[e.from], e.to)
	}

	queue := make([]int, 0, n)
	for v := 0; v < n; v++ {
		if inDegree[v] == 0 {
			queue = append(queue, v)
		}
	}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range out[v] {
			if l := layer[v] + 1; l > layer[w] {
				layer[w] = l
			}
			inDegree[w]--
			if inDegree[w] == 0 {
				queue = append(queue, w)
			}
		}
	}
	return layer
}

// barycenterScratch holds per-node sweep state in plain slices indexed by
// dense node index, shared across all sweeps of one invocation.
type barycenterScratch struct {
	pos  []int // position within the reference layer, -1 when absent
	bary []float64
}

// order reorders layer by the mean position index of each node's neighbors
// in the reference layer. Neighbors are counted in both edge directions but
// only when they actually reside in the reference layer (long edges skip
// intermediate layers). A node with no neighbors there defaults to the
// reference layer's midpoint; ties keep their current relative order.
func (s barycenterScratch) order(layer, reference []int, adj adjacency) {
	for i := range s.pos {
		s.pos[i] = -1
	}
	for i, v := range reference {
		s.pos[v] = i
	}
	midpoint := float64(len(reference)-1) / 2

	for _, v := range layer {
		sum, count := 0.0, 0
		for _, w := range adj.in[v] {
			if s.pos[w] >= 0 {
				sum += float64(s.pos[w])
				count++
			}
		}
		for _, w := range adj.out[v] {
			if s.pos[w] >= 0 {
				sum += float64(s.pos[w])
				count++
			}
		}
		if count == 0 {
			s.bary[v] = midpoint
		} else {
			s.bary[v] = sum / float64(count)
		}
	}

	slices.SortStableFunc(layer, func(a, b int) int {
		return cmp.Compare(s.bary[a], s.bary[b])
	})
}

// assignLayerCoordinates places each layer's nodes side by side with uniform
// spacing, the layer centered at zero breadth, and advances the depth cursor
// by the tallest node plus the layer spacing. The logical (depth, breadth)
// pair is then mapped onto (x, y) per the configured direction.
func assignLayerCoordinates(nodes []*Node, layers [][]int, cfg LayeredConfig) {
	extent := func(i int) (breadth, depth float64) {
		s := nodes[i].Size
		if cfg.Direction.horizontal() {
			return s.Height, s.Width
		}
		return s.Width, s.Height
	}

	depthCursor := 0.0
	for _, layer := range layers {
		if len(layer) == 0 {
			continue
		}

		width, tallest := 0.0, 0.0
		for _, v := range layer {
			b, d := extent(v)
			width += b
			tallest = math.Max(tallest, d)
		}
		width += float64(len(layer)-1) * cfg.NodeSpacing

		cursor := -width / 2
		for _, v := range layer {
			b, d := extent(v)
			c := geom.Pt(cursor+b/2, depthCursor+d/2)
			switch cfg.Direction {
			case Up:
				c = geom.Pt(c.X, -c.Y)
			case Right:
				c = geom.Pt(c.Y, c.X)
			case Left:
				c = geom.Pt(-c.Y, c.X)
			}
			nodes[v].SetCenter(c)
			cursor += b + cfg.NodeSpacing
		}

		depthCursor += tallest + cfg.LayerSpacing
	}
}
