// Package layout computes node positions for diagram graphs.
//
// # Overview
//
// The engine consumes a [Graph] — an ordered set of sized nodes plus directed
// links — and one algorithm configuration, and writes a position into every
// node. Five algorithm families are provided, each with its own configuration
// variant:
//
//   - [TreeConfig]: hierarchical placement for rooted forests (org charts)
//   - [LayeredConfig]: Sugiyama-style rank placement for flow diagrams
//   - [ForceConfig]: spring-electrical simulation for general graphs
//   - [CircularConfig]: even placement around a circle
//   - [GridConfig]: uniform row/column grid
//
// The configuration variants form a closed sum type over the algorithm kinds:
// all of them implement the sealed [Config] interface and are dispatched by a
// single switch in [Apply]. Tunables live as plain fields on each variant; no
// algorithm reads global state.
//
// # Basic Usage
//
// Build a graph, pick a configuration, and apply it once:
//
//	g := layout.NewGraph()
//	a := &layout.Node{ID: "a", Size: geom.Sz(120, 60)}
//	b := &layout.Node{ID: "b", Size: geom.Sz(120, 60)}
//	g.AddNode(a)
//	g.AddNode(b)
//	g.AddLink(a, b)
//	layout.Apply(g, layout.DefaultLayeredConfig())
//
// [ApplyToGroup] restricts the same algorithm to a node subset, treated as an
// independent graph; links crossing the subset boundary are ignored for that
// invocation.
//
// # Determinism
//
// Given identical node order, configuration, and (for the force-directed
// algorithm) seed, every algorithm produces bit-identical output. Input node
// order is the tie-break order wherever a stable sort is involved.
//
// # Edge Cases
//
// An empty graph is a no-op, never an error. Links with a missing or foreign
// endpoint are silently skipped. The one documented precondition is that the
// tree algorithm requires acyclic structure beneath each chosen root; a cycle
// there recurses without bound and must be prevented by the caller.
//
// # Concurrency
//
// All algorithms are synchronous, single-threaded computations over the
// supplied graph. The graph must be exclusively owned by the calling
// goroutine for the duration of an [Apply] call; the engine retains no
// reference to it afterwards.
package layout
