// Package wire provides the JSON serialization format for diagram graphs.
//
// This package defines the canonical wire format for graphplace's graph
// data, used for JSON files, API requests and responses, and cache entries.
//
// # Graph Serialization
//
// Graphs use a simple node-link JSON format. Sizes are inputs to layout,
// positions are outputs:
//
//	{
//	  "nodes": [{"id": "app", "width": 120, "height": 60, "x": 0, "y": 0}],
//	  "edges": [{"from": "app", "to": "lib-a"}]
//	}
//
// Common operations:
//
//	g, _ := wire.ReadGraphFile("graph.json")   // File → Graph
//	wire.WriteGraphFile(g, "out.json")         // Graph → File
//	data, _ := wire.MarshalGraph(g)            // Graph → []byte
//	parsed, _ := wire.UnmarshalGraph(data)     // []byte → Graph
//
// Output is deterministic: two-space indentation and input node order
// preserved, so identical graphs serialize to identical bytes. Cache keys
// depend on this.
//
// # Converting to Layout Form
//
// [ToLayoutGraph] builds the engine's view of a graph; edges referencing
// unknown node ids are dropped, matching how the engine treats unbound
// links. [FromLayoutGraph] captures computed positions back into wire form:
//
//	lg, err := wire.ToLayoutGraph(g)
//	layout.Apply(lg, layout.DefaultLayeredConfig())
//	out := wire.FromLayoutGraph(lg)
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package wire
