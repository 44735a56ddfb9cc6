package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mbertsch/graphplace/pkg/geom"
	"github.com/mbertsch/graphplace/pkg/layout"
)

// =============================================================================
// Graph - Diagram Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for diagram graphs.
// Used for API requests and responses, files, and cache entries.
//
// The format is designed for round-trip fidelity: read → layout → write →
// re-read preserves everything but the positions the engine computed.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is the wire form of a diagram node. Width and Height are layout
// inputs; X and Y are the top-left corner, written by the engine.
type Node struct {
	ID     string         `json:"id"`
	Label  string         `json:"label,omitempty"` // Display label (defaults to ID)
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Locked bool           `json:"locked,omitempty"` // Pinned during force-directed layout
	Meta   map[string]any `json:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge represents a directed edge between two nodes.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// =============================================================================
// Wire ↔ Layout Conversion
// =============================================================================

// ToLayoutGraph converts a wire Graph to the engine's layout view.
// Node order is preserved; it defines tie-break order for every stable sort
// in the engine. Each layout node's Ref points back to the wire node, so
// labels and metadata survive the round trip untouched.
//
// Edges referencing unknown node ids are skipped rather than rejected,
// matching how the engine handles unbound links.
//
// Returns an error for empty or duplicate node ids.
func ToLayoutGraph(g Graph) (*layout.Graph, error) {
	lg := layout.NewGraph()
	for i := range g.Nodes {
		wn := &g.Nodes[i]
		n := &layout.Node{
			ID:     wn.ID,
			Pos:    geom.Pt(wn.X, wn.Y),
			Size:   geom.Sz(wn.Width, wn.Height),
			Locked: wn.Locked,
			Ref:    wn,
		}
		if err := lg.AddNode(n); err != nil {
			return nil, fmt.Errorf("add node %q: %w", wn.ID, err)
		}
	}

	for _, e := range g.Edges {
		from, okFrom := lg.Node(e.From)
		to, okTo := lg.Node(e.To)
		if !okFrom || !okTo {
			continue
		}
		lg.AddLink(from, to)
	}

	return lg, nil
}

// FromLayoutGraph captures computed positions back into wire form.
// Nodes appear in the layout graph's insertion order. When a layout node's
// Ref carries the originating wire node, its label and metadata are
// preserved; otherwise the wire node is rebuilt from the layout fields.
func FromLayoutGraph(lg *layout.Graph) Graph {
	nodes := lg.Nodes()
	links := lg.Links()

	out := Graph{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, 0, len(links)),
	}

	for i, n := range nodes {
		if wn, ok := n.Ref.(*Node); ok {
			out.Nodes[i] = *wn
		} else {
			out.Nodes[i] = Node{
				ID:     n.ID,
				Width:  n.Size.Width,
				Height: n.Size.Height,
				Locked: n.Locked,
			}
		}
		out.Nodes[i].X = n.Pos.X
		out.Nodes[i].Y = n.Pos.Y
	}

	for _, l := range links {
		if l.From == nil || l.To == nil {
			continue
		}
		out.Edges = append(out.Edges, Edge{From: l.From.ID, To: l.To.ID})
	}

	return out
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a Graph to pretty-printed JSON bytes.
// Output is deterministic for identical inputs.
func MarshalGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("unmarshal graph: %w", err)
	}
	return g, nil
}

// WriteGraphFile writes a Graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// WriteGraph writes a Graph as JSON to an io.Writer.
// Use MarshalGraph for in-memory serialization or WriteGraphFile for files.
func WriteGraph(g Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadGraphFile reads a JSON file and returns the decoded Graph.
func ReadGraphFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// ReadGraph decodes a JSON graph from an io.Reader.
// Use ReadGraphFile for files or pass bytes.NewReader for in-memory data.
func ReadGraph(r io.Reader) (Graph, error) {
	return readGraphFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}
