package layout

import (
	"math"
	"slices"

	"github.com/mbertsch/graphplace/pkg/geom"
)

// GridConfig configures placement on a uniform row/column grid. Cells are
// uniform: the maximum node width and height across the whole graph plus the
// spacing, not sized per node.
type GridConfig struct {
	// Columns fixes the column count. Zero means derive it.
	Columns int
	// Rows fixes the row count, used to derive the column count when
	// Columns is zero. When both are zero the grid is roughly square:
	// columns = ceil(sqrt(node count)).
	Rows int
	// Spacing is added to the maximum node dimensions to form the cell.
	Spacing float64
	// Anchor places each node within its cell.
	Anchor Anchor
	// Compare re-orders the nodes; nil keeps input order.
	Compare Compare
}

// DefaultGridConfig returns the grid configuration used when the caller
// does not override any tunables.
func DefaultGridConfig() GridConfig {
	return GridConfig{Spacing: 20, Anchor: AnchorCenter}
}

func applyGrid(nodes []*Node, cfg GridConfig) {
	ordered := slices.Clone(nodes)
	if cfg.Compare != nil {
		slices.SortStableFunc(ordered, cfg.Compare)
	}

	columns := cfg.Columns
	switch {
	case columns > 0:
		// explicit columns win, even when rows are also set
	case cfg.Rows > 0:
		columns = (len(ordered) + cfg.Rows - 1) / cfg.Rows
	default:
		columns = int(math.Ceil(math.Sqrt(float64(len(ordered)))))
	}
	if columns < 1 {
		columns = 1
	}

	cellW, cellH := 0.0, 0.0
	for _, n := range ordered {
		cellW = math.Max(cellW, n.Size.Width)
		cellH = math.Max(cellH, n.Size.Height)
	}
	cellW += cfg.Spacing
	cellH += cfg.Spacing

	for i, n := range ordered {
		row, col := i/columns, i%columns
		cell := geom.Pt(float64(col)*cellW, float64(row)*cellH)
		n.Pos = cell.Add(anchorOffset(cfg.Anchor, cellW, cellH, n.Size))
	}

	centerAtOrigin(nodes)
}

// anchorOffset returns the node's offset within its cell for one of the nine
// anchor positions (corners, edge midpoints, center).
func anchorOffset(a Anchor, cellW, cellH float64, s geom.Size) geom.Point {
	var x float64
	switch a {
	case AnchorTop, AnchorCenter, AnchorBottom:
		x = (cellW - s.Width) / 2
	case AnchorTopRight, AnchorRight, AnchorBottomRight:
		x = cellW - s.Width
	}

	var y float64
	switch a {
	case AnchorLeft, AnchorCenter, AnchorRight:
		y = (cellH - s.Height) / 2
	case AnchorBottomLeft, AnchorBottom, AnchorBottomRight:
		y = cellH - s.Height
	}

	return geom.Pt(x, y)
}
