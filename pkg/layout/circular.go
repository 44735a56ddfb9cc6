package layout

import (
	"math"
	"slices"

	"github.com/mbertsch/graphplace/pkg/geom"
)

// minRadius is the floor applied to an automatically computed circle radius.
const minRadius = 100

// CircularConfig configures even placement of all nodes around a circle.
type CircularConfig struct {
	// Radius is the fixed circle radius. When zero or negative the radius
	// is derived from the node count and sizes, floored at 100 units.
	Radius float64
	// Spacing is the extra arc length budgeted per node when deriving the
	// radius automatically.
	Spacing float64
	// StartAngle, in degrees, is the angle of the first node.
	StartAngle float64
	// Compare re-orders the nodes around the circle; nil keeps input order.
	Compare Compare
}

// DefaultCircularConfig returns the circular configuration used when the
// caller does not override any tunables.
func DefaultCircularConfig() CircularConfig {
	return CircularConfig{Spacing: 20}
}

func applyCircular(nodes []*Node, cfg CircularConfig) {
	ordered := slices.Clone(nodes)
	if cfg.Compare != nil {
		slices.SortStableFunc(ordered, cfg.Compare)
	}

	radius := cfg.Radius
	if radius <= 0 {
		// Budget each node its largest dimension plus spacing of arc
		// length, then close the circle.
		avgExtent := 0.0
		for _, n := range ordered {
			avgExtent += math.Max(n.Size.Width, n.Size.Height)
		}
		avgExtent /= float64(len(ordered))
		radius = float64(len(ordered)) * (avgExtent + cfg.Spacing) / (2 * math.Pi)
		radius = math.Max(radius, minRadius)
	}

	step := 360.0 / float64(len(ordered))
	for i, n := range ordered {
		theta := (cfg.StartAngle + float64(i)*step) * math.Pi / 180
		// The node's own center, not its corner, lands on the circle.
		n.SetCenter(geom.Pt(radius*math.Cos(theta), radius*math.Sin(theta)))
	}

	centerAtOrigin(nodes)
}
