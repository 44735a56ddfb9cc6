// Package pipeline provides the layout computation pipeline for graphplace.
//
// This package implements the decode → layout → encode flow shared by the
// CLI and the HTTP service. By centralizing this logic, we ensure consistent
// behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// A pipeline run has three steps:
//
//  1. Convert the wire graph into the engine's layout view
//  2. Apply the selected layout algorithm
//  3. Capture the computed positions back into wire form
//
// Results are cached under a content hash of the input graph plus the
// option fields that influence positions.
//
// # Usage
//
// Create a Runner and compute a layout:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Algorithm: "layered"}
//	out, err := runner.ComputeLayout(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
package pipeline

import (
	"io"
	"math"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/mbertsch/graphplace/pkg/cache"
	"github.com/mbertsch/graphplace/pkg/errors"
	"github.com/mbertsch/graphplace/pkg/layout"
)

// =============================================================================
// Constants - Single Source of Truth for CLI and API
// =============================================================================

// Algorithm names.
const (
	AlgorithmTree     = "tree"
	AlgorithmLayered  = "layered"
	AlgorithmForce    = "force"
	AlgorithmCircular = "circular"
	AlgorithmGrid     = "grid"
)

// DefaultAlgorithm is used when no algorithm is specified.
const DefaultAlgorithm = AlgorithmLayered

// ValidAlgorithms is the set of supported layout algorithms.
var ValidAlgorithms = map[string]bool{
	AlgorithmTree:     true,
	AlgorithmLayered:  true,
	AlgorithmForce:    true,
	AlgorithmCircular: true,
	AlgorithmGrid:     true,
}

// Direction names.
const (
	DirectionDown  = "down"
	DirectionUp    = "up"
	DirectionRight = "right"
	DirectionLeft  = "left"
)

// Alignment names.
const (
	AlignmentCenterChildren = "center-children"
	AlignmentStart          = "start"
	AlignmentCenter         = "center"
	AlignmentEnd            = "end"
)

// Anchor names.
const (
	AnchorTopLeft     = "top-left"
	AnchorTop         = "top"
	AnchorTopRight    = "top-right"
	AnchorLeft        = "left"
	AnchorCenter      = "center"
	AnchorRight       = "right"
	AnchorBottomLeft  = "bottom-left"
	AnchorBottom      = "bottom"
	AnchorBottomRight = "bottom-right"
)

var directions = map[string]layout.Direction{
	DirectionDown:  layout.Down,
	DirectionUp:    layout.Up,
	DirectionRight: layout.Right,
	DirectionLeft:  layout.Left,
}

var alignments = map[string]layout.Alignment{
	AlignmentCenterChildren: layout.AlignCenterChildren,
	AlignmentStart:          layout.AlignStart,
	AlignmentCenter:         layout.AlignCenter,
	AlignmentEnd:            layout.AlignEnd,
}

var anchors = map[string]layout.Anchor{
	AnchorTopLeft:     layout.AnchorTopLeft,
	AnchorTop:         layout.AnchorTop,
	AnchorTopRight:    layout.AnchorTopRight,
	AnchorLeft:        layout.AnchorLeft,
	AnchorCenter:      layout.AnchorCenter,
	AnchorRight:       layout.AnchorRight,
	AnchorBottomLeft:  layout.AnchorBottomLeft,
	AnchorBottom:      layout.AnchorBottom,
	AnchorBottomRight: layout.AnchorBottomRight,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a layout run.
// This struct supports JSON serialization for API requests and TOML
// deserialization for option files; zero values mean "use the default".
type Options struct {
	Algorithm string `json:"algorithm,omitempty" toml:"algorithm"`

	// Directional options (tree, layered)
	Direction string  `json:"direction,omitempty" toml:"direction"`
	Alignment string  `json:"alignment,omitempty" toml:"alignment"`
	Angle     float64 `json:"angle,omitempty" toml:"angle"`

	// Spacing
	LayerSpacing   float64 `json:"layer_spacing,omitempty" toml:"layer_spacing"`
	SiblingSpacing float64 `json:"sibling_spacing,omitempty" toml:"sibling_spacing"`
	TreeSpacing    float64 `json:"tree_spacing,omitempty" toml:"tree_spacing"`
	NodeSpacing    float64 `json:"node_spacing,omitempty" toml:"node_spacing"`
	Spacing        float64 `json:"spacing,omitempty" toml:"spacing"`

	// Layered options
	Passes int `json:"passes,omitempty" toml:"passes"`

	// Force-directed options
	Iterations      int     `json:"iterations,omitempty" toml:"iterations"`
	SpringLength    float64 `json:"spring_length,omitempty" toml:"spring_length"`
	SpringStiffness float64 `json:"spring_stiffness,omitempty" toml:"spring_stiffness"`
	Repulsion       float64 `json:"repulsion,omitempty" toml:"repulsion"`
	Temperature     float64 `json:"temperature,omitempty" toml:"temperature"`
	Cooling         float64 `json:"cooling,omitempty" toml:"cooling"`
	Randomize       bool    `json:"randomize,omitempty" toml:"randomize"`
	Seed            uint64  `json:"seed,omitempty" toml:"seed"`
	Spread          float64 `json:"spread,omitempty" toml:"spread"`

	// Circular options
	Radius     float64 `json:"radius,omitempty" toml:"radius"`
	StartAngle float64 `json:"start_angle,omitempty" toml:"start_angle"`

	// Grid options
	Columns int    `json:"columns,omitempty" toml:"columns"`
	Rows    int    `json:"rows,omitempty" toml:"rows"`
	Anchor  string `json:"anchor,omitempty" toml:"anchor"`

	// Refresh bypasses the cache read (the result is still stored).
	Refresh bool `json:"refresh,omitempty" toml:"refresh"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// LoadOptions reads layout options from a TOML file.
// Unknown keys are rejected so typos surface instead of silently falling
// back to defaults.
func LoadOptions(path string) (Options, error) {
	var opts Options
	meta, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidOptions, err, "parse options file %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Options{}, errors.New(errors.ErrCodeInvalidOptions,
			"unknown option %q in %s", undecoded[0].String(), path)
	}
	return opts, nil
}

// ValidateAndSetDefaults checks option values and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if !ValidAlgorithms[o.Algorithm] {
		return errors.New(errors.ErrCodeInvalidAlgorithm,
			"unknown algorithm: %q (must be one of: tree, layered, force, circular, grid)", o.Algorithm)
	}

	if o.Direction != "" {
		if _, ok := directions[o.Direction]; !ok {
			return errors.New(errors.ErrCodeInvalidOptions,
				"unknown direction: %q (must be one of: down, up, right, left)", o.Direction)
		}
	}
	if o.Alignment != "" {
		if _, ok := alignments[o.Alignment]; !ok {
			return errors.New(errors.ErrCodeInvalidOptions,
				"unknown alignment: %q (must be one of: center-children, start, center, end)", o.Alignment)
		}
	}
	if o.Anchor != "" {
		if _, ok := anchors[o.Anchor]; !ok {
			return errors.New(errors.ErrCodeInvalidOptions, "unknown anchor: %q", o.Anchor)
		}
	}

	for name, v := range map[string]float64{
		"layer_spacing":   o.LayerSpacing,
		"sibling_spacing": o.SiblingSpacing,
		"tree_spacing":    o.TreeSpacing,
		"node_spacing":    o.NodeSpacing,
		"spacing":         o.Spacing,
		"spring_length":   o.SpringLength,
		"repulsion":       o.Repulsion,
		"temperature":     o.Temperature,
		"spread":          o.Spread,
		"radius":          o.Radius,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidOptions, "%s must be a non-negative number", name)
		}
	}
	if o.Passes < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "passes must be non-negative")
	}
	if o.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "iterations must be non-negative")
	}
	if o.Columns < 0 || o.Rows < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "columns and rows must be non-negative")
	}
	if o.Cooling < 0 || o.Cooling > 1 {
		return errors.New(errors.ErrCodeInvalidOptions, "cooling must be in [0,1]")
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// ToConfig produces the layout configuration for the selected algorithm,
// starting from that algorithm's defaults and overriding every option the
// caller set. Returns nil for an unknown algorithm; call
// ValidateAndSetDefaults first.
func (o *Options) ToConfig() layout.Config {
	switch o.Algorithm {
	case AlgorithmTree:
		cfg := layout.DefaultTreeConfig()
		if o.Direction != "" {
			cfg.Direction = directions[o.Direction]
		}
		if o.Alignment != "" {
			cfg.Alignment = alignments[o.Alignment]
		}
		cfg.Angle = o.Angle
		if o.LayerSpacing > 0 {
			cfg.LayerSpacing = o.LayerSpacing
		}
		if o.SiblingSpacing > 0 {
			cfg.SiblingSpacing = o.SiblingSpacing
		}
		if o.TreeSpacing > 0 {
			cfg.TreeSpacing = o.TreeSpacing
		}
		return cfg

	case AlgorithmLayered:
		cfg := layout.DefaultLayeredConfig()
		if o.Direction != "" {
			cfg.Direction = directions[o.Direction]
		}
		if o.LayerSpacing > 0 {
			cfg.LayerSpacing = o.LayerSpacing
		}
		if o.NodeSpacing > 0 {
			cfg.NodeSpacing = o.NodeSpacing
		}
		if o.Passes > 0 {
			cfg.Passes = o.Passes
		}
		return cfg

	case AlgorithmForce:
		cfg := layout.DefaultForceConfig()
		if o.Iterations > 0 {
			cfg.Iterations = o.Iterations
		}
		if o.SpringLength > 0 {
			cfg.SpringLength = o.SpringLength
		}
		if o.SpringStiffness > 0 {
			cfg.SpringStiffness = o.SpringStiffness
		}
		if o.Repulsion > 0 {
			cfg.Repulsion = o.Repulsion
		}
		if o.Temperature > 0 {
			cfg.Temperature = o.Temperature
		}
		if o.Cooling > 0 {
			cfg.Cooling = o.Cooling
		}
		cfg.Randomize = o.Randomize
		if o.Seed != 0 {
			cfg.Seed = o.Seed
		}
		if o.Spread > 0 {
			cfg.Spread = o.Spread
		}
		return cfg

	case AlgorithmCircular:
		cfg := layout.DefaultCircularConfig()
		if o.Radius > 0 {
			cfg.Radius = o.Radius
		}
		if o.Spacing > 0 {
			cfg.Spacing = o.Spacing
		}
		cfg.StartAngle = o.StartAngle
		return cfg

	case AlgorithmGrid:
		cfg := layout.DefaultGridConfig()
		cfg.Columns = o.Columns
		cfg.Rows = o.Rows
		if o.Spacing > 0 {
			cfg.Spacing = o.Spacing
		}
		if o.Anchor != "" {
			cfg.Anchor = anchors[o.Anchor]
		}
		return cfg
	}
	return nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Algorithm:       o.Algorithm,
		Direction:       o.Direction,
		Alignment:       o.Alignment,
		Anchor:          o.Anchor,
		Angle:           o.Angle,
		LayerSpacing:    o.LayerSpacing,
		SiblingSpacing:  o.SiblingSpacing,
		TreeSpacing:     o.TreeSpacing,
		NodeSpacing:     o.NodeSpacing,
		Spacing:         o.Spacing,
		Passes:          o.Passes,
		Iterations:      o.Iterations,
		SpringLength:    o.SpringLength,
		SpringStiffness: o.SpringStiffness,
		Repulsion:       o.Repulsion,
		Temperature:     o.Temperature,
		Cooling:         o.Cooling,
		Randomize:       o.Randomize,
		Seed:            o.Seed,
		Spread:          o.Spread,
		Radius:          o.Radius,
		StartAngle:      o.StartAngle,
		Columns:         o.Columns,
		Rows:            o.Rows,
	}
}
