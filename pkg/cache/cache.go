// Package cache provides pluggable caching for computed layouts.
//
// A layout for a given graph and option set is deterministic, so results are
// cached under a content hash of the serialized graph plus the option fields
// that influence positions. Backends share one interface:
//
//   - [FileCache]: directory-backed cache for CLI usage
//   - [RedisCache]: shared cache for the HTTP service
//   - [NullCache]: disables caching
//
// Keys are produced by a [Keyer] so that CLI, API, and tests agree on the
// key scheme. Wrap a keyer with [NewScopedKeyer] to namespace keys, e.g. per
// tenant on a shared Redis.
package cache

import (
	"context"
	"time"
)

// TTLLayout is how long cached layouts stay valid. Layouts are pure
// functions of their inputs; the TTL only bounds disk and Redis growth.
const TTLLayout = 7 * 24 * time.Hour

// Cache is the storage interface shared by all backends.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss;
// errors are reserved for backend failures. A ttl of zero means no
// expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts carries every option field that influences computed
// positions. Two runs with equal graph hashes and equal key opts are
// guaranteed to produce identical layouts.
type LayoutKeyOpts struct {
	Algorithm string `json:"algorithm"`

	// Shared tunables
	Direction string  `json:"direction,omitempty"`
	Alignment string  `json:"alignment,omitempty"`
	Anchor    string  `json:"anchor,omitempty"`
	Angle     float64 `json:"angle,omitempty"`

	// Spacing
	LayerSpacing   float64 `json:"layer_spacing,omitempty"`
	SiblingSpacing float64 `json:"sibling_spacing,omitempty"`
	TreeSpacing    float64 `json:"tree_spacing,omitempty"`
	NodeSpacing    float64 `json:"node_spacing,omitempty"`
	Spacing        float64 `json:"spacing,omitempty"`

	// Layered
	Passes int `json:"passes,omitempty"`

	// Force-directed
	Iterations      int     `json:"iterations,omitempty"`
	SpringLength    float64 `json:"spring_length,omitempty"`
	SpringStiffness float64 `json:"spring_stiffness,omitempty"`
	Repulsion       float64 `json:"repulsion,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
	Cooling         float64 `json:"cooling,omitempty"`
	Randomize       bool    `json:"randomize,omitempty"`
	Seed            uint64  `json:"seed,omitempty"`
	Spread          float64 `json:"spread,omitempty"`

	// Circular
	Radius     float64 `json:"radius,omitempty"`
	StartAngle float64 `json:"start_angle,omitempty"`

	// Grid
	Columns int `json:"columns,omitempty"`
	Rows    int `json:"rows,omitempty"`
}

// Keyer generates cache keys. Implementations must be deterministic: the
// same inputs always yield the same key.
type Keyer interface {
	// LayoutKey generates a key for a computed layout. graphHash is the
	// content hash of the serialized input graph.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer is the standard key scheme: a type prefix plus a SHA-256
// hash over the inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key of the form "layout:<sha256>".
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}
