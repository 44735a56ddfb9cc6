package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mbertsch/graphplace/pkg/cache"
	"github.com/mbertsch/graphplace/pkg/errors"
	"github.com/mbertsch/graphplace/pkg/layout"
	"github.com/mbertsch/graphplace/pkg/observability"
	"github.com/mbertsch/graphplace/pkg/wire"
)

// Runner encapsulates layout computation with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Result contains the outputs of a layout run.
type Result struct {
	// Graph is the positioned wire graph.
	Graph wire.Graph

	// GraphHash is the content hash of the input graph.
	GraphHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the run hit the cache.
	CacheInfo CacheInfo
}

// Stats contains layout execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LayoutTime time.Duration
}

// CacheInfo tracks cache hits for a layout run.
type CacheInfo struct {
	LayoutHit bool // Whether the result came from cache
}

// ComputeLayout runs a complete layout and returns the positioned graph.
func (r *Runner) ComputeLayout(ctx context.Context, g wire.Graph, opts Options) (wire.Graph, error) {
	result, err := r.ComputeLayoutWithCacheInfo(ctx, g, opts)
	return result.Graph, err
}

// ComputeLayoutWithCacheInfo runs a complete layout with caching and
// returns the positioned graph plus cache hit and timing information.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, g wire.Graph, opts Options) (Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeTimeout, err, "layout canceled")
	}

	result := Result{
		Stats: Stats{NodeCount: len(g.Nodes), EdgeCount: len(g.Edges)},
	}

	// Compute the cache key from the serialized input graph
	graphData, err := wire.MarshalGraph(g)
	if err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInvalidGraph, err, "serialize graph")
	}
	result.GraphHash = cache.Hash(graphData)
	cacheKey := r.Keyer.LayoutKey(result.GraphHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := wire.UnmarshalGraph(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				opts.Logger.Debug("layout cache hit", "key", cacheKey)
				result.Graph = cached
				result.CacheInfo.LayoutHit = true
				return result, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	// Compute
	start := time.Now()
	observability.Layout().OnLayoutStart(ctx, opts.Algorithm, len(g.Nodes))

	lg, err := wire.ToLayoutGraph(g)
	if err != nil {
		wrapped := errors.Wrap(errors.ErrCodeInvalidGraph, err, "invalid graph")
		observability.Layout().OnLayoutComplete(ctx, opts.Algorithm, time.Since(start), wrapped)
		return Result{}, wrapped
	}
	layout.Apply(lg, opts.ToConfig())

	result.Graph = wire.FromLayoutGraph(lg)
	result.Stats.LayoutTime = time.Since(start)
	observability.Layout().OnLayoutComplete(ctx, opts.Algorithm, result.Stats.LayoutTime, nil)

	opts.Logger.Info("computed layout",
		"algorithm", opts.Algorithm,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.LayoutTime)

	// Cache the result
	if data, err := wire.MarshalGraph(result.Graph); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
