package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mbertsch/graphplace/pkg/pipeline"
	"github.com/mbertsch/graphplace/pkg/wire"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		configPath string
		noCache    bool
		redisURL   string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute node positions for a graph",
		Long: `Compute node positions for a graph.

The layout command reads a graph.json file in node-link format, runs the
selected layout algorithm, and writes the same graph back with x/y set on
every node. Unset tunables fall back to the algorithm's defaults; a zero
value means "use the default".

When no --algorithm is given and the terminal is interactive, an algorithm
picker is shown. Otherwise the layered algorithm is used.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				fileOpts, err := pipeline.LoadOptions(configPath)
				if err != nil {
					return fmt.Errorf("load config %s: %w", configPath, err)
				}
				opts = mergeOptions(cmd, opts, fileOpts)
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache, redisURL)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML file with layout options (flags take precedence)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for the layout cache (default: file cache)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached result exists")

	// Shared layout flags
	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", "", "layout algorithm: tree, layered, force, circular, grid")
	cmd.Flags().StringVar(&opts.Direction, "direction", "", "growth direction: down (default), up, right, left")
	cmd.Flags().Float64Var(&opts.Spacing, "spacing", 0, "minimum gap between nodes (circular, grid)")

	// Tree flags
	cmd.Flags().StringVar(&opts.Alignment, "alignment", "", "tree alignment: center-children (default), start, center, end")
	cmd.Flags().Float64Var(&opts.Angle, "angle", 0, "rotation of the finished layout in degrees (tree)")
	cmd.Flags().Float64Var(&opts.SiblingSpacing, "sibling-spacing", 0, "gap between sibling subtrees (tree)")
	cmd.Flags().Float64Var(&opts.TreeSpacing, "tree-spacing", 0, "gap between component trees (tree)")

	// Layered flags
	cmd.Flags().Float64Var(&opts.LayerSpacing, "layer-spacing", 0, "gap between layers (tree, layered)")
	cmd.Flags().Float64Var(&opts.NodeSpacing, "node-spacing", 0, "gap between nodes in a layer (layered)")
	cmd.Flags().IntVar(&opts.Passes, "passes", 0, "crossing reduction sweeps (layered)")

	// Force flags
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 0, "simulation steps (force)")
	cmd.Flags().Float64Var(&opts.SpringLength, "spring-length", 0, "ideal edge length (force)")
	cmd.Flags().Float64Var(&opts.SpringStiffness, "stiffness", 0, "spring constant (force)")
	cmd.Flags().Float64Var(&opts.Repulsion, "repulsion", 0, "node repulsion strength (force)")
	cmd.Flags().Float64Var(&opts.Temperature, "temperature", 0, "initial max displacement (force)")
	cmd.Flags().Float64Var(&opts.Cooling, "cooling", 0, "temperature decay per step (force)")
	cmd.Flags().BoolVar(&opts.Randomize, "randomize", false, "scatter nodes before simulating (force)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed for --randomize (force)")
	cmd.Flags().Float64Var(&opts.Spread, "spread", 0, "initial scatter extent (force)")

	// Circular flags
	cmd.Flags().Float64Var(&opts.Radius, "radius", 0, "fixed circle radius (circular)")
	cmd.Flags().Float64Var(&opts.StartAngle, "start-angle", 0, "angle of the first node in degrees (circular)")

	// Grid flags
	cmd.Flags().IntVar(&opts.Columns, "columns", 0, "grid column count (grid)")
	cmd.Flags().IntVar(&opts.Rows, "rows", 0, "grid row count (grid)")
	cmd.Flags().StringVar(&opts.Anchor, "anchor", "", "cell anchor: center (default), top-left, bottom-right, ... (grid)")

	return cmd
}

// mergeOptions overlays command-line flags onto options loaded from a config
// file. A flag wins only when it was set explicitly; everything else keeps
// the file's value.
func mergeOptions(cmd *cobra.Command, flags, file pipeline.Options) pipeline.Options {
	merged := file
	set := cmd.Flags().Changed

	if set("algorithm") {
		merged.Algorithm = flags.Algorithm
	}
	if set("direction") {
		merged.Direction = flags.Direction
	}
	if set("alignment") {
		merged.Alignment = flags.Alignment
	}
	if set("anchor") {
		merged.Anchor = flags.Anchor
	}
	if set("spacing") {
		merged.Spacing = flags.Spacing
	}
	if set("angle") {
		merged.Angle = flags.Angle
	}
	if set("sibling-spacing") {
		merged.SiblingSpacing = flags.SiblingSpacing
	}
	if set("tree-spacing") {
		merged.TreeSpacing = flags.TreeSpacing
	}
	if set("layer-spacing") {
		merged.LayerSpacing = flags.LayerSpacing
	}
	if set("node-spacing") {
		merged.NodeSpacing = flags.NodeSpacing
	}
	if set("passes") {
		merged.Passes = flags.Passes
	}
	if set("iterations") {
		merged.Iterations = flags.Iterations
	}
	if set("spring-length") {
		merged.SpringLength = flags.SpringLength
	}
	if set("stiffness") {
		merged.SpringStiffness = flags.SpringStiffness
	}
	if set("repulsion") {
		merged.Repulsion = flags.Repulsion
	}
	if set("temperature") {
		merged.Temperature = flags.Temperature
	}
	if set("cooling") {
		merged.Cooling = flags.Cooling
	}
	if set("randomize") {
		merged.Randomize = flags.Randomize
	}
	if set("seed") {
		merged.Seed = flags.Seed
	}
	if set("spread") {
		merged.Spread = flags.Spread
	}
	if set("radius") {
		merged.Radius = flags.Radius
	}
	if set("start-angle") {
		merged.StartAngle = flags.StartAngle
	}
	if set("columns") {
		merged.Columns = flags.Columns
	}
	if set("rows") {
		merged.Rows = flags.Rows
	}
	merged.Refresh = flags.Refresh

	return merged
}

// runLayout loads the graph, computes positions, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool, redisURL string) error {
	if noCache && redisURL != "" {
		printWarning("--no-cache overrides --redis; caching is disabled")
	}

	g, err := wire.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	loggerFromContext(ctx).Debug("loaded graph", "path", input, "nodes", len(g.Nodes), "edges", len(g.Edges))

	if opts.Algorithm == "" && isInteractive() {
		choice, err := pickAlgorithm()
		if err != nil {
			return err
		}
		opts.Algorithm = choice
	}
	if opts.Algorithm == "" {
		opts.Algorithm = pipeline.DefaultAlgorithm
	}

	runner, err := c.newRunner(ctx, noCache, redisURL)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Algorithm))
	spinner.Start()

	result, err := runner.ComputeLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := wire.WriteGraphFile(result.Graph, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)

	return nil
}
