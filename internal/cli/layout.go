package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skein-dev/skein/pkg/graph"
	"github.com/skein-dev/skein/pkg/layout"
	"github.com/skein-dev/skein/pkg/pipeline"
)

// layoutCommand creates the layout command for positioning graphs.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output    string
		noCache   bool
		refresh   bool
		strategy  string
		direction string
	)
	opts := layout.Options{}

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute a layout for a graph file",
		Long: `Compute a layout for a graph file.

The layout command takes a graph.json file with nodes and edges, assigns a
depth level to every node, places nodes so their boxes do not overlap, and
picks the side of each box an edge should attach to. The result is written
as <input>.layout.json with the same node and edge shape plus coordinates.

When the argument is a directory, an interactive picker lists the JSON
graph files inside it.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Strategy = layout.Strategy(strategy)
			opts.Direction = layout.Direction(direction)

			input := "."
			if len(args) > 0 {
				input = args[0]
			}
			resolved, err := resolveGraphPath(input)
			if err != nil {
				return err
			}
			if resolved == "" {
				return nil // picker dismissed
			}
			return c.runLayout(cmd.Context(), resolved, opts, output, noCache, refresh)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached layout exists")

	// Layout flags
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "layout strategy: hierarchical (default), layered")
	cmd.Flags().StringVarP(&direction, "direction", "d", "", "flow direction: TB (default), LR, RL, BT")
	cmd.Flags().Float64Var(&opts.NodeWidth, "node-width", 0, "fallback node width in pixels")
	cmd.Flags().Float64Var(&opts.NodeHeight, "node-height", 0, "fallback node height in pixels")
	cmd.Flags().Float64Var(&opts.NodeSep, "nodesep", 0, "minimum separation within a level")
	cmd.Flags().Float64Var(&opts.RankSep, "ranksep", 0, "minimum separation between levels")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "viewport width hint")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "viewport height hint")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed for jitter and tie-breaking")
	cmd.Flags().IntVar(&opts.MaxIterations, "max-iterations", 0, "cap on overlap resolution iterations")

	return cmd
}

// resolveGraphPath turns the command argument into a concrete graph file.
// A directory argument opens the interactive picker; an empty return with
// nil error means the user dismissed it.
func resolveGraphPath(input string) (string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", input, err)
	}
	if !info.IsDir() {
		return input, nil
	}
	return pickGraphFile(input)
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts layout.Options, output string, noCache, refresh bool) error {
	logger := loggerFromContext(ctx)

	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, g, pipeline.Options{
		Layout:  opts,
		Refresh: refresh,
		Logger:  logger,
	})
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

	if err := graph.WriteGraphFile(result.Graph, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	prog.done(fmt.Sprintf("Positioned %d nodes", result.Stats.NodeCount))

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.LevelCount, result.CacheInfo.LayoutHit)
	if result.Stats.ResidualOverlaps > 0 {
		printWarning("%d node pairs still overlap", result.Stats.ResidualOverlaps)
	}
	printNewline()
	printNextStep("Serve", "skein serve")

	return nil
}
