package layout

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/skein-dev/skein/pkg/errors"
	"github.com/skein-dev/skein/pkg/graph"
)

// pointsPerInch converts between Graphviz inches and screen pixels; we
// treat one point as one pixel.
const pointsPerInch = 72.0

// formatPlain is Graphviz's line-oriented "plain" output format:
// one "node <name> <x> <y> <width> <height> ..." line per node, with
// coordinates and sizes in inches, origin at the bottom-left.
const formatPlain = graphviz.Format("plain")

// layeredPositions implements the layered base-coordinate strategy by
// delegating rank and in-rank order to Graphviz's dot engine. Nodes are
// emitted into DOT under generated aliases (n0..nk) so arbitrary IDs never
// need quoting, laid out with the configured separations, and read back
// from the plain output.
//
// Returned positions denote the top-left corner of each node box in screen
// coordinates (y grows downward), with the configured margins applied.
func layeredPositions(ctx context.Context, g graph.Graph, levels map[string]int, opts Options) ([]graph.Node, error) {
	nodes := make([]graph.Node, len(g.Nodes))
	copy(nodes, g.Nodes)
	for i := range nodes {
		nodes[i].Level = levels[nodes[i].ID]
		if nodes[i].Width <= 0 {
			nodes[i].Width = opts.NodeWidth
		}
		if nodes[i].Height <= 0 {
			nodes[i].Height = opts.NodeHeight
		}
	}

	dot := buildDOT(nodes, g.Edges, opts)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutFailed, err, "init graphviz")
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutFailed, err, "parse DOT")
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, formatPlain, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutFailed, err, "run dot layout")
	}

	centers, frameHeight, err := parsePlain(buf.String())
	if err != nil {
		return nil, err
	}

	for i := range nodes {
		c, ok := centers[aliasFor(i)]
		if !ok {
			return nil, errors.New(errors.ErrCodeLayoutFailed, "dot output missing node %q", nodes[i].ID)
		}
		// Plain output is center-based with y growing upward; flip to
		// screen coordinates and shift from center to top-left.
		x := c.x * pointsPerInch
		y := (frameHeight - c.y) * pointsPerInch
		nodes[i].X = x - nodes[i].Width/2 + opts.MarginX
		nodes[i].Y = y - nodes[i].Height/2 + opts.MarginY
	}

	return nodes, nil
}

// buildDOT serializes the graph for the dot engine. Separations and node
// sizes are converted from pixels to inches. Edges referencing unknown
// nodes are skipped; they take no part in rank assignment.
func buildDOT(nodes []graph.Node, edges []graph.Edge, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", opts.Direction)
	fmt.Fprintf(&buf, "  nodesep=%.4f;\n", opts.NodeSep/pointsPerInch)
	fmt.Fprintf(&buf, "  ranksep=%.4f;\n", opts.RankSep/pointsPerInch)
	buf.WriteString("  node [shape=box, fixedsize=true];\n")
	buf.WriteString("\n")

	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
		fmt.Fprintf(&buf, "  %s [width=%.4f, height=%.4f];\n",
			aliasFor(i), n.Width/pointsPerInch, n.Height/pointsPerInch)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		src, okS := index[e.Source]
		dst, okT := index[e.Target]
		if !okS || !okT {
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s;\n", aliasFor(src), aliasFor(dst))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// aliasFor returns the DOT-safe alias for the node at index i.
func aliasFor(i int) string {
	return "n" + strconv.Itoa(i)
}

// plainPoint is a node center read back from plain output, in inches.
type plainPoint struct {
	x, y float64
}

// parsePlain extracts node centers and the frame height from Graphviz
// plain output. The format per line is:
//
//	graph <scale> <width> <height>
//	node <name> <x> <y> <width> <height> <label> <style> <shape> <color> <fillcolor>
//	...
//	stop
func parsePlain(out string) (map[string]plainPoint, float64, error) {
	centers := make(map[string]plainPoint)
	var frameHeight float64

	for line := range strings.Lines(out) {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "graph":
			if len(fields) < 4 {
				return nil, 0, errors.New(errors.ErrCodeLayoutFailed, "malformed plain graph line: %q", strings.TrimSpace(line))
			}
			h, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return nil, 0, errors.Wrap(errors.ErrCodeLayoutFailed, err, "parse frame height")
			}
			frameHeight = h
		case "node":
			if len(fields) < 6 {
				return nil, 0, errors.New(errors.ErrCodeLayoutFailed, "malformed plain node line: %q", strings.TrimSpace(line))
			}
			x, errX := strconv.ParseFloat(fields[2], 64)
			y, errY := strconv.ParseFloat(fields[3], 64)
			if errX != nil || errY != nil {
				return nil, 0, errors.New(errors.ErrCodeLayoutFailed, "malformed plain coordinates: %q", strings.TrimSpace(line))
			}
			centers[fields[1]] = plainPoint{x: x, y: y}
		case "stop":
			return centers, frameHeight, nil
		}
	}
	return centers, frameHeight, nil
}
