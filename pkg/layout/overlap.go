package layout

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/skein-dev/skein/pkg/graph"
)

const (
	// sameLevelScale widens the required horizontal distance for nodes on
	// the same level; same-level crowding reads worse than cross-level.
	sameLevelScale = 1.25

	// relaxFactor is the fraction of the overlap depth resolved per
	// iteration. Below 1 so paired pushes settle instead of oscillating.
	relaxFactor = 0.55

	// historyStep and historyCap control the escalating extra push for
	// pairs that keep overlapping across iterations.
	historyStep = 0.08
	historyCap  = 20

	// coincidentEps is the center distance below which two nodes are
	// considered stacked and get an emergency radial separation.
	coincidentEps = 1.0

	// equalizeBlend is the weight interior nodes keep of their relaxed
	// position during the cosmetic per-level spacing pass; the remainder
	// moves toward an evenly spaced ideal.
	equalizeBlend = 0.7
)

// resolveOverlaps displaces node pairs whose bounding boxes intersect until
// none remain or the iteration budget runs out. Returns the adjusted nodes
// and the residual overlapping-pair count.
//
// An input that is already overlap-free is returned as-is, so re-running
// the resolver on its own output is a no-op.
func resolveOverlaps(in []graph.Node, opts Options, rng *rand.Rand) ([]graph.Node, int) {
	nodes := slices.Clone(in)
	if countOverlaps(nodes, opts) == 0 {
		return nodes, 0
	}

	bound := residualBound(len(nodes))
	history := make(map[[2]int]int)

	for it := 0; it < opts.MaxIterations; it++ {
		for i := 0; i < len(nodes); i++ {
			for j := i + 1; j < len(nodes); j++ {
				relaxPair(nodes, i, j, opts, history, rng)
			}
		}

		residual := countOverlaps(nodes, opts)
		if residual == 0 {
			break
		}
		if it+1 >= minAcceptIterations && residual <= bound {
			break
		}
	}

	equalizeLevels(nodes, opts)

	// The spacing pass moves nodes, so the residual must be recounted on
	// the final positions or it would describe a layout the caller never
	// sees.
	return nodes, countOverlaps(nodes, opts)
}

// overlapDepths reports whether boxes a and b intersect (with the required
// padding) and by how much on each axis.
func overlapDepths(a, b *graph.Node, opts Options) (ovX, ovY float64, overlapping bool) {
	dx := b.CenterX() - a.CenterX()
	dy := b.CenterY() - a.CenterY()
	adx, ady := math.Abs(dx), math.Abs(dy)

	minDX := (a.Width+b.Width)/2 + opts.Padding
	minDY := (a.Height+b.Height)/2 + opts.Padding
	if a.Level == b.Level {
		minDX *= sameLevelScale
	}

	if adx >= minDX || ady >= minDY {
		return 0, 0, false
	}
	return minDX - adx, minDY - ady, true
}

// relaxPair pushes nodes i and j apart when their boxes intersect. The
// push axis follows the hierarchy: pairs on the same or adjacent levels
// separate horizontally to preserve the vertical stacking, pairs two or
// more levels apart separate vertically. Deeper nodes absorb more of the
// displacement so ancestors stay put.
func relaxPair(nodes []graph.Node, i, j int, opts Options, history map[[2]int]int, rng *rand.Rand) {
	a, b := &nodes[i], &nodes[j]

	ovX, ovY, overlapping := overlapDepths(a, b, opts)
	if !overlapping {
		return
	}

	key := [2]int{i, j}
	history[key]++
	force := 1 + float64(min(history[key], historyCap))*historyStep

	shareA, shareB := displacementShares(a.Level, b.Level)

	dx := b.CenterX() - a.CenterX()
	dy := b.CenterY() - a.CenterY()

	// Nearly coincident centers: no meaningful direction to push along,
	// so break the deadlock radially in a random direction.
	if math.Abs(dx) < coincidentEps && math.Abs(dy) < coincidentEps {
		angle := rng.Float64() * 2 * math.Pi
		radius := (ovX + ovY) / 2 * force
		a.X -= math.Cos(angle) * radius * shareA
		a.Y -= math.Sin(angle) * radius * shareA
		b.X += math.Cos(angle) * radius * shareB
		b.Y += math.Sin(angle) * radius * shareB
		return
	}

	levelDiff := a.Level - b.Level
	if levelDiff < 0 {
		levelDiff = -levelDiff
	}

	if levelDiff >= 2 {
		push := ovY * relaxFactor * force
		dir := 1.0
		if dy < 0 {
			dir = -1.0
		}
		a.Y -= dir * push * shareA
		b.Y += dir * push * shareB
		return
	}

	push := ovX * relaxFactor * force
	dir := 1.0
	if dx < 0 {
		dir = -1.0
	}
	a.X -= dir * push * shareA
	b.X += dir * push * shareB
}

// displacementShares splits a displacement between two nodes weighted by
// hierarchy depth: the deeper node moves more, so roots stay anchored.
func displacementShares(levelA, levelB int) (float64, float64) {
	total := float64(levelA + levelB + 2)
	return float64(levelA+1) / total, float64(levelB+1) / total
}

// countOverlaps returns the number of unordered node pairs whose bounding
// boxes intersect. O(n²); see the package doc for the scalability ceiling.
func countOverlaps(nodes []graph.Node, opts Options) int {
	count := 0
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if _, _, overlapping := overlapDepths(&nodes[i], &nodes[j], opts); overlapping {
				count++
			}
		}
	}
	return count
}

// equalizeLevels runs the cosmetic post-pass: within each level, sort by x,
// enforce a hard minimum spacing left to right, then blend interior nodes
// toward an evenly spaced ideal. Not correctness-critical.
func equalizeLevels(nodes []graph.Node, opts Options) {
	byLevel := make(map[int][]int)
	maxLevel := 0
	for i := range nodes {
		lvl := nodes[i].Level
		byLevel[lvl] = append(byLevel[lvl], i)
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}

	for lvl := 0; lvl <= maxLevel; lvl++ {
		row := byLevel[lvl]
		if len(row) < 2 {
			continue
		}
		slices.SortFunc(row, func(a, b int) int {
			switch {
			case nodes[a].X < nodes[b].X:
				return -1
			case nodes[a].X > nodes[b].X:
				return 1
			}
			return 0
		})

		enforceMinSpacing(nodes, row, opts)

		first, last := &nodes[row[0]], &nodes[row[len(row)-1]]
		span := last.X - first.X
		if span <= 0 {
			continue
		}
		step := span / float64(len(row)-1)
		for k := 1; k < len(row)-1; k++ {
			cur := &nodes[row[k]]
			ideal := first.X + float64(k)*step
			blended := equalizeBlend*cur.X + (1-equalizeBlend)*ideal
			if xShiftSafe(nodes, row[k], blended, opts) {
				cur.X = blended
			}
		}

		// The blend can shrink a gap below the minimum again; one more
		// sweep widens it back where room allows.
		enforceMinSpacing(nodes, row, opts)
	}
}

// enforceMinSpacing walks a row left to right and pushes each node far
// enough right of its predecessor to satisfy the same-level separation
// used by overlapDepths. Row indices must be sorted by x. A push that
// would collide with a node on another level is skipped; the spacing
// pass is cosmetic and must not trade one overlap for another.
func enforceMinSpacing(nodes []graph.Node, row []int, opts Options) {
	for k := 1; k < len(row); k++ {
		prev, cur := &nodes[row[k-1]], &nodes[row[k]]
		minSep := ((prev.Width+cur.Width)/2 + opts.Padding) * sameLevelScale
		minX := prev.CenterX() + minSep - cur.Width/2
		if cur.X < minX && xShiftSafe(nodes, row[k], minX, opts) {
			cur.X = minX
		}
	}
}

// xShiftSafe reports whether moving nodes[idx] to newX stays clear of every
// node it does not already overlap. Pairs that overlap before the move do
// not count against it, so separating pushes remain allowed.
func xShiftSafe(nodes []graph.Node, idx int, newX float64, opts Options) bool {
	old := nodes[idx].X
	for j := range nodes {
		if j == idx {
			continue
		}
		if _, _, before := overlapDepths(&nodes[idx], &nodes[j], opts); before {
			continue
		}
		nodes[idx].X = newX
		_, _, after := overlapDepths(&nodes[idx], &nodes[j], opts)
		nodes[idx].X = old
		if after {
			return false
		}
	}
	return true
}
