package layout

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/skein-dev/skein/pkg/errors"
)

// Direction controls the main flow axis of the layout.
type Direction string

// Supported layout directions, matching Graphviz rankdir values.
const (
	DirectionTB Direction = "TB" // top to bottom (default)
	DirectionLR Direction = "LR" // left to right
	DirectionRL Direction = "RL" // right to left
	DirectionBT Direction = "BT" // bottom to top
)

// Strategy selects the base-coordinate assignment algorithm.
type Strategy string

// Supported base-coordinate strategies.
const (
	// StrategyHierarchical distributes nodes per level, anchored to the
	// mean position of their parents. Computed in-process, never fails.
	StrategyHierarchical Strategy = "hierarchical"

	// StrategyLayered delegates rank and in-rank order to Graphviz's dot
	// engine for a classic layered (Sugiyama-style) arrangement.
	StrategyLayered Strategy = "layered"
)

// Default option values applied by [Options.ValidateAndSetDefaults].
const (
	DefaultNodeWidth  = 250.0
	DefaultNodeHeight = 100.0
	DefaultNodeSep    = 100.0
	DefaultRankSep    = 150.0
	DefaultMargin     = 40.0
	DefaultWidth      = 1600.0
	DefaultHeight     = 900.0
	DefaultPadding    = 20.0

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultMaxIterations caps the overlap-resolution relaxation loop.
	// Convergence is not guaranteed for adversarial inputs; the cap bounds
	// cost instead.
	DefaultMaxIterations = 120

	// minAcceptIterations is the number of relaxation iterations after
	// which a small residual overlap count is accepted.
	minAcceptIterations = 80
)

// ValidDirections is the set of supported layout directions.
var ValidDirections = map[Direction]bool{
	DirectionTB: true,
	DirectionLR: true,
	DirectionRL: true,
	DirectionBT: true,
}

// ValidStrategies is the set of supported base-coordinate strategies.
var ValidStrategies = map[Strategy]bool{
	StrategyHierarchical: true,
	StrategyLayered:      true,
}

// Options configures a layout pass. The zero value is usable: call
// [Options.ValidateAndSetDefaults] or pass it straight to [Compute], which
// applies the defaults. This struct supports JSON serialization for API
// requests.
type Options struct {
	// Direction is the main flow axis (TB, LR, RL, BT). Default TB.
	Direction Direction `json:"direction,omitempty"`

	// Strategy selects the base-coordinate algorithm. Default hierarchical.
	Strategy Strategy `json:"strategy,omitempty"`

	// NodeWidth and NodeHeight are the fallback box dimensions for nodes
	// that don't carry their own size.
	NodeWidth  float64 `json:"node_width,omitempty"`
	NodeHeight float64 `json:"node_height,omitempty"`

	// NodeSep and RankSep are the minimum separations within a rank and
	// between ranks, in pixels.
	NodeSep float64 `json:"nodesep,omitempty"`
	RankSep float64 `json:"ranksep,omitempty"`

	// MarginX and MarginY pad the drawing area.
	MarginX float64 `json:"marginx,omitempty"`
	MarginY float64 `json:"marginy,omitempty"`

	// Width and Height are viewport hints used by the hierarchical
	// strategy to spread levels and rows.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Seed feeds the pseudo-random generator used for symmetry-breaking
	// jitter and deadlock separation. Fixed seed means fixed output.
	Seed uint64 `json:"seed,omitempty"`

	// MaxIterations caps the overlap-resolution loop.
	MaxIterations int `json:"max_iterations,omitempty"`

	// Padding is the minimum required gap between node bounding boxes.
	Padding float64 `json:"padding,omitempty"`

	// Logger receives soft-condition reports (residual overlaps). Not
	// serialized; defaults to a discard logger.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks enum fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Direction == "" {
		o.Direction = DirectionTB
	}
	if !ValidDirections[o.Direction] {
		return errors.New(errors.ErrCodeInvalidDirection, "invalid direction: %q (must be one of: TB, LR, RL, BT)", o.Direction)
	}
	if o.Strategy == "" {
		o.Strategy = StrategyHierarchical
	}
	if !ValidStrategies[o.Strategy] {
		return errors.New(errors.ErrCodeInvalidStrategy, "invalid strategy: %q (must be one of: hierarchical, layered)", o.Strategy)
	}
	if o.NodeWidth <= 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.NodeHeight <= 0 {
		o.NodeHeight = DefaultNodeHeight
	}
	if o.NodeSep <= 0 {
		o.NodeSep = DefaultNodeSep
	}
	if o.RankSep <= 0 {
		o.RankSep = DefaultRankSep
	}
	if o.MarginX <= 0 {
		o.MarginX = DefaultMargin
	}
	if o.MarginY <= 0 {
		o.MarginY = DefaultMargin
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Padding <= 0 {
		o.Padding = DefaultPadding
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// residualBound returns the number of still-overlapping pairs the resolver
// accepts once minAcceptIterations have run: max(3, 5% of the node count).
func residualBound(nodeCount int) int {
	bound := nodeCount / 20
	if bound < 3 {
		bound = 3
	}
	return bound
}
