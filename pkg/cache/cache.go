// Package cache provides layout-result caching with pluggable backends.
//
// A layout pass over a few hundred nodes is dominated by the O(n²) overlap
// relaxation; dashboards re-request the same graph constantly, so results
// are cached under a content-derived key: the SHA-256 hash of the graph
// JSON combined with the layout options that shaped the result.
//
// Backends:
//   - [FileCache]: directory-backed, for CLI usage
//   - [RedisCache]: Redis-backed, for multi-instance API deployments
//   - [NullCache]: no-op, for tests or when caching is disabled
//
// Keys are generated through the [Keyer] interface so deployments can
// namespace them (see [ScopedKeyer]).
package cache

import (
	"context"
	"time"
)

// TTLLayout is how long computed layouts stay cached. Layouts are a pure
// function of graph hash and options, so long TTLs are safe; the limit
// only bounds storage growth.
const TTLLayout = 7 * 24 * time.Hour

// Cache is a byte-oriented key-value store with TTL support.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the cached data for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the layout options that participate in the cache key.
// Two requests with the same graph hash and the same LayoutKeyOpts are
// guaranteed to produce identical layouts.
type LayoutKeyOpts struct {
	Strategy      string  `json:"strategy"`
	Direction     string  `json:"direction"`
	NodeWidth     float64 `json:"node_width"`
	NodeHeight    float64 `json:"node_height"`
	NodeSep       float64 `json:"nodesep"`
	RankSep       float64 `json:"ranksep"`
	MarginX       float64 `json:"marginx"`
	MarginY       float64 `json:"marginy"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Seed          uint64  `json:"seed"`
	MaxIterations int     `json:"max_iterations"`
	Padding       float64 `json:"padding"`
}

// Keyer generates cache keys for computed layouts.
type Keyer interface {
	// LayoutKey generates a key for a computed layout.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer generates hash-based keys with stable prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}
