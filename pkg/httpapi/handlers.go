package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/skein-dev/skein/pkg/errors"
	"github.com/skein-dev/skein/pkg/graph"
	"github.com/skein-dev/skein/pkg/layout"
	"github.com/skein-dev/skein/pkg/pipeline"
)

// maxBodyBytes caps request bodies; a graph of a few thousand nodes fits
// comfortably, anything larger is beyond the engine's documented ceiling.
const maxBodyBytes = 8 << 20

// layoutRequest is the POST /api/v1/layout body.
type layoutRequest struct {
	Nodes   []graph.Node   `json:"nodes"`
	Edges   []graph.Edge   `json:"edges"`
	Options layout.Options `json:"options"`
	Refresh bool           `json:"refresh,omitempty"`
}

// layoutResponse is the POST /api/v1/layout response.
type layoutResponse struct {
	Nodes []graph.Node  `json:"nodes"`
	Edges []graph.Edge  `json:"edges"`
	Stats layoutStats   `json:"stats"`
	Cache cacheInfoBody `json:"cache"`
}

type layoutStats struct {
	NodeCount        int    `json:"node_count"`
	EdgeCount        int    `json:"edge_count"`
	LevelCount       int    `json:"level_count"`
	ResidualOverlaps int    `json:"residual_overlaps"`
	LayoutMillis     int64  `json:"layout_ms"`
	GraphHash        string `json:"graph_hash"`
}

type cacheInfoBody struct {
	LayoutHit bool `json:"layout_hit"`
}

// errorResponse is the JSON error payload.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "decode request: %v", err))
		return
	}

	g := graph.Graph{Nodes: req.Nodes, Edges: req.Edges}
	if err := g.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidGraph, err, "invalid graph"))
		return
	}

	result, err := s.runner.Execute(r.Context(), g, pipeline.Options{
		Layout:  mergeOptions(req.Options, s.defaults),
		Refresh: req.Refresh,
		Logger:  s.logger,
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch errors.GetCode(err) {
		case errors.ErrCodeInvalidDirection, errors.ErrCodeInvalidStrategy, errors.ErrCodeInvalidGraph, errors.ErrCodeInvalidInput:
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		Nodes: result.Graph.Nodes,
		Edges: result.Graph.Edges,
		Stats: layoutStats{
			NodeCount:        result.Stats.NodeCount,
			EdgeCount:        result.Stats.EdgeCount,
			LevelCount:       result.Stats.LevelCount,
			ResidualOverlaps: result.Stats.ResidualOverlaps,
			LayoutMillis:     result.Stats.LayoutTime.Milliseconds(),
			GraphHash:        result.GraphHash,
		},
		Cache: cacheInfoBody{LayoutHit: result.CacheInfo.LayoutHit},
	})
}

// mergeOptions fills fields the request left at their zero value with the
// server's configured defaults. Explicit request values always win, and
// anything still zero afterwards gets the engine's built-in default.
func mergeOptions(req, def layout.Options) layout.Options {
	if req.Direction == "" {
		req.Direction = def.Direction
	}
	if req.Strategy == "" {
		req.Strategy = def.Strategy
	}
	if req.NodeWidth == 0 {
		req.NodeWidth = def.NodeWidth
	}
	if req.NodeHeight == 0 {
		req.NodeHeight = def.NodeHeight
	}
	if req.NodeSep == 0 {
		req.NodeSep = def.NodeSep
	}
	if req.RankSep == 0 {
		req.RankSep = def.RankSep
	}
	if req.MarginX == 0 {
		req.MarginX = def.MarginX
	}
	if req.MarginY == 0 {
		req.MarginY = def.MarginY
	}
	if req.Width == 0 {
		req.Width = def.Width
	}
	if req.Height == 0 {
		req.Height = def.Height
	}
	if req.Seed == 0 {
		req.Seed = def.Seed
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = def.MaxIterations
	}
	if req.Padding == 0 {
		req.Padding = def.Padding
	}
	return req
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}
