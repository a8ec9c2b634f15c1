package server

import (
	"encoding/json"
	"net/http"

	"github.com/taskweave/decyclify/pkg/graph"
	"github.com/taskweave/decyclify/pkg/pipeline"
)

// decyclifyRequest is the body of POST /v1/decyclify.
type decyclifyRequest struct {
	Edges []string `json:"edges"`
	Start string   `json:"start,omitempty"`
}

// decyclifyResponse carries the acyclic graph, the removed back-edges, and
// both dependency matrices.
type decyclifyResponse struct {
	Graph   graph.WireGraph  `json:"graph"`
	Removed []graph.WireEdge `json:"removed"`
	Intra   [][]int          `json:"intra"`
	Inter   [][]int          `json:"inter"`
}

// scheduleRequest is the body of POST /v1/schedule.
type scheduleRequest struct {
	Edges  []string `json:"edges"`
	Start  string   `json:"start,omitempty"`
	Mode   string   `json:"mode,omitempty"`
	Cycles int      `json:"cycles,omitempty"`
}

// scheduleResponse carries the batch sequence for the requested mode.
type scheduleResponse struct {
	Batches  [][]string `json:"batches"`
	CacheHit bool       `json:"cache_hit"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleDecyclify(w http.ResponseWriter, r *http.Request) {
	var req decyclifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Edges:  req.Edges,
		Start:  req.Start,
		Mode:   pipeline.ModeTasks,
		Cycles: 1,
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	out := decyclifyResponse{
		Graph:   graph.ToWire(res.Graph),
		Removed: make([]graph.WireEdge, 0, len(res.Removed)),
		Intra:   res.Intra,
		Inter:   res.Inter,
	}
	for _, e := range res.Removed {
		out.Removed = append(out.Removed, graph.WireEdge{From: e.From, To: e.To})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Edges:  req.Edges,
		Start:  req.Start,
		Mode:   req.Mode,
		Cycles: req.Cycles,
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	out := scheduleResponse{
		Batches:  make([][]string, 0, len(res.Batches)),
		CacheHit: res.CacheHit,
	}
	for _, b := range res.Batches {
		out.Batches = append(out.Batches, b)
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
