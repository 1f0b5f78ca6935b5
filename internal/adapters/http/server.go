package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/argtree/internal/dto"
	"github.com/aretw0/argtree/pkg/domain"
	"github.com/aretw0/argtree/pkg/ports"
	"github.com/aretw0/argtree/pkg/runner"
	"github.com/go-chi/chi/v5"
)

// DispatchRequest is the body of POST /dispatch.
type DispatchRequest struct {
	Argv []string `json:"argv"`
	Cwd  string   `json:"cwd,omitempty"`
}

// DispatchResponse reports the matching result. Callbacks are never invoked remotely;
// the dispatch is only recorded in History when one is configured.
type DispatchResponse struct {
	OK bool `json:"ok"`
	*domain.Result
}

// Server exposes matching over HTTP.
type Server struct {
	Matcher ports.Matcher
	// History, when set, records every dispatch and serves GET /history.
	History ports.HistoryStore
	// Hooks.OnDispatch fires once per POST /dispatch.
	Hooks   domain.LifecycleHooks
	Logger  *slog.Logger

	recorder *runner.Runner
}

// NewHandler creates a new HTTP handler for the matcher.
// Extra routes (e.g. /metrics) can be mounted on the returned router.
func NewHandler(s *Server) chi.Router {
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.recorder = runner.NewRunner(
		runner.WithHistory(s.History),
		runner.WithHooks(s.Hooks),
		runner.WithLogger(s.Logger),
	)

	r := chi.NewRouter()
	r.Get("/healthz", s.Health)
	r.Get("/schema", s.GetSchema)
	r.Post("/dispatch", s.Dispatch)
	r.Route("/history", func(r chi.Router) {
		r.Get("/", s.ListHistory)
		r.Get("/{id}", s.GetRecord)
	})
	return r
}

// Health handles the GET /healthz request.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetSchema handles the GET /schema request.
func (s *Server) GetSchema(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, dto.FromSchema(s.Matcher.Schema()))
}

// Dispatch handles the POST /dispatch request.
func (s *Server) Dispatch(w http.ResponseWriter, r *http.Request) {
	var body DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if body.Argv == nil {
		body.Argv = []string{}
	}

	res, err := s.Matcher.Run(r.Context(), body.Argv, body.Cwd)
	if err != nil {
		http.Error(w, fmt.Sprintf("Dispatch error: %v", err), http.StatusUnprocessableEntity)
		return
	}

	out := s.recorder.Record(r.Context(), res)
	s.writeJSON(w, http.StatusOK, DispatchResponse{OK: out.ExitCode == runner.ExitOK, Result: res})
}

// ListHistory handles the GET /history request. The optional "limit" query bounds the result.
func (s *Server) ListHistory(w http.ResponseWriter, r *http.Request) {
	if s.History == nil {
		http.Error(w, "History is not enabled", http.StatusNotFound)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	recs, err := s.History.List(r.Context(), limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("History error: %v", err), http.StatusInternalServerError)
		return
	}
	if recs == nil {
		recs = []*domain.Record{}
	}
	s.writeJSON(w, http.StatusOK, recs)
}

// GetRecord handles the GET /history/{id} request.
func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request) {
	if s.History == nil {
		http.Error(w, "History is not enabled", http.StatusNotFound)
		return
	}

	rec, err := s.History.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrRecordNotFound) {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("History error: %v", err), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encode response", "error", err)
	}
}
