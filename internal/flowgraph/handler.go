package flowgraph

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Service serves the derived flow graph to the rendering collaborator.
// The tree is reloaded per request so an updated budget file is picked up
// without a restart; the graph has no lifecycle of its own.
type Service struct {
	budgetPath string
	logger     *slog.Logger
}

func NewService(budgetPath string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{budgetPath: budgetPath, logger: logger}
}

func (s *Service) Register(r chi.Router) {
	r.Get("/graph", s.handleGraph)
}

func (s *Service) handleGraph(w http.ResponseWriter, r *http.Request) {
	if s.budgetPath == "" {
		writeError(w, http.StatusNotFound, "NO_BUDGET_SOURCE", "no budget file configured")
		return
	}

	tree, err := LoadTree(s.budgetPath)
	if err != nil {
		s.logger.Error("budget load failed", "path", s.budgetPath, "error", err)
		writeError(w, http.StatusBadRequest, "BUDGET_LOAD_FAILED", err.Error())
		return
	}

	graph, err := Build(tree)
	if err != nil {
		var gce *GraphConsistencyError
		if errors.As(err, &gce) {
			writeError(w, http.StatusUnprocessableEntity, "GRAPH_INCONSISTENT", gce.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(graph)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"code": code, "message": message})
}
