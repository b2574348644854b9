package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/vacbridge/internal/device"
)

// defaultRunLimit is the number of runs returned when no limit is given.
const defaultRunLimit = 20

// handleListRuns returns recent cleaning runs for a vacuum, newest first.
//
// Query parameters:
//   - limit: maximum number of runs to return (default 20)
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if s.runs == nil {
		writeServiceUnavailable(w, "run history unavailable")
		return
	}

	// Verify the vacuum exists so unknown IDs are a 404, not an empty list
	if _, err := s.registry.Get(r.Context(), id); err != nil {
		if errors.Is(err, device.ErrVacuumNotFound) {
			writeNotFound(w, "vacuum not found")
			return
		}
		writeInternalError(w, "failed to get vacuum")
		return
	}

	limit := defaultRunLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			writeBadRequest(w, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	runs, err := s.runs.GetRuns(r.Context(), id, limit)
	if err != nil {
		writeInternalError(w, "failed to list runs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"runs": runs, "count": len(runs)})
}
