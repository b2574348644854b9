package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/vacbridge/internal/bridge"
	"github.com/nerrad567/vacbridge/internal/device"
	"github.com/nerrad567/vacbridge/internal/infrastructure/mqtt"
)

// handleListVacuums returns all vacuums, with an optional health filter.
//
// Query parameters:
//   - health: filter by health status (online, offline, degraded, unknown)
func (s *Server) handleListVacuums(w http.ResponseWriter, r *http.Request) {
	vacuums, err := s.registry.List(r.Context())
	if err != nil {
		writeInternalError(w, "failed to list vacuums")
		return
	}

	if healthStr := r.URL.Query().Get("health"); healthStr != "" {
		filtered := vacuums[:0]
		for _, v := range vacuums {
			if v.HealthStatus == device.HealthStatus(healthStr) {
				filtered = append(filtered, v)
			}
		}
		vacuums = filtered
	}

	writeJSON(w, http.StatusOK, map[string]any{"vacuums": vacuums, "count": len(vacuums)})
}

// handleGetVacuum returns a single vacuum by ID.
func (s *Server) handleGetVacuum(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	vac, err := s.registry.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, device.ErrVacuumNotFound) {
			writeNotFound(w, "vacuum not found")
			return
		}
		writeInternalError(w, "failed to get vacuum")
		return
	}

	writeJSON(w, http.StatusOK, vac)
}

// handleVacuumStats returns vacuum registry statistics.
func (s *Server) handleVacuumStats(w http.ResponseWriter, _ *http.Request) {
	stats := s.registry.GetStats()

	byHealth := make(map[string]int, len(stats.ByHealthStatus))
	for status, count := range stats.ByHealthStatus {
		byHealth[string(status)] = count
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total":     stats.TotalVacuums,
		"by_health": byHealth,
	})
}

// handleGetVacuumState returns the current state of a vacuum.
func (s *Server) handleGetVacuumState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	vac, err := s.registry.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, device.ErrVacuumNotFound) {
			writeNotFound(w, "vacuum not found")
			return
		}
		writeInternalError(w, "failed to get vacuum")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"device_id":        vac.ID,
		"state":            vac.State,
		"state_updated_at": vac.StateUpdatedAt,
		"health_status":    vac.HealthStatus,
	})
}

// VacuumCommand represents a command to send to a vacuum via the bridge.
type VacuumCommand struct {
	Command string         `json:"command"`
	Params  map[string]any `json:"params,omitempty"`
}

// handleVacuumCommand publishes a command to the vacuum's command topic.
// This is an asynchronous operation: the response is 202 Accepted and the
// bridge's acknowledgement arrives on the device ack topic. State changes
// follow via WebSocket once the next poll observes them.
func (s *Server) handleVacuumCommand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Verify the vacuum exists before forwarding
	if _, err := s.registry.Get(r.Context(), id); err != nil {
		if errors.Is(err, device.ErrVacuumNotFound) {
			writeNotFound(w, "vacuum not found")
			return
		}
		writeInternalError(w, "failed to get vacuum")
		return
	}

	var cmd VacuumCommand
	if decodeErr := json.NewDecoder(r.Body).Decode(&cmd); decodeErr != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if cmd.Command == "" {
		writeBadRequest(w, "command field is required")
		return
	}

	if s.mqtt == nil {
		writeServiceUnavailable(w, "command bus unavailable")
		return
	}

	msg := bridge.CommandMessage{
		ID:        generateRequestID(),
		Timestamp: time.Now().UTC(),
		Command:   cmd.Command,
		Params:    cmd.Params,
		Source:    "api",
	}

	payload, marshalErr := json.Marshal(msg)
	if marshalErr != nil {
		writeInternalError(w, "failed to encode command")
		return
	}

	topic := mqtt.Topics{}.DeviceCommand(id)
	if pubErr := s.mqtt.Publish(topic, payload, 1, false); pubErr != nil {
		s.logger.Warn("command publish failed",
			"device_id", id,
			"command", cmd.Command,
			"error", pubErr,
		)
		writeServiceUnavailable(w, "command bus unavailable")
		return
	}

	s.logger.Info("vacuum command published",
		"device_id", id,
		"command", cmd.Command,
		"command_id", msg.ID,
	)

	writeJSON(w, http.StatusAccepted, map[string]any{
		"command_id": msg.ID,
		"status":     "accepted",
		"message":    "command published, acknowledgement will follow on the ack topic",
	})
}
