// ===== internal/web/handlers.go =====
package web

import (
	"encoding/json"
	"net/http"
	"time"
)

// LogEntryJSON represents a log entry in JSON format
type LogEntryJSON struct {
	Timestamp string `json:"when"`
	UnixTime  int64  `json:"utime"`
	Level     string `json:"level"`
	Channel   string `json:"channel"`
	Message   string `json:"message"`
}

// HealthJSON is the body of /healthz
type HealthJSON struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// handleStatusAPI serves the latest snapshot
func (s *Server) handleStatusAPI(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{"data": s.store.Snapshot()})
}

// handleLogsAPI serves the recent log entries, oldest first
func (s *Server) handleLogsAPI(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	entries := s.logs.GetLogs()
	jsonEntries := make([]LogEntryJSON, len(entries))
	for i, entry := range entries {
		jsonEntries[i] = LogEntryJSON{
			Timestamp: entry.Timestamp.Format(time.RFC3339),
			UnixTime:  entry.UnixTime,
			Level:     entry.Level,
			Channel:   entry.Component,
			Message:   entry.Message,
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{"data": jsonEntries})
}

// handleHealth is 200 once bring-up completed and 503 before that or
// after a fatal error
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	ok, err := s.store.Healthy()
	switch {
	case ok:
		s.writeJSON(w, http.StatusOK, HealthJSON{Status: "ok"})
	case err != nil:
		s.writeJSON(w, http.StatusServiceUnavailable, HealthJSON{Status: "failed", Error: err.Error()})
	default:
		s.writeJSON(w, http.StatusServiceUnavailable, HealthJSON{Status: "starting"})
	}
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
