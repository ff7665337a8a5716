// ===== internal/logs/manager.go =====
package logs

import (
	"container/list"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"netbringup/pkg/models"
)

const maxLogEntries = 100

// event is the subset of a zerolog JSON line kept for the status surface
type event struct {
	Level     string `json:"level"`
	Time      string `json:"time"`
	Component string `json:"component"`
	Message   string `json:"message"`
	Error     string `json:"error"`
}

// Manager keeps the most recent log events in memory. It is an io.Writer
// meant to sit beside the console output of the logger.
type Manager struct {
	logs *list.List
	mu   sync.RWMutex
	now  func() time.Time
}

// NewManager creates a new log manager
func NewManager() *Manager {
	return &Manager{
		logs: list.New(),
		now:  time.Now,
	}
}

// Write records one zerolog event. Lines that are not JSON are kept as
// plain messages; Write never fails so it cannot disturb the logger.
func (m *Manager) Write(p []byte) (int, error) {
	line := strings.TrimSpace(string(p))
	if line == "" {
		return len(p), nil
	}

	entry := &models.LogEntry{}

	var ev event
	if err := json.Unmarshal([]byte(line), &ev); err != nil {
		entry.Message = line
	} else {
		entry.Level = ev.Level
		entry.Component = ev.Component
		entry.Message = ev.Message
		if ev.Error != "" {
			entry.Message += ": " + ev.Error
		}
		if ts, err := time.Parse(zerolog.TimeFieldFormat, ev.Time); err == nil {
			entry.Timestamp = ts
		}
	}

	if entry.Timestamp.IsZero() {
		entry.Timestamp = m.now()
	}
	entry.UnixTime = entry.Timestamp.UnixMilli()

	m.addLogEntry(entry)
	return len(p), nil
}

// GetLogs returns current log entries, oldest first
func (m *Manager) GetLogs() []models.LogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]models.LogEntry, 0, m.logs.Len())
	for e := m.logs.Front(); e != nil; e = e.Next() {
		entries = append(entries, *(e.Value.(*models.LogEntry)))
	}

	return entries
}

// addLogEntry adds a new log entry to the collection
func (m *Manager) addLogEntry(entry *models.LogEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Remove old entries if we exceed the limit
	if m.logs.Len() >= maxLogEntries {
		m.logs.Remove(m.logs.Front())
	}

	m.logs.PushBack(entry)
}
