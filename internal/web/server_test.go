package web

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netbringup/internal/logs"
	"netbringup/internal/status"
	"netbringup/pkg/models"
)

func newTestServer() (*Server, *status.Store, *logs.Manager) {
	store := status.NewStore(models.Snapshot{Interface: "eth0", MAC: "DE:AD:BE:EF:FE:ED"})
	logManager := logs.NewManager()
	return NewServer("127.0.0.1:0", store, logManager, zerolog.Nop()), store, logManager
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestStatusAPI(t *testing.T) {
	s, store, _ := newTestServer()
	store.Update(func(snap *models.Snapshot) {
		snap.Initialized = true
		snap.Mode = models.ModeStatic
		snap.Link = models.LinkUp
		snap.Config = models.NetworkConfiguration{
			Address:    net.IPv4(10, 0, 0, 50),
			Gateway:    net.IPv4(10, 0, 0, 1),
			SubnetMask: net.IPv4Mask(255, 255, 255, 0),
			DNS:        net.IPv4(10, 0, 0, 1),
		}
	})

	rec := get(t, s.Handler(), "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "eth0", body.Data["interface"])
	assert.Equal(t, "Static", body.Data["mode"])
	assert.Equal(t, "Connected", body.Data["link"])

	config := body.Data["config"].(map[string]interface{})
	assert.Equal(t, "10.0.0.50", config["address"])
	assert.Equal(t, "255.255.255.0", config["subnetMask"])
}

func TestLogsAPI(t *testing.T) {
	s, _, logManager := newTestServer()
	log := zerolog.New(logManager).With().Timestamp().Str("component", "bringup").Logger()
	log.Warn().Msg("Ethernet cable not connected")

	rec := get(t, s.Handler(), "/api/logs")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []LogEntryJSON `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "warn", body.Data[0].Level)
	assert.Equal(t, "bringup", body.Data[0].Channel)
	assert.Equal(t, "Ethernet cable not connected", body.Data[0].Message)
}

func TestLogsAPIEmpty(t *testing.T) {
	s, _, _ := newTestServer()

	rec := get(t, s.Handler(), "/api/logs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	s, store, _ := newTestServer()

	rec := get(t, s.Handler(), "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"starting"}`, rec.Body.String())

	store.Update(func(snap *models.Snapshot) { snap.Initialized = true })
	rec = get(t, s.Handler(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	store.SetFatal(errors.New("ethernet hardware not found"))
	rec = get(t, s.Handler(), "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"failed","error":"ethernet hardware not found"}`, rec.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	s, _, _ := newTestServer()

	for _, path := range []string{"/api/status", "/api/logs", "/healthz"} {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
		assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"), path)
	}
}

func TestUnknownRoute(t *testing.T) {
	s, _, _ := newTestServer()
	assert.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/api/static").Code)
}
