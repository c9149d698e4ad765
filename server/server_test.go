package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homematch/preferences/internal/profile"
	storetest "github.com/homematch/preferences/store/test"
)

func newTestingServer(t *testing.T) *Server {
	t.Helper()

	ctx := context.Background()
	testStore := storetest.NewTestingStore(ctx, t)
	testProfile := &profile.Profile{Mode: "dev", Driver: "sqlite", Version: "test"}

	s, err := NewServer(ctx, testProfile, testStore)
	require.NoError(t, err)
	return s
}

func TestHealthz(t *testing.T) {
	s := newTestingServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.echoServer.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestingServer(t)

	// Generate one request so the counters have something to report.
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	s.echoServer.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.echoServer.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "preferences_http_requests_total")
}

func TestStaticRoutesWinOverParamRoute(t *testing.T) {
	s := newTestingServer(t)

	// "/healthz" must not be treated as a userId lookup.
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.echoServer.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/someuser", nil)
	rec = httptest.NewRecorder()
	s.echoServer.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
