package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"branchpulse/internal/config"
	"branchpulse/internal/dataset"
	"branchpulse/internal/infrastructure"
)

const appFixture = `Bank Name,Branch Name,Location Type,Address,City,State,Latitude,Longitude
State Bank,Kochi Main,Branch,"MG Road, Kochi 682001",Kochi,Kerala,9.9312,76.2673
Axis Bank,Gaya,Branch,"Station Road, Gaya 823001",Gaya,Bihar,24.7955,85.0002
`

// newTestApplication wires an application against temp directories,
// bypassing config.Load so the environment stays untouched.
func newTestApplication(t *testing.T) *Application {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	cfg.Paths.ReportsDir = t.TempDir()
	cfg.Paths.LogsDir = t.TempDir()
	cfg.Security.RateLimit.Enabled = false

	source := filepath.Join(cfg.GetDataDir(), dataset.CombinedFileName)
	require.NoError(t, os.WriteFile(source, []byte(appFixture), 0644))

	app := &Application{
		Config:  cfg,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: infrastructure.NewMetrics(),
	}
	require.NoError(t, app.initializeServices())
	app.setupRouter()
	app.createServer()
	return app
}

func TestApplication_Routes(t *testing.T) {
	app := newTestApplication(t)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{"health check", http.MethodGet, "/api/health", http.StatusOK, `"status":"healthy"`},
		{"liveness", http.MethodGet, "/api/health/live", http.StatusOK, `"status":"healthy"`},
		{"version", http.MethodGet, "/api/version", http.StatusOK, `"go_version"`},
		{"branches", http.MethodGet, "/api/data/branches", http.StatusOK, `"count":2`},
		{"banks", http.MethodGet, "/api/data/banks", http.StatusOK, `"Axis Bank"`},
		{"stats", http.MethodGet, "/api/data/statistics", http.StatusOK, `"total_branches":2`},
		{"density", http.MethodGet, "/api/analytics/density/Kerala", http.StatusOK, `"branch_count":1`},
		{"concentration", http.MethodGet, "/api/analytics/concentration/Kerala", http.StatusOK, `"market_type"`},
		{"opportunities", http.MethodGet, "/api/analytics/opportunities", http.StatusOK, `"count":2`},
		{"unknown state", http.MethodGet, "/api/analytics/density/Sikkim", http.StatusNotFound, "STATE_NO_DATA"},
		{"unknown route", http.MethodGet, "/api/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestApplication_RequestIDPropagated(t *testing.T) {
	app := newTestApplication(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health/live", nil)
	req.Header.Set("X-Request-ID", "test-trace")
	app.Router.ServeHTTP(rec, req)

	assert.Equal(t, "test-trace", rec.Header().Get("X-Request-ID"))
}

func TestApplication_MetricsEndpoint(t *testing.T) {
	app := newTestApplication(t)

	// Generate some traffic first.
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health/live", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestApplication_SecurityHeaders(t *testing.T) {
	app := newTestApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health/live", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestApplication_ServerConfiguration(t *testing.T) {
	app := newTestApplication(t)

	assert.Equal(t, ":8080", app.Server.Addr)
	assert.Equal(t, app.Config.Server.ReadTimeout, app.Server.ReadTimeout)
	assert.NotNil(t, app.Server.Handler)
}
