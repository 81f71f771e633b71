package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/NomadCrew/trcs2-health/config"
	"github.com/NomadCrew/trcs2-health/handlers"
	"github.com/NomadCrew/trcs2-health/logger"
	"github.com/NomadCrew/trcs2-health/services"
	"github.com/NomadCrew/trcs2-health/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(prefix string) *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Environment:    config.EnvDevelopment,
			Port:           "4000",
			AllowedOrigins: []string{"http://localhost:3000"},
			APIPrefix:      prefix,
		},
	}
	return SetupRouter(Dependencies{
		Config:        cfg,
		HealthHandler: handlers.NewHealthHandler(services.NewHealthService(90)),
	})
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestSetupRouter_HealthRoutes(t *testing.T) {
	r := newTestRouter("")

	for _, path := range []string{"/health", "/health/live", "/health/ready", "/health/startup"} {
		t.Run(path, func(t *testing.T) {
			w := get(r, path)

			assert.Equal(t, http.StatusOK, w.Code)
			var resp types.HealthCheckResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.True(t, resp.Status.IsValid())
			assert.NotEmpty(t, resp.Timestamp)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		})
	}
}

func TestSetupRouter_Details(t *testing.T) {
	r := newTestRouter("")

	var ready types.HealthCheckResponse
	require.NoError(t, json.Unmarshal(get(r, "/health/ready").Body.Bytes(), &ready))
	require.NotNil(t, ready.Details)
	assert.NotNil(t, ready.Details.Memory)

	var startup types.HealthCheckResponse
	require.NoError(t, json.Unmarshal(get(r, "/health/startup").Body.Bytes(), &startup))
	require.NotNil(t, startup.Details)
	assert.NotNil(t, startup.Details.System)
	assert.Nil(t, startup.Details.Database)

	var health types.HealthCheckResponse
	require.NoError(t, json.Unmarshal(get(r, "/health").Body.Bytes(), &health))
	assert.Equal(t, types.HealthStatusHealthy, health.Status)
	assert.Nil(t, health.Details)
}

func TestSetupRouter_APIPrefix(t *testing.T) {
	r := newTestRouter("/api")

	assert.Equal(t, http.StatusOK, get(r, "/api/health").Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/health/ready").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/health").Code)
}

func TestSetupRouter_UnknownRoute(t *testing.T) {
	r := newTestRouter("")

	w := get(r, "/health/everything")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body["type"])
	assert.Equal(t, "404", body["code"])
}

func TestSetupRouter_MethodNotAllowed(t *testing.T) {
	r := newTestRouter("")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/health", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestSetupRouter_Metrics(t *testing.T) {
	r := newTestRouter("")
	require.Equal(t, http.StatusOK, get(r, "/health/ready").Code)

	w := get(r, "/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "health_checks_total")
	assert.Contains(t, w.Body.String(), "health_heap_usage_percent")
}

func TestSetupRouter_Swagger(t *testing.T) {
	r := newTestRouter("")

	w := get(r, "/swagger/doc.json")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/health/ready")
}
