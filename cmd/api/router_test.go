package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bugtracker-backend/internal/config"
	bugHandler "bugtracker-backend/internal/domains/bug/handler"
	bugService "bugtracker-backend/internal/domains/bug/service"
	"bugtracker-backend/pkg/container"
)

func testRouter(checks map[string]container.HealthCheck) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App:  config.AppConfig{Name: "Bug Tracker API", Version: "1.2.3"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}

	// repository không bao giờ được gọi trong các test dưới đây
	svc := bugService.NewBugService(nil, nil, 0)

	return newRouter(routerDeps{
		Config:     cfg,
		BugHandler: bugHandler.NewBugHandler(svc),
		Checks:     checks,
	})
}

func get(t *testing.T, r *gin.Engine, path string) (int, map[string]interface{}) {
	t.Helper()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("all dependencies up", func(t *testing.T) {
		r := testRouter(map[string]container.HealthCheck{"database": ok, "cache": ok})

		for _, path := range []string{"/health", "/api/health"} {
			code, body := get(t, r, path)

			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, "OK", body["status"])
			assert.Equal(t, "Bug Tracker API is running", body["message"])
			assert.NotEmpty(t, body["timestamp"])
			assert.Equal(t, map[string]interface{}{"database": "ok", "cache": "ok"}, body["services"])
		}
	})

	t.Run("degraded still returns 200", func(t *testing.T) {
		r := testRouter(map[string]container.HealthCheck{"database": ok, "cache": down})

		code, body := get(t, r, "/health")

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "DEGRADED", body["status"])
		services := body["services"].(map[string]interface{})
		assert.Equal(t, "error: connection refused", services["cache"])
	})
}

func TestIndex(t *testing.T) {
	r := testRouter(nil)

	code, body := get(t, r, "/")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "1.2.3", body["version"])
	assert.Equal(t, map[string]interface{}{
		"health":  "/health",
		"bugs":    "/api/bugs",
		"bugsAlt": "/bugs",
	}, body["endpoints"])
}

func TestBugRoutesMountedTwice(t *testing.T) {
	r := testRouter(nil)

	for _, path := range []string{"/api/bugs/not-a-uuid", "/bugs/not-a-uuid"} {
		code, body := get(t, r, path)

		assert.Equal(t, http.StatusBadRequest, code, path)
		assert.Equal(t, "Invalid bug ID format", body["message"])
	}
}

func TestUnknownRoute(t *testing.T) {
	r := testRouter(nil)

	code, body := get(t, r, "/api/unknown")

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Route not found - /api/unknown", body["message"])
}
