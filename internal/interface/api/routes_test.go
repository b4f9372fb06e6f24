package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ecomovex-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	SetupRoutes(engine, NewChatHandler(nil, logger.NewNopLogger()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestChatRouteRejectsBadBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	SetupRoutes(engine, NewChatHandler(nil, logger.NewNopLogger()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", nil)
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	SetupRoutes(engine, NewChatHandler(nil, logger.NewNopLogger()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
