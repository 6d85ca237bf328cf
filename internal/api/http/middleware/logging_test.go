package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mkravtsov/authgate/internal/logger"
)

func TestLogging_Handle(t *testing.T) {
	var buf bytes.Buffer
	log := &logger.Logger{Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{}))}

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(NewLogging(log).Handle)
	engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, buf.String(), "HTTP request completed")
	assert.Contains(t, buf.String(), "path=/health")
	assert.Contains(t, buf.String(), "status=200")
}
