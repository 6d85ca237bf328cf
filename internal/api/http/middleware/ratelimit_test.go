package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mkravtsov/authgate/internal/api/http/handler"
	"github.com/mkravtsov/authgate/internal/model"
	"github.com/mkravtsov/authgate/internal/testutil"
)

type stubLimiter struct {
	err error
}

func (s stubLimiter) Admit(context.Context, string) error {
	return s.err
}

func newRateLimitEngine(t *testing.T, limiter Limiter, withPayload bool) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	engine := gin.New()

	rl := NewRateLimit(limiter, testutil.MakeNoopLogger())
	engine.POST("/sign-up", func(c *gin.Context) {
		if withPayload {
			c.Set(handler.PayloadKey, handler.SignUpRequest{Username: "alice"})
		}
		c.Next()
	}, rl.Handle, func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return engine
}

func TestRateLimit_Handle_Admitted(t *testing.T) {
	engine := newRateLimitEngine(t, stubLimiter{}, true)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sign-up", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestRateLimit_Handle_Denied(t *testing.T) {
	engine := newRateLimitEngine(t, stubLimiter{err: model.ErrRateLimited}, true)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sign-up", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many requests. Please try again later!", w.Body.String())
}

func TestRateLimit_Handle_MissingPayload(t *testing.T) {
	engine := newRateLimitEngine(t, stubLimiter{}, false)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sign-up", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
