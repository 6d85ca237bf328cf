package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkravtsov/authgate/internal/api/http/handler"
	"github.com/mkravtsov/authgate/internal/logger"
)

// Limiter admits or denies an identity for the current window.
type Limiter interface {
	Admit(ctx context.Context, key string) error
}

// RateLimit throttles registration requests per submitted username. It
// runs after the validation gate and keys on the bound payload.
type RateLimit struct {
	limiter Limiter
	logger  *logger.Logger
}

// NewRateLimit creates a new RateLimit middleware instance.
func NewRateLimit(limiter Limiter, logger *logger.Logger) *RateLimit {
	return &RateLimit{limiter: limiter, logger: logger}
}

// Handle denies the request with 429 once the identity's budget for the
// current window is spent.
func (m *RateLimit) Handle(c *gin.Context) {
	payload, ok := handler.PayloadFromContext(c)
	if !ok {
		c.String(http.StatusBadRequest, "Bad request")
		c.Abort()
		return
	}

	if err := m.limiter.Admit(c.Request.Context(), payload.Username); err != nil {
		m.logger.Info("rate limit middleware: request denied",
			"username", payload.Username)
		c.String(http.StatusTooManyRequests, "Too many requests. Please try again later!")
		c.Abort()
		return
	}

	c.Next()
}
