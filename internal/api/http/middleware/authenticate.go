package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mkravtsov/authgate/internal/logger"
	"github.com/mkravtsov/authgate/internal/model"
)

// SessionService resolves usernames from bearer tokens.
type SessionService interface {
	Verify(ctx context.Context, token string) (username string, err error)
}

// Authenticate validates bearer tokens and injects the username into the
// request context. Missing, malformed and mis-signed tokens are all the
// same 401 to the client.
type Authenticate struct {
	sessionService SessionService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(sessionService SessionService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		sessionService: sessionService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle parses the Authorization header, verifies the token and passes
// the username down through the request context.
func (m *Authenticate) Handle(c *gin.Context) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	username, err := m.sessionService.Verify(c.Request.Context(), tokenString)
	if err != nil {
		c.String(http.StatusUnauthorized, "Unauthorised")
		c.Abort()
		return
	}

	ctx := m.contextManager.SetUsernameToContext(c.Request.Context(), username)
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}
