package router

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkravtsov/authgate/internal/api/http/handler"
	"github.com/mkravtsov/authgate/internal/api/http/middleware"
	"github.com/mkravtsov/authgate/internal/logger"
	"github.com/mkravtsov/authgate/internal/model"
	"github.com/mkravtsov/authgate/internal/ratelimit"
	"github.com/mkravtsov/authgate/internal/service"
)

// Router wires the HTTP endpoints, their gates and the recovery
// fallback.
type Router struct {
	registrationService *service.Registration
	sessionService      *service.Session
	accountStore        model.AccountStore
	limiter             *ratelimit.Limiter
	contextManager      model.ContextManager
	logger              *logger.Logger
}

// New creates a new Router instance.
func New(
	registrationService *service.Registration,
	sessionService *service.Session,
	accountStore model.AccountStore,
	limiter *ratelimit.Limiter,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		registrationService: registrationService,
		sessionService:      sessionService,
		accountStore:        accountStore,
		limiter:             limiter,
		contextManager:      contextManager,
		logger:              logger,
	}
}

// Register builds the gin engine with all routes and middleware.
//
// Gate order on the registration route is validation first, then rate
// limiting: a malformed payload never consumes a throttle slot.
func (r *Router) Register() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	gin.DefaultWriter = io.Discard

	engine := gin.New()

	logging := middleware.NewLogging(r.logger)
	engine.Use(logging.Handle)

	// Last-resort catch-all: any unhandled fault becomes a generic 400
	// with no detail.
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		r.logger.Error("HTTP request panicked",
			"path", c.Request.URL.Path,
			"panic", fmt.Sprintf("%v", recovered))
		c.String(http.StatusBadRequest, "Bad request")
		c.Abort()
	}))

	validate := middleware.NewValidateSignUp(r.logger)
	rateLimit := middleware.NewRateLimit(r.limiter, r.logger)
	authenticate := middleware.NewAuthenticate(r.sessionService, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.registrationService, r.sessionService, r.accountStore, r.contextManager, r.logger)

	engine.GET("/health", authHandler.Health)
	engine.POST("/sign-up", validate.Handle, rateLimit.Handle, authHandler.SignUp)
	engine.POST("/login", authHandler.Login)
	engine.GET("/me", authenticate.Handle, authHandler.Me)

	return engine
}
