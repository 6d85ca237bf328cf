package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mkravtsov/authgate/internal/logger"
	"github.com/mkravtsov/authgate/internal/model"
)

// SignUpRequest is the registration payload. Binding tags define the
// structural validation contract: any missing field, wrong type, bad
// email or short password is one undifferentiated rejection.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Age      *int   `json:"age" binding:"required"`
}

// PayloadKey is the gin context key under which the validation gate
// stores the bound registration payload.
const PayloadKey = "signUpPayload"

// PayloadFromContext retrieves the payload bound by the validation gate.
func PayloadFromContext(c *gin.Context) (SignUpRequest, bool) {
	v, ok := c.Get(PayloadKey)
	if !ok {
		return SignUpRequest{}, false
	}
	payload, ok := v.(SignUpRequest)
	return payload, ok
}

// RegistrationService defines the register-or-reject-duplicate operation.
type RegistrationService interface {
	Register(ctx context.Context, account model.Account) (token string, err error)
}

// SessionService verifies presented session tokens.
type SessionService interface {
	Verify(ctx context.Context, token string) (username string, err error)
}

// Auth handles HTTP endpoints for registration and session checks.
type Auth struct {
	registrationService RegistrationService
	sessionService      SessionService
	accountStore        model.AccountStore
	contextManager      model.ContextManager
	logger              *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(
	registrationService RegistrationService,
	sessionService SessionService,
	accountStore model.AccountStore,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		registrationService: registrationService,
		sessionService:      sessionService,
		accountStore:        accountStore,
		contextManager:      contextManager,
		logger:              logger,
	}
}

// SignUp registers a new account and returns its session token. A taken
// username is a normal branch answered with 200 and a login hint, not a
// failure.
func (h *Auth) SignUp(c *gin.Context) {
	payload, ok := PayloadFromContext(c)
	if !ok {
		// The validation gate always runs first; a missing payload means
		// broken route wiring.
		h.logger.Error("Auth handler: sign-up reached without a bound payload")
		c.String(http.StatusBadRequest, "Bad request")
		return
	}

	h.logger.Debug("Auth handler: processing sign-up request",
		"username", payload.Username)

	account := model.Account{
		Username: payload.Username,
		Password: payload.Password,
		Email:    payload.Email,
		Age:      *payload.Age,
	}

	token, err := h.registrationService.Register(c.Request.Context(), account)
	if err != nil {
		handleError(c, err)
		return
	}

	h.logger.Info("Auth handler: sign-up completed",
		"username", payload.Username)

	c.String(http.StatusOK, fmt.Sprintf("This is your JWT token %s", token))
}

// Login verifies the session token presented in the Authorization header.
func (h *Auth) Login(c *gin.Context) {
	token := extractToken(c)

	username, err := h.sessionService.Verify(c.Request.Context(), token)
	if err != nil {
		handleError(c, err)
		return
	}

	h.logger.Info("Auth handler: session verified",
		"username", username)

	c.String(http.StatusOK, "You're logged-in")
}

// Me returns the authenticated account's profile. The username comes from
// the request context set by the authentication middleware.
func (h *Auth) Me(c *gin.Context) {
	username, ok := h.contextManager.GetUsernameFromContext(c.Request.Context())
	if !ok {
		handleError(c, model.ErrUnauthorized)
		return
	}

	account, err := h.accountStore.GetByUsername(c.Request.Context(), username)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userName": account.Username,
		"email":    account.Email,
		"age":      account.Age,
	})
}

// Health is the liveness endpoint.
func (h *Auth) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "authgate",
	})
}

func extractToken(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}
