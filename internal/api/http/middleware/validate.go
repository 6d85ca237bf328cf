package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mkravtsov/authgate/internal/api/http/handler"
	"github.com/mkravtsov/authgate/internal/logger"
)

// ValidateSignUp is the structural input gate for registration requests.
// It runs before the rate limiter, so a malformed payload never consumes
// a throttle slot. Rejections carry no per-field detail to the client;
// that stays in the logs.
type ValidateSignUp struct {
	logger *logger.Logger
}

// NewValidateSignUp creates a new ValidateSignUp middleware instance.
func NewValidateSignUp(logger *logger.Logger) *ValidateSignUp {
	return &ValidateSignUp{logger: logger}
}

// Handle binds and validates the registration payload, stashing it in the
// gin context for the downstream gates and handler.
func (m *ValidateSignUp) Handle(c *gin.Context) {
	var payload handler.SignUpRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			m.logger.Debug("validation middleware: payload rejected",
				"failed_fields", len(validationErrs))
		} else {
			m.logger.Debug("validation middleware: malformed request body",
				"error", err.Error())
		}

		c.String(http.StatusUnprocessableEntity, "Invalid Input")
		c.Abort()
		return
	}

	c.Set(handler.PayloadKey, payload)
	c.Next()
}
