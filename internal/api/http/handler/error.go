package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkravtsov/authgate/internal/model"
)

// handleError maps domain errors to plaintext HTTP responses. Anything
// outside the taxonomy collapses to a generic 400 so internals never leak
// to the client.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrAccountExists):
		c.String(http.StatusOK, "User already exists. Please login!")
	case errors.Is(err, model.ErrRateLimited):
		c.String(http.StatusTooManyRequests, "Too many requests. Please try again later!")
	case errors.Is(err, model.ErrUnauthorized):
		c.String(http.StatusUnauthorized, "Unauthorised")
	case errors.Is(err, model.ErrStorageUnavailable):
		c.String(http.StatusServiceUnavailable, "Service temporarily unavailable")
	case errors.Is(err, model.ErrNotFound):
		c.String(http.StatusNotFound, "Not found")
	default:
		c.String(http.StatusBadRequest, "Bad request")
	}
	c.Abort()
}
