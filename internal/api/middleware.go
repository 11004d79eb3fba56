package api

import (
	"errors"
	"net/http"

	"fitcoach/coach-app/internal/domain"
	"fitcoach/coach-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation id assigned to every request.
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware tags each request with a unique id so log lines from
// one intent can be tied together.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// respondServiceError maps service-layer errors onto HTTP statuses. The
// onboarding gate surfaces as a conflict, domain validation as a bad request.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		abortWithError(c, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, service.ErrNotOnboarded):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAlreadyOnboarded):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrEmptyInput):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrBackupDisabled):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
