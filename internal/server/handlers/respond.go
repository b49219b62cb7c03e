package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/apperr"
	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/server/middleware"
	"github.com/mamadbah2/dairy/internal/validation"
)

// writeError maps err to its status code. Internal failures expose the
// underlying error text alongside a generic message.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(status, gin.H{"message": "Server error", "error": err.Error()})
		return
	}

	c.JSON(status, gin.H{"message": apperr.Message(err)})
}

// bindJSON decodes and validates the request body into dst. On failure it
// writes a 400 response and returns false.
func bindJSON(c *gin.Context, logger *zap.Logger, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		c.JSON(http.StatusBadRequest, gin.H{"message": validation.Describe(fieldErrs)})
		return false
	}

	logger.Debug("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
	return false
}

// caller returns the identity set by middleware.Authenticate. Routes using it
// are always mounted behind that middleware.
func caller(c *gin.Context) models.Identity {
	identity, _ := middleware.IdentityFrom(c)
	return identity
}
