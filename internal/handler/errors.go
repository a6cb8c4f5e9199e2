package handler

import (
	"errors"
	"net/http"

	"volunteer_platform/internal/middleware"
	"volunteer_platform/internal/model"
	"volunteer_platform/internal/service"
	"volunteer_platform/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError translates a service error into a JSON response. Anything that is not
// a known client error is treated as a store failure: logged and reported as 500
// with the generic message.
func respondError(c *gin.Context, log *zap.Logger, err error, message string) {
	var verrs *validation.Errors
	var stateErr *service.StateError

	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": verrs.Fields})
	case errors.As(err, &stateErr):
		body := gin.H{"error": stateErr.Message, "code": stateErr.Code}
		if len(stateErr.Missing) > 0 {
			body["missing_sections"] = stateErr.Missing
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrAccountDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSurveyNotFound), errors.Is(err, service.ErrVolunteerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		log.Error(message,
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}

// bindJSON decodes the body into req or writes a 400 with the offending fields
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": validation.FromBindError(err).Fields})
		return false
	}
	return true
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// getPrincipal returns the authenticated caller or writes a 401
func getPrincipal(c *gin.Context) (model.Principal, bool) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return model.Principal{}, false
	}
	return p, true
}
