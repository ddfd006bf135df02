package utils

import (
	"errors"
	"net/http"

	"hotelsupport/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	Details   string `json:"details,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// StatusFor maps a service error code to its HTTP status.
func StatusFor(err error) int {
	var svcErr *models.ServiceError
	if !errors.As(err, &svcErr) {
		return http.StatusInternalServerError
	}
	switch svcErr.Code {
	case models.CodeNotFound:
		return http.StatusNotFound
	case models.CodeNotAvailable:
		return http.StatusConflict
	case models.CodeInvalidInput:
		return http.StatusBadRequest
	case models.CodeOutOfDomain:
		return http.StatusUnprocessableEntity
	case models.CodeExternalFailure:
		if svcErr.Retryable {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ServiceErrorJSON writes err using the status and code of its service error.
func ServiceErrorJSON(c *gin.Context, err error) {
	status := StatusFor(err)
	resp := ErrorResponse{Message: err.Error()}
	var svcErr *models.ServiceError
	if errors.As(err, &svcErr) {
		resp.Message = svcErr.Message
		resp.Code = string(svcErr.Code)
		resp.Retryable = svcErr.Retryable
	}
	if status >= http.StatusInternalServerError {
		GetLogger().Error("request failed", zap.Error(err))
	} else {
		GetLogger().Debug("request rejected", zap.Error(err))
	}
	c.JSON(status, resp)
}
