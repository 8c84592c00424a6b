package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Timestamp string `json:"timestamp"`
}

// NewErrorResponse fills in the request id and timestamp of an error body
func NewErrorResponse(c *gin.Context, errMsg, message string) ErrorResponse {
	return ErrorResponse{
		Error:     errMsg,
		Message:   message,
		RequestID: c.GetString(RequestIDKey),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ErrorHandler renders errors attached to the context by handlers. Bind
// errors are client faults (400, or the status carried in the error meta);
// everything else is reported as 500 without details.
func ErrorHandler(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last()
		status := statusFor(err)

		fields := logrus.Fields{
			"request_id":  c.GetString(RequestIDKey),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"error":       err.Error(),
			"error_type":  fmt.Sprintf("%d", err.Type),
			"status_code": status,
		}
		if status >= http.StatusInternalServerError {
			logger.WithFields(fields).Error("Request error")
		} else {
			logger.WithFields(fields).Warn("Request error")
		}

		switch {
		case status == http.StatusRequestEntityTooLarge:
			c.JSON(status, NewErrorResponse(c, "Request too large", err.Error()))
		case err.Type == gin.ErrorTypeBind:
			c.JSON(status, NewErrorResponse(c, "Invalid request format", err.Error()))
		case err.Type == gin.ErrorTypePublic:
			c.JSON(status, NewErrorResponse(c, "Request failed", err.Error()))
		default:
			c.JSON(status, NewErrorResponse(c, "Internal server error", "An internal error occurred"))
		}
	}
}

func statusFor(err *gin.Error) int {
	if code, ok := err.Meta.(int); ok && code >= 400 {
		return code
	}
	switch err.Type {
	case gin.ErrorTypeBind, gin.ErrorTypePublic:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Recovery turns panics into a logged 500 response
func Recovery(logger logrus.FieldLogger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"panic":      fmt.Sprintf("%v", recovered),
		}).Error("Recovered from panic")

		c.AbortWithStatusJSON(http.StatusInternalServerError,
			NewErrorResponse(c, "Internal server error", "An internal error occurred"))
	})
}

// NotFound renders the JSON body for unknown routes
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, NewErrorResponse(c, "Not found",
			fmt.Sprintf("The requested URL %s was not found on the server", c.Request.URL.Path)))
	}
}

// MethodNotAllowed renders the JSON body for known routes hit with an unsupported method
func MethodNotAllowed() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, NewErrorResponse(c, "Method not allowed",
			fmt.Sprintf("The method %s is not allowed for the requested URL", c.Request.Method)))
	}
}
