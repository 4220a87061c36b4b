package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorResponse represents a standard error response. Details carries the
// underlying failure text and is only set when error details are exposed.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ErrorPolicy decides how server-side failures are reported to clients.
// Every failure is logged with its cause; the cause reaches the response
// body only when ExposeDetails is set.
type ErrorPolicy struct {
	ExposeDetails bool
	Logger        *logrus.Logger
}

// Abort logs err and writes status with the fixed message
func (p ErrorPolicy) Abort(c *gin.Context, status int, message string, err error) {
	logger := p.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	logger.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     status,
		"error":      err,
	}).Error(message)

	response := ErrorResponse{Error: message}
	if p.ExposeDetails && err != nil {
		response.Details = err.Error()
	}

	c.AbortWithStatusJSON(status, response)
}
