// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"net/http"

	"hwreview_gateway/platform/apperr"
	"hwreview_gateway/platform/logger"

	"github.com/gin-gonic/gin"
)

// Meta carries pagination metadata for list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Envelope is the uniform response shape every route returns, success or not.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK sends a 200 envelope with the given payload.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// OKWithMeta sends a 200 envelope with pagination metadata.
func OKWithMeta(c *gin.Context, data interface{}, meta *Meta) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Meta: meta})
}

// Message sends a 200 envelope with a human-readable message and no data.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

// Fail sends a failure envelope with the given status and sanitized message.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Error: message})
}

// AbortFail aborts the chain with a failure envelope. For middleware use.
func AbortFail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Error: message})
}

// HandleError maps a typed error to a failure envelope.
// Only the error's Message reaches the client; the underlying cause is logged.
// Returns true if an error was handled, false otherwise.
func HandleError(c *gin.Context, log *logger.Logger, err error) bool {
	if err == nil {
		return false
	}

	if gwErr, ok := err.(*apperr.Error); ok {
		status := gwErr.HTTPStatus()
		if log != nil && gwErr.Err != nil {
			log.BackendError(c.Request.Method, c.Request.URL.Path, status, gwErr)
		}
		Fail(c, status, gwErr.Message)
		return true
	}

	if log != nil {
		log.BackendError(c.Request.Method, c.Request.URL.Path, http.StatusInternalServerError, err)
	}
	Fail(c, http.StatusInternalServerError, "Internal server error")
	return true
}
