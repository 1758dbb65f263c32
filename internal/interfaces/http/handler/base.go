package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shoprank/backend/internal/interfaces/http/dto"
	"github.com/shoprank/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct {
	now func() time.Time
}

// HandlerOption configures a handler
type HandlerOption func(*BaseHandler)

// WithClock sets the clock used for response timestamps
func WithClock(now func() time.Time) HandlerOption {
	return func(h *BaseHandler) {
		h.now = now
	}
}

func newBaseHandler(opts []HandlerOption) BaseHandler {
	h := BaseHandler{now: time.Now}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// Now returns the current time from the handler clock
func (h *BaseHandler) Now() time.Time {
	if h.now == nil {
		return time.Now()
	}
	return h.now()
}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

// Error sends an error payload and records the error on the gin context for the request log
func (h *BaseHandler) Error(c *gin.Context, statusCode int, resp dto.ErrorResponse, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.JSON(statusCode, resp)
}

// BadRequest sends a 400 validation payload
func (h *BaseHandler) BadRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, middleware.FormatValidationErrors(err, h.Now()))
}
