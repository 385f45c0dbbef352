package handlers

import (
	"github.com/formlab/formbuilder-service/internal/services"
	"github.com/formlab/formbuilder-service/internal/utils"
	"github.com/gin-gonic/gin"
	"net/http"
)

// ===== COMMON RESPONSE STRUCTURES =====

// APIResponse is the envelope shared by every endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging and response helpers for all handlers
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"remote_addr", c.ClientIP(),
		"request_id", c.GetHeader("X-Request-ID"),
	}
	fields = append(fields, additionalFields...)

	h.logger.Info(message, fields...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"request_id", c.GetHeader("X-Request-ID"),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	fields = append(fields, additionalFields...)

	h.logger.LogError(err, message, fields...)
}

// RespondWithError sends a consistent error envelope and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		h.LogError(c, err, message, "status_code", statusCode)
	}
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: message,
	})
}

// RespondWithSuccess sends a consistent success envelope
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// RespondWithServiceError maps service-layer errors onto HTTP statuses. The
// server message is surfaced verbatim; the client takes no corrective action.
func (h *BaseHandler) RespondWithServiceError(c *gin.Context, err error) {
	switch {
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, err.Error(), err)
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, err.Error(), err)
	}
}
