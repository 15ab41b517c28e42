package handlers

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "github.com/aulalink/activity-service/internal/errors"
	"github.com/aulalink/activity-service/internal/scoring"
	"github.com/aulalink/activity-service/internal/services"
	"github.com/aulalink/activity-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging and error mapping for all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogError logs error details with request context
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"request_id", c.GetHeader("X-Request-ID"),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	fields = append(fields, additionalFields...)
	h.logger.LogError(err, message, fields...)
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error) {
	errorResp := ErrorResponse{Message: message}
	if err != nil {
		errorResp.Details = err.Error()
		h.LogError(c, err, message, "status_code", statusCode)
	}
	c.JSON(statusCode, errorResp)
}

// HandleServiceError maps service errors onto HTTP responses. Publication
// failures keep their stable reason code so the authoring UI can show the
// specific unmet condition.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	var pubErr *apperrors.PublicationError
	if errors.As(err, &pubErr) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: pubErr.Message,
			Code:    pubErr.Reason,
		})
		return
	}

	switch {
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, "Resource not found", err)
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err)
	case services.IsConflict(err):
		h.RespondWithError(c, http.StatusConflict, "Conflict", err)
	case errors.Is(err, scoring.ErrStrippedContent),
		errors.Is(err, services.ErrContentStripped):
		h.RespondWithError(c, http.StatusConflict, "Content not fully loaded", err)
	case errors.Is(err, services.ErrStaleContentLoad):
		h.RespondWithError(c, http.StatusConflict, "Stale content load discarded", err)
	case services.IsIO(err):
		h.RespondWithError(c, http.StatusBadGateway, "Upstream failure", err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// ===== PARAM HELPERS =====

// ParseUintParam parses a numeric path parameter, responding with 400 on
// failure. The bool result reports success.
func (h *BaseHandler) ParseUintParam(c *gin.Context, param string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid "+param, err)
		return 0, false
	}
	return uint(value), true
}

// ParseUintQuery parses an optional numeric query parameter.
func ParseUintQuery(c *gin.Context, key string) *uint {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	v := uint(value)
	return &v
}

// HealthCheck responds to liveness probes.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
