package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aulalink/activity-service/internal/models"
	"github.com/aulalink/activity-service/internal/producer"
	"github.com/aulalink/activity-service/internal/repositories"
	"github.com/aulalink/activity-service/internal/services"
	"github.com/aulalink/activity-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	BaseHandler
	service services.ActivityService
}

func NewActivityHandler(service services.ActivityService, logger utils.Logger) *ActivityHandler {
	return &ActivityHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// CreateActivity handles POST /activities
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	var req services.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	creatorID := currentUserID(c)
	activity, err := h.service.Create(c.Request.Context(), &req, creatorID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{Message: "Activity created", Data: activity})
}

// GetActivity handles GET /activities/:id, a stripped payload for list views.
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	id, ok := h.ParseUintParam(c, "id")
	if !ok {
		return
	}

	activity, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: activity})
}

// GetActivityWithContent handles GET /activities/:id/content: the full
// aggregate, upgraded through the partial-load path. The stale-load guard
// is scoped to the requesting viewer so concurrent readers cannot cancel
// each other.
func (h *ActivityHandler) GetActivityWithContent(c *gin.Context) {
	id, ok := h.ParseUintParam(c, "id")
	if !ok {
		return
	}

	activity, err := h.service.GetByIDWithContent(c.Request.Context(), viewerID(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: activity})
}

// ListActivities handles GET /activities
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	filters := repositories.ActivityFilters{
		CreatedBy: ParseUintQuery(c, "created_by"),
	}
	if v := c.Query("type"); v != "" {
		t := models.ActivityType(v)
		filters.Type = &t
	}
	if v := c.Query("assignment_type"); v != "" {
		t := models.AssignmentType(v)
		filters.AssignmentType = &t
	}
	if v := c.Query("status"); v != "" {
		st := models.ActivityStatus(v)
		filters.Status = &st
	}
	if v := c.Query("target_group"); v != "" {
		filters.TargetGroup = &v
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filters.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filters.Offset = n
		}
	}

	activities, total, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": activities, "total": total})
}

// UpdateActivity handles PUT /activities/:id
func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	id, ok := h.ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	activity, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Activity updated", Data: activity})
}

// DeleteActivity handles DELETE /activities/:id
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	id, ok := h.ParseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Activity deleted"})
}

// PublishActivity handles POST /activities/:id/publish
func (h *ActivityHandler) PublishActivity(c *gin.Context) {
	id, ok := h.ParseUintParam(c, "id")
	if !ok {
		return
	}

	activity, err := h.service.Publish(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Activity published", Data: activity})
}

// ArchiveActivity handles POST /activities/:id/archive
func (h *ActivityHandler) ArchiveActivity(c *gin.Context) {
	id, ok := h.ParseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Archive(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Activity archived"})
}

// GenerateContent handles POST /activities/:id/generate. It asks the content
// producer for an aggregate and attaches it to the activity.
func (h *ActivityHandler) GenerateContent(c *gin.Context) {
	id, ok := h.ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req producer.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	activity, err := h.service.GenerateContent(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, services.ErrProducerUnavailable) {
			h.RespondWithError(c, http.StatusServiceUnavailable, "Content generation is not available", err)
			return
		}
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Content generated", Data: activity})
}

// currentUserID reads the authenticated user id placed in the context by the
// auth layer upstream of this service. Zero when absent.
func currentUserID(c *gin.Context) uint {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// viewerID identifies the reader whose navigation state the stale-load
// guard tracks. Clients send X-Viewer-ID; authenticated requests fall back
// to the user id. Empty means no tracking for this request.
func viewerID(c *gin.Context) string {
	if v := c.GetHeader("X-Viewer-ID"); v != "" {
		return v
	}
	if uid := currentUserID(c); uid != 0 {
		return strconv.FormatUint(uint64(uid), 10)
	}
	return ""
}
