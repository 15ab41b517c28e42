package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/aulalink/activity-service/internal/models"
	"github.com/aulalink/activity-service/internal/repositories"
	"github.com/aulalink/activity-service/internal/services"
	"github.com/aulalink/activity-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	BaseHandler
	service services.SubmissionService
	export  services.ExportService
}

func NewSubmissionHandler(service services.SubmissionService, export services.ExportService, logger utils.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		export:      export,
	}
}

// SubmitResponses handles POST /activities/:id/submissions
func (h *SubmissionHandler) SubmitResponses(c *gin.Context) {
	activityID, ok := h.ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.SubmitResponsesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.ActivityID = activityID

	resp, err := h.service.SubmitResponses(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Submission scored", Data: resp})
}

// RegisterEvaluation handles POST /activities/:id/evaluations, the explicit
// teacher action that completes a NEM evaluation record.
func (h *SubmissionHandler) RegisterEvaluation(c *gin.Context) {
	activityID, ok := h.ParseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.RegisterEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.ActivityID = activityID

	resp, err := h.service.RegisterEvaluation(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Evaluation registered", Data: resp})
}

// GetSubmission handles GET /activities/:id/submissions/:student_id
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	activityID, ok := h.ParseUintParam(c, "id")
	if !ok {
		return
	}
	studentID, ok := h.ParseUintParam(c, "student_id")
	if !ok {
		return
	}

	resp, err := h.service.GetSubmission(c.Request.Context(), activityID, studentID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: resp})
}

// ListSubmissions handles GET /activities/:id/submissions
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	activityID, ok := h.ParseUintParam(c, "id")
	if !ok {
		return
	}

	filters := repositories.SubmissionFilters{
		StudentID: ParseUintQuery(c, "student_id"),
	}
	if v := c.Query("status"); v != "" {
		st := models.SubmissionStatus(v)
		filters.Status = &st
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filters.Limit = n
		}
	}

	records, total, err := h.service.ListByActivity(c.Request.Context(), activityID, filters)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records, "total": total})
}

// RescoreSubmission handles POST /activities/:id/submissions/:student_id/rescore
func (h *SubmissionHandler) RescoreSubmission(c *gin.Context) {
	activityID, ok := h.ParseUintParam(c, "id")
	if !ok {
		return
	}
	studentID, ok := h.ParseUintParam(c, "student_id")
	if !ok {
		return
	}

	resp, err := h.service.Rescore(c.Request.Context(), activityID, studentID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Submission rescored", Data: resp})
}

// ExportGradebook handles GET /activities/:id/gradebook
func (h *SubmissionHandler) ExportGradebook(c *gin.Context) {
	activityID, ok := h.ParseUintParam(c, "id")
	if !ok {
		return
	}

	data, err := h.export.ExportGradebook(c.Request.Context(), activityID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("gradebook-%d.xlsx", activityID)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
