package handlers

import (
	"github.com/aulalink/activity-service/internal/services"
	"github.com/aulalink/activity-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	activityHandler   *ActivityHandler
	submissionHandler *SubmissionHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		activityHandler:   NewActivityHandler(serviceManager.Activity(), logger),
		submissionHandler: NewSubmissionHandler(serviceManager.Submission(), serviceManager.Export(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		activities := v1.Group("/activities")
		{
			activities.POST("", hm.activityHandler.CreateActivity)
			activities.GET("", hm.activityHandler.ListActivities)
			activities.GET("/:id", hm.activityHandler.GetActivity)
			activities.GET("/:id/content", hm.activityHandler.GetActivityWithContent)
			activities.PUT("/:id", hm.activityHandler.UpdateActivity)
			activities.DELETE("/:id", hm.activityHandler.DeleteActivity)
			activities.POST("/:id/publish", hm.activityHandler.PublishActivity)
			activities.POST("/:id/archive", hm.activityHandler.ArchiveActivity)
			activities.POST("/:id/generate", hm.activityHandler.GenerateContent)

			// Submission and grading
			activities.POST("/:id/submissions", hm.submissionHandler.SubmitResponses)
			activities.GET("/:id/submissions", hm.submissionHandler.ListSubmissions)
			activities.GET("/:id/submissions/:student_id", hm.submissionHandler.GetSubmission)
			activities.POST("/:id/submissions/:student_id/rescore", hm.submissionHandler.RescoreSubmission)
			activities.POST("/:id/evaluations", hm.submissionHandler.RegisterEvaluation)
			activities.GET("/:id/gradebook", hm.submissionHandler.ExportGradebook)
		}
	}
}
