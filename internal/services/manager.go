package services

import (
	"log/slog"

	"github.com/aulalink/activity-service/internal/cache"
	"github.com/aulalink/activity-service/internal/events"
	"github.com/aulalink/activity-service/internal/producer"
	"github.com/aulalink/activity-service/internal/repositories"
	"github.com/aulalink/activity-service/internal/validator"
)

type serviceManager struct {
	activity   ActivityService
	submission SubmissionService
	export     ExportService
}

// NewServiceManager wires the services against shared infrastructure.
func NewServiceManager(
	repo repositories.Repository,
	contentCache *cache.ContentCache,
	publisher events.EventPublisher,
	contentProducer producer.ContentProducer,
	logger *slog.Logger,
	v *validator.Validator,
	policy PublishPolicy,
) ServiceManager {
	loader := NewContentLoader(repo, contentCache, logger)

	return &serviceManager{
		activity:   NewActivityService(repo, loader, publisher, contentProducer, logger, v, policy),
		submission: NewSubmissionService(repo, loader, publisher, logger, v),
		export:     NewExportService(repo, logger),
	}
}

func (m *serviceManager) Activity() ActivityService     { return m.activity }
func (m *serviceManager) Submission() SubmissionService { return m.submission }
func (m *serviceManager) Export() ExportService         { return m.export }
