package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/aulalink/activity-service/internal/events"
	"github.com/aulalink/activity-service/internal/models"
	"github.com/aulalink/activity-service/internal/producer"
	"github.com/aulalink/activity-service/internal/repositories"
	"github.com/aulalink/activity-service/internal/validator"
	"gorm.io/gorm"
)

// ===== IN-MEMORY REPOSITORY FAKES =====

type fakeActivityRepo struct {
	mu         sync.Mutex
	activities map[uint]*models.Activity
	nextID     uint
	hasSubs    map[uint]bool

	// detailHook runs inside GetByIDWithContent, before the result is
	// returned. Used to simulate navigation racing an in-flight load.
	detailHook func(id uint)
	detailErr  error
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{
		activities: make(map[uint]*models.Activity),
		hasSubs:    make(map[uint]bool),
	}
}

func (r *fakeActivityRepo) Create(_ context.Context, activity *models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	activity.ID = r.nextID
	r.activities[activity.ID] = activity
	return nil
}

func (r *fakeActivityRepo) GetByID(_ context.Context, id uint) (*models.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	activity, ok := r.activities[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *activity
	clone.InteractiveData = activity.InteractiveData.Stripped()
	return &clone, nil
}

func (r *fakeActivityRepo) GetByIDWithContent(_ context.Context, id uint) (*models.Activity, error) {
	if r.detailHook != nil {
		r.detailHook(id)
	}
	if r.detailErr != nil {
		return nil, r.detailErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	activity, ok := r.activities[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *activity
	if activity.InteractiveData != nil {
		agg := *activity.InteractiveData
		clone.InteractiveData = &agg
	}
	return &clone, nil
}

func (r *fakeActivityRepo) Update(_ context.Context, activity *models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.activities[activity.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.activities[activity.ID] = activity
	return nil
}

func (r *fakeActivityRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.activities[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.activities, id)
	return nil
}

func (r *fakeActivityRepo) List(_ context.Context, _ repositories.ActivityFilters) ([]*models.Activity, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Activity, 0, len(r.activities))
	for _, a := range r.activities {
		clone := *a
		clone.InteractiveData = a.InteractiveData.Stripped()
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *fakeActivityRepo) GetByGroup(ctx context.Context, _ string, filters repositories.ActivityFilters) ([]*models.Activity, int64, error) {
	return r.List(ctx, filters)
}

func (r *fakeActivityRepo) UpdateStatus(_ context.Context, id uint, status models.ActivityStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	activity, ok := r.activities[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	activity.Status = status
	return nil
}

func (r *fakeActivityRepo) HasSubmissions(_ context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasSubs[id], nil
}

type submissionKey struct {
	studentID  uint
	activityID uint
}

type fakeSubmissionRepo struct {
	mu      sync.Mutex
	records map[submissionKey]*models.SubmissionRecord
	nextID  uint
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{records: make(map[submissionKey]*models.SubmissionRecord)}
}

func (r *fakeSubmissionRepo) Upsert(_ context.Context, record *models.SubmissionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := submissionKey{record.StudentID, record.ActivityID}
	if existing, ok := r.records[key]; ok {
		record.ID = existing.ID
	} else {
		r.nextID++
		record.ID = r.nextID
	}
	r.records[key] = record
	return nil
}

func (r *fakeSubmissionRepo) GetByStudentAndActivity(_ context.Context, studentID, activityID uint) (*models.SubmissionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[submissionKey{studentID, activityID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *record
	return &clone, nil
}

func (r *fakeSubmissionRepo) ListByActivity(_ context.Context, activityID uint, _ repositories.SubmissionFilters) ([]*models.SubmissionRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.SubmissionRecord, 0)
	for key, record := range r.records {
		if key.activityID == activityID {
			clone := *record
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeSubmissionRepo) ListByStudent(_ context.Context, studentID uint, _ repositories.SubmissionFilters) ([]*models.SubmissionRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.SubmissionRecord, 0)
	for key, record := range r.records {
		if key.studentID == studentID {
			clone := *record
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

type fakeRepo struct {
	activity   *fakeActivityRepo
	submission *fakeSubmissionRepo
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		activity:   newFakeActivityRepo(),
		submission: newFakeSubmissionRepo(),
	}
}

func (r *fakeRepo) Activity() repositories.ActivityRepository     { return r.activity }
func (r *fakeRepo) Submission() repositories.SubmissionRepository { return r.submission }

// ===== TEST ENVIRONMENT =====

type testEnv struct {
	repo        *fakeRepo
	loader      *ContentLoader
	publisher   *events.MockEventPublisher
	producer    *producer.MockProducer
	activities  ActivityService
	submissions SubmissionService
}

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv() *testEnv {
	logger := slogDiscard()
	repo := newFakeRepo()
	publisher := events.NewMockEventPublisher(logger)
	contentProducer := &producer.MockProducer{}
	loader := NewContentLoader(repo, nil, logger)
	v := validator.New()

	return &testEnv{
		repo:        repo,
		loader:      loader,
		publisher:   publisher,
		producer:    contentProducer,
		activities:  NewActivityService(repo, loader, publisher, contentProducer, logger, v, DefaultPublishPolicy()),
		submissions: NewSubmissionService(repo, loader, publisher, logger, v),
	}
}

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

func sampleQuiz(questions int) *models.ContentAggregate {
	qs := make([]models.QuizQuestion, 0, questions)
	for i := 0; i < questions; i++ {
		qs = append(qs, models.QuizQuestion{
			ID:           string(rune('a' + i)),
			Text:         "question",
			Options:      []string{"yes", "no"},
			CorrectIndex: 0,
			Points:       1,
		})
	}
	return &models.ContentAggregate{
		Kind:       models.ContentQuiz,
		HasContent: true,
		Questions:  qs,
	}
}
