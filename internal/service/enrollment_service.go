package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-reg-api/internal/models"
	"github.com/noah-isme/course-reg-api/internal/repository"
	appErrors "github.com/noah-isme/course-reg-api/pkg/errors"
)

type enrollmentRepository interface {
	Enroll(userID, courseID string) (models.Enrollment, error)
	Drop(userID, courseID string) bool
	ListByUser(userID string) []models.Enrollment
	Calendar(userID string) []models.CalendarEvent
}

type courseLister interface {
	List() []models.Course
}

// EnrollRequest carries the course a user wants to enroll into.
type EnrollRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}

// EnrollmentService fronts the enrollment engine: it validates input, maps
// NotFound, and records outcome metrics. Conflict and waitlist outcomes flow
// through as ordinary results.
type EnrollmentService struct {
	repo      enrollmentRepository
	courses   courseLister
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, courses courseLister, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, courses: courses, validator: validate, logger: logger, metrics: metrics}
}

// Enroll registers the user for a course. The returned record's status is
// enrolled, waitlist, or conflict; re-enrolling returns the existing record
// unchanged.
func (s *EnrollmentService) Enroll(userID string, req EnrollRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enroll payload")
	}

	enrollment, err := s.repo.Enroll(userID, req.CourseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enroll")
	}

	s.metrics.ObserveEnrollment(enrollment.Status)
	s.logger.Info("enrollment attempt",
		zap.String("user_id", userID),
		zap.String("course_id", req.CourseID),
		zap.String("status", string(enrollment.Status)))
	return &enrollment, nil
}

// Drop removes the user's record for a course and reports whether one was
// removed. A drop of an enrolled seat may promote the waitlist head.
func (s *EnrollmentService) Drop(userID, courseID string) bool {
	removed := s.repo.Drop(userID, courseID)
	if removed {
		s.metrics.ObserveDrop()
		s.logger.Info("enrollment dropped", zap.String("user_id", userID), zap.String("course_id", courseID))
	}
	return removed
}

// List returns the user's enrollment records joined with current course
// names.
func (s *EnrollmentService) List(userID string) []models.EnrollmentDetail {
	enrollments := s.repo.ListByUser(userID)
	names := make(map[string]string)
	for _, c := range s.courses.List() {
		names[c.ID] = c.Name
	}
	out := make([]models.EnrollmentDetail, 0, len(enrollments))
	for _, e := range enrollments {
		out = append(out, models.EnrollmentDetail{Enrollment: e, CourseName: names[e.CourseID]})
	}
	return out
}

// Calendar flattens the user's enrolled courses into schedule events.
func (s *EnrollmentService) Calendar(userID string) []models.CalendarEvent {
	return s.repo.Calendar(userID)
}
