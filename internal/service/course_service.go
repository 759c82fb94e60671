package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-reg-api/internal/models"
	"github.com/noah-isme/course-reg-api/internal/repository"
	appErrors "github.com/noah-isme/course-reg-api/pkg/errors"
)

type courseRepository interface {
	Create(name string, credit, capacity int, times []models.TimeSlot) models.Course
	Update(id string, name *string, credit, capacity *int, times []models.TimeSlot) error
	Delete(id string) error
	FindByID(id string) (models.Course, error)
	List() []models.Course
	Filter(f models.CourseFilter) []models.Course
}

// TimeSlotRequest describes one meeting block of a course.
type TimeSlotRequest struct {
	Day   string `json:"day" validate:"required"`
	Start int    `json:"start" validate:"gte=0,lte=23"`
	End   int    `json:"end" validate:"gtfield=Start,lte=24"`
	Date  string `json:"date"`
}

// CreateCourseRequest describes course creation payload.
type CreateCourseRequest struct {
	Name     string            `json:"name" validate:"required"`
	Credit   int               `json:"credit" validate:"gte=0"`
	Capacity int               `json:"capacity" validate:"gte=0"`
	Times    []TimeSlotRequest `json:"times" validate:"dive"`
}

// UpdateCourseRequest describes a partial update; nil fields are left
// unchanged, and times replace the schedule wholesale when present.
type UpdateCourseRequest struct {
	Name     *string           `json:"name"`
	Credit   *int              `json:"credit" validate:"omitempty,gte=0"`
	Capacity *int              `json:"capacity" validate:"omitempty,gte=0"`
	Times    []TimeSlotRequest `json:"times" validate:"omitempty,dive"`
}

// CourseService manages the course catalog.
type CourseService struct {
	repo      courseRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs CourseService.
func NewCourseService(repo courseRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, validator: validate, logger: logger}
}

// Create publishes a new course.
func (s *CourseService) Create(req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course := s.repo.Create(req.Name, req.Credit, req.Capacity, toTimeSlots(req.Times))
	s.logger.Info("course created", zap.String("course_id", course.ID), zap.String("name", course.Name))
	return &course, nil
}

// Update applies a partial update to an existing course.
func (s *CourseService) Update(id string, req UpdateCourseRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	var times []models.TimeSlot
	if req.Times != nil {
		times = toTimeSlots(req.Times)
	}
	if err := s.repo.Update(id, req.Name, req.Credit, req.Capacity, times); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	return nil
}

// Delete removes a course and cascades to waitlists, enrollments and grades.
func (s *CourseService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	s.logger.Info("course deleted", zap.String("course_id", id))
	return nil
}

// Get returns a single course.
func (s *CourseService) Get(id string) (*models.Course, error) {
	course, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return &course, nil
}

// List returns every course.
func (s *CourseService) List() []models.Course {
	return s.repo.List()
}

// Filter returns courses constrained by credit bounds and meeting day.
func (s *CourseService) Filter(f models.CourseFilter) []models.Course {
	return s.repo.Filter(f)
}

func toTimeSlots(reqs []TimeSlotRequest) []models.TimeSlot {
	times := make([]models.TimeSlot, 0, len(reqs))
	for _, t := range reqs {
		times = append(times, models.TimeSlot{Day: t.Day, Start: t.Start, End: t.End, Date: t.Date})
	}
	return times
}
